package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldModelID is the standardized structured logging key for note type ids.
	FieldModelID = "model_id"
	// FieldTag is the standardized structured logging key for script interface tags.
	FieldTag = "tag"
	// FieldScriptID is the standardized structured logging key for meta script ids.
	FieldScriptID = "script_id"
	// FieldSettingKind distinguishes script settings from HTML settings.
	FieldSettingKind = "setting_kind"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)

type contextKey int

const (
	modelIDKey contextKey = iota
	sessionIDKey
)

// WithModelID records the note type a request operates on.
func WithModelID(ctx context.Context, modelID int64) context.Context {
	return context.WithValue(ctx, modelIDKey, modelID)
}

// ModelIDFromContext returns the note type id stored by WithModelID.
func ModelIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(modelIDKey).(int64)
	return id, ok
}

// WithSessionID records the invocation session id.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext returns the session id stored by WithSessionID.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := ModelIDFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldModelID, id))
	}
	if sid, ok := SessionIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSessionID, sid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
