package setting

import (
	"context"
	"fmt"
	"log/slog"

	"assetman/internal/logging"
	"assetman/internal/schema"
	"assetman/internal/script"
	"assetman/internal/store"
)

// ConfigStore persists raw settings per note type.
type ConfigStore interface {
	Get(ctx context.Context, modelID int64, kind store.Kind) (map[string]any, error)
	Put(ctx context.Context, modelID int64, kind store.Kind, value map[string]any) error
	PutAll(ctx context.Context, modelID int64, values map[store.Kind]map[string]any) error
}

// Repository reads and writes typed settings through a ConfigStore.
type Repository struct {
	store     ConfigStore
	codec     *Codec
	validator *schema.Validator
	logger    *slog.Logger
}

// NewRepository wires a repository.
func NewRepository(st ConfigStore, codec *Codec, validator *schema.Validator, logger *slog.Logger) *Repository {
	return &Repository{
		store:     st,
		codec:     codec,
		validator: validator,
		logger:    logging.NewComponentLogger(logger, "settings"),
	}
}

// Codec returns the codec used by the repository.
func (r *Repository) Codec() *Codec {
	return r.codec
}

// Scripts loads the script setting of modelID.
func (r *Repository) Scripts(ctx context.Context, modelID int64) (script.ScriptSetting, error) {
	raw, err := r.store.Get(ctx, modelID, store.KindScripts)
	if err != nil {
		return script.ScriptSetting{}, fmt.Errorf("load scripts: %w", err)
	}
	return r.codec.DeserializeSetting(modelID, raw)
}

// HTML loads the HTML setting of modelID.
func (r *Repository) HTML(ctx context.Context, modelID int64) (script.HTMLSetting, error) {
	raw, err := r.store.Get(ctx, modelID, store.KindHTML)
	if err != nil {
		return script.HTMLSetting{}, fmt.Errorf("load html: %w", err)
	}
	return r.codec.DeserializeHTMLSetting(modelID, raw)
}

// WriteScripts replaces the stored script setting of modelID.
func (r *Repository) WriteScripts(ctx context.Context, modelID int64, s script.ScriptSetting) error {
	if err := r.store.Put(ctx, modelID, store.KindScripts, SerializeSetting(s)); err != nil {
		return fmt.Errorf("write scripts: %w", err)
	}
	logging.WithContext(ctx, r.logger).Debug("script setting written",
		logging.Int64(logging.FieldModelID, modelID),
		logging.Int("scripts", len(s.Scripts)),
	)
	return nil
}

// WriteHTML replaces the stored HTML setting of modelID.
func (r *Repository) WriteHTML(ctx context.Context, modelID int64, s script.HTMLSetting) error {
	if err := r.store.Put(ctx, modelID, store.KindHTML, SerializeHTMLSetting(s)); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	logging.WithContext(ctx, r.logger).Debug("html setting written",
		logging.Int64(logging.FieldModelID, modelID),
		logging.Int("fragments", len(s.Fragments)),
	)
	return nil
}

// WriteAll replaces both settings of modelID in one transaction.
func (r *Repository) WriteAll(ctx context.Context, modelID int64, html script.HTMLSetting, scripts script.ScriptSetting) error {
	values := map[store.Kind]map[string]any{
		store.KindHTML:    SerializeHTMLSetting(html),
		store.KindScripts: SerializeSetting(scripts),
	}
	if err := r.store.PutAll(ctx, modelID, values); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// ImportScripts validates data against the setting schema, decodes it, and
// stores it for modelID. On any error the stored setting is left untouched.
func (r *Repository) ImportScripts(ctx context.Context, modelID int64, data []byte) (script.ScriptSetting, error) {
	raw, err := r.validator.DecodeObject(schema.DocSetting, data)
	if err != nil {
		return script.ScriptSetting{}, err
	}
	s, err := r.codec.DeserializeSetting(modelID, raw)
	if err != nil {
		return script.ScriptSetting{}, err
	}
	if err := r.WriteScripts(ctx, modelID, s); err != nil {
		return script.ScriptSetting{}, err
	}
	logging.WithContext(ctx, r.logger).Info("script setting imported",
		logging.Int64(logging.FieldModelID, modelID),
		logging.Int("scripts", len(s.Scripts)),
	)
	return s, nil
}

// ImportHTML validates data against the HTML setting schema, decodes it, and
// stores it for modelID. On any error the stored setting is left untouched.
func (r *Repository) ImportHTML(ctx context.Context, modelID int64, data []byte) (script.HTMLSetting, error) {
	raw, err := r.validator.DecodeObject(schema.DocHTMLSetting, data)
	if err != nil {
		return script.HTMLSetting{}, err
	}
	s, err := r.codec.DeserializeHTMLSetting(modelID, raw)
	if err != nil {
		return script.HTMLSetting{}, err
	}
	if err := r.WriteHTML(ctx, modelID, s); err != nil {
		return script.HTMLSetting{}, err
	}
	logging.WithContext(ctx, r.logger).Info("html setting imported",
		logging.Int64(logging.FieldModelID, modelID),
		logging.Int("fragments", len(s.Fragments)),
	)
	return s, nil
}
