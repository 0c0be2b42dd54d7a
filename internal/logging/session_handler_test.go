package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSessionIDHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := newSessionIDHandler(slog.NewJSONHandler(&buf, nil), "test-session-123")

	slog.New(handler).Info("test message")

	if !strings.Contains(buf.String(), `"session_id":"test-session-123"`) {
		t.Errorf("expected session_id in output, got: %s", buf.String())
	}
}

func TestSessionIDHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := newSessionIDHandler(slog.NewJSONHandler(&buf, nil), "session-abc")

	slog.New(handler).With("extra", "value").Info("test message")

	output := buf.String()
	if !strings.Contains(output, `"session_id":"session-abc"`) {
		t.Errorf("expected session_id in output, got: %s", output)
	}
	if !strings.Contains(output, `"extra":"value"`) {
		t.Errorf("expected extra attr in output, got: %s", output)
	}
}

func TestSessionIDHandler_NilBase(t *testing.T) {
	handler := newSessionIDHandler(nil, "session-123")
	if _, ok := handler.(NoopHandler); !ok {
		t.Errorf("expected NoopHandler when base is nil, got: %T", handler)
	}
}

func TestComposeSubject(t *testing.T) {
	cases := map[string][3]string{
		"":                   {"", "", ""},
		"Model 5":            {"5", "", ""},
		"Model 5 · tag":      {"5", "tag", ""},
		"Model 5 · tag/id-1": {"5", "tag", "id-1"},
		"tag/x":              {"", "tag", "x"},
	}
	for want, in := range cases {
		if got := composeSubject(in[0], in[1], in[2]); got != want {
			t.Errorf("composeSubject(%q) = %q, want %q", in, got, want)
		}
	}
}
