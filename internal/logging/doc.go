// Package logging assembles structured slog loggers used across assetman.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so codec, editor and CLI code
// can tag log lines with note type ids, interface tags and script ids. Every
// CLI invocation stamps its records with a session id. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
