// Package store persists note types and their raw settings in SQLite.
//
// Each note type owns at most one script setting and one HTML setting, kept
// as JSON objects keyed by (model_id, kind). Writes replace the whole
// object; the typed view lives in package setting. The schema is created by
// embedded, ordered migrations tracked in schema_migrations.
//
// Mutating CLI commands hold an exclusive file lock next to the database so
// two concurrent edits cannot interleave their read-modify-write cycles.
package store
