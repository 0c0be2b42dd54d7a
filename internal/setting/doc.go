// Package setting converts persisted note type configuration to and from the
// typed records in package script.
//
// Codec deserializes script and HTML settings with per-field defaults and
// reconciles the script list with the interface registry: meta scripts the
// registry expects are appended, duplicates are dropped, and scripts whose
// interface asks for auto deletion are filtered out. The serializer writes
// the inverse shape, keeping only the overridden storage fields of meta
// scripts. Save, Resolve and Reset implement the save dispatch and reset
// flows for meta scripts, and Repository ties everything to the settings
// store, including schema-validated import.
package setting
