// Package editor implements the headless edit session behind the script and
// HTML editors.
//
// A Session loads a script into a Form of text fields, enforces which fields
// may be changed, validates the conditions text and produces the record to
// persist. Meta scripts are resolved through their registry interface on
// open and written back through the interface setter on export.
package editor
