// Package schema validates settings and condition lists against the JSON
// Schemas embedded in this package (Draft 7).
//
// Imports of whole settings are checked against setting.json or
// html_setting.json before they touch the store; condition text typed into an
// editor is checked against script_cond.json before a save or reset.
package schema
