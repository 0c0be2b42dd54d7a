// Package render generates the block of HTML and script tags a note type's
// card templates carry.
//
// Scripts and fragments are filtered by their enabled flags and conditions
// against a Target (note type name, template name, card side). Inline
// scripts are embedded in <script> tags; external scripts become <script
// src> references plus an Asset holding the file content. When the script
// setting asks for it, the block is wrapped in stub comments so a later
// render can find and replace it.
package render
