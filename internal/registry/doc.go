// Package registry maps interface tags to the behaviour that backs every
// MetaScript under that tag.
//
// An Interface is supplied by a script author and decides how a MetaScript is
// displayed (Get), which edits are persisted (Set + Store), and which fields
// the editor locks (Readonly). Optional capabilities (Resetter, Labeler,
// AutoDeleter, Generator) are discovered with type assertions; an interface
// that does not implement one gets the documented default.
//
// The Registry also tracks which meta scripts each note type is expected to
// carry. Deserialization uses that list to insert newly installed scripts
// into existing settings.
//
// A Registry is built at startup, populated by Modules, and passed to the
// codec and editor explicitly. It is safe for concurrent use.
package registry
