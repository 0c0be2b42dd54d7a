// Package script defines the records persisted for each note type.
//
// A setting holds an ordered list of scripts. Each entry is either a
// ConcreteScript, whose fields are all literal, or a MetaScript, which points
// at a registered interface by tag and id and only carries the fields the
// user overrode (Storage). HTML fragments are concrete only.
//
// # Key Types
//
// Script: sealed sum type over *ConcreteScript and *MetaScript, discriminated
// by Kind.
//
// Storage: partial ConcreteScript; a nil field defers to the interface getter.
//
// FieldSet: bitset of script fields, used for the interface store and
// readonly lists.
//
// ScriptSetting / HTMLSetting: one of each per note type.
package script
