// Package manifest loads script interfaces declared in TOML files.
//
// Each *.toml file in the interfaces directory declares one interface tag:
// the default script its getter returns, which fields are stored or read
// only, whether it can be reset, which ids are purged automatically, and on
// which note types a meta script should be installed. Declared values
// satisfy registry.Interface plus the Labeler and AutoDeleter capabilities;
// Interface() adds Resetter when the manifest enables reset.
package manifest
