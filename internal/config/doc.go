// Package config loads, normalizes, and validates assetman configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the ASSETMAN_DATA_DIR environment fallback. The
// Config type centralizes the data directory, the settings database location,
// the interface manifest directory, and the logging, editor and render knobs
// the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
