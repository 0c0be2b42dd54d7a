// Package main hosts the assetman CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration, opens the settings database,
// builds the interface registry from the manifests directory and then hands
// off to the internal packages: edit sessions for script and fragment
// changes, the settings repository for persistence, and the renderer for
// template output. Commands that change settings hold the database write
// lock for their whole run.
package main
