// Package app wires one configuration-build invocation together: it owns
// the logger, loads the host case file, runs the registry derivation
// pipeline, and exports the derived outputs for the downstream namelist
// and source generators.
package app
