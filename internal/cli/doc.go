// Package cli parses the process's own command-line arguments into an
// app.Config. The case-level option vocabulary (CAM_CONFIG_OPTS) is a
// separate concern, handled by the confopts package.
package cli
