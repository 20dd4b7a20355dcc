// Package cli implements the courtfinder command line interface: a thin
// adapter over the service layer with text and JSON output modes.
package cli
