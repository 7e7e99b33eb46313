// Package cli defines the cobra command tree: serve (the default), solve
// and version.
package cli
