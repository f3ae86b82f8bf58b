// Package file provides TOML-backed application configuration.
//
// Configuration lives at ~/.zimline/config.toml and lists the archive
// files available for opening plus the presentation defaults for
// constrained links (character budget, line width, callsign).
package file
