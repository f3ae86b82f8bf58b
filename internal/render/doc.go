// Package render converts raw archive markup into typed plain-text
// blocks for narrow, line-oriented displays.
//
// Rendering is total: arbitrary malformed input produces a displayable
// document (possibly a single diagnostic paragraph), never an error.
package render
