// Package domain defines the core business entities for zimline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entry: One addressable unit of content in an archive
//   - SearchHit: A verified (or not-yet-verified) search result
//   - Block / RenderedDocument: Typed plain-text output of rendering
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
