package mcp

import (
	"github.com/fieldstation/zimline/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. One injection point for dependency injection.
type Ports struct {
	// Reader provides search, rendering and suggestions.
	Reader driving.ReaderService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Reader == nil {
		return ErrMissingReaderService
	}
	return nil
}
