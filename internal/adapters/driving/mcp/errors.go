package mcp

import "errors"

// ErrMissingReaderService indicates the server was built without a
// reader port.
var ErrMissingReaderService = errors.New("mcp: reader service is required")
