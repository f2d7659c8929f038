package mcpserver

import "errors"

// ErrMissingPageService is returned when the page service is not provided.
var ErrMissingPageService = errors.New("mcpserver: page service is required")

// ErrMissingSynchronizer is returned when the synchronizer is not provided.
var ErrMissingSynchronizer = errors.New("mcpserver: synchronizer is required")
