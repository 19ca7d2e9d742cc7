package grid

import "errors"

// Sentinel errors for grid construction and queries.
// Check them with errors.Is; callers usually receive them wrapped with the
// offending id or dimensions.
var (
	// ErrInvalidDimensions indicates a non-positive width or height, or more
	// than MaxCells cells
	ErrInvalidDimensions = errors.New("invalid grid dimensions")

	// ErrInvalidCellID indicates a cell id outside [0, width*height)
	ErrInvalidCellID = errors.New("invalid cell id")

	// ErrNotConfigured indicates start and goal have not been set yet
	ErrNotConfigured = errors.New("grid not configured")

	// ErrAlreadyConfigured indicates Configure was called a second time
	ErrAlreadyConfigured = errors.New("grid already configured")

	// ErrCellConflict indicates one cell was given two classifications
	ErrCellConflict = errors.New("conflicting cell classification")
)
