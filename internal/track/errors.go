package track

import "errors"

// Error kinds shared across the geometry engine. Degenerate geometry is a
// routine outcome of user selections, not a fault; invalid ranges are caller
// errors and are never silently clamped.
var (
	ErrInvalidRange       = errors.New("invalid range")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
