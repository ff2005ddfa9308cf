package raycast

import (
	"errors"

	"github.com/samdwyer/raycaster/internal/world"
)

var (
	// ErrNotInitialized is returned by Render when no grid or no pose was set.
	ErrNotInitialized = errors.New("scene not initialized")
	// ErrInvalidSurface is returned by Render for a nil or zero-sized surface.
	ErrInvalidSurface = errors.New("invalid surface")
	// ErrInvalidGrid is returned by SetGrid for empty or ragged tables.
	ErrInvalidGrid = world.ErrInvalidGrid
)
