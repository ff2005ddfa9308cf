// Package game provides the interactive viewer loop and its configuration.
package game

// ViewMode selects what is drawn over the 3D view.
type ViewMode int

const (
	// ModeView shows the first-person view only.
	ModeView ViewMode = iota
	// ModeMinimap overlays an overhead map around the player.
	ModeMinimap
)

// String returns a human-readable mode name.
func (m ViewMode) String() string {
	switch m {
	case ModeView:
		return "view"
	case ModeMinimap:
		return "minimap"
	default:
		return "unknown"
	}
}

// Toggle switches between the view and the minimap overlay.
func (m ViewMode) Toggle() ViewMode {
	if m == ModeMinimap {
		return ModeView
	}
	return ModeMinimap
}
