// Package header tracks the two visual states of the site header: the sticky
// "scrolled" look and the mobile menu.
package header

// ScrollThreshold is the vertical offset, in pixels, past which the header is scrolled.
const ScrollThreshold = 8

// State is the header's visual state. The zero value is the top-of-page, menu-closed state.
type State struct {
	Scrolled bool
	MenuOpen bool
}

// OnScroll updates Scrolled from the vertical scroll position.
func (s *State) OnScroll(y float64) {
	s.Scrolled = y > ScrollThreshold
}

// ToggleMenu flips the mobile menu and returns the new value.
func (s *State) ToggleMenu() bool {
	s.MenuOpen = !s.MenuOpen
	return s.MenuOpen
}

// Navigate closes the menu after a click on a link inside the mobile panel.
func (s *State) Navigate() {
	s.MenuOpen = false
}

// AriaExpanded is the aria-expanded value for the menu toggle.
func (s State) AriaExpanded() string {
	if s.MenuOpen {
		return "true"
	}
	return "false"
}
