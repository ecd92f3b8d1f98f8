package tui

import "github.com/idilsaglam/tasklist/internal/view"

// Screen is the controller's Renderer for the TUI: it holds the latest view
// and the model redraws its list from it.
type Screen struct {
	v       view.View
	renders int
}

// NewScreen returns a Screen showing the empty placeholder.
func NewScreen() *Screen { return &Screen{v: view.Build(nil)} }

func (s *Screen) Render(v view.View) {
	s.v = v
	s.renders++
}

// View returns the most recent view.
func (s *Screen) View() view.View { return s.v }
