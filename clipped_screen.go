package lazyscroll

import (
	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// clippedScreen drops every write outside a rectangle, so list items that
// hang over the viewport edge can draw themselves unchanged.
type clippedScreen struct {
	tcell.Screen
	x, y, width, height int
}

func newClippedScreen(screen tcell.Screen, x, y, width, height int) *clippedScreen {
	return &clippedScreen{Screen: screen, x: x, y: y, width: width, height: height}
}

func (s *clippedScreen) contains(x, y int) bool {
	return x >= s.x && x < s.x+s.width && y >= s.y && y < s.y+s.height
}

// Put writes the first grapheme cluster of str if (x, y) is inside the
// rectangle. Like tcell.Screen it returns the rest of str and the cluster
// width.
func (s *clippedScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	if s.contains(x, y) {
		return s.Screen.Put(x, y, str, style)
	}
	_, rest, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	return rest, width
}

func (s *clippedScreen) PutStr(x, y int, str string) {
	s.PutStrStyled(x, y, str, tcell.StyleDefault)
}

func (s *clippedScreen) PutStrStyled(x, y int, str string, style tcell.Style) {
	for str != "" {
		var width int
		str, width = s.Put(x, y, str, style)
		x += max(width, 1)
	}
}

func (s *clippedScreen) ShowCursor(x, y int) {
	if s.contains(x, y) {
		s.Screen.ShowCursor(x, y)
	} else {
		s.Screen.HideCursor()
	}
}
