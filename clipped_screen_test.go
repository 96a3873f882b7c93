package lazyscroll

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestClippedScreen(t *testing.T) {
	screen := newFakeScreen(8, 3)
	clipped := newClippedScreen(screen, 2, 1, 3, 1)

	clipped.PutStr(0, 1, "abcdefgh")
	clipped.PutStrStyled(0, 0, "abcdefgh", tcell.StyleDefault)
	rest, width := clipped.Put(7, 1, "xy", tcell.StyleDefault)

	assert.Equal(t, "", screen.row(0))
	assert.Equal(t, "  cde", screen.row(1))
	assert.Equal(t, "y", rest)
	assert.Equal(t, 1, width)
}
