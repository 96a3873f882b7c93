package lazyscroll

import (
	"math"
	"math/bits"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/lazyscroll/engine"
)

// ScrollBarArrows selects the arrows drawn at the ends of the track.
type ScrollBarArrows uint8

const (
	ScrollBarArrowsStart ScrollBarArrows = 1 << iota
	ScrollBarArrowsEnd

	ScrollBarArrowsNone ScrollBarArrows = 0
	ScrollBarArrowsBoth                 = ScrollBarArrowsStart | ScrollBarArrowsEnd
)

// subcell is the number of thumb steps per cell.
const subcell = 8

// GlyphSet holds the glyphs of a vertical scroll bar. Lower[n] fills the
// bottom n+1 eighths of a cell and Upper[n] the top n+1 eighths.
type GlyphSet struct {
	Track              string
	ArrowUp, ArrowDown string

	Lower [subcell]string
	Upper [subcell]string
}

// LegacyComputingGlyphSet draws every eighth of a cell at either end of the
// thumb. The upper eighths need a font with the Symbols for Legacy Computing
// block.
func LegacyComputingGlyphSet() GlyphSet {
	return GlyphSet{
		Track:     "│",
		ArrowUp:   "▲",
		ArrowDown: "▼",
		Lower:     [subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		Upper:     [subcell]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},
	}
}

// UnicodeGlyphSet rounds the top end of the thumb to the block elements
// every font has.
func UnicodeGlyphSet() GlyphSet {
	g := LegacyComputingGlyphSet()
	g.Upper = [subcell]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"}
	return g
}

// GlyphSetByName returns "legacy" or "unicode".
func GlyphSetByName(name string) (GlyphSet, bool) {
	switch name {
	case "legacy":
		return LegacyComputingGlyphSet(), true
	case "unicode":
		return UnicodeGlyphSet(), true
	}
	return GlyphSet{}, false
}

// ScrollBar draws a vertical thumb placed by an engine.Engine, with a
// resolution of an eighth of a cell.
type ScrollBar struct {
	*Box

	glyphs   GlyphSet
	arrows   ScrollBarArrows
	autoHide bool

	// In subcells from the start of the track.
	thumbStart, thumbLen int

	trackStyle tcell.Style
	thumbStyle tcell.Style
}

func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		glyphs:     LegacyComputingGlyphSet(),
		autoHide:   true,
		trackStyle: tcell.StyleDefault.Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.GraphicsColor),
	}
}

func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphs = g
	return s
}

func (s *ScrollBar) SetArrows(arrows ScrollBarArrows) *ScrollBar {
	s.arrows = arrows
	return s
}

// SetAutoHide hides the bar while the thumb fills the whole track. It is on
// by default.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	s.autoHide = autoHide
	return s
}

func (s *ScrollBar) trackCells() int {
	_, _, _, height := s.GetInnerRect()
	return max(height-bits.OnesCount8(uint8(s.arrows)), 0)
}

// TrackLength returns the number of cells the thumb moves in.
func (s *ScrollBar) TrackLength() float64 {
	return float64(s.trackCells())
}

// SetThumb places the thumb. Both values are in cells and are clamped to the
// track.
func (s *ScrollBar) SetThumb(offset, length float64) {
	track := s.trackCells() * subcell
	s.thumbLen = min(max(int(math.Round(length*subcell)), 0), track)
	s.thumbStart = min(max(int(math.Round(offset*subcell)), 0), track-s.thumbLen)
}

// Thumb returns the thumb start and length in eighths of a cell.
func (s *ScrollBar) Thumb() (start, length int) {
	return s.thumbStart, s.thumbLen
}

// cellGlyph returns what to draw in track cell i.
func (s *ScrollBar) cellGlyph(i int) (string, tcell.Style) {
	top, bottom := i*subcell, (i+1)*subcell
	from, to := max(s.thumbStart, top), min(s.thumbStart+s.thumbLen, bottom)
	switch fill := to - from; {
	case fill <= 0:
		return s.glyphs.Track, s.trackStyle
	case fill == subcell:
		return s.glyphs.Lower[subcell-1], s.thumbStyle
	case from == top:
		return s.glyphs.Upper[fill-1], s.thumbStyle
	default:
		return s.glyphs.Lower[fill-1], s.thumbStyle
	}
}

// Draw draws this primitive onto the screen.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, _, _ := s.GetInnerRect()
	cells := s.trackCells()
	if cells == 0 || s.thumbLen == 0 || s.autoHide && s.thumbLen == cells*subcell {
		return
	}

	if s.arrows&ScrollBarArrowsStart != 0 {
		screen.Put(x, y, s.glyphs.ArrowUp, s.trackStyle)
		y++
	}
	for i := range cells {
		glyph, style := s.cellGlyph(i)
		screen.Put(x, y+i, glyph, style)
	}
	if s.arrows&ScrollBarArrowsEnd != 0 {
		screen.Put(x, y+cells, s.glyphs.ArrowDown, s.trackStyle)
	}
}

var (
	_ Primitive        = &ScrollBar{}
	_ engine.Scrollbar = &ScrollBar{}
)
