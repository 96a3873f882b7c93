package lazyscroll

import "github.com/gdamore/tcell/v3"

// TextItem is a ListItem showing styled text, word-wrapped to its width.
type TextItem struct {
	*Box

	lines  []Line
	noWrap bool

	// Wrapped rows for wrapWidth.
	wrapped   []Line
	wrapWidth int
}

// NewTextItem returns an item showing lines.
func NewTextItem(lines ...Line) *TextItem {
	return &TextItem{
		Box:       NewBox(),
		lines:     lines,
		wrapWidth: -1,
	}
}

// NewTextItemString returns an item showing text in a single style. Newlines
// start new lines.
func NewTextItemString(text string, style tcell.Style) *TextItem {
	return NewTextItem(NewLineBuilder().Write(text, style).Finish()...)
}

// SetLines replaces the item's text.
func (t *TextItem) SetLines(lines ...Line) *TextItem {
	t.lines = lines
	t.wrapped, t.wrapWidth = nil, -1
	return t
}

// SetWrap controls word wrapping. Without it every line takes one row and is
// cut at the item's width.
func (t *TextItem) SetWrap(wrap bool) *TextItem {
	t.noWrap = !wrap
	t.wrapped, t.wrapWidth = nil, -1
	return t
}

// Lines returns the item's unwrapped text.
func (t *TextItem) Lines() []Line {
	return t.lines
}

func (t *TextItem) wrap(width int) []Line {
	if t.noWrap {
		return t.lines
	}
	if width == t.wrapWidth {
		return t.wrapped
	}
	t.wrapped = t.wrapped[:0]
	for _, line := range t.lines {
		t.wrapped = append(t.wrapped, wrapLine(line, width)...)
	}
	t.wrapWidth = width
	return t.wrapped
}

// Height returns the rows the item takes at width, including its border and
// padding.
func (t *TextItem) Height(width int) int {
	_, _, horizontal, vertical := t.chrome()
	return len(t.wrap(max(width-horizontal, 1))) + vertical
}

// Draw draws this primitive onto the screen.
func (t *TextItem) Draw(screen tcell.Screen) {
	t.DrawForSubclass(screen, t)

	x, y, width, height := t.GetInnerRect()
	if width <= 0 {
		return
	}
	for row, line := range t.wrap(width) {
		if row >= height {
			break
		}
		PrintLine(screen, line, x, y+row, width)
	}
}

var _ ListItem = &TextItem{}
