package lazyscroll

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// Segment is a run of text in one style.
type Segment struct {
	Text  string
	Style tcell.Style
}

// Line is one row of styled text. It never contains a newline.
type Line []Segment

// String returns the text of l without styles.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// slice returns the bytes [from, to) of l's text, keeping styles.
func (l Line) slice(from, to int) Line {
	var out Line
	pos := 0
	for _, s := range l {
		start, end := max(from-pos, 0), min(to-pos, len(s.Text))
		if start < end {
			out = append(out, Segment{Text: s.Text[start:end], Style: s.Style})
		}
		pos += len(s.Text)
	}
	return out
}

// LineBuilder collects styled writes into lines.
type LineBuilder struct {
	lines   []Line
	current Line
}

func NewLineBuilder() *LineBuilder {
	return &LineBuilder{}
}

// Write appends text in style. Every newline in text starts a new line.
func (b *LineBuilder) Write(text string, style tcell.Style) *LineBuilder {
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			b.NewLine()
		}
		if part == "" {
			continue
		}
		if n := len(b.current); n > 0 && b.current[n-1].Style == style {
			b.current[n-1].Text += part
		} else {
			b.current = append(b.current, Segment{Text: part, Style: style})
		}
	}
	return b
}

// NewLine ends the current line.
func (b *LineBuilder) NewLine() *LineBuilder {
	b.lines = append(b.lines, b.current)
	b.current = nil
	return b
}

// Finish returns the built lines, at least one.
func (b *LineBuilder) Finish() []Line {
	if len(b.current) > 0 || len(b.lines) == 0 {
		b.NewLine()
	}
	return b.lines
}

// StringWidth returns the number of cells text takes on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// breakPoints returns the byte offsets at which text must be cut so that no
// row is wider than width. Cuts go after the last line break opportunity of a
// row, or mid-word when a row has none.
func breakPoints(text string, width int) []int {
	var cuts []int
	rowStart, rowWidth := 0, 0
	option, optionWidth := -1, 0
	pos, state := 0, -1
	for rest := text; rest != ""; {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		w := boundaries >> uniseg.ShiftWidth

		if rowWidth+w > width && pos > rowStart {
			if option > rowStart {
				cuts = append(cuts, option)
				rowStart, rowWidth = option, rowWidth-optionWidth
			} else {
				cuts = append(cuts, pos)
				rowStart, rowWidth = pos, 0
			}
			option = -1
		}
		pos += len(cluster)
		rowWidth += w
		if rest != "" && boundaries&uniseg.MaskLine == uniseg.LineCanBreak {
			option, optionWidth = pos, rowWidth
		}
	}
	return cuts
}

// wrapLine word-wraps line to width, keeping segment styles. An empty line
// wraps to a single empty row.
func wrapLine(line Line, width int) []Line {
	cuts := breakPoints(line.String(), width)
	if len(cuts) == 0 {
		return []Line{line}
	}
	out := make([]Line, 0, len(cuts)+1)
	from := 0
	for _, to := range append(cuts, len(line.String())) {
		out = append(out, line.slice(from, to))
		from = to
	}
	return out
}

// PrintText draws text left-aligned on row y from column x, cut at maxWidth
// cells. It returns the number of bytes and the width drawn.
func PrintText(screen tcell.Screen, text string, x, y, maxWidth int, style tcell.Style) (n, width int) {
	state := -1
	for rest := text; rest != ""; {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		w := boundaries >> uniseg.ShiftWidth
		if width+w > maxWidth {
			break
		}
		if w > 0 {
			screen.Put(x+width, y, cluster, style)
		}
		n += len(cluster)
		width += w
	}
	return n, width
}

// PrintLine draws the segments of line from column x, cut at maxWidth cells.
// It returns the width drawn.
func PrintLine(screen tcell.Screen, line Line, x, y, maxWidth int) int {
	width := 0
	for _, s := range line {
		_, w := PrintText(screen, s.Text, x+width, y, maxWidth-width, s.Style)
		width += w
		if width >= maxWidth {
			break
		}
	}
	return width
}
