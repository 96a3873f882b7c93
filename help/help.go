// Package help renders the key bindings of a KeyMap as a one-line summary or
// as aligned columns.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/lazyscroll"
	"github.com/xqrs/lazyscroll/keybind"
)

const (
	shortSeparator = " • "
	fullSeparator  = "    "
	ellipsis       = "…"
)

type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

// Styles holds the styles of the help text. Keys, descriptions and the
// separators between them are styled separately.
type Styles struct {
	Key       tcell.Style
	Desc      tcell.Style
	Separator tcell.Style
}

func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Dim(true)
	return Styles{
		Key:       dim,
		Desc:      tcell.StyleDefault,
		Separator: dim,
	}
}

// Help shows the bindings of a KeyMap. In short mode it is a single line
// ending in an ellipsis when bindings were left out; in full mode every
// group is a column.
type Help struct {
	*lazyscroll.Box
	Styles Styles

	keyMap  KeyMap
	showAll bool
}

func New() *Help {
	return &Help{
		Box:    lazyscroll.NewBox(),
		Styles: DefaultStyles(),
	}
}

func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	return h
}

// SetShowAll switches between short and full mode.
func (h *Help) SetShowAll(showAll bool) *Help {
	h.showAll = showAll
	return h
}

func (h *Help) ShowAll() bool {
	return h.showAll
}

func (h *Help) lines(width int) []lazyscroll.Line {
	switch {
	case h.keyMap == nil:
		return nil
	case h.showAll:
		return h.fullHelpLines(h.keyMap.FullHelp(), width)
	}
	if line := h.shortHelpLine(h.keyMap.ShortHelp(), width); line != nil {
		return []lazyscroll.Line{line}
	}
	return nil
}

// Height returns the number of rows the help needs at width.
func (h *Help) Height(width int) int {
	return len(h.lines(width))
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)

	x, y, width, height := h.GetInnerRect()
	if width <= 0 {
		return
	}
	for row, line := range h.lines(width) {
		if row >= height {
			break
		}
		lazyscroll.PrintLine(screen, line, x, y+row, width)
	}
}

// FullHelpLines returns the rows of full mode as plain text.
func (h *Help) FullHelpLines(groups [][]keybind.Keybind, maxWidth int) []string {
	var out []string
	for _, line := range h.fullHelpLines(groups, maxWidth) {
		out = append(out, line.String())
	}
	return out
}

// shortHelpLine joins the enabled bindings until maxWidth is reached. A
// maxWidth of 0 means unlimited. It returns nil when not even the first
// binding fits.
func (h *Help) shortHelpLine(bindings []keybind.Keybind, maxWidth int) lazyscroll.Line {
	var (
		out   lazyscroll.Line
		width int
	)
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		item := h.entry(kb.Help())
		if item == nil {
			continue
		}
		itemWidth := lineWidth(item)
		if out != nil {
			out = append(out, lazyscroll.Segment{Text: shortSeparator, Style: h.Styles.Separator})
			itemWidth += lazyscroll.StringWidth(shortSeparator)
		}
		if maxWidth > 0 && width+itemWidth > maxWidth {
			if out == nil {
				return nil
			}
			return h.withEllipsis(out[:len(out)-1], width, maxWidth)
		}
		out = append(out, item...)
		width += itemWidth
	}
	return out
}

// column is one group of full mode, with the keys padded to the same width.
type column struct {
	rows  []lazyscroll.Line
	width int
}

func (h *Help) newColumn(group []keybind.Keybind) column {
	var helps []keybind.Help
	keyWidth := 0
	for _, kb := range group {
		hp := kb.Help()
		if !kb.Enabled() || hp.Key == "" && hp.Desc == "" {
			continue
		}
		helps = append(helps, hp)
		keyWidth = max(keyWidth, lazyscroll.StringWidth(hp.Key))
	}

	var c column
	for _, hp := range helps {
		key := hp.Key + strings.Repeat(" ", keyWidth-lazyscroll.StringWidth(hp.Key))
		row := h.entry(keybind.Help{Key: key, Desc: hp.Desc})
		c.rows = append(c.rows, row)
		c.width = max(c.width, lineWidth(row))
	}
	return c
}

// row returns row i of the column, padded to the column width when pad is
// set.
func (c column) row(i int, pad bool, style tcell.Style) lazyscroll.Line {
	if i >= len(c.rows) {
		return lazyscroll.Line{{Text: strings.Repeat(" ", c.width), Style: style}}
	}
	row := c.rows[i]
	if gap := c.width - lineWidth(row); pad && gap > 0 {
		row = append(row[:len(row):len(row)], lazyscroll.Segment{Text: strings.Repeat(" ", gap), Style: style})
	}
	return row
}

// fullHelpLines lays out the groups as columns from left to right, dropping
// the columns that do not fit into maxWidth. A maxWidth of 0 means
// unlimited.
func (h *Help) fullHelpLines(groups [][]keybind.Keybind, maxWidth int) []lazyscroll.Line {
	var (
		columns []column
		width   int
		dropped bool
	)
	sepWidth := lazyscroll.StringWidth(fullSeparator)
	for _, group := range groups {
		c := h.newColumn(group)
		if len(c.rows) == 0 {
			continue
		}
		next := c.width
		if len(columns) > 0 {
			next += sepWidth
		}
		if dropped || maxWidth > 0 && width+next > maxWidth {
			dropped = true
			continue
		}
		columns = append(columns, c)
		width += next
	}
	if len(columns) == 0 {
		if dropped {
			return []lazyscroll.Line{{{Text: ellipsis, Style: h.Styles.Separator}}}
		}
		return nil
	}

	height := 0
	for _, c := range columns {
		height = max(height, len(c.rows))
	}
	lines := make([]lazyscroll.Line, height)
	for i := range lines {
		for j, c := range columns {
			if j > 0 {
				lines[i] = append(lines[i], lazyscroll.Segment{Text: fullSeparator, Style: h.Styles.Separator})
			}
			lines[i] = append(lines[i], c.row(i, j < len(columns)-1, h.Styles.Desc)...)
		}
	}
	if dropped {
		lines[0] = h.withEllipsis(lines[0], lineWidth(lines[0]), maxWidth)
	}
	return lines
}

// withEllipsis appends " …" to line when it still fits into maxWidth.
func (h *Help) withEllipsis(line lazyscroll.Line, width, maxWidth int) lazyscroll.Line {
	if width+1+lazyscroll.StringWidth(ellipsis) > maxWidth {
		return line
	}
	return append(line, lazyscroll.Segment{Text: " " + ellipsis, Style: h.Styles.Separator})
}

// entry renders the help of one binding as "key desc".
func (h *Help) entry(hp keybind.Help) lazyscroll.Line {
	switch {
	case hp.Key == "" && hp.Desc == "":
		return nil
	case hp.Key == "":
		return lazyscroll.Line{{Text: hp.Desc, Style: h.Styles.Desc}}
	case hp.Desc == "":
		return lazyscroll.Line{{Text: hp.Key, Style: h.Styles.Key}}
	}
	return lazyscroll.Line{{Text: hp.Key, Style: h.Styles.Key}, {Text: " " + hp.Desc, Style: h.Styles.Desc}}
}

func lineWidth(line lazyscroll.Line) int {
	return lazyscroll.StringWidth(line.String())
}
