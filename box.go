package lazyscroll

import "github.com/gdamore/tcell/v3"

// Box is the base of every primitive: a rectangle with an optional border,
// a title in the top row and a footer in the bottom row. Content goes in the
// inner rectangle.
type Box struct {
	x, y, width, height int

	paddingTop, paddingBottom, paddingLeft, paddingRight int

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title       string
	titleStyle  tcell.Style
	footer      string
	footerStyle tcell.Style

	hasFocus bool
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	return &Box{
		width:       15,
		height:      10,
		borderSet:   BorderSetPlain(),
		borderStyle: tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		titleStyle:  tcell.StyleDefault.Foreground(Styles.TitleColor).Background(Styles.PrimitiveBackgroundColor),
		footerStyle: tcell.StyleDefault.Foreground(Styles.TitleColor).Background(Styles.PrimitiveBackgroundColor),
	}
}

// SetBorderPadding sets the empty cells kept between the border and the
// content.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	b.paddingTop, b.paddingBottom, b.paddingLeft, b.paddingRight = top, bottom, left, right
	return b
}

// GetRect returns the position and size of the box.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// SetRect moves and resizes the box.
func (b *Box) SetRect(x, y, width, height int) {
	b.x, b.y, b.width, b.height = x, y, width, height
}

// GetInnerRect returns the rectangle left for content inside the border,
// captions and padding. Width and height are never negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	left, top, horizontal, vertical := b.chrome()
	return b.x + left, b.y + top, max(b.width-horizontal, 0), max(b.height-vertical, 0)
}

// chrome returns the offsets of the inner rect and the cells taken
// horizontally and vertically by border, captions and padding.
func (b *Box) chrome() (left, top, horizontal, vertical int) {
	if b.title != "" || b.borders.Has(BordersTop) {
		top++
	}
	if b.footer != "" || b.borders.Has(BordersBottom) {
		vertical++
	}
	if b.borders.Has(BordersLeft) {
		left++
	}
	if b.borders.Has(BordersRight) {
		horizontal++
	}
	left += b.paddingLeft
	top += b.paddingTop
	return left, top, horizontal + left + b.paddingRight, vertical + top + b.paddingBottom
}

// InRect reports whether the cell (x, y) is inside the box.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// InputHandler ignores all key events.
func (b *Box) InputHandler(*tcell.EventKey) Command {
	return nil
}

// MouseHandler takes the focus on a left click inside the box.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// SetBorders sets which borders to draw.
func (b *Box) SetBorders(flag Borders) *Box {
	b.borders = flag
	return b
}

// SetBorderSet sets the glyphs used for the border.
func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	b.borderSet = borderSet
	return b
}

// SetBorderStyle sets the style of the border.
func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	b.borderStyle = style
	return b
}

// SetTitle sets the caption centered in the top row.
func (b *Box) SetTitle(title string) *Box {
	b.title = title
	return b
}

func (b *Box) SetTitleStyle(style tcell.Style) *Box {
	b.titleStyle = style
	return b
}

// SetFooter sets the caption centered in the bottom row.
func (b *Box) SetFooter(footer string) *Box {
	b.footer = footer
	return b
}

// Draw draws this primitive onto the screen.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass clears the box and draws its border and captions. p is the
// primitive embedding the box.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	background := tcell.StyleDefault.Background(Styles.PrimitiveBackgroundColor)
	for y := b.y; y < b.y+b.height; y++ {
		for x := b.x; x < b.x+b.width; x++ {
			screen.Put(x, y, " ", background)
		}
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		b.drawBorder(screen)
	}
	if b.title != "" {
		b.drawCaption(screen, b.title, b.y, b.titleStyle)
	}
	if b.footer != "" {
		b.drawCaption(screen, b.footer, b.y+b.height-1, b.footerStyle)
	}
}

func (b *Box) drawBorder(screen tcell.Screen) {
	left, top := b.x, b.y
	right, bottom := b.x+b.width-1, b.y+b.height-1
	set, style := b.borderSet, b.borderStyle

	for x := left + 1; x < right; x++ {
		if b.borders.Has(BordersTop) {
			screen.Put(x, top, set.Top, style)
		}
		if b.borders.Has(BordersBottom) {
			screen.Put(x, bottom, set.Bottom, style)
		}
	}
	for y := top + 1; y < bottom; y++ {
		if b.borders.Has(BordersLeft) {
			screen.Put(left, y, set.Left, style)
		}
		if b.borders.Has(BordersRight) {
			screen.Put(right, y, set.Right, style)
		}
	}

	corners := []struct {
		flags Borders
		x, y  int
		glyph string
	}{
		{BordersTop | BordersLeft, left, top, set.TopLeft},
		{BordersTop | BordersRight, right, top, set.TopRight},
		{BordersBottom | BordersLeft, left, bottom, set.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, set.BottomRight},
	}
	for _, c := range corners {
		if b.borders&c.flags == c.flags {
			screen.Put(c.x, c.y, c.glyph, style)
		}
	}
}

// drawCaption centers text on row y between the corners, ending it in an
// ellipsis when it does not fit.
func (b *Box) drawCaption(screen tcell.Screen, text string, y int, style tcell.Style) {
	room := b.width - 2
	if room < 2 {
		return
	}
	width := StringWidth(text)
	if width <= room {
		PrintText(screen, text, b.x+1+(room-width)/2, y, width, style)
		return
	}
	_, printed := PrintText(screen, text, b.x+1, y, room-1, style)
	screen.Put(b.x+1+printed, y, SemigraphicsHorizontalEllipsis, style)
}

// Focus is called when this primitive directly receives focus.
func (b *Box) Focus(func(p Primitive)) {
	b.hasFocus = true
}

// Blur is called when this primitive directly loses focus.
func (b *Box) Blur() {
	b.hasFocus = false
}

// HasFocus returns whether or not this primitive has focus.
func (b *Box) HasFocus() bool {
	return b.hasFocus
}

var _ Primitive = &Box{}
