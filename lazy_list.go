package lazyscroll

import (
	"cmp"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/lazyscroll/engine"
	"github.com/xqrs/lazyscroll/keybind"
)

// ListItem represents a primitive which can be measured for a given width.
type ListItem interface {
	Primitive
	Height(width int) int
}

// ItemLister supplies the items of a LazyList. Item is called only for
// indices near the viewport and must return a new item every time.
type ItemLister interface {
	Count() int
	Item(index int) ListItem
}

// HeightHinter is implemented by listers that know item heights, in rows,
// before the item exists. A value <= 0 means unknown.
type HeightHinter interface {
	HeightHint(index int) int
}

// FixedHeighter is implemented by listers whose hints are exact for some
// items. Those items are never measured.
type FixedHeighter interface {
	FixedHeight(index int) bool
}

// HeaderLister is implemented by listers that show a header in the gutter
// next to some items. A nil header means none.
type HeaderLister interface {
	Header(index int) ListItem
}

// ItemReleaser is implemented by listers that want to know when an item (and
// its header, possibly nil) is dropped.
type ItemReleaser interface {
	Release(index int, item, header ListItem)
}

// VisibleItem is an item intersecting the viewport.
type VisibleItem struct {
	Index  int
	Row    int // relative to the top of the viewport, may be negative
	Height int
}

const (
	defaultItemHeight = 3
	defaultSettle     = 100 * time.Millisecond
	wheelRows         = 3

	// offscreen is where items sit between Append and their first Place.
	offscreen = -1 << 20
)

// LazyListKeyMap holds the key bindings of a LazyList.
type LazyListKeyMap struct {
	Up, Down         keybind.Keybind
	PageUp, PageDown keybind.Keybind
	Top, Bottom      keybind.Keybind
	Left, Right      keybind.Keybind
}

// DefaultLazyListKeyMap returns arrow, vi and pager style bindings.
func DefaultLazyListKeyMap() LazyListKeyMap {
	return LazyListKeyMap{
		Up:       keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")),
		Down:     keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")),
		PageUp:   keybind.NewKeybind(keybind.WithKeys("pgup", "ctrl+b"), keybind.WithHelp("pgup", "page up")),
		PageDown: keybind.NewKeybind(keybind.WithKeys("pgdn", "ctrl+f"), keybind.WithHelp("pgdn", "page down")),
		Top:      keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("g/home", "top")),
		Bottom:   keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("G/end", "bottom")),
		Left:     keybind.NewKeybind(keybind.WithKeys("left", "h"), keybind.WithHelp("←/h", "left")),
		Right:    keybind.NewKeybind(keybind.WithKeys("right", "l"), keybind.WithHelp("→/l", "right")),
	}
}

type placement struct {
	item   ListItem
	header bool
	at     engine.Offset
}

// LazyList displays a very long list of variable-height items. Only the
// items around the viewport exist at any time; the heights of all others are
// estimated by an engine.Engine and refined as items are measured.
//
// A LazyList must only be used from the goroutine running the application
// event loop. Give it the application's scheduler (see
// [Application.Scheduler]) so its deferred work runs there too.
type LazyList struct {
	*Box

	lister ItemLister
	engine *engine.Engine
	extra  []engine.Option
	cache  *engine.HeightCache

	sched  engine.Scheduler
	frames *engine.FrameScheduler
	settle *engine.Timer

	log      *slog.Logger
	observer func(engine.FrameStats)

	scrollBar *ScrollBar
	keys      LazyListKeyMap

	placed  map[engine.Handle]*placement
	indices map[engine.Handle]int

	headerWidth   int
	contentWidth  int
	buffer        int
	defaultHeight int
	settleDelay   time.Duration

	// Viewport geometry at the last layout. itemWidth is the width items are
	// measured at.
	viewX, viewY, viewWidth, viewHeight int
	itemWidth, gutter                   int

	// top is the scroll offset in scroller units, left in columns.
	top         float64
	left        int
	needsRender bool
}

// NewLazyList returns an empty list.
func NewLazyList() *LazyList {
	return &LazyList{
		Box:           NewBox(),
		log:           slog.Default(),
		keys:          DefaultLazyListKeyMap(),
		placed:        make(map[engine.Handle]*placement),
		indices:       make(map[engine.Handle]int),
		defaultHeight: defaultItemHeight,
		settleDelay:   defaultSettle,
		cache:         engine.NewHeightCache(),
	}
}

// SetLister sets the item source and scrolls back to the top. Any items of
// the previous lister are released.
func (l *LazyList) SetLister(lister ItemLister) *LazyList {
	l.Release()
	l.lister = lister
	l.cache.Reset()
	l.top, l.left = 0, 0
	l.needsRender = true
	return l
}

// SetScheduler sets the scheduler used for deferred renders. Without one the
// list runs its deferred work from Tick.
func (l *LazyList) SetScheduler(sched engine.Scheduler) *LazyList {
	l.sched = sched
	return l
}

// SetScrollBar attaches a scroll bar drawn in the last column.
func (l *LazyList) SetScrollBar(bar *ScrollBar) *LazyList {
	l.scrollBar = bar
	return l
}

// SetLogger sets the logger handed to the engine.
func (l *LazyList) SetLogger(log *slog.Logger) *LazyList {
	if log != nil {
		l.log = log
	}
	return l
}

// SetObserver registers a function called after every engine frame.
func (l *LazyList) SetObserver(f func(engine.FrameStats)) *LazyList {
	l.observer = f
	return l
}

// SetHeaderWidth reserves a gutter of width columns on the left for item
// headers.
func (l *LazyList) SetHeaderWidth(width int) *LazyList {
	l.headerWidth = max(width, 0)
	return l
}

// SetContentWidth sets the width items are laid out at. When wider than the
// viewport the list scrolls horizontally. Zero follows the viewport.
func (l *LazyList) SetContentWidth(width int) *LazyList {
	l.contentWidth = max(width, 0)
	l.needsRender = true
	return l
}

// SetBuffer sets how many rows above and below the viewport are kept
// realized. Zero uses the viewport height. It applies to engines built
// afterwards.
func (l *LazyList) SetBuffer(rows int) *LazyList {
	l.buffer = max(rows, 0)
	return l
}

// SetDefaultHeight sets the height assumed for items that were never
// measured and have no hint, until the first measurement arrives.
func (l *LazyList) SetDefaultHeight(rows int) *LazyList {
	if rows > 0 {
		l.defaultHeight = rows
	}
	return l
}

// SetSettleDelay sets how long the list waits after the last frame before it
// resizes its scroll space to the current height estimate.
func (l *LazyList) SetSettleDelay(d time.Duration) *LazyList {
	l.settleDelay = d
	return l
}

// SetEngineOptions adds options applied when the engine is built.
func (l *LazyList) SetEngineOptions(opts ...engine.Option) *LazyList {
	l.extra = opts
	return l
}

// SetKeyMap replaces the key bindings.
func (l *LazyList) SetKeyMap(keys LazyListKeyMap) *LazyList {
	l.keys = keys
	return l
}

// Engine returns the engine, or nil before the first draw.
func (l *LazyList) Engine() *engine.Engine {
	return l.engine
}

// Cache returns the measured heights, keyed by item index.
func (l *LazyList) Cache() *engine.HeightCache {
	return l.cache
}

// Refresh rebuilds the list over the lister's current Count, keeping the
// scroll position and every measured height.
func (l *LazyList) Refresh() *LazyList {
	if l.engine != nil {
		l.engine.Recreate()
		l.engine.Reflow(l.engine.ScrollerLength())
	}
	l.needsRender = true
	return l
}

// Release drops every item. The list rebuilds itself on the next draw.
func (l *LazyList) Release() {
	if l.settle != nil {
		l.settle.Stop()
	}
	if l.engine != nil {
		l.engine.Release()
		l.engine = nil
	}
	clear(l.placed)
	clear(l.indices)
}

// Tick runs deferred work that is due when the list has no scheduler. It
// returns how many callbacks ran.
func (l *LazyList) Tick() int {
	if l.frames == nil {
		return 0
	}
	return l.frames.RunDue()
}

// Top returns the scroll offset in content rows.
func (l *LazyList) Top() float64 {
	if l.engine == nil {
		return l.top
	}
	return l.top * l.rowsPerUnit()
}

// Left returns the horizontal scroll offset in columns.
func (l *LazyList) Left() int {
	return l.left
}

// ScrollBy scrolls by rows, positive values scroll down.
func (l *LazyList) ScrollBy(rows int) *LazyList {
	if l.engine == nil {
		l.top += float64(rows)
	} else {
		l.top += float64(rows) / l.rowsPerUnit()
	}
	l.clampTop()
	l.needsRender = true
	return l
}

// ScrollTo scrolls so that row offset is at the top of the viewport.
func (l *LazyList) ScrollTo(offset float64) *LazyList {
	if l.engine == nil {
		l.top = offset
	} else {
		l.top = offset / l.rowsPerUnit()
	}
	l.clampTop()
	l.needsRender = true
	return l
}

// ScrollToIndex scrolls the estimated position of index to the top.
func (l *LazyList) ScrollToIndex(index int) *LazyList {
	if l.engine == nil {
		l.build()
	}
	if l.engine == nil {
		return l
	}
	return l.ScrollTo(l.engine.OffsetOf(index))
}

// ScrollToStart scrolls to the first item.
func (l *LazyList) ScrollToStart() *LazyList {
	l.top = 0
	l.needsRender = true
	return l
}

// ScrollToEnd scrolls to the bottom of the scroll space.
func (l *LazyList) ScrollToEnd() *LazyList {
	l.top = math.Inf(1)
	l.clampTop()
	l.needsRender = true
	return l
}

// ScrollHorizontally moves the content by columns, positive values move it
// left.
func (l *LazyList) ScrollHorizontally(columns int) *LazyList {
	l.left = min(max(l.left+columns, 0), max(l.contentWidth-l.viewWidth, 0))
	l.needsRender = true
	return l
}

// rowsPerUnit converts scroller units to content rows.
func (l *LazyList) rowsPerUnit() float64 {
	scroller := l.engine.ScrollerLength()
	if scroller <= 0 {
		return 1
	}
	return l.engine.Height() / scroller
}

func (l *LazyList) scrollerLength() float64 {
	if l.engine == nil {
		return math.Inf(1)
	}
	return l.engine.ScrollerLength()
}

func (l *LazyList) clampTop() {
	l.top = max(min(l.top, l.scrollerLength()-float64(l.viewHeight)), 0)
}

// Visible returns the realized items intersecting the viewport, top to
// bottom.
func (l *LazyList) Visible() []VisibleItem {
	var out []VisibleItem
	for h, p := range l.placed {
		if p.header {
			continue
		}
		row := cell(p.at.Y)
		height := p.item.Height(l.itemWidth)
		if row+height <= 0 || row >= l.viewHeight {
			continue
		}
		out = append(out, VisibleItem{Index: l.indices[h], Row: row, Height: height})
	}
	slices.SortFunc(out, func(a, b VisibleItem) int {
		return cmp.Compare(a.Row, b.Row)
	})
	return out
}

// cell converts an engine offset to a cell, absorbing float error so that
// adjacent items stay adjacent.
func cell(v float64) int {
	return int(math.Floor(v + 1e-6))
}

// layout reads the viewport geometry. It reports whether the item width and
// the viewport height changed.
func (l *LazyList) layout() (widthChanged, heightChanged bool) {
	x, y, width, height := l.GetInnerRect()
	if l.scrollBar != nil && width > 1 {
		width--
		l.scrollBar.SetRect(x+width, y, 1, height)
	}
	l.gutter = min(l.headerWidth, width)
	x += l.gutter
	width -= l.gutter

	itemWidth := max(width, l.contentWidth)
	widthChanged = itemWidth != l.itemWidth
	heightChanged = height != l.viewHeight
	l.viewX, l.viewY, l.viewWidth, l.viewHeight = x, y, width, height
	l.itemWidth = itemWidth
	l.left = min(l.left, max(itemWidth-width, 0))
	return
}

func (l *LazyList) build() {
	if l.lister == nil || l.viewHeight <= 0 || l.itemWidth <= 0 {
		return
	}
	if l.sched == nil {
		l.frames = engine.NewFrameScheduler(nil)
		l.sched = l.frames
	}
	buffer := l.buffer
	if buffer == 0 {
		buffer = l.viewHeight
	}
	opts := []engine.Option{
		engine.WithScheduler(l.sched),
		engine.WithBuffer(float64(buffer)),
		engine.WithDefaultHeight(float64(l.defaultHeight)),
		engine.WithMinThumb(1),
		engine.WithHeightCache(l.cache),
		engine.WithLogger(l.log.With("component", "lazylist")),
		engine.WithObserver(l.frameDone),
	}
	if l.scrollBar != nil {
		opts = append(opts, engine.WithScrollbar(l.scrollBar))
	}
	e, err := engine.New(&listerAdapter{list: l, lister: l.lister}, (*listContainer)(l), append(opts, l.extra...)...)
	if err != nil {
		l.log.Error("cannot build list engine", "err", err)
		return
	}
	l.engine = e
	l.settle = engine.NewTimer(l.sched)
	l.clampTop()
	l.needsRender = true
}

func (l *LazyList) frameDone(stats engine.FrameStats) {
	if l.settle != nil {
		l.settle.Arm(l.settleDelay, l.resync)
	}
	if l.observer != nil {
		l.observer(stats)
	}
}

// resync resizes the scroll space to the current height estimate once
// rendering has calmed down, keeping the content row at the top in place. The
// scroll space never gets shorter than the container.
func (l *LazyList) resync() {
	e := l.engine
	if e == nil {
		return
	}
	old := e.ScrollerLength()
	scroller := max(e.Height(), (*listContainer)(l).OuterLength())
	if scroller == old {
		return
	}
	if old > 0 {
		l.top = l.top * scroller / old
	}
	e.Reflow(scroller)
	l.clampTop()
	l.log.Debug("scroll space resized", "from", old, "to", scroller, "top", l.top)
	e.Render(float64(l.left), l.top, 1)
}

func (l *LazyList) render() {
	widthChanged, heightChanged := l.layout()
	if l.engine == nil {
		l.build()
		if l.engine == nil {
			return
		}
		widthChanged, heightChanged = false, false
	}

	switch {
	case widthChanged:
		// Every measured height depends on the width.
		ratio := 0.0
		if s := l.engine.ScrollerLength(); s > 0 {
			ratio = l.top / s
		}
		l.engine.ResetHeights()
		l.engine.Recreate()
		l.engine.Reflow(0)
		l.top = ratio * l.engine.ScrollerLength()
		l.clampTop()
		l.needsRender = true
		l.log.Debug("width changed", "width", l.itemWidth)
	case heightChanged:
		l.engine.Reflow(l.engine.ScrollerLength())
		l.clampTop()
		l.needsRender = true
	}

	if l.needsRender {
		l.needsRender = false
		l.engine.Render(float64(l.left), l.top, 1)
	}
}

// Draw draws this primitive onto the screen.
func (l *LazyList) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)
	l.render()
	if l.viewWidth <= 0 || l.viewHeight <= 0 {
		return
	}

	var items, headers []*placement
	for _, p := range l.placed {
		if p.header {
			headers = append(headers, p)
		} else {
			items = append(items, p)
		}
	}

	clipped := newClippedScreen(screen, l.viewX, l.viewY, l.viewWidth, l.viewHeight)
	for _, p := range items {
		row := cell(p.at.Y)
		height := p.item.Height(l.itemWidth)
		if row+height <= 0 || row >= l.viewHeight {
			continue
		}
		p.item.SetRect(l.viewX+cell(p.at.X), l.viewY+row, l.itemWidth, height)
		p.item.Draw(clipped)
	}

	if gutter := l.gutter; gutter > 0 && len(headers) > 0 {
		x := l.viewX - gutter
		clipped = newClippedScreen(screen, x, l.viewY, gutter, l.viewHeight)
		for _, p := range headers {
			row := cell(p.at.Y)
			height := p.item.Height(gutter)
			if row+height <= 0 || row >= l.viewHeight {
				continue
			}
			p.item.SetRect(x, l.viewY+row, gutter, height)
			p.item.Draw(clipped)
		}
	}

	if l.scrollBar != nil {
		l.scrollBar.Draw(screen)
	}
}

// InputHandler scrolls the list.
func (l *LazyList) InputHandler(event *tcell.EventKey) Command {
	k := l.keys
	switch keybind.Match(event, k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Left, k.Right) {
	case 0:
		l.ScrollBy(-1)
	case 1:
		l.ScrollBy(1)
	case 2:
		l.ScrollBy(-max(l.viewHeight-1, 1))
	case 3:
		l.ScrollBy(max(l.viewHeight-1, 1))
	case 4:
		l.ScrollToStart()
	case 5:
		l.ScrollToEnd()
	case 6:
		l.ScrollHorizontally(-1)
	case 7:
		l.ScrollHorizontally(1)
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler scrolls on wheel events and takes focus on click.
func (l *LazyList) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}
	switch action {
	case MouseScrollUp:
		l.ScrollBy(-wheelRows)
		return nil, RedrawCommand{}
	case MouseScrollDown:
		l.ScrollBy(wheelRows)
		return nil, RedrawCommand{}
	case MouseScrollLeft:
		l.ScrollHorizontally(-wheelRows)
		return nil, RedrawCommand{}
	case MouseScrollRight:
		l.ScrollHorizontally(wheelRows)
		return nil, RedrawCommand{}
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: l}
	}
	return nil, nil
}

// ShortHelp returns the bindings shown in one-line help.
func (l *LazyList) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{l.keys.Up, l.keys.Down, l.keys.PageDown, l.keys.Bottom}
}

// FullHelp returns every binding, grouped in columns.
func (l *LazyList) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{l.keys.Up, l.keys.Down, l.keys.PageUp, l.keys.PageDown},
		{l.keys.Top, l.keys.Bottom, l.keys.Left, l.keys.Right},
	}
}

// listContainer is the engine's view of a LazyList.
type listContainer LazyList

func (c *listContainer) Append(h engine.Handle) {
	item := h.(ListItem)
	_, isItem := c.indices[h]
	c.placed[h] = &placement{item: item, header: !isItem, at: engine.Offset{Y: offscreen}}
}

func (c *listContainer) Remove(h engine.Handle) {
	delete(c.placed, h)
	delete(c.indices, h)
}

func (c *listContainer) Place(h engine.Handle, at engine.Offset) {
	if p, ok := c.placed[h]; ok {
		p.at = at
	}
}

func (c *listContainer) Measure(h engine.Handle) float64 {
	if c.itemWidth <= 0 {
		return 0
	}
	return float64(h.(ListItem).Height(c.itemWidth))
}

func (c *listContainer) InnerLength() float64 {
	return float64(c.viewHeight)
}

// OuterLength is the viewport height too: the border and the header gutter
// never scroll, so they are not part of the scroll area.
func (c *listContainer) OuterLength() float64 {
	return float64(c.viewHeight)
}

// listerAdapter exposes an ItemLister, and whichever optional interfaces it
// implements, as an engine.Lister.
type listerAdapter struct {
	list   *LazyList
	lister ItemLister
}

func (a *listerAdapter) Count() int {
	return a.lister.Count()
}

func (a *listerAdapter) Item(index int) engine.Handle {
	item := a.lister.Item(index)
	if item == nil {
		return nil
	}
	a.list.indices[item] = index
	return item
}

func (a *listerAdapter) Height(index int) float64 {
	if h, ok := a.lister.(HeightHinter); ok {
		return float64(h.HeightHint(index))
	}
	return 0
}

func (a *listerAdapter) FixedHeight(index int) bool {
	f, ok := a.lister.(FixedHeighter)
	return ok && f.FixedHeight(index)
}

func (a *listerAdapter) Header(index int) engine.Handle {
	if h, ok := a.lister.(HeaderLister); ok {
		if header := h.Header(index); header != nil {
			return header
		}
	}
	return nil
}

func (a *listerAdapter) Destroy(h engine.Handle, index int, header engine.Handle) {
	r, ok := a.lister.(ItemReleaser)
	if !ok {
		return
	}
	item, _ := h.(ListItem)
	head, _ := header.(ListItem)
	r.Release(index, item, head)
}

var (
	_ Primitive                = &LazyList{}
	_ engine.Container         = &listContainer{}
	_ engine.HeightLister      = &listerAdapter{}
	_ engine.HeaderLister      = &listerAdapter{}
	_ engine.FixedHeightLister = &listerAdapter{}
	_ engine.Destroyer         = &listerAdapter{}
)
