package lazyscroll

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/require"
	"github.com/xqrs/lazyscroll/engine"
)

// fakeScreen records cells written through Put. Calling anything else panics.
type fakeScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]string
	styles        map[[2]int]tcell.Style
}

func newFakeScreen(width, height int) *fakeScreen {
	return &fakeScreen{
		width:  width,
		height: height,
		cells:  make(map[[2]int]string),
		styles: make(map[[2]int]tcell.Style),
	}
}

func (s *fakeScreen) Size() (int, int) { return s.width, s.height }

func (s *fakeScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	cluster, rest, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return rest, width
	}
	s.cells[[2]int{x, y}] = cluster
	s.styles[[2]int{x, y}] = style
	return rest, width
}

func (s *fakeScreen) Get(x, y int) (string, tcell.Style, int) {
	str, ok := s.cells[[2]int{x, y}]
	if !ok {
		return " ", tcell.StyleDefault, 1
	}
	return str, s.styles[[2]int{x, y}], uniseg.StringWidth(str)
}

func (s *fakeScreen) ShowCursor(int, int) {}

func (s *fakeScreen) HideCursor() {}

// row returns the text of line y, without trailing blanks.
func (s *fakeScreen) row(y int) string {
	var b strings.Builder
	for x := 0; x < s.width; x++ {
		str, ok := s.cells[[2]int{x, y}]
		if !ok {
			str = " "
		}
		b.WriteString(str)
	}
	return strings.TrimRight(b.String(), " ")
}

// textLister returns TextItems whose line count is given by lines.
type textLister struct {
	count    int
	lines    func(index int) int
	created  int
	released int
}

func (l *textLister) Count() int { return l.count }

func (l *textLister) Item(index int) ListItem {
	l.created++
	b := NewLineBuilder()
	for i := range l.lines(index) {
		if i > 0 {
			b.NewLine()
		}
		b.Write(fmt.Sprintf("item %d.%d", index, i), tcell.StyleDefault)
	}
	return NewTextItem(b.Finish()...)
}

func (l *textLister) Release(int, ListItem, ListItem) {
	l.released++
}

// fixedLister declares every height up front.
type fixedLister struct {
	textLister
}

func (l *fixedLister) HeightHint(index int) int { return l.lines(index) }

func (l *fixedLister) FixedHeight(int) bool { return true }

// headedLister puts a "#index" header next to every fifth item.
type headedLister struct {
	fixedLister
}

func (l *headedLister) Header(index int) ListItem {
	if index%5 != 0 {
		return nil
	}
	return NewTextItemString(fmt.Sprintf("#%d", index), tcell.StyleDefault)
}

func lines(n int) func(int) int {
	return func(int) int { return n }
}

func newTestList(t *testing.T, lister ItemLister, width, height int) (*LazyList, *engine.FrameScheduler, *fakeScreen) {
	t.Helper()
	sched := engine.NewFrameScheduler(nil)
	l := NewLazyList().SetScheduler(sched)
	l.SetLister(lister)
	l.SetRect(0, 0, width, height)
	return l, sched, newFakeScreen(width, height)
}

// settle draws, runs deferred work until there is none and draws again.
func settle(t *testing.T, l *LazyList, sched *engine.FrameScheduler, screen *fakeScreen) {
	t.Helper()
	l.Draw(screen)
	for i := 0; sched.Pending() > 0; i++ {
		require.Less(t, i, 10000, "list never settled")
		sched.RunAll()
	}
	l.Draw(screen)
}

// requireContiguous checks that the visible items follow each other without
// gaps and cover the viewport.
func requireContiguous(t *testing.T, l *LazyList) []VisibleItem {
	t.Helper()
	visible := l.Visible()
	require.NotEmpty(t, visible)
	for i := 1; i < len(visible); i++ {
		prev, cur := visible[i-1], visible[i]
		require.Equal(t, prev.Index+1, cur.Index, "indices at %d", i)
		require.Equal(t, prev.Row+prev.Height, cur.Row, "row of item %d", cur.Index)
	}
	require.LessOrEqual(t, visible[0].Row, 0)
	return visible
}
