package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/require"
	"github.com/xqrs/lazyscroll"
	"github.com/xqrs/lazyscroll/engine"
)

// fakeScreen keeps the cells written through Put.
type fakeScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]string
}

func newFakeScreen(width, height int) *fakeScreen {
	return &fakeScreen{width: width, height: height, cells: make(map[[2]int]string)}
}

func (s *fakeScreen) Size() (int, int) { return s.width, s.height }

func (s *fakeScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	cluster, rest, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if x >= 0 && y >= 0 && x < s.width && y < s.height {
		s.cells[[2]int{x, y}] = cluster
	}
	return rest, width
}

func (s *fakeScreen) ShowCursor(int, int) {}

func (s *fakeScreen) HideCursor() {}

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

// settle draws p and runs deferred list work until there is none left.
func settle(t *testing.T, p lazyscroll.Primitive, sched *engine.FrameScheduler, screen *fakeScreen) {
	t.Helper()
	p.Draw(screen)
	for i := 0; sched.Pending() > 0; i++ {
		require.Less(t, i, 10000, "list never settled")
		sched.RunAll()
	}
	p.Draw(screen)
}

func newTestList(t *testing.T, lister lazyscroll.ItemLister) (*lazyscroll.LazyList, *engine.FrameScheduler) {
	t.Helper()
	sched := engine.NewFrameScheduler(nil)
	list := lazyscroll.NewLazyList().SetScheduler(sched)
	list.SetLister(lister)
	return list, sched
}
