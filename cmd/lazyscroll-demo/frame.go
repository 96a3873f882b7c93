package main

import (
	"fmt"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/lazyscroll"
	"github.com/xqrs/lazyscroll/engine"
	"github.com/xqrs/lazyscroll/help"
	"github.com/xqrs/lazyscroll/keybind"
)

// frame is the root of the demo: the list on top, a help footer below, split
// by a divider that joins the border.
type frame struct {
	*lazyscroll.Box

	list *lazyscroll.LazyList
	help *help.Help

	borderSet   lazyscroll.BorderSet
	borderStyle tcell.Style

	quit       keybind.Keybind
	toggleHelp keybind.Keybind
}

func newFrame(list *lazyscroll.LazyList, borderSet lazyscroll.BorderSet) *frame {
	f := &frame{
		Box:         lazyscroll.NewBox(),
		list:        list,
		help:        help.New(),
		borderSet:   borderSet,
		borderStyle: tcell.StyleDefault.Foreground(lazyscroll.Styles.BorderColor),
		quit:        keybind.NewKeybind(keybind.WithKeys("q", "esc", "ctrl+c"), keybind.WithHelp("q", "quit")),
		toggleHelp:  keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "more")),
	}
	f.SetBorders(lazyscroll.BordersAll).
		SetBorderSet(borderSet).
		SetBorderStyle(f.borderStyle).
		SetTitle(" lazyscroll ").
		SetTitleStyle(tcell.StyleDefault.Foreground(lazyscroll.Styles.TitleColor).Bold(true))
	f.help.SetKeyMap(f)
	return f
}

// showStats puts a summary of the list state in the bottom border.
func (f *frame) showStats(count int, stats engine.Stats) {
	f.SetFooter(fmt.Sprintf(" %d items · %.0f rows · %d realized · budget %d ",
		count, stats.Height, stats.Realized, stats.Budget))
}

func (f *frame) ShortHelp() []keybind.Keybind {
	return append(f.list.ShortHelp(), f.toggleHelp, f.quit)
}

func (f *frame) FullHelp() [][]keybind.Keybind {
	return append(f.list.FullHelp(), []keybind.Keybind{f.toggleHelp, f.quit})
}

// Draw draws this primitive onto the screen.
func (f *frame) Draw(screen tcell.Screen) {
	f.DrawForSubclass(screen, f)

	x, y, width, height := f.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	listHeight := height
	if helpHeight := min(f.help.Height(width), height-2); helpHeight > 0 {
		listHeight = height - helpHeight - 1
		f.drawDivider(screen, y+listHeight)
		f.help.SetRect(x, y+listHeight+1, width, helpHeight)
		f.help.Draw(screen)
	}
	f.list.SetRect(x, y, width, listHeight)
	f.list.Draw(screen)
}

func (f *frame) drawDivider(screen tcell.Screen, row int) {
	left, _, width, _ := f.GetRect()
	right := left + width - 1
	screen.Put(left, row, f.borderSet.LeftT, f.borderStyle)
	for col := left + 1; col < right; col++ {
		screen.Put(col, row, f.borderSet.Top, f.borderStyle)
	}
	screen.Put(right, row, f.borderSet.RightT, f.borderStyle)
}

// InputHandler handles the frame's own keys and passes the rest to the list.
func (f *frame) InputHandler(event *tcell.EventKey) lazyscroll.Command {
	switch keybind.Match(event, f.quit, f.toggleHelp) {
	case 0:
		return lazyscroll.QuitCommand{}
	case 1:
		f.help.SetShowAll(!f.help.ShowAll())
		return lazyscroll.RedrawCommand{}
	}
	return f.list.InputHandler(event)
}

func (f *frame) MouseHandler(action lazyscroll.MouseAction, event *tcell.EventMouse) (lazyscroll.Primitive, lazyscroll.Command) {
	return f.list.MouseHandler(action, event)
}

// Focus hands the focus to the list.
func (f *frame) Focus(delegate func(p lazyscroll.Primitive)) {
	if delegate == nil {
		f.Box.Focus(delegate)
		return
	}
	delegate(f.list)
}

func (f *frame) HasFocus() bool {
	return f.list.HasFocus() || f.Box.HasFocus()
}

var _ lazyscroll.Primitive = &frame{}
