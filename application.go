package lazyscroll

import (
	"sync"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/lazyscroll/engine"
)

const updatesQueueSize = 100

// MouseAction is what the mouse did, derived from consecutive mouse events.
type MouseAction int16

const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

var wheelActions = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// mouseActions returns the actions leading from a mouse state with buttons
// prev to one with buttons cur. moved is set when the pointer changed cells.
func mouseActions(prev, cur tcell.ButtonMask, moved bool) []MouseAction {
	var actions []MouseAction
	if moved {
		actions = append(actions, MouseMove)
	}
	if (prev^cur)&tcell.ButtonPrimary != 0 {
		if cur&tcell.ButtonPrimary != 0 {
			actions = append(actions, MouseLeftDown)
		} else {
			actions = append(actions, MouseLeftUp)
		}
	}
	for _, w := range wheelActions {
		if cur&w.button != 0 {
			actions = append(actions, w.action)
		}
	}
	return actions
}

// update is a function run on the event loop. done, if set, is closed once f
// returned.
type update struct {
	f    func()
	done chan struct{}
}

// Application owns the terminal and runs the event loop. Primitives are only
// touched from the loop: key and mouse events, queued updates and engine
// callbacks obtained through [Application.Scheduler] all run there.
//
//	if err := lazyscroll.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	mu sync.RWMutex

	screen  tcell.Screen
	root    Primitive
	focus   Primitive
	stopped bool
	needsClear bool

	updates chan update

	// Mouse state of the previous event.
	capture        Primitive
	mouseX, mouseY int
	buttons        tcell.ButtonMask
}

func NewApplication() *Application {
	return &Application{
		updates: make(chan update, updatesQueueSize),
	}
}

// Run opens the terminal and handles events until the application is stopped.
// Logs must not go to stdout or stderr while it runs.
func (a *Application) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	a.mu.Lock()
	a.screen = screen
	a.mu.Unlock()

	// A panic would leave the terminal in raw mode.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()
	events := screen.EventQ()
	var runErr error
	for {
		select {
		case event := <-events:
			if event == nil {
				return runErr
			}
			if err := a.handleEvent(event); err != nil {
				runErr = err
				a.Stop()
			}
		case u := <-a.updates:
			u.f()
			if u.done != nil {
				close(u.done)
			}
		}
	}
}

func (a *Application) handleEvent(event tcell.Event) error {
	redraw := false
	switch event := event.(type) {
	case *tcell.EventKey:
		if root := a.getRoot(); root != nil && root.HasFocus() {
			redraw = a.executeCommand(root.InputHandler(event))
		}
	case *tcell.EventMouse:
		redraw = a.handleMouse(event)
	case *tcell.EventResize:
		a.mu.Lock()
		a.needsClear = true
		a.mu.Unlock()
		redraw = true
	case *tcell.EventError:
		return event
	}
	if redraw {
		a.draw()
	}
	return nil
}

// handleMouse sends the actions of event to the primitive capturing the mouse,
// or to the root. It reports whether a redraw is needed.
func (a *Application) handleMouse(event *tcell.EventMouse) bool {
	x, y := event.Position()
	actions := mouseActions(a.buttons, event.Buttons(), x != a.mouseX || y != a.mouseY)
	a.mouseX, a.mouseY, a.buttons = x, y, event.Buttons()

	redraw := false
	for _, action := range actions {
		target := a.capture
		if target == nil {
			target = a.getRoot()
		}
		if target == nil {
			return redraw
		}
		var cmd Command
		a.capture, cmd = target.MouseHandler(action, event)
		if a.executeCommand(cmd) {
			redraw = true
		}
	}
	return redraw
}

// Stop restores the terminal, which makes Run return.
func (a *Application) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
}

func (a *Application) draw() {
	a.mu.Lock()
	screen, root, needsClear := a.screen, a.root, a.needsClear
	a.needsClear = false
	a.mu.Unlock()
	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	// Show only writes the cells that changed, so the screen is cleared only
	// after a resize or a new root.
	if needsClear {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

func (a *Application) getRoot() Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.root
}

// SetRoot sets the primitive filling the screen and gives it the focus.
func (a *Application) SetRoot(root Primitive) *Application {
	a.mu.Lock()
	a.root = root
	a.needsClear = true
	a.mu.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus blurs the focused primitive and focuses p, which may pass the focus
// on to one of its children.
func (a *Application) SetFocus(p Primitive) *Application {
	a.mu.Lock()
	previous := a.focus
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.mu.Unlock()

	if previous != nil {
		previous.Blur()
	}
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// GetFocus returns the focused primitive, or nil.
func (a *Application) GetFocus() Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.focus
}

// QueueUpdate runs f on the event loop and waits for it to return. It must
// not be called from the loop itself.
func (a *Application) QueueUpdate(f func()) *Application {
	done := make(chan struct{})
	a.updates <- update{f: f, done: done}
	<-done
	return a
}

// QueueUpdateDraw is QueueUpdate followed by a redraw.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

// Scheduler returns an engine scheduler whose callbacks run on the event loop,
// each followed by a redraw. Callbacks due after the application stopped are
// dropped.
func (a *Application) Scheduler() engine.Scheduler {
	return engine.NewPostScheduler(func(f func()) {
		a.mu.RLock()
		stopped := a.stopped
		a.mu.RUnlock()
		if stopped {
			return
		}
		a.updates <- update{f: func() {
			f()
			a.draw()
		}}
	})
}

// executeCommand carries out cmd and reports whether the screen needs a
// redraw.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		redraw := false
		for _, item := range c {
			redraw = a.executeCommand(item) || redraw
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
	case SetFocusCommand:
		if c.Target != nil && c.Target != a.GetFocus() {
			a.SetFocus(c.Target)
			return true
		}
	case SetTitleCommand:
		a.mu.RLock()
		screen := a.screen
		a.mu.RUnlock()
		if screen != nil {
			screen.SetTitle(string(c))
		}
	}
	return false
}
