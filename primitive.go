package lazyscroll

import "github.com/gdamore/tcell/v3"

// Primitive is a rectangle of the screen that draws itself and reacts to
// input. All methods are called from the Application event loop.
type Primitive interface {
	Draw(screen tcell.Screen)

	GetRect() (x, y, width, height int)
	SetRect(x, y, width, height int)

	// InputHandler handles a key pressed while the primitive has focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler handles a mouse action. A non-nil primitive returned with
	// the command receives all mouse actions until it stops returning itself.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command)

	// HasFocus reports whether the primitive or one of its children has
	// focus.
	HasFocus() bool
	// Focus gives the primitive the focus. It may call delegate to hand the
	// focus on to a child instead.
	Focus(delegate func(p Primitive))
	Blur()
}
