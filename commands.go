package lazyscroll

// Command is a side effect a primitive asks the Application to carry out
// after handling an event. Handlers return nil when there is nothing to do.
type Command any

// BatchCommand runs its commands in order.
type BatchCommand []Command

// AppendCommand returns a command running current, then next. Batches are
// flattened.
func AppendCommand(current, next Command) Command {
	switch {
	case next == nil:
		return current
	case current == nil:
		return next
	}
	var batch BatchCommand
	for _, c := range []Command{current, next} {
		if b, ok := c.(BatchCommand); ok {
			batch = append(batch, b...)
		} else {
			batch = append(batch, c)
		}
	}
	return batch
}

// SetFocusCommand moves the keyboard focus to Target.
type SetFocusCommand struct {
	Target Primitive
}

// RedrawCommand redraws the screen once the event is handled.
type RedrawCommand struct{}

// QuitCommand stops the application.
type QuitCommand struct{}

// SetTitleCommand sets the terminal window title.
type SetTitleCommand string
