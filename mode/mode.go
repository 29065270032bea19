// Package mode implements the action dispatcher (§4.8 "Mode glue,
// core-only parts"): it maps a named editing action to the View method
// that performs it, so inputmap bindings and scripted commands share a
// single table instead of switching on key events directly.
package mode

import "textcore/view"

// ActionName identifies one dispatchable core action.
type ActionName string

const (
	MoveLeft      ActionName = "move-left"
	MoveRight     ActionName = "move-right"
	MoveUp        ActionName = "move-up"
	MoveDown      ActionName = "move-down"
	MoveStartLine ActionName = "move-start-of-line"
	MoveEndLine   ActionName = "move-end-of-line"
	MoveTokenStart ActionName = "move-token-start"
	MoveTokenEnd  ActionName = "move-token-end"

	InsertChar    ActionName = "insert-char"
	RemovePrev    ActionName = "remove-prev-char"
	RemoveCurrent ActionName = "remove-current-char"

	CutEndOfLine ActionName = "cut-end-of-line"
	Paste        ActionName = "paste"

	Undo ActionName = "undo"
	Redo ActionName = "redo"

	CloneMarkDown ActionName = "clone-mark-down"

	CancelSelection ActionName = "cancel-selection"
	StartSelection  ActionName = "start-selection"
)

// Dispatcher binds ActionNames to a target View and runs them by name.
type Dispatcher struct {
	View *view.View
}

// New returns a Dispatcher driving v.
func New(v *view.View) *Dispatcher {
	return &Dispatcher{View: v}
}

// Run executes action, passing text through to actions that take an
// argument (InsertChar). Unknown actions are a no-op.
func (d *Dispatcher) Run(action ActionName, text string) error {
	v := d.View
	switch action {
	case MoveLeft:
		v.MainMark().MoveBackward(v.Buffer, v.Codec)
		v.Enqueue(view.Action{Kind: view.ActionCheckMarks})
	case MoveRight:
		v.MainMark().MoveForward(v.Buffer, v.Codec)
		v.Enqueue(view.Action{Kind: view.ActionCheckMarks})
	case MoveUp:
		v.MoveMarkUp()
	case MoveDown:
		v.MoveMarkDown()
	case MoveStartLine:
		v.MainMark().MoveToStartOfLine(v.Buffer, v.Codec)
	case MoveEndLine:
		v.MainMark().MoveToEndOfLine(v.Buffer, v.Codec)
	case MoveTokenStart:
		v.MainMark().MoveToTokenStart(v.Buffer, v.Codec)
	case MoveTokenEnd:
		v.MainMark().MoveToTokenEnd(v.Buffer, v.Codec)
	case InsertChar:
		return v.InsertCodepoints(text)
	case RemovePrev:
		return v.RemovePreviousCodepoint()
	case RemoveCurrent:
		return v.RemoveCurrentCodepoint()
	case CutEndOfLine:
		return v.CutToEndOfLine()
	case Paste:
		return v.Paste()
	case Undo:
		return v.Undo()
	case Redo:
		return v.Redo()
	case CloneMarkDown:
		v.Marks = append(v.Marks, v.MainMark().Clone())
	case StartSelection:
		v.SelectionAnchor = v.MainMark().Offset
		v.SelectionActive = true
	case CancelSelection:
		v.SelectionActive = false
	}
	return nil
}
