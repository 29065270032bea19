package view

import "textcore/mark"

// ActionKind enumerates the pre-compose action queue's verbs (§4.7).
type ActionKind int

const (
	ActionScrollUp ActionKind = iota
	ActionScrollDown
	ActionCenterAroundMainMark
	ActionCenterAroundMainMarkIfOffScreen
	ActionCenterAround
	ActionResetMarks
	ActionCheckMarks
	ActionDedupAndSaveMarks
	ActionSaveMarks
	ActionCancelSelection
	ActionUpdateReadCache
)

// Action is one queued post-input action.
type Action struct {
	Kind   ActionKind
	N      int   // ScrollUp/ScrollDown line count
	Offset int64 // CenterAround target offset
}

// Enqueue appends an action to the pre-compose queue, to be drained by
// the next Compose call.
func (v *View) Enqueue(a Action) {
	v.actionQueue = append(v.actionQueue, a)
}

// drainActions runs every queued action in order, then clears the
// queue (§4.7 "The compositor drains this queue before running filters").
func (v *View) drainActions() {
	queue := v.actionQueue
	v.actionQueue = nil
	for _, a := range queue {
		switch a.Kind {
		case ActionScrollUp:
			v.ScrollViewUp(a.N)
		case ActionScrollDown:
			v.ScrollViewDown(a.N)
		case ActionCenterAroundMainMark:
			v.CenterViewAroundOffset(v.MainMark().Offset)
		case ActionCenterAroundMainMarkIfOffScreen:
			if _, _, ok := v.Screen.FindOffset(v.MainMark().Offset); !ok {
				v.CenterViewAroundOffset(v.MainMark().Offset)
			}
		case ActionCenterAround:
			v.CenterViewAroundOffset(a.Offset)
		case ActionResetMarks:
			offset := v.MainMark().Offset
			v.Marks = []*mark.Mark{mark.New(offset)}
			v.MainMarkIndex = 0
		case ActionCheckMarks:
			v.checkMarks()
		case ActionDedupAndSaveMarks:
			v.dedupMarks()
			v.saveMarksTag()
		case ActionSaveMarks:
			v.saveMarksTag()
		case ActionCancelSelection:
			v.SelectionActive = false
		case ActionUpdateReadCache:
			v.updateReadCache()
		}
	}
}
