// Package inputmap implements a tree-structured input map (§6): it
// reads raw terminal bytes into KeyEvents (adapted from the teacher's
// tui/input.go and tui/key.go) and resolves a sequence of KeyEvents
// against a configured binding tree down to a mode.ActionName.
package inputmap

// Key represents a special key or a plain character.
type Key int

const (
	KeyNull Key = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEsc
	KeySpace

	KeyArrowUp
	KeyArrowDown
	KeyArrowRight
	KeyArrowLeft

	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyDelete
	KeyInsert

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyChar carries a plain rune in KeyEvent.Rune.
	KeyChar
)

// Mod is a bitset of modifier keys.
type Mod int

const (
	ModNone  Mod = 0
	ModCtrl  Mod = 1 << 0
	ModAlt   Mod = 1 << 1
	ModShift Mod = 1 << 2
)

// KeyEvent is one decoded keypress.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  Mod
}
