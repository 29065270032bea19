package inputmap

import "textcore/mode"

// DefaultMap returns the built-in single-chord bindings for plain
// cursor motion and editing (§6). No configuration is merged into it.
func DefaultMap() *Map {
	m := NewMap()
	m.Bind(mode.MoveLeft, KeyEvent{Key: KeyArrowLeft})
	m.Bind(mode.MoveRight, KeyEvent{Key: KeyArrowRight})
	m.Bind(mode.MoveUp, KeyEvent{Key: KeyArrowUp})
	m.Bind(mode.MoveDown, KeyEvent{Key: KeyArrowDown})
	m.Bind(mode.MoveStartLine, KeyEvent{Key: KeyHome})
	m.Bind(mode.MoveEndLine, KeyEvent{Key: KeyEnd})
	m.Bind(mode.RemovePrev, KeyEvent{Key: KeyBackspace})
	m.Bind(mode.RemoveCurrent, KeyEvent{Key: KeyDelete})
	m.Bind(mode.Undo, KeyEvent{Key: KeyChar, Rune: 'z', Mod: ModCtrl})
	m.Bind(mode.Redo, KeyEvent{Key: KeyChar, Rune: 'y', Mod: ModCtrl})
	m.Bind(mode.CutEndOfLine, KeyEvent{Key: KeyChar, Rune: 'k', Mod: ModCtrl})
	m.Bind(mode.Paste, KeyEvent{Key: KeyChar, Rune: 'v', Mod: ModCtrl})
	return m
}
