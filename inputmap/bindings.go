package inputmap

import "textcore/mode"

// chord is a KeyEvent reduced to its comparable fields, used as a tree
// edge label (Mod+Rune only matters for KeyChar).
type chord struct {
	key  Key
	r    rune
	mod  Mod
}

func chordOf(e KeyEvent) chord {
	return chord{key: e.Key, r: e.Rune, mod: e.Mod}
}

// node is one level of the binding tree: either a leaf action or a set
// of children keyed by the next chord in a multi-key sequence (e.g.
// "Ctrl+X Ctrl+S").
type node struct {
	action   mode.ActionName
	isLeaf   bool
	children map[chord]*node
}

// Map is a tree-structured input map (§6 "JSON-driven input-map" — the
// core's side of it, resolving already-decoded KeyEvents rather than
// parsing the JSON document itself). Bind registers a chord sequence;
// a Walker from NewWalker steps through it one chord at a time, returning
// the bound action once a leaf is reached, or pending=true when more
// chords are needed.
type Map struct {
	root *node
}

// NewMap returns an empty binding tree.
func NewMap() *Map {
	return &Map{root: &node{children: map[chord]*node{}}}
}

// Bind associates a chord sequence with an action. An empty sequence
// is a no-op.
func (m *Map) Bind(action mode.ActionName, sequence ...KeyEvent) {
	if len(sequence) == 0 {
		return
	}
	cur := m.root
	for _, e := range sequence {
		c := chordOf(e)
		next, ok := cur.children[c]
		if !ok {
			next = &node{children: map[chord]*node{}}
			cur.children[c] = next
		}
		cur = next
	}
	cur.isLeaf = true
	cur.action = action
}

// Walker tracks progress through a multi-chord sequence.
type Walker struct {
	m   *Map
	cur *node
}

// NewWalker returns a Walker positioned at the root of m.
func (m *Map) NewWalker() *Walker {
	return &Walker{m: m, cur: m.root}
}

// Step advances the walker by one KeyEvent. If the resulting position
// is a bound leaf, it returns the action and resets the walker to the
// root with matched=true. If the chord has no binding at this position,
// the sequence is unbound: the walker resets and matched and pending are
// both false with a zero action. If more chords could still complete a
// longer binding, pending is true, matched is false and action is zero;
// callers wait for the next KeyEvent.
func (w *Walker) Step(e KeyEvent) (action mode.ActionName, matched, pending bool) {
	next, ok := w.cur.children[chordOf(e)]
	if !ok {
		w.cur = w.m.root
		return "", false, false
	}
	if next.isLeaf {
		w.cur = w.m.root
		return next.action, true, false
	}
	w.cur = next
	return "", false, true
}

// Reset returns the walker to the root, abandoning any in-progress
// multi-chord sequence.
func (w *Walker) Reset() { w.cur = w.m.root }
