package view

import (
	"sort"

	"textcore/mark"
)

// InsertCodepoints inserts text at every mark, processed in document
// order with a running growth counter so a mark's insertion point
// accounts for the bytes already inserted ahead of it, leaving each
// mark positioned just past its own inserted text (§4.8 "Insert code
// points"). An active selection is deleted first.
func (v *View) InsertCodepoints(text string) error {
	if v.SelectionActive {
		if err := v.deleteSelection(); err != nil {
			return err
		}
	}
	v.tagIfMarksMoved()

	data := []byte(text)
	var growth int64
	for _, m := range v.marksAscending() {
		at := m.Offset + growth
		if err := v.Buffer.Insert(at, data); err != nil {
			return err
		}
		m.Offset = at + int64(len(data))
		growth += int64(len(data))
	}
	v.prevAction = prevActionDocumentModification
	return nil
}

// RemovePreviousCodepoint deletes the code point before each mark
// (backspace), in document order (§4.8 "Remove previous code point").
func (v *View) RemovePreviousCodepoint() error {
	if v.SelectionActive {
		return v.deleteSelection()
	}
	for _, m := range v.marksAscending() {
		before := m.Clone()
		before.MoveBackward(v.Buffer, v.Codec)
		if before.Offset == m.Offset {
			continue
		}
		if err := v.removeRange(before.Offset, m.Offset); err != nil {
			return err
		}
	}
	return nil
}

// RemoveCurrentCodepoint deletes the code point at each mark
// (delete-forward), in document order (§4.8 "Remove current code
// point").
func (v *View) RemoveCurrentCodepoint() error {
	if v.SelectionActive {
		return v.deleteSelection()
	}
	for _, m := range v.marksAscending() {
		after := m.Clone()
		after.MoveForward(v.Buffer, v.Codec)
		if after.Offset == m.Offset {
			continue
		}
		if err := v.removeRange(m.Offset, after.Offset); err != nil {
			return err
		}
	}
	return nil
}

// removeRange deletes [start, end) and shifts every mark past end back
// by the removed length; marks inside the removed range collapse to
// start. Since it adjusts every mark in v.Marks on each call, calling
// it once per mark in ascending order (as RemovePreviousCodepoint/
// RemoveCurrentCodepoint/CutToEndOfLine do) keeps every later mark's
// offset correct without any separate bookkeeping.
func (v *View) removeRange(start, end int64) error {
	v.tagIfMarksMoved()
	n := end - start
	if _, err := v.Buffer.Remove(start, n); err != nil {
		return err
	}
	for _, m := range v.Marks {
		switch {
		case m.Offset >= end:
			m.Offset -= n
		case m.Offset > start:
			m.Offset = start
		}
	}
	v.prevAction = prevActionDocumentModification
	return nil
}

func (v *View) deleteSelection() error {
	start, end := v.SelectionAnchor, v.MainMark().Offset
	if start > end {
		start, end = end, start
	}
	v.SelectionActive = false
	if start == end {
		return nil
	}
	return v.removeRange(start, end)
}

// CutToEndOfLine removes from each mark to the end of its line
// (exclusive of the trailing newline) and replaces the copy buffer
// with one slot per mark, in document order, so Paste can pair slots
// back up with marks one-to-one (§4.8 "Cut to end of line").
func (v *View) CutToEndOfLine() error {
	marks := v.marksAscending()
	slots := make([][]byte, len(marks))
	for i, m := range marks {
		endMark := m.Clone()
		endMark.MoveToEndOfLine(v.Buffer, v.Codec)
		start, end := m.Offset, endMark.Offset
		data := make([]byte, end-start)
		if end > start {
			v.Buffer.Read(start, int(end-start), data)
			if err := v.removeRange(start, end); err != nil {
				return err
			}
		}
		slots[i] = data
	}
	v.copyBuffer = slots
	return nil
}

// Paste inserts the copy buffer at every mark (§4.8 "Paste"). If the
// copy buffer holds exactly one slot per mark (the common case right
// after a multi-mark cut), slot i (in document order) is pasted at the
// mark that was i-th in document order; otherwise every slot is
// concatenated and the whole copy buffer is pasted at every mark.
// Insertion happens in descending offset order so an earlier insertion
// never shifts the offset a later insertion was captured at.
func (v *View) Paste() error {
	if len(v.copyBuffer) == 0 {
		return nil
	}
	v.tagIfMarksMoved()

	marks := v.marksAscending()
	perMark := len(v.copyBuffer) == len(marks)

	var whole []byte
	if !perMark {
		for _, slot := range v.copyBuffer {
			whole = append(whole, slot...)
		}
	}

	type pasteOp struct {
		m    *mark.Mark
		data []byte
	}
	ops := make([]pasteOp, len(marks))
	for i, m := range marks {
		data := whole
		if perMark {
			data = v.copyBuffer[i]
		}
		ops[i] = pasteOp{m: m, data: data}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].m.Offset > ops[j].m.Offset })

	for _, op := range ops {
		off := op.m.Offset
		if err := v.Buffer.Insert(off, op.data); err != nil {
			return err
		}
		grown := int64(len(op.data))
		for _, m := range v.Marks {
			if m.Offset >= off {
				m.Offset += grown
			}
		}
	}
	v.prevAction = prevActionDocumentModification
	return nil
}

// tagIfMarksMoved implements the tagging policy (§4.7): if the previous
// action moved marks without editing, snapshot mark offsets into the
// log before the edit that follows, so an undo back through it restores
// cursor position rather than just bytes.
func (v *View) tagIfMarksMoved() {
	if v.prevAction == prevActionMarksMove {
		v.saveMarksTag()
	}
}

// Undo replays the buffer log back to the previous tag and restores
// mark offsets from that tag's snapshot, then forces the view back
// on-screen and clears any selection (§4.8 "Undo").
func (v *View) Undo() error {
	offsets, err := v.Buffer.UndoUntilTag()
	if err != nil {
		return err
	}
	v.restoreMarks(offsets)
	v.Enqueue(Action{Kind: ActionCenterAroundMainMarkIfOffScreen})
	v.Enqueue(Action{Kind: ActionCancelSelection})
	return nil
}

// Redo mirrors Undo for the redo direction.
func (v *View) Redo() error {
	offsets, err := v.Buffer.RedoUntilTag()
	if err != nil {
		return err
	}
	v.restoreMarks(offsets)
	v.Enqueue(Action{Kind: ActionCenterAroundMainMarkIfOffScreen})
	v.Enqueue(Action{Kind: ActionCancelSelection})
	return nil
}

func (v *View) restoreMarks(offsets []int64) {
	if len(offsets) == 0 {
		return
	}
	for i, off := range offsets {
		if i < len(v.Marks) {
			v.Marks[i].Offset = off
			continue
		}
		v.Marks = append(v.Marks, mark.New(off))
	}
	if len(offsets) < len(v.Marks) {
		v.Marks = v.Marks[:len(offsets)]
	}
	if v.MainMarkIndex >= len(v.Marks) {
		v.MainMarkIndex = len(v.Marks) - 1
	}
}
