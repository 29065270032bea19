package view

import (
	"sort"

	"github.com/samber/lo"

	"textcore/mark"
)

// marksAscending returns the view's marks ordered by offset, the
// document order §4.8's per-mark editing algorithms process in. The
// returned slice holds the same *mark.Mark pointers as v.Marks, so
// mutating them through it mutates the view's marks directly.
func (v *View) marksAscending() []*mark.Mark {
	marks := append([]*mark.Mark(nil), v.Marks...)
	sort.Slice(marks, func(i, j int) bool { return marks[i].Offset < marks[j].Offset })
	return marks
}

// checkMarks clamps every mark's offset into [0, buffer size] and
// MainMarkIndex into range (§4.7 "CheckMarks").
func (v *View) checkMarks() {
	size := v.Buffer.Size()
	for _, m := range v.Marks {
		m.Offset = lo.Clamp(m.Offset, 0, size)
	}
	v.MainMarkIndex = lo.Clamp(v.MainMarkIndex, 0, len(v.Marks)-1)
}

// dedupMarks removes duplicate-offset marks, sorts the rest by offset and
// points MainMarkIndex at the mark holding the main mark's offset
// (§4.7 "DedupAndSaveMarks").
func (v *View) dedupMarks() {
	mainOffset := v.MainMark().Offset
	v.Marks = lo.UniqBy(v.Marks, func(m *mark.Mark) int64 { return m.Offset })
	sort.Slice(v.Marks, func(i, j int) bool { return v.Marks[i].Offset < v.Marks[j].Offset })
	if idx := lo.IndexOf(lo.Map(v.Marks, func(m *mark.Mark, _ int) int64 { return m.Offset }), mainOffset); idx >= 0 {
		v.MainMarkIndex = idx
	}
}

// saveMarksTag snapshots every mark's offset into a BufferLog Tag entry
// so a later undo/redo can restore cursor positions (§4.3, §4.7).
func (v *View) saveMarksTag() {
	offsets := lo.Map(v.Marks, func(m *mark.Mark, _ int) int64 { return m.Offset })
	v.Buffer.Tag(0, offsets)
}

// updateReadCache primes the buffer's read cache to cover the screen's
// visible range plus a margin on either side, sized to one screenful
// of worst-case 4-byte code points (§4.7 "UpdateReadCache").
func (v *View) updateReadCache() {
	margin := int64(v.Width * v.Height * 4)
	size := v.Buffer.Size()
	start := lo.Clamp(v.StartOffset-margin, 0, size)
	screenEnd := v.StartOffset
	if _, last, ok := v.Screen.Range(); ok {
		screenEnd = last
	}
	end := lo.Clamp(screenEnd+margin, start, size)
	v.Buffer.SetCache(start, int(end-start))
}
