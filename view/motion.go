package view

import (
	"textcore/filter"
	"textcore/mark"
	"textcore/screen"
)

// MoveMarkUp moves every mark one screen row up (§4.7 "Mark motion
// strategy (per mark)"). The view scrolls at most once, driven by the
// main mark reaching the top row; every mark (main and secondary) then
// resolves its own new row via the on-screen fast path when it's still
// rendered, falling back to the off-screen scratch-recompute path
// otherwise.
func (v *View) MoveMarkUp() {
	v.prevAction = prevActionMarksMove
	if _, y, ok := v.Screen.FindOffset(v.MainMark().Offset); ok && y == 0 {
		v.ScrollViewUp(1)
		v.Compose(Content)
	}
	for _, m := range v.Marks {
		v.moveOneMarkUp(m)
	}
}

// MoveMarkDown mirrors MoveMarkUp for the next screen row.
func (v *View) MoveMarkDown() {
	v.prevAction = prevActionMarksMove
	if _, y, ok := v.Screen.FindOffset(v.MainMark().Offset); ok && y == v.Height-1 {
		v.ScrollViewDown(1)
		v.Compose(Content)
	}
	for _, m := range v.Marks {
		v.moveOneMarkDown(m)
	}
}

func (v *View) moveOneMarkUp(m *mark.Mark) {
	if x, y, ok := v.Screen.FindOffset(m.Offset); ok && y > 0 {
		v.placeMarkOnRow(m, x, y-1)
		return
	}
	v.moveMarkUpOffScreen(m)
}

func (v *View) moveOneMarkDown(m *mark.Mark) {
	if x, y, ok := v.Screen.FindOffset(m.Offset); ok && y < v.Height-1 {
		v.placeMarkOnRow(m, x, y+1)
		return
	}
	v.moveMarkDownOffScreen(m)
}

// placeMarkOnRow moves m to row y at column x, clamped to that row's
// last non-metadata cell (so motion across a short line doesn't run
// past its end).
func (v *View) placeMarkOnRow(m *mark.Mark, x, y int) {
	last := v.Screen.LastNonMetadataX(y)
	if last < 0 {
		return
	}
	if x > last {
		x = last
	}
	cell := v.Screen.Get(x, y)
	if cell.Info.Used {
		m.Offset = cell.Info.Offset
	}
}

// moveMarkUpOffScreen handles Up for a mark that isn't currently
// rendered (e.g. right after CenterAround, or a secondary mark far
// from the main mark): it composes a scratch screen starting a
// screenful earlier, anchored to a line boundary.
func (v *View) moveMarkUpOffScreen(m *mark.Mark) {
	margin := int64(v.Width * v.Height * 4)
	start := m.Offset - margin
	if start < 0 {
		start = 0
	}
	anchor := m.Clone()
	anchor.Offset = start
	anchor.MoveToStartOfLine(v.Buffer, v.Codec)

	scratch := screen.New(v.Width, v.Height+1)
	filter.Compose(v.Buffer, anchor.Offset, scratch, filter.Options{TabWidth: v.Options.TabWidth})
	if sx, sy, ok := scratch.FindOffset(m.Offset); ok && sy > 0 {
		last := scratch.LastNonMetadataX(sy - 1)
		if last >= 0 {
			if sx > last {
				sx = last
			}
			cell := scratch.Get(sx, sy-1)
			if cell.Info.Used {
				m.Offset = cell.Info.Offset
			}
		}
	}
}

// moveMarkDownOffScreen mirrors moveMarkUpOffScreen, anchored at the
// current screen's last visible line.
func (v *View) moveMarkDownOffScreen(m *mark.Mark) {
	first, _, ok := v.Screen.LineRange(v.Height - 1)
	if !ok {
		return
	}
	scratch := screen.New(v.Width, v.Height+1)
	filter.Compose(v.Buffer, first, scratch, filter.Options{TabWidth: v.Options.TabWidth})
	if sx, sy, ok := scratch.FindOffset(m.Offset); ok && sy+1 < scratch.Height {
		last := scratch.LastNonMetadataX(sy + 1)
		if last >= 0 {
			if sx > last {
				sx = last
			}
			cell := scratch.Get(sx, sy+1)
			if cell.Info.Used {
				m.Offset = cell.Info.Offset
			}
		}
	}
}
