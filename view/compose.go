package view

import (
	"textcore/filter"
	"textcore/mark"
	"textcore/screen"
)

// Compose drains the pending action queue, then runs the filter
// pipeline against v.Buffer starting at v.StartOffset into v.Screen,
// applying any screen-overlay filters for pass (§4.7
// "run_compositing_stage_direct"). It returns whether the pipeline hit
// end of buffer.
func (v *View) Compose(pass Pass) bool {
	v.drainActions()

	var eof bool
	if pass == Content || pass == ContentAndScreenOverlay {
		v.Screen.Clear()
		opts := v.Options
		if v.SelectionActive {
			start, end := v.SelectionAnchor, v.MainMark().Offset
			if start > end {
				start, end = end, start
			}
			opts.Selection = &filter.HighlightSelectionFilter{Start: start, End: end, Active: true}
		}
		eof = filter.Compose(v.Buffer, v.StartOffset, v.Screen, opts)
	}
	if pass == ScreenOverlay || pass == ContentAndScreenOverlay {
		if v.Ruler != nil {
			v.Ruler.Apply(v.Screen)
		}
	}
	return eof
}

// ScrollViewUp moves the view's start offset back by n screen lines,
// walking the scrolled-off text line by line with MoveToStartOfLine
// so it lands on a line boundary rather than an arbitrary byte count.
func (v *View) ScrollViewUp(n int) {
	off := v.StartOffset
	for i := 0; i < n && off > 0; i++ {
		off--
		m := mark.New(off)
		m.MoveToStartOfLine(v.Buffer, v.Codec)
		off = m.Offset
	}
	v.StartOffset = off
}

// ScrollViewDown moves the view's start offset forward by n screen
// lines, re-running the pipeline against a scratch screen to find
// where each line ends (§4.7 "scroll_view_down").
func (v *View) ScrollViewDown(n int) {
	scratch := screen.New(v.Width, v.Height+1)
	for i := 0; i < n; i++ {
		scratch.Clear()
		filter.Compose(v.Buffer, v.StartOffset, scratch, filter.Options{TabWidth: v.Options.TabWidth})
		first, _, ok := scratch.LineRange(1)
		if !ok {
			break
		}
		v.StartOffset = first
	}
}

// CenterViewAroundOffset repositions the view so offset lands
// (approximately) on the middle screen row, per center_view_around_offset:
// it walks back Height/2 line starts from offset.
func (v *View) CenterViewAroundOffset(offset int64) {
	half := v.Height / 2
	m := mark.New(offset)
	for i := 0; i < half && m.Offset > 0; i++ {
		m.MoveToStartOfLine(v.Buffer, v.Codec)
		if m.Offset == 0 {
			break
		}
		m.Offset--
		m.MoveToStartOfLine(v.Buffer, v.Codec)
	}
	v.StartOffset = m.Offset
}
