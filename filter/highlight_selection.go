package filter

import "textcore/screen"

// SelectionStyle is applied to cells inside the active selection range.
var SelectionStyle = screen.Style{Reverse: true}

// HighlightSelectionFilter tags TextInfo items whose offset falls in
// [Start, End) with SelectionStyle, adapted from original_source's
// highlight_selection.rs/highlight_selection_overlay.rs.
type HighlightSelectionFilter struct {
	Start, End int64
	Active     bool
}

func (f *HighlightSelectionFilter) Setup(*Env) {}
func (f *HighlightSelectionFilter) Finish()    {}

func (f *HighlightSelectionFilter) Run(in []IO) []IO {
	if !f.Active || f.End <= f.Start {
		return in
	}
	out := make([]IO, 0, len(in))
	for _, item := range in {
		if item.Kind == TextInfo && item.HasOffset && item.Offset >= f.Start && item.Offset < f.End {
			item.Style = SelectionStyle
		}
		out = append(out, item)
	}
	return out
}
