package filter

import "textcore/screen"

// RulerStyle marks the column guide cells RulerOverlayFilter draws.
var RulerStyle = screen.Style{Dim: true}

// RulerOverlayFilter is a screen-overlay filter (applied after
// composition, like mark/selection overlays): it stamps a vertical
// guide at Column on every row that reaches that far, adapted from
// original_source's text_mode/ruler.rs.
type RulerOverlayFilter struct {
	Column int
}

// Apply draws the ruler column over an already-composed screen.
func (f *RulerOverlayFilter) Apply(s *screen.Screen) {
	if f.Column < 0 || f.Column >= s.Width {
		return
	}
	for y := 0; y < s.Height; y++ {
		cell := s.Get(f.Column, y)
		if !cell.Info.Used {
			continue
		}
		cell.Info.Style.Dim = true
		cell.Info.Style.Color = screen.ColorCode("grey")
		s.Cells[y*s.Width+f.Column] = cell
	}
}
