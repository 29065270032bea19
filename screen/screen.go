// Package screen implements Screen, ScreenCell and CodepointInfo (§3,
// §4.6 "ScreenFilter"): the width*height matrix the filter pipeline
// renders into, with per-line and whole-screen offset bookkeeping and
// an EOF flag.
package screen

// CodepointInfo is what a ScreenCell wraps. The fixed invariant
// `metadata == true <=> size == 0` holds for every pushed cell: a
// metadata cell is a continuation (the rest of a tab expansion, a
// char-map substitution, a synthetic line-break) that carries no byte
// offset of its own.
type CodepointInfo struct {
	Used        bool
	Metadata    bool
	RealCP      rune
	DisplayedCP rune
	Offset      int64 // valid only when !Metadata
	Size        int
	SkipRender  bool
	Style       Style
}

// ScreenCell is one matrix entry.
type ScreenCell struct {
	Info CodepointInfo
}

type lineRange struct {
	used                    bool
	hasOffset               bool
	firstOffset, lastOffset int64
	firstIndex, lastIndex   int
}

// Screen is the width*height cell matrix that ScreenFilter pushes into.
type Screen struct {
	Width, Height int
	Cells         []ScreenCell

	lines []lineRange

	haveOffsets bool
	firstOffset int64
	lastOffset  int64

	x, y int
	eof  bool
}

// New allocates an empty width*height screen.
func New(width, height int) *Screen {
	s := &Screen{Width: width, Height: height}
	s.Cells = make([]ScreenCell, width*height)
	s.lines = make([]lineRange, height)
	return s
}

// Clear resets the screen to empty and repositions the push cursor at
// the origin, ready for the next compose cycle.
func (s *Screen) Clear() {
	for i := range s.Cells {
		s.Cells[i] = ScreenCell{}
	}
	for i := range s.lines {
		s.lines[i] = lineRange{}
	}
	s.haveOffsets = false
	s.x, s.y = 0, 0
	s.eof = false
}

// Resize reallocates the screen for a new size, discarding content.
func (s *Screen) Resize(width, height int) {
	s.Width, s.Height = width, height
	s.Cells = make([]ScreenCell, width*height)
	s.lines = make([]lineRange, height)
	s.Clear()
}

// Full reports whether the push cursor has run off the bottom of the
// screen — ScreenFilter sets quit=true in its environment when this
// happens.
func (s *Screen) Full() bool {
	return s.y >= s.Height
}

// EOF reports whether PushEOF has been called for this compose cycle.
func (s *Screen) EOF() bool { return s.eof }

// Push places info at the current cursor and advances it, wrapping to
// the next row on an explicit '\n' or when the row is full. Returns
// false if the screen was already full before this call.
func (s *Screen) Push(info CodepointInfo) bool {
	if s.Full() {
		return false
	}
	idx := s.y*s.Width + s.x
	info.Used = true
	s.Cells[idx] = ScreenCell{Info: info}

	line := &s.lines[s.y]
	if !line.used {
		line.used = true
		line.firstIndex = idx
	}
	line.lastIndex = idx
	if !info.Metadata {
		if !line.hasOffset {
			line.firstOffset = info.Offset
			line.hasOffset = true
		}
		line.lastOffset = info.Offset

		if !s.haveOffsets {
			s.firstOffset = info.Offset
			s.haveOffsets = true
		}
		s.lastOffset = info.Offset
	}

	if info.DisplayedCP == '\n' || s.x+1 >= s.Width {
		s.x = 0
		s.y++
	} else {
		s.x++
	}
	return true
}

// PushEOF appends the '$' EOF sentinel cell (as far as there is room)
// and sets the screen's EOF flag, per ScreenFilter's EndOfStream handling.
func (s *Screen) PushEOF() {
	s.eof = true
	if !s.Full() {
		s.Push(CodepointInfo{DisplayedCP: '$', RealCP: '$', Size: 0, Metadata: true})
	}
}

// Range returns the whole screen's first/last non-metadata offsets and
// whether any non-metadata cell has been pushed yet.
func (s *Screen) Range() (first, last int64, ok bool) {
	return s.firstOffset, s.lastOffset, s.haveOffsets
}

// LineRange returns line y's first/last non-metadata offsets.
func (s *Screen) LineRange(y int) (first, last int64, ok bool) {
	if y < 0 || y >= s.Height || !s.lines[y].hasOffset {
		return 0, 0, false
	}
	l := s.lines[y]
	return l.firstOffset, l.lastOffset, true
}

// Get returns the cell at (x, y), or the zero cell if out of range.
func (s *Screen) Get(x, y int) ScreenCell {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return ScreenCell{}
	}
	return s.Cells[y*s.Width+x]
}

// FindOffset locates the (x, y) of the first cell carrying offset,
// scanning row by row. Used by the view's on-screen mark motion to
// convert a mark's byte offset into screen coordinates.
func (s *Screen) FindOffset(offset int64) (x, y int, ok bool) {
	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			c := s.Get(col, row)
			if c.Info.Used && !c.Info.Metadata && c.Info.Offset == offset {
				return col, row, true
			}
		}
	}
	return 0, 0, false
}

// LastNonMetadataX returns the column of the last non-metadata cell on
// row y, or -1 if the row is empty or out of range.
func (s *Screen) LastNonMetadataX(y int) int {
	if y < 0 || y >= s.Height {
		return -1
	}
	last := -1
	for x := 0; x < s.Width; x++ {
		c := s.Get(x, y)
		if c.Info.Used && !c.Info.Metadata {
			last = x
		}
	}
	return last
}
