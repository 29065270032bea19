package filter

import "golang.org/x/text/width"

// WordWrapFilter maintains a running column and the index of the last
// seen blank; when the next cell would overflow the screen width it
// splits at the last blank (emitting a synthetic, metadata-only
// line-break) or hard-breaks if there was none. Column resets on '\n'
// (§4.6).
type WordWrapFilter struct {
	screenWidth int
	col         int
	lastBlank   int // index into the pending slice, -1 if none seen this line
	pending     []IO
}

func (f *WordWrapFilter) Setup(env *Env) {
	f.screenWidth = env.Width
	f.lastBlank = -1
}
func (f *WordWrapFilter) Finish() {
	f.pending = nil
	f.col = 0
	f.lastBlank = -1
}

// runeWidth treats East-Asian wide/fullwidth runes as occupying two
// columns and everything else as one.
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

func (f *WordWrapFilter) Run(in []IO) []IO {
	var out []IO
	flush := func() {
		out = append(out, f.pending...)
		f.pending = nil
		f.lastBlank = -1
	}

	for _, item := range in {
		if item.Kind != TextInfo {
			flush()
			out = append(out, item)
			continue
		}
		if item.DisplayedCP == '\n' {
			f.pending = append(f.pending, item)
			flush()
			f.col = 0
			continue
		}

		w := runeWidth(item.DisplayedCP)
		if f.col+w > f.screenWidth {
			if f.lastBlank >= 0 {
				// Split at the last blank: everything after it moves to
				// the next line, with a synthetic break inserted there.
				head := f.pending[:f.lastBlank+1]
				tail := append([]IO(nil), f.pending[f.lastBlank+1:]...)
				out = append(out, head...)
				out = append(out, metaIO(TextInfo, head[len(head)-1].Style))
				f.pending = tail
				f.col = 0
				for _, t := range tail {
					f.col += runeWidth(t.DisplayedCP)
				}
				f.lastBlank = -1
			} else {
				flush()
				out = append(out, metaIO(TextInfo, item.Style))
				f.col = 0
			}
		}

		if item.DisplayedCP == ' ' || item.DisplayedCP == '\t' {
			f.lastBlank = len(f.pending)
		}
		f.pending = append(f.pending, item)
		f.col += w
	}
	flush()
	return out
}
