package filter

import "textcore/screen"

// TrailingSpaceStyle is applied to whitespace runs immediately preceding
// a newline or end of stream.
var TrailingSpaceStyle = screen.Style{Reverse: true}

// ShowTrailingSpacesFilter buffers a run of blank TextInfo cells and, if
// the run turns out to end right before a newline or EndOfStream, tags
// every cell in it with TrailingSpaceStyle before releasing it.
type ShowTrailingSpacesFilter struct {
	run []IO
}

func (f *ShowTrailingSpacesFilter) Setup(*Env) {}
func (f *ShowTrailingSpacesFilter) Finish()    { f.run = nil }

func isBlankCP(r rune) bool {
	return r == ' ' || r == '\t'
}

func (f *ShowTrailingSpacesFilter) Run(in []IO) []IO {
	var out []IO
	flushPlain := func() {
		out = append(out, f.run...)
		f.run = nil
	}
	flushMarked := func() {
		for _, item := range f.run {
			item.Style = TrailingSpaceStyle
			out = append(out, item)
		}
		f.run = nil
	}

	for _, item := range in {
		if item.Kind == TextInfo && isBlankCP(item.DisplayedCP) {
			f.run = append(f.run, item)
			continue
		}
		if item.Kind == TextInfo && item.DisplayedCP == '\n' {
			flushMarked()
			out = append(out, item)
			continue
		}
		if item.Kind == EndOfStream {
			flushMarked()
			out = append(out, item)
			continue
		}
		flushPlain()
		out = append(out, item)
	}
	return out
}
