package filter

// TabFilter replaces '\t' with enough spaces to reach the next multiple
// of env.TabWidth columns; the first replacement keeps the original
// size/offset, the rest are metadata-only continuations (§4.6).
type TabFilter struct {
	col      int
	tabWidth int
}

func (f *TabFilter) Setup(env *Env) {
	f.tabWidth = env.TabWidth
	if f.tabWidth <= 0 {
		f.tabWidth = 8
	}
}
func (f *TabFilter) Finish() { f.col = 0 }

func (f *TabFilter) Run(in []IO) []IO {
	out := make([]IO, 0, len(in))
	for _, item := range in {
		if item.Kind != TextInfo {
			out = append(out, item)
			continue
		}
		if item.DisplayedCP == '\n' {
			f.col = 0
			out = append(out, item)
			continue
		}
		if item.DisplayedCP != '\t' {
			f.col++
			out = append(out, item)
			continue
		}

		spaces := f.tabWidth - (f.col % f.tabWidth)
		first := item
		first.DisplayedCP = ' '
		out = append(out, first)
		for i := 1; i < spaces; i++ {
			out = append(out, metaIO(TextInfo, item.Style))
			out[len(out)-1].DisplayedCP = ' '
			out[len(out)-1].RealCP = '\t'
		}
		f.col += spaces
	}
	return out
}
