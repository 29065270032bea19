package filter

import "textcore/screen"

// CharMapFilter consults a per-view char map and color map for each real
// code point; a multi-character expansion's first output carries the
// original size and offset, the rest are metadata-only (§4.6).
type CharMapFilter struct {
	charMap  map[rune]string
	colorMap map[rune]string
}

func (f *CharMapFilter) Setup(env *Env) {
	f.charMap = env.CharMap
	f.colorMap = env.ColorMap
}
func (f *CharMapFilter) Finish() {}

func (f *CharMapFilter) Run(in []IO) []IO {
	out := make([]IO, 0, len(in))
	for _, item := range in {
		if item.Kind != TextInfo {
			out = append(out, item)
			continue
		}
		expansion, ok := f.charMap[item.RealCP]
		if !ok || expansion == "" {
			out = append(out, item)
			continue
		}
		runes := []rune(expansion)
		style := item.Style
		if color, ok := f.colorMap[item.RealCP]; ok {
			style.Color = screen.ColorCode(color)
		}

		first := item
		first.DisplayedCP = runes[0]
		first.Style = style
		out = append(out, first)
		for _, r := range runes[1:] {
			cont := metaIO(TextInfo, style)
			cont.DisplayedCP = r
			out = append(out, cont)
		}
	}
	return out
}
