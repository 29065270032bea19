package filter

import "textcore/screen"

// Options configures which optional stages Compose wires into the
// pipeline between UnicodeToTextFilter and ScreenFilter.
type Options struct {
	TabWidth            int
	CharMap             map[rune]string
	ColorMap            map[rune]string
	ShowTrailingSpaces  bool
	WordWrap            bool
	Highlight           bool
	HighlightSource     string
	HighlightLang       string
	Selection           *HighlightSelectionFilter
	DisableUtf8         bool
}

// Compose runs the full content pipeline once (§4.6's data flow:
// Buffer -> RawDataFilter -> Utf8Filter -> UnicodeToTextFilter ->
// {Highlight, Tab, CharMap, WordWrap, ...} -> ScreenFilter -> Screen)
// starting at offset, pushing into scr until the screen is full or the
// buffer is exhausted. Returns whether the pipeline hit EOF.
func Compose(buf Reader, offset int64, scr *screen.Screen, opts Options) bool {
	env := DefaultEnv(scr.Width, scr.Height)
	env.TabWidth = opts.TabWidth
	env.CharMap = opts.CharMap
	env.ColorMap = opts.ColorMap
	if env.TabWidth <= 0 {
		env.TabWidth = 8
	}

	raw := &RawDataFilter{Buf: buf, Offset: offset}

	var decode Filter
	if opts.DisableUtf8 {
		decode = TextCodecFilter{}
	} else {
		decode = &Utf8Filter{}
	}

	toText := &UnicodeToTextFilter{Offset: offset}

	stages := []Filter{raw, decode, toText}

	if opts.Highlight {
		stages = append(stages, &HighlightFilter{Source: opts.HighlightSource, Lang: opts.HighlightLang})
	}
	if opts.Selection != nil {
		stages = append(stages, opts.Selection)
	}
	stages = append(stages, &TabFilter{})
	if opts.CharMap != nil {
		stages = append(stages, &CharMapFilter{})
	}
	if opts.WordWrap {
		stages = append(stages, &WordWrapFilter{})
	}
	if opts.ShowTrailingSpaces {
		stages = append(stages, &ShowTrailingSpacesFilter{})
	}

	sink := &ScreenFilter{Screen: scr}
	stages = append(stages, sink)

	for _, s := range stages {
		s.Setup(env)
	}
	defer func() {
		for _, s := range stages {
			s.Finish()
		}
	}()

	io := raw.Run(nil)
	for _, s := range stages[1:] {
		io = s.Run(io)
		if env.Quit {
			break
		}
	}
	return scr.EOF()
}
