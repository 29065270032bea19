package filter

import (
	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"

	"textcore/screen"
)

// HighlightFilter tags each TextInfo item with a syntax-highlighting
// style, tokenizing Source once via chroma and mapping every byte
// offset it covers to the resulting style. Adapted from the teacher's
// Highlight() (tui/highlight_chroma.go), which mapped chroma token
// categories to a small set of ANSI colors for terminal display rather
// than chroma's own RGB theme colors.
type HighlightFilter struct {
	Source string
	Lang   string

	byOffset map[int64]screen.Style
}

func (f *HighlightFilter) Setup(env *Env) {
	if env.Lang != "" {
		f.Lang = env.Lang
	}
	f.byOffset = tokenizeStyles(f.Source, f.Lang)
}

func (f *HighlightFilter) Finish() { f.byOffset = nil }

func (f *HighlightFilter) Run(in []IO) []IO {
	out := make([]IO, 0, len(in))
	for _, item := range in {
		if item.Kind == TextInfo && item.HasOffset {
			if style, ok := f.byOffset[item.Offset]; ok {
				item.Style = style
			}
		}
		out = append(out, item)
	}
	return out
}

// tokenStyle maps a chroma token category onto a small terminal-safe
// ANSI palette, the same mapping the teacher's Highlight() used instead
// of chroma's RGB theme colors.
func tokenStyle(entry chroma.StyleEntry, category chroma.TokenType) screen.Style {
	s := screen.Style{
		Bold:      entry.Bold == chroma.Yes,
		Underline: entry.Underline == chroma.Yes,
	}
	switch category {
	case chroma.Keyword:
		s.Color = screen.ColorCode("magenta")
		s.Bold = true
	case chroma.Name:
		s.Color = screen.ColorCode("white")
	case chroma.LiteralString:
		s.Color = screen.ColorCode("green")
	case chroma.LiteralNumber:
		s.Color = screen.ColorCode("cyan")
	case chroma.Comment:
		s.Color = screen.ColorCode("grey")
		s.Dim = true
	case chroma.Operator, chroma.Punctuation:
		s.Color = screen.ColorCode("white")
	}
	return s
}

// tokenizeStyles tokenizes source with lang's lexer (or the fallback
// lexer) and returns a map from byte offset to the style covering it.
func tokenizeStyles(source, lang string) map[int64]screen.Style {
	out := make(map[int64]screen.Style)
	if source == "" {
		return out
	}

	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return out
	}

	var offset int64
	for _, tok := range iterator.Tokens() {
		entry := style.Get(tok.Type)
		s := tokenStyle(entry, tok.Type.Category())
		for i := 0; i < len(tok.Value); {
			out[offset] = s
			offset++
			i++
		}
	}
	return out
}
