package filter

import "textcore/screen"

// ScreenFilter converts TextInfo IOs into CodepointInfo entries and
// pushes them to Screen — the pipeline's sole sink (§4.6). On
// EndOfStream it pushes the EOF sentinel and sets the screen's EOF
// flag. On a failed push (screen full) it sets env.Quit.
type ScreenFilter struct {
	Screen *screen.Screen
	env    *Env
}

func (f *ScreenFilter) Setup(env *Env) { f.env = env }
func (f *ScreenFilter) Finish()        {}

// Run pushes every TextInfo item to the screen and returns in
// unchanged (ScreenFilter is a sink, not a transform, but still
// satisfies the Filter shape so it composes into the same pipeline
// slice).
func (f *ScreenFilter) Run(in []IO) []IO {
	for _, item := range in {
		switch item.Kind {
		case TextInfo:
			info := screen.CodepointInfo{
				Metadata:    item.Metadata,
				RealCP:      item.RealCP,
				DisplayedCP: item.DisplayedCP,
				Offset:      item.Offset,
				Size:        item.Size,
				Style:       item.Style,
			}
			if !f.Screen.Push(info) {
				f.env.Quit = true
				return in
			}
		case EndOfStream:
			f.Screen.PushEOF()
		}
	}
	return in
}
