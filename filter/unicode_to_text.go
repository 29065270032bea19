package filter

// UnicodeToTextFilter assigns the running byte offset to each decoded
// code point, producing TextInfo items with real_cp == displayed_cp and
// the code point's byte length as size (§4.6).
type UnicodeToTextFilter struct {
	Offset int64
}

func (f *UnicodeToTextFilter) Setup(*Env) {}
func (f *UnicodeToTextFilter) Finish()    {}

func (f *UnicodeToTextFilter) Run(in []IO) []IO {
	out := make([]IO, 0, len(in))
	for _, item := range in {
		if item.Kind != UnicodeArray {
			out = append(out, item)
			continue
		}
		out = append(out, IO{
			Kind: TextInfo, RealCP: item.RealCP, DisplayedCP: item.RealCP,
			Size: item.Size, HasOffset: true, Offset: f.Offset,
		})
		f.Offset += int64(item.Size)
	}
	return out
}
