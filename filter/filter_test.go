package filter

import (
	"testing"

	"textcore/screen"
)

type fakeBuffer struct{ data []byte }

func (f *fakeBuffer) Read(offset int64, n int, dst []byte) int {
	if offset >= int64(len(f.data)) {
		return 0
	}
	end := offset + int64(n)
	if end > int64(len(f.data)) {
		end = int64(len(f.data))
	}
	return copy(dst, f.data[offset:end])
}
func (f *fakeBuffer) Size() int64 { return int64(len(f.data)) }

func TestRawDataFilterEmitsEndOfStream(t *testing.T) {
	buf := &fakeBuffer{data: []byte("hello world")}
	raw := &RawDataFilter{Buf: buf}
	raw.Setup(DefaultEnv(80, 24))
	out := raw.Run(nil)
	if len(out) < 2 {
		t.Fatalf("expected at least a byte chunk and EndOfStream, got %d items", len(out))
	}
	last := out[len(out)-1]
	if last.Kind != EndOfStream {
		t.Fatalf("expected trailing EndOfStream, got %v", last.Kind)
	}
	if out[0].Kind != ByteArray || string(out[0].Bytes) != "hello world" {
		t.Fatalf("unexpected first item: %+v", out[0])
	}
}

func TestUtf8FilterReplacesInvalidByte(t *testing.T) {
	f := &Utf8Filter{}
	f.Setup(DefaultEnv(80, 24))
	out := f.Run([]IO{{Kind: ByteArray, Bytes: []byte{0x61, 0xff, 0x62}}})
	if len(out) != 3 {
		t.Fatalf("expected 3 decoded code points, got %d", len(out))
	}
	if out[0].RealCP != 'a' || out[2].RealCP != 'b' {
		t.Fatalf("unexpected decode: %+v", out)
	}
	if out[1].RealCP != 0xFFFD {
		t.Fatalf("expected replacement char for invalid byte, got %q", out[1].RealCP)
	}
}

func TestTabFilterExpandsToColumnBoundary(t *testing.T) {
	f := &TabFilter{}
	f.Setup(&Env{TabWidth: 8})
	in := []IO{
		{Kind: TextInfo, DisplayedCP: 'a', Size: 1, HasOffset: true, Offset: 0},
		{Kind: TextInfo, DisplayedCP: '\t', Size: 1, HasOffset: true, Offset: 1},
	}
	out := f.Run(in)
	if len(out) != 1+7 {
		t.Fatalf("expected 'a' plus 7 spaces to reach column 8, got %d items", len(out))
	}
	for i, item := range out[1:] {
		if item.DisplayedCP != ' ' {
			t.Fatalf("item %d not a space: %+v", i, item)
		}
	}
	if out[1].Metadata {
		t.Fatalf("first tab-expansion cell must not be metadata")
	}
	if !out[2].Metadata {
		t.Fatalf("continuation tab-expansion cells must be metadata")
	}
}

func TestComposeFillsScreenFromBuffer(t *testing.T) {
	buf := &fakeBuffer{data: []byte("line one\nline two\n")}
	scr := screen.New(20, 4)
	eof := Compose(buf, 0, scr, Options{TabWidth: 8})
	if !eof {
		t.Fatalf("expected EOF for a buffer smaller than the screen")
	}
	if scr.Get(0, 0).Info.DisplayedCP != 'l' {
		t.Fatalf("expected 'l' at (0,0), got %q", scr.Get(0, 0).Info.DisplayedCP)
	}
	if scr.Get(0, 1).Info.DisplayedCP != 'l' {
		t.Fatalf("expected second line to start at row 1")
	}
}

func TestHighlightSelectionFilterTagsRange(t *testing.T) {
	f := &HighlightSelectionFilter{Start: 1, End: 3, Active: true}
	f.Setup(DefaultEnv(80, 24))
	in := []IO{
		{Kind: TextInfo, DisplayedCP: 'a', HasOffset: true, Offset: 0},
		{Kind: TextInfo, DisplayedCP: 'b', HasOffset: true, Offset: 1},
		{Kind: TextInfo, DisplayedCP: 'c', HasOffset: true, Offset: 2},
		{Kind: TextInfo, DisplayedCP: 'd', HasOffset: true, Offset: 3},
	}
	out := f.Run(in)
	if out[0].Style != (screen.Style{}) || out[3].Style != (screen.Style{}) {
		t.Fatalf("offsets outside the selection must be untouched")
	}
	if out[1].Style != SelectionStyle || out[2].Style != SelectionStyle {
		t.Fatalf("offsets inside the selection must carry SelectionStyle")
	}
}
