package mark

import "testing"

// fakeBuffer is an in-memory Reader standing in for buffer.Buffer in
// these unit tests.
type fakeBuffer struct {
	data []byte
}

func (f *fakeBuffer) Read(offset int64, n int, dst []byte) int {
	if offset >= int64(len(f.data)) {
		return 0
	}
	end := offset + int64(n)
	if end > int64(len(f.data)) {
		end = int64(len(f.data))
	}
	copied := copy(dst, f.data[offset:end])
	return copied
}

func (f *fakeBuffer) Size() int64 { return int64(len(f.data)) }

// Mirrors original_source's test_marks scenarios for move_backward over
// multi-byte UTF-8 sequences.
func TestMoveBackwardOverMultiByteSequences(t *testing.T) {
	cases := []struct {
		data   []byte
		from   int64
		want   int64
	}{
		{[]byte{0xe2, 0x82, 0xac, 0xe2, 0x82, 0x61}, 4, 3},
		{[]byte{0xe2, 0x82, 0xac, 0xe2, 0x82, 0x61}, 5, 3},
		{[]byte{0xe2, 0x82, 0xac, 0xe2, 0x82, 0x61}, 3, 0},
		{[]byte{0x82, 0xac, 0xe2, 0x82, 0x61}, 4, 2},
		{[]byte{0xac, 0xe2, 0x82, 0x61}, 3, 2},
		{[]byte{0xe2, 0x82, 0x61}, 2, 1},
		{[]byte{0x61}, 0, 0},
		{[]byte{0x82, 0x61}, 1, 0},
	}
	for _, c := range cases {
		buf := &fakeBuffer{data: c.data}
		m := New(c.from)
		m.MoveBackward(buf, Utf8Codec{})
		if m.Offset != c.want {
			t.Fatalf("from=%d: MoveBackward = %d, want %d", c.from, m.Offset, c.want)
		}
	}
}

func TestMoveForwardDecodesOneRune(t *testing.T) {
	buf := &fakeBuffer{data: []byte("h\xe2\x82\xacllo")}
	m := New(0)
	m.MoveForward(buf, Utf8Codec{})
	if m.Offset != 1 {
		t.Fatalf("Offset = %d, want 1", m.Offset)
	}
	m.MoveForward(buf, Utf8Codec{})
	if m.Offset != 4 {
		t.Fatalf("Offset = %d, want 4", m.Offset)
	}
}

func TestMoveToStartAndEndOfLine(t *testing.T) {
	buf := &fakeBuffer{data: []byte("first line\nsecond line\nthird")}
	m := New(18) // inside "second line"
	m.MoveToStartOfLine(buf, Utf8Codec{})
	if m.Offset != 11 {
		t.Fatalf("start of line = %d, want 11", m.Offset)
	}

	m2 := New(11)
	m2.MoveToEndOfLine(buf, Utf8Codec{})
	if m2.Offset != 22 {
		t.Fatalf("end of line = %d, want 22", m2.Offset)
	}
}

func TestMoveToTokenStartAndEnd(t *testing.T) {
	buf := &fakeBuffer{data: []byte("  hello world  ")}
	m := New(5) // inside "hello"
	m.MoveToTokenStart(buf, Utf8Codec{})
	if m.Offset != 2 {
		t.Fatalf("token start = %d, want 2", m.Offset)
	}

	m2 := New(2)
	m2.MoveToTokenEnd(buf, Utf8Codec{})
	if m2.Offset != 7 {
		t.Fatalf("token end = %d, want 7", m2.Offset)
	}
}

func TestRawByteCodecRoundTrip(t *testing.T) {
	buf := &fakeBuffer{data: []byte{0x41, 0x42, 0x43}}
	m := New(0)
	m.MoveForward(buf, RawByteCodec{})
	if m.Offset != 1 {
		t.Fatalf("Offset = %d, want 1", m.Offset)
	}
	m.MoveBackward(buf, RawByteCodec{})
	if m.Offset != 0 {
		t.Fatalf("Offset = %d, want 0", m.Offset)
	}
}
