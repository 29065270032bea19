package screen

import "testing"

func TestPushAdvancesCursorAndWraps(t *testing.T) {
	s := New(4, 2)
	for i, r := range []rune("abcdef") {
		ok := s.Push(CodepointInfo{RealCP: r, DisplayedCP: r, Size: 1, Offset: int64(i)})
		if !ok {
			t.Fatalf("push %d failed unexpectedly", i)
		}
	}
	// "abcd" fills row 0, "ef" starts row 1.
	if s.Get(0, 0).Info.DisplayedCP != 'a' || s.Get(3, 0).Info.DisplayedCP != 'd' {
		t.Fatalf("row 0 mismatch")
	}
	if s.Get(0, 1).Info.DisplayedCP != 'e' || s.Get(1, 1).Info.DisplayedCP != 'f' {
		t.Fatalf("row 1 mismatch")
	}
	first, last, ok := s.Range()
	if !ok || first != 0 || last != 5 {
		t.Fatalf("Range() = %d,%d,%v", first, last, ok)
	}
}

func TestPushNewlineWrapsEarly(t *testing.T) {
	s := New(10, 3)
	s.Push(CodepointInfo{DisplayedCP: 'a', Offset: 0, Size: 1})
	s.Push(CodepointInfo{DisplayedCP: '\n', Offset: 1, Size: 1})
	s.Push(CodepointInfo{DisplayedCP: 'b', Offset: 2, Size: 1})
	if s.Get(0, 0).Info.DisplayedCP != 'a' {
		t.Fatalf("expected 'a' at (0,0)")
	}
	if s.Get(0, 1).Info.DisplayedCP != 'b' {
		t.Fatalf("expected 'b' at (0,1) after newline wrap")
	}
}

func TestFullStopsPush(t *testing.T) {
	s := New(1, 1)
	if ok := s.Push(CodepointInfo{DisplayedCP: 'x', Size: 1}); !ok {
		t.Fatalf("first push should succeed")
	}
	if !s.Full() {
		t.Fatalf("screen should be full after wrapping past the only cell")
	}
	if ok := s.Push(CodepointInfo{DisplayedCP: 'y', Size: 1}); ok {
		t.Fatalf("push on full screen should fail")
	}
}

func TestPushEOFSetsFlag(t *testing.T) {
	s := New(4, 1)
	s.Push(CodepointInfo{DisplayedCP: 'a', Size: 1})
	s.PushEOF()
	if !s.EOF() {
		t.Fatalf("expected EOF flag set")
	}
	if s.Get(1, 0).Info.DisplayedCP != '$' {
		t.Fatalf("expected '$' sentinel at (1,0)")
	}
}

func TestFindOffsetAndLastNonMetadataX(t *testing.T) {
	s := New(5, 1)
	s.Push(CodepointInfo{DisplayedCP: 'a', Offset: 10, Size: 1})
	s.Push(CodepointInfo{DisplayedCP: 0, Offset: 0, Size: 0, Metadata: true})
	s.Push(CodepointInfo{DisplayedCP: 'b', Offset: 11, Size: 1})

	x, y, ok := s.FindOffset(11)
	if !ok || x != 2 || y != 0 {
		t.Fatalf("FindOffset(11) = %d,%d,%v", x, y, ok)
	}
	if s.LastNonMetadataX(0) != 2 {
		t.Fatalf("LastNonMetadataX = %d, want 2", s.LastNonMetadataX(0))
	}
}

func TestClearResetsState(t *testing.T) {
	s := New(3, 2)
	s.Push(CodepointInfo{DisplayedCP: 'a', Offset: 0, Size: 1})
	s.Clear()
	if _, _, ok := s.Range(); ok {
		t.Fatalf("expected no range after Clear")
	}
	if s.Get(0, 0).Info.Used {
		t.Fatalf("expected cleared cell")
	}
}
