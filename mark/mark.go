package mark

// Reader is the minimal Buffer surface mark motion needs. A mark is
// bound to a buffer at each call site and never stores one (§4.5).
type Reader interface {
	Read(offset int64, n int, dst []byte) int
	Size() int64
}

// Mark is a single byte offset into some Buffer.
type Mark struct {
	Offset int64
}

// New returns a Mark positioned at offset.
func New(offset int64) *Mark {
	return &Mark{Offset: offset}
}

// Clone returns an independent copy, used when the compositor spawns
// additional cursors from the main mark.
func (m *Mark) Clone() *Mark {
	return &Mark{Offset: m.Offset}
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isEOL(r rune) bool {
	return r == '\n' || r == '\r'
}

// MoveForward decodes one code point at the mark's offset and advances
// past it.
func (m *Mark) MoveForward(buf Reader, codec TextCodec) {
	var tmp [4]byte
	n := buf.Read(m.Offset, len(tmp), tmp[:])
	if n == 0 {
		return
	}
	_, _, size := codec.Decode(Forward, tmp[:n], 0)
	if size == 0 {
		return
	}
	m.Offset += int64(size)
}

// MoveBackward finds the previous code point start and moves there.
func (m *Mark) MoveBackward(buf Reader, codec TextCodec) {
	if m.Offset == 0 {
		return
	}
	base := m.Offset - 4
	if base < 0 {
		base = 0
	}
	relative := int(m.Offset - base)

	var tmp [4]byte
	n := buf.Read(base, relative, tmp[:relative])
	if n == 0 {
		return
	}
	start := codec.GetPreviousCodepointStart(tmp[:n], n)
	delta := n - start
	m.Offset -= int64(delta)
}

// MoveToStartOfLine steps backward decoding code points until it passes
// a '\n' (consuming a preceding '\r' too) or reaches BOF.
func (m *Mark) MoveToStartOfLine(buf Reader, codec TextCodec) {
	if m.Offset == 0 {
		return
	}
	var prevCP rune
	var prevSize int

	for {
		base := m.Offset - 4
		if base < 0 {
			base = 0
		}
		relative := int(m.Offset - base)

		var tmp [4]byte
		n := buf.Read(base, relative, tmp[:relative])
		if n == 0 {
			return
		}
		cp, cpStart, size := codec.Decode(Backward, tmp[:n], n)
		delta := n - cpStart
		m.Offset -= int64(delta)

		switch cp {
		case '\n':
			m.Offset += int64(size)
			return
		case '\r':
			if prevCP == '\n' {
				m.Offset += int64(size + prevSize)
			} else {
				m.Offset += int64(size)
			}
			return
		}
		if m.Offset == 0 {
			return
		}
		prevCP, prevSize = cp, size
	}
}

// MoveToEndOfLine steps forward until '\n', '\r', or EOF, leaving the
// offset on that byte (or at EOF).
func (m *Mark) MoveToEndOfLine(buf Reader, codec TextCodec) {
	maxOffset := buf.Size()
	for m.Offset < maxOffset {
		var tmp [4]byte
		n := buf.Read(m.Offset, len(tmp), tmp[:])
		if n == 0 {
			break
		}
		cp, _, size := codec.Decode(Forward, tmp[:n], 0)
		if size == 0 || isEOL(cp) {
			break
		}
		m.Offset += int64(size)
	}
}

// MoveToTokenStart skips blanks moving backward, then continues backward
// until a blank or BOF is reached.
func (m *Mark) MoveToTokenStart(buf Reader, codec TextCodec) {
	for m.Offset > 0 {
		var tmp [4]byte
		n := buf.Read(m.Offset-1, 1, tmp[:1])
		if n == 0 {
			break
		}
		if !isBlank(rune(tmp[0])) {
			break
		}
		m.MoveBackward(buf, codec)
	}
	for m.Offset > 0 {
		var tmp [4]byte
		n := buf.Read(m.Offset-1, 1, tmp[:1])
		if n == 0 || isBlank(rune(tmp[0])) {
			break
		}
		m.MoveBackward(buf, codec)
	}
}

// MoveToTokenEnd skips blanks moving forward, then continues forward
// until a blank or EOF is reached.
func (m *Mark) MoveToTokenEnd(buf Reader, codec TextCodec) {
	max := buf.Size()
	for m.Offset < max {
		var tmp [1]byte
		n := buf.Read(m.Offset, 1, tmp[:])
		if n == 0 || !isBlank(rune(tmp[0])) {
			break
		}
		m.MoveForward(buf, codec)
	}
	for m.Offset < max {
		var tmp [1]byte
		n := buf.Read(m.Offset, 1, tmp[:])
		if n == 0 || isBlank(rune(tmp[0])) {
			break
		}
		m.MoveForward(buf, codec)
	}
}
