package mark

import "unicode/utf8"

// Utf8Codec is the default TextCodec (§4.5, §4.6 "Utf8Filter"): on an
// invalid sequence it decodes to U+FFFD and reports a size of 1 so the
// caller restarts one byte forward, matching the replacement-per-byte
// policy the filter pipeline relies on.
type Utf8Codec struct{}

func (Utf8Codec) Decode(dir Direction, b []byte, pos int) (rune, int, int) {
	if dir == Forward {
		if pos >= len(b) {
			return utf8.RuneError, pos, 0
		}
		r, size := utf8.DecodeRune(b[pos:])
		if r == utf8.RuneError && size <= 1 {
			return utf8.RuneError, pos, 1
		}
		return r, pos, size
	}

	if pos <= 0 {
		return utf8.RuneError, 0, 0
	}
	r, size := utf8.DecodeLastRune(b[:pos])
	if r == utf8.RuneError && size <= 1 {
		return utf8.RuneError, pos - 1, 1
	}
	return r, pos - size, size
}

func (Utf8Codec) Encode(cp rune, out *[4]byte) int {
	return utf8.EncodeRune(out[:], cp)
}

func (Utf8Codec) GetPreviousCodepointStart(b []byte, from int) int {
	if from <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRune(b[:from])
	if size == 0 {
		size = 1
	}
	return from - size
}
