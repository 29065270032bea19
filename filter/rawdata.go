package filter

import "textcore/screen"

// Reader is the minimal Buffer surface RawDataFilter needs.
type Reader interface {
	Read(offset int64, n int, dst []byte) int
	Size() int64
}

// RawDataFilter is the pipeline's sole byte-producing source (§4.6): it
// reads up to width*height*4 bytes in growing chunks, tagging
// EndOfStream at buffer size and StreamLimitReached at env.MaxBytes.
type RawDataFilter struct {
	Buf    Reader
	Offset int64

	env *Env
}

const rawChunkSize = 512

func (f *RawDataFilter) Setup(env *Env) { f.env = env }
func (f *RawDataFilter) Finish()        {}

// Run ignores in (RawDataFilter has no upstream) and reads forward from
// Offset.
func (f *RawDataFilter) Run(_ []IO) []IO {
	var out []IO
	pos := f.Offset
	size := f.Buf.Size()
	budget := f.env.MaxBytes
	read := 0

	chunk := rawChunkSize
	for pos < size {
		want := chunk
		if budget > 0 && read+want > budget {
			want = budget - read
		}
		if want <= 0 {
			out = append(out, metaIO(StreamLimitReached, screen.Style{}))
			return out
		}
		buf := make([]byte, want)
		n := f.Buf.Read(pos, want, buf)
		if n == 0 {
			break
		}
		out = append(out, IO{
			Kind: ByteArray, Bytes: buf[:n], Size: n,
			HasOffset: true, Offset: pos,
		})
		pos += int64(n)
		read += n
		chunk *= 2
	}
	out = append(out, metaIO(EndOfStream, screen.Style{}))
	return out
}
