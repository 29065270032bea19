package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func openBuffer(t *testing.T, content []byte) *Buffer {
	t.Helper()
	path := writeTempFile(t, content)
	b, err := BufferBuilder{Name: "doc", Path: path, Mode: ReadWrite, UseLog: true}.Build()
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestInsertReadRoundTrip(t *testing.T) {
	b := openBuffer(t, []byte("hello world"))

	require.NoError(t, b.Insert(5, []byte(" there")))
	require.Equal(t, int64(17), b.Size())

	dst := make([]byte, 17)
	n := b.Read(0, 17, dst)
	require.Equal(t, 17, n)
	require.Equal(t, "hello there world", string(dst))
	require.True(t, b.Changed())
}

func TestRemoveLogsAndUndoRestores(t *testing.T) {
	b := openBuffer(t, []byte("hello there world"))

	removed, err := b.Remove(5, 6)
	require.NoError(t, err)
	require.Equal(t, " there", string(removed))

	dst := make([]byte, 11)
	n := b.Read(0, 11, dst)
	require.Equal(t, "hello world", string(dst[:n]))

	off, ok, err := b.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(11), off)

	dst2 := make([]byte, 17)
	n2 := b.Read(0, 17, dst2)
	require.Equal(t, "hello there world", string(dst2[:n2]))
}

func TestUndoRedoRoundTripNrChanges(t *testing.T) {
	b := openBuffer(t, []byte("abc"))

	require.NoError(t, b.Insert(3, []byte("def")))
	before := b.NrChanges().Peek()

	_, ok, err := b.Undo()
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = b.Redo()
	require.NoError(t, err)
	require.True(t, ok)

	after := b.NrChanges().Peek()
	require.Greater(t, after, before-1)

	dst := make([]byte, 6)
	n := b.Read(0, 6, dst)
	require.Equal(t, "abcdef", string(dst[:n]))
}

func TestTagUndoUntilTagRestoresMarkOffsets(t *testing.T) {
	b := openBuffer(t, []byte("abc"))

	b.Tag(1, []int64{0})
	require.NoError(t, b.Insert(3, []byte("d")))
	require.NoError(t, b.Insert(4, []byte("e")))

	offsets, err := b.UndoUntilTag()
	require.NoError(t, err)
	require.Equal(t, []int64{0}, offsets)

	dst := make([]byte, 3)
	n := b.Read(0, 3, dst)
	require.Equal(t, "abc", string(dst[:n]))
}

func TestReadOnlyBufferRejectsMutation(t *testing.T) {
	path := writeTempFile(t, []byte("abc"))
	b, err := BufferBuilder{Name: "ro", Path: path, Mode: ReadOnly}.Build()
	require.NoError(t, err)
	defer b.Close()

	err = b.Insert(0, []byte("x"))
	require.Error(t, err)
}

func TestFindLocatesPattern(t *testing.T) {
	b := openBuffer(t, []byte("the quick brown fox jumps over the lazy dog"))
	idx := b.Find(0, []byte("fox"))
	require.Equal(t, int64(16), idx)

	idx = b.Find(20, []byte("fox"))
	require.Equal(t, int64(-1), idx)
}

func TestSetCacheServesReads(t *testing.T) {
	b := openBuffer(t, []byte("abcdefghij"))
	require.NoError(t, b.SetCache(2, 4))

	dst := make([]byte, 4)
	n := b.Read(2, 4, dst)
	require.Equal(t, "cdef", string(dst[:n]))
}
