package mode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"textcore/buffer"
	"textcore/view"
)

func openTestBuffer(t *testing.T, content []byte) *buffer.Buffer {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, content, 0644))
	b, err := buffer.BufferBuilder{Name: "doc", Path: path, Mode: buffer.ReadWrite, UseLog: true}.Build()
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestDispatcherInsertAndUndo(t *testing.T) {
	b := openTestBuffer(t, []byte("abc"))
	v := view.New(b, 0, 20, 5)
	v.MainMark().Offset = 3
	d := New(v)

	require.NoError(t, d.Run(InsertChar, "XYZ"))
	dst := make([]byte, 6)
	n := b.Read(0, 6, dst)
	require.Equal(t, "abcXYZ", string(dst[:n]))

	require.NoError(t, d.Run(Undo, ""))
	dst2 := make([]byte, 3)
	n2 := b.Read(0, 3, dst2)
	require.Equal(t, "abc", string(dst2[:n2]))
}

func TestDispatcherMoveLeftRight(t *testing.T) {
	b := openTestBuffer(t, []byte("hello"))
	v := view.New(b, 0, 20, 5)
	v.MainMark().Offset = 2
	d := New(v)

	require.NoError(t, d.Run(MoveRight, ""))
	require.Equal(t, int64(3), v.MainMark().Offset)

	require.NoError(t, d.Run(MoveLeft, ""))
	require.NoError(t, d.Run(MoveLeft, ""))
	require.Equal(t, int64(1), v.MainMark().Offset)
}

func TestDispatcherCloneMarkDown(t *testing.T) {
	b := openTestBuffer(t, []byte("hello"))
	v := view.New(b, 0, 20, 5)
	d := New(v)

	require.Len(t, v.Marks, 1)
	require.NoError(t, d.Run(CloneMarkDown, ""))
	require.Len(t, v.Marks, 2)
}
