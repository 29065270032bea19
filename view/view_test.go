package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"textcore/buffer"
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

func TestComposeFillsScreen(t *testing.T) {
	b := openTestBuffer(t, []byte("line one\nline two\nline three\n"))
	v := New(b, 0, 20, 5)

	eof := v.Compose(ContentAndScreenOverlay)
	require.True(t, eof)
	require.Equal(t, 'l', v.Screen.Get(0, 0).Info.DisplayedCP)
	require.Equal(t, 'l', v.Screen.Get(0, 1).Info.DisplayedCP)
}

func TestInsertCodepointsAppliesToEveryMark(t *testing.T) {
	b := openTestBuffer(t, []byte("hello world"))
	v := New(b, 0, 20, 5)
	v.Marks = append(v.Marks, v.MainMark().Clone())
	v.Marks[1].Offset = 6 // sits at the start of "world"

	require.NoError(t, v.InsertCodepoints("XYZ"))

	// Each mark gets its own "XYZ" inserted at its own (growth-adjusted)
	// offset, landing just past what it inserted.
	require.Equal(t, int64(3), v.MainMark().Offset)
	require.Equal(t, int64(12), v.Marks[1].Offset)

	dst := make([]byte, 17)
	n := b.Read(0, 17, dst)
	require.Equal(t, "XYZhello XYZworld", string(dst[:n]))
}

func TestRemovePreviousCodepointAppliesToEveryMark(t *testing.T) {
	b := openTestBuffer(t, []byte("hello world"))
	v := New(b, 0, 20, 5)
	v.MainMark().Offset = 5
	v.Marks = append(v.Marks, v.MainMark().Clone())
	v.Marks[1].Offset = 8

	require.NoError(t, v.RemovePreviousCodepoint())

	// Both marks lose the code point just behind them, not only the
	// main one.
	require.Equal(t, int64(4), v.MainMark().Offset)
	require.Equal(t, int64(6), v.Marks[1].Offset)

	dst := make([]byte, 9)
	n := b.Read(0, 9, dst)
	require.Equal(t, "hell wrld", string(dst[:n]))
}

func TestCutAndPasteRoundTrip(t *testing.T) {
	b := openTestBuffer(t, []byte("hello world\nsecond line"))
	v := New(b, 0, 20, 5)

	require.NoError(t, v.CutToEndOfLine())
	dst := make([]byte, 12)
	n := b.Read(0, 12, dst)
	require.Equal(t, "\nsecond line", string(dst[:n]))

	v.MainMark().Offset = b.Size()
	require.NoError(t, v.Paste())

	dst2 := make([]byte, int(b.Size()))
	n2 := b.Read(0, len(dst2), dst2)
	require.Equal(t, "\nsecond linehello world", string(dst2[:n2]))
}

func TestMultiMarkCutAndPastePairsSlotsByPosition(t *testing.T) {
	b := openTestBuffer(t, []byte("aaa\nbbb\nccc"))
	v := New(b, 0, 20, 5)
	v.Marks = append(v.Marks, v.MainMark().Clone())
	v.Marks[1].Offset = 4 // start of "bbb"

	require.NoError(t, v.CutToEndOfLine())
	require.Len(t, v.copyBuffer, 2)
	require.Equal(t, "aaa", string(v.copyBuffer[0]))
	require.Equal(t, "bbb", string(v.copyBuffer[1]))

	require.NoError(t, v.Paste())

	// Two marks, two copy-buffer slots: each mark gets its own cut text
	// back, reconstructing the original content exactly.
	dst := make([]byte, int(b.Size()))
	n := b.Read(0, len(dst), dst)
	require.Equal(t, "aaa\nbbb\nccc", string(dst[:n]))
	require.Equal(t, int64(3), v.MainMark().Offset)
	require.Equal(t, int64(7), v.Marks[1].Offset)
}

func TestPasteConcatenatesWhenSlotCountDoesNotMatchMarks(t *testing.T) {
	b := openTestBuffer(t, []byte("aaa\nbbb\nccc"))
	v := New(b, 0, 20, 5)
	v.Marks = append(v.Marks, v.MainMark().Clone())
	v.Marks[1].Offset = 4 // start of "bbb"

	require.NoError(t, v.CutToEndOfLine()) // 2 marks -> 2 slots
	require.Len(t, v.copyBuffer, 2)

	// Drop back to a single mark before pasting: the slot count (2) no
	// longer matches the mark count (1), so the whole copy buffer is
	// concatenated and pasted as one block.
	v.Marks = v.Marks[:1]
	v.MainMarkIndex = 0
	v.MainMark().Offset = 0

	require.NoError(t, v.Paste())

	dst := make([]byte, int(b.Size()))
	n := b.Read(0, len(dst), dst)
	require.Equal(t, "aaabbb\n\nccc", string(dst[:n]))
}

func TestUndoRestoresMarkOffsetFromTag(t *testing.T) {
	b := openTestBuffer(t, []byte("abc"))
	v := New(b, 0, 20, 5)

	v.MainMark().Offset = 3
	v.saveMarksTag()
	require.NoError(t, v.InsertCodepoints("def"))
	require.Equal(t, int64(6), v.MainMark().Offset)

	require.NoError(t, v.Undo())
	require.Equal(t, int64(3), v.MainMark().Offset)

	dst := make([]byte, 3)
	n := b.Read(0, 3, dst)
	require.Equal(t, "abc", string(dst[:n]))
}

func TestCheckMarksClampsToBufferSize(t *testing.T) {
	b := openTestBuffer(t, []byte("abc"))
	v := New(b, 0, 20, 5)
	v.Marks = append(v.Marks, v.MainMark().Clone())
	v.Marks[1].Offset = 999

	v.checkMarks()

	require.Equal(t, int64(3), v.Marks[1].Offset)
}

func TestDedupMarksKeepsMainMarkSlot(t *testing.T) {
	b := openTestBuffer(t, []byte("abcdef"))
	v := New(b, 0, 20, 5)
	v.MainMark().Offset = 2
	v.Marks = append(v.Marks, v.MainMark().Clone())
	v.Marks = append(v.Marks, v.MainMark().Clone())
	v.Marks[1].Offset = 2
	v.Marks[2].Offset = 5

	v.dedupMarks()

	require.Len(t, v.Marks, 2)
	require.Equal(t, int64(2), v.MainMark().Offset)
}
