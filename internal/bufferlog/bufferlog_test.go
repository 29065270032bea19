package bufferlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTruncatesRedoTail(t *testing.T) {
	l := New()
	l.Add(Entry{Op: Insert, Offset: 0, Data: []byte("a")})
	l.Add(Entry{Op: Insert, Offset: 1, Data: []byte("b")})
	_, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, l.Pos())

	l.Add(Entry{Op: Insert, Offset: 1, Data: []byte("c")})
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2, l.Pos())

	_, ok = l.Redo()
	assert.False(t, ok)
}

func TestUndoRedoInvertsEntries(t *testing.T) {
	l := New()
	l.Add(Entry{Op: Insert, Offset: 3, Data: []byte("xyz")})

	e, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, Remove, e.Op)
	assert.Equal(t, int64(3), e.Offset)
	assert.Equal(t, []byte("xyz"), e.Data)

	e, ok = l.Redo()
	require.True(t, ok)
	assert.Equal(t, Insert, e.Op)
	assert.Equal(t, []byte("xyz"), e.Data)
}

func TestUndoUntilTagStopsAtTag(t *testing.T) {
	l := New()
	l.Add(Entry{Op: Insert, Offset: 0, Data: []byte("a")})
	l.Add(Entry{Op: Tag, MarkOffsets: []int64{1}})
	l.Add(Entry{Op: Insert, Offset: 1, Data: []byte("b")})
	l.Add(Entry{Op: Insert, Offset: 2, Data: []byte("c")})

	var undone []Entry
	l.UndoUntilTag(func(e Entry) bool {
		undone = append(undone, e)
		return true
	})

	require.Len(t, undone, 2)
	assert.Equal(t, Remove, undone[0].Op)
	assert.Equal(t, []byte("c"), undone[0].Data)
	assert.Equal(t, Remove, undone[1].Op)
	assert.Equal(t, []byte("b"), undone[1].Data)

	offsets, ok := l.GetTagOffsets()
	require.True(t, ok)
	assert.Equal(t, []int64{1}, offsets)
}

func TestRedoUntilTagStopsAtNextTag(t *testing.T) {
	l := New()
	l.Add(Entry{Op: Insert, Offset: 0, Data: []byte("a")})
	l.Add(Entry{Op: Tag, MarkOffsets: []int64{1}})
	l.Add(Entry{Op: Insert, Offset: 1, Data: []byte("b")})
	for l.Pos() > 0 {
		l.Undo()
	}

	var redone []Entry
	l.RedoUntilTag(func(e Entry) bool {
		redone = append(redone, e)
		return true
	})
	require.Len(t, redone, 1)
	assert.Equal(t, Insert, redone[0].Op)
	assert.Equal(t, []byte("a"), redone[0].Data)
	assert.Equal(t, 1, l.Pos())
}

func TestGetTagOffsetsNoneFound(t *testing.T) {
	l := New()
	l.Add(Entry{Op: Insert, Offset: 0, Data: []byte("a")})
	_, ok := l.GetTagOffsets()
	assert.False(t, ok)
}
