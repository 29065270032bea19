package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"textcore/buffer"
)

func TestSplitLayoutDividesFixedAndFlex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))
	b, err := buffer.BufferBuilder{Name: "a", Path: path, Mode: buffer.ReadWrite}.Build()
	require.NoError(t, err)
	defer b.Close()

	left := NewLeaf(New(b, 0, 10, 10))
	right := NewLeaf(New(b, 0, 10, 10))
	root := NewSplit(SplitRow, left, right, PaneSize{Kind: SizeFixed, Value: 20}, PaneSize{Kind: SizeFlex})

	root.Layout(0, 0, 80, 24)

	require.Equal(t, 20, left.Leaf.Width)
	require.Equal(t, 60, right.Leaf.Width)
	require.Equal(t, 24, left.Leaf.Height)
	require.Len(t, root.Leaves(), 2)
}

func TestContextReportsLineAndColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\nthird"), 0644))
	b, err := buffer.BufferBuilder{Name: "a", Path: path, Mode: buffer.ReadWrite}.Build()
	require.NoError(t, err)
	defer b.Close()

	v := New(b, 0, 20, 5)
	v.MainMark().Offset = 9 // inside "second"

	ctx := v.Context("a.txt", false, false)
	require.Equal(t, 1, ctx.Line)
	require.Equal(t, 3, ctx.Col)
}
