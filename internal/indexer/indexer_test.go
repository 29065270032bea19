package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"textcore/buffer"
)

func TestRunCountsLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, err := buffer.BufferBuilder{Name: "doc", Path: path, Mode: buffer.ReadWrite}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer b.Close()

	abort := make(chan struct{})
	Run(b, abort, nil, nil)

	entry, ok := b.LineCount()
	if !ok {
		t.Fatalf("expected a fresh line count after indexing")
	}
	if entry != 3 {
		t.Fatalf("expected 3 lines, got %d", entry)
	}
}
