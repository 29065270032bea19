package syncer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"textcore/buffer"
)

func TestWorkerFlushesChangedBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, err := buffer.BufferBuilder{Name: "doc", Path: path, Mode: buffer.ReadWrite}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer b.Close()

	if err := b.Insert(3, []byte("def")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	w, err := New("@every 10ms", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	finalPath := filepath.Join(dir, "doc.synced.txt")
	tmpPath := finalPath + ".tmp"
	w.Register("doc", &Target{Buffer: b, TmpPath: tmpPath, FinalPath: finalPath})

	w.Start()
	time.Sleep(60 * time.Millisecond)
	w.Stop()

	data, err := os.ReadFile(finalPath)
	if err != nil {
		t.Fatalf("expected a synced file: %v", err)
	}
	if string(data) != "abcdef" {
		t.Fatalf("synced content = %q, want %q", string(data), "abcdef")
	}
}
