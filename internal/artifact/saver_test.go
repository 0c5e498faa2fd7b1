package artifact

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"diplomagen/internal/logging"
)

func TestSaveWritesArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	saver := NewSaver(dir, logging.Discard())

	blob := []byte("PK\x05\x06" + string(make([]byte, 18)))
	path, err := saver.Save(context.Background(), "diplomas_generados.zip", blob)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "diplomas_generados.zip"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("content mismatch")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir, logging.Discard())

	if _, err := saver.Save(context.Background(), "a.zip", []byte("first")); err != nil {
		t.Fatal(err)
	}
	path, err := saver.Save(context.Background(), "a.zip", []byte("second"))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "second" {
		t.Errorf("content = %q, want second", got)
	}
}

func TestSaveRejectsPaths(t *testing.T) {
	saver := NewSaver(t.TempDir(), logging.Discard())
	for _, name := range []string{"", "../escape.zip", "sub/dir.zip"} {
		if _, err := saver.Save(context.Background(), name, []byte("x")); err == nil {
			t.Errorf("Save(%q) succeeded, want error", name)
		}
	}
}

func TestSaveCancelled(t *testing.T) {
	dir := t.TempDir()
	saver := NewSaver(dir, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := saver.Save(ctx, "a.zip", []byte("x")); err == nil {
		t.Fatal("expected error on cancelled context")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("files written despite cancellation: %v", entries)
	}
}
