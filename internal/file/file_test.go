package file

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diploma.docx")
	if err := os.WriteFile(path, []byte("template"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.Name() != "diploma.docx" || f.Size() != 8 || f.Path() != path {
		t.Errorf("unexpected file info: %s %d %s", f.Name(), f.Size(), f.Path())
	}
	if f.MimeType() == "application/octet-stream" {
		t.Logf("no mime registered for .docx on this system")
	}

	rc, err := f.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "template" {
		t.Errorf("content = %q", data)
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(filepath.Join(dir, "missing.xlsx")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Open(dir); err == nil {
		t.Error("expected error for directory")
	}
}

func TestResolveOutputDir(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(filePath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{"existing", dir, false},
		{"new child", filepath.Join(dir, "out"), false},
		{"empty", "", true},
		{"is file", filePath, true},
		{"missing parent", filepath.Join(dir, "a", "b"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveOutputDir(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveOutputDir(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}
