package file

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// LocalFile is a file on disk chosen by the user
type LocalFile struct {
	name     string
	size     int64
	path     string
	mimeType string
}

// Open stats path and returns a handle that reopens it on demand
func Open(path string) (*LocalFile, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("'%s' is a directory, please specify a file", path)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream" // Default for unknown types
	}

	return &LocalFile{
		name:     stat.Name(),
		size:     stat.Size(),
		path:     path,
		mimeType: mimeType,
	}, nil
}

// Open opens the file for reading
func (f *LocalFile) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (f *LocalFile) Name() string {
	return f.name
}

func (f *LocalFile) Size() int64 {
	return f.size
}

func (f *LocalFile) Path() string {
	return f.path
}

func (f *LocalFile) MimeType() string {
	return f.mimeType
}

// ResolveOutputDir validates that dir can hold downloaded files. A missing dir
// is accepted when its parent exists; it is created on first save.
func ResolveOutputDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("output directory is required")
	}
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("output path '%s' exists but is not a directory", dir)
		}
		return dir, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("cannot access output directory: %w", err)
	}

	parent := filepath.Dir(dir)
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return "", fmt.Errorf("parent directory does not exist: %s", parent)
	}
	return dir, nil
}
