package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// Saver stores downloaded blobs under a fixed output directory
type Saver struct {
	dir    string
	logger *log.Logger
}

// NewSaver creates a saver writing into dir
func NewSaver(dir string, logger *log.Logger) *Saver {
	return &Saver{
		dir:    dir,
		logger: logger,
	}
}

// Dir returns the output directory
func (s *Saver) Dir() string {
	return s.dir
}

// Save writes blob to a temporary file next to its destination, then moves it
// to name. The temporary file never outlives the call. An existing file with
// the same name is replaced.
func (s *Saver) Save(ctx context.Context, name string, blob []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("save cancelled: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// no-op after a successful rename
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Failed to release temporary file", "path", tmpPath, "err", err)
		}
	}()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}

	dst := filepath.Join(s.dir, name)
	if err := os.Rename(tmpPath, dst); err != nil {
		return "", fmt.Errorf("failed to move artifact into place: %w", err)
	}

	mtype := mimetype.Detect(blob)
	s.logger.Info("Saved file",
		"path", dst,
		"size", humanize.Bytes(uint64(len(blob))),
		"type", mtype.String())
	if want := mimetype.Lookup(mimeForExt(filepath.Ext(name))); want != nil && !mtype.Is(want.String()) {
		s.logger.Warn("Saved content does not match its extension", "path", dst, "detected", mtype.Extension())
	}

	return dst, nil
}

// mimeForExt maps the extensions this tool downloads to their MIME types
func mimeForExt(ext string) string {
	switch ext {
	case ".zip":
		return "application/zip"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return ""
	}
}
