package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/config"
)

// Storage saves an uploaded file and returns the public URL it will be
// served from.
type Storage interface {
	Store(filename string, r io.Reader) (string, error)
}

type diskStorage struct {
	dir     string
	baseURL string
}

// NewDiskStorage creates a Storage writing files under the configured
// media directory. The directory is created on first use.
func NewDiskStorage(cfg config.MediaConfig) Storage {
	return &diskStorage{dir: cfg.Dir, baseURL: strings.TrimRight(cfg.BaseURL, "/")}
}

func (s *diskStorage) Store(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	name := uuid.New().String() + "-" + sanitize(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// sanitize strips path separators and whitespace so an uploaded filename
// cannot escape the media directory.
func sanitize(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "-")
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "file"
	}
	return base
}
