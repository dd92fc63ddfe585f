package loader

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FromDisk implements the Loader interface for a local file, typically a
// compiled translator module (.wasm) on disk.
type FromDisk struct {
	path      string
	sourceURL *url.URL
}

// NewFromDisk creates a new loader for an absolute local path. Remote URLs
// are rejected.
func NewFromDisk(path string) (*FromDisk, error) {
	path = strings.TrimPrefix(path, "file://")

	if strings.Contains(path, "://") {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, path)
	}

	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("%w: relative paths are not supported", ErrContentUnavailable)
	}

	path = filepath.Clean(path)

	u, err := url.Parse("file://" + path)
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %w", err)
	}

	return &FromDisk{
		path:      path,
		sourceURL: u,
	}, nil
}

func (l *FromDisk) String() string {
	return fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)
}

// GetReader opens the file for reading. The file is read lazily so the loader
// can be constructed before the module exists.
func (l *FromDisk) GetReader() (io.ReadCloser, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentUnavailable, err)
	}
	return f, nil
}

// GetSourceURL returns the source URL of the content.
func (l *FromDisk) GetSourceURL() *url.URL {
	return l.sourceURL
}
