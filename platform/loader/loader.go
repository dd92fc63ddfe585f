// Package loader provides content sources for the WASM-backed translator
// engines: a translator module can be supplied as raw bytes, an inline
// string, or a local file. Network sources are deliberately unsupported; the
// generator performs no I/O beyond reading caller-designated local content.
package loader

import (
	"io"
	"net/url"
)

// Loader is an interface used by the translator engines to obtain module
// content.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}

// ReadAll drains a loader into memory and closes its reader.
func ReadAll(l Loader) ([]byte, error) {
	reader, err := l.GetReader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()
	return io.ReadAll(reader)
}
