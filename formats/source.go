package formats

import (
	"errors"
	"io"
	"os"
)

// Source is an openable input: either a filesystem path or an already-open
// stream. The variant is fixed at construction, so codecs dispatch once at
// the API boundary instead of inspecting types at use sites.
type Source struct {
	path string
	r    io.Reader
}

// PathSource refers to a file on disk.
func PathSource(path string) Source {
	return Source{path: path}
}

// StreamSource wraps an already-open stream. The caller keeps ownership of
// the stream; Open returns it behind a no-op closer.
func StreamSource(r io.Reader) Source {
	return Source{r: r}
}

// Path returns the filesystem path and whether this is a path source.
func (s Source) Path() (string, bool) {
	return s.path, s.path != ""
}

// Open yields a readable handle. Path sources open the file; closing the
// handle is the caller's responsibility on every exit path.
func (s Source) Open() (io.ReadCloser, error) {
	if s.r != nil {
		return io.NopCloser(s.r), nil
	}
	if s.path == "" {
		return nil, errors.New("formats: empty source")
	}
	return os.Open(s.path)
}

// Dest is a writable output: either a filesystem path or an already-open
// stream.
type Dest struct {
	path string
	w    io.Writer
}

// PathDest refers to a file to create on disk.
func PathDest(path string) Dest {
	return Dest{path: path}
}

// StreamDest wraps an already-open stream. The caller keeps ownership;
// Create returns it behind a no-op closer.
func StreamDest(w io.Writer) Dest {
	return Dest{w: w}
}

// Path returns the filesystem path and whether this is a path destination.
func (d Dest) Path() (string, bool) {
	return d.path, d.path != ""
}

// Create yields a writable handle, truncating an existing file for path
// destinations.
func (d Dest) Create() (io.WriteCloser, error) {
	if d.w != nil {
		return nopWriteCloser{d.w}, nil
	}
	if d.path == "" {
		return nil, errors.New("formats: empty destination")
	}
	return os.Create(d.path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
