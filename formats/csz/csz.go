// Package csz reads and writes CSZ bundles: a zip archive holding one events
// table plus zero or more per-event pick tables.
//
// The archive comment is the format tag
//
//	CSZ format v<version> obspy_no_uncompress
//
// which lets detection distinguish a CSZ bundle from an ordinary zip file,
// and tells generic zip-transparent readers not to unpack it. Members are
// "events.csv" (required) and "picks_<eventid>.csv" (one per event that has
// picks and a resolvable origin).
package csz

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/formats"
	"github.com/seistools/catform/formats/csvtab"
	"github.com/seistools/catform/observability"
)

// Version of the CSZ container layout.
const Version = "0.5.0"

const (
	eventsMember  = "events.csv"
	commentPrefix = "CSZ"
	commentSuffix = "obspy_no_uncompress"
)

// commentTag is the archive comment written by this package.
var commentTag = fmt.Sprintf("CSZ format v%s %s", Version, commentSuffix)

// WriteConfig controls CSZ writing.
type WriteConfig struct {
	// Fields and FieldsPicks select the events-table and pick-table row
	// layouts: a preset name or a template string.
	Fields      string
	FieldsPicks string
	// Depth is the unit written to the dep column.
	Depth csvtab.DepthUnit
	// Compress enables deflate compression of the members; CompressLevel is
	// a flate level, 0 meaning the default.
	Compress      bool
	CompressLevel int

	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// ReadConfig controls CSZ reading.
type ReadConfig struct {
	// Depth is the unit of the dep column.
	Depth csvtab.DepthUnit
	// Default supplies values for missing fields.
	Default csvtab.Defaults

	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Write encodes a catalog as a CSZ bundle. Each member is staged in memory
// before insertion, so a failed event never leaves a corrupt member behind.
func Write(cat *catalog.Catalog, dst formats.Dest, cfg WriteConfig) error {
	wc, err := dst.Create()
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	if err := writeTo(cat, wc, cfg); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

func writeTo(cat *catalog.Catalog, w io.Writer, cfg WriteConfig) error {
	zw := zip.NewWriter(w)
	method := zip.Store
	if cfg.Compress {
		method = zip.Deflate
		level := cfg.CompressLevel
		if level == 0 {
			level = flate.DefaultCompression
		}
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}
	if err := zw.SetComment(commentTag); err != nil {
		return fmt.Errorf("set archive comment: %w", err)
	}

	eventsCfg := csvtab.WriteConfig{
		Fields:  cfg.Fields,
		Depth:   cfg.Depth,
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
	}
	var buf bytes.Buffer
	if err := csvtab.Write(cat, formats.StreamDest(&buf), eventsCfg); err != nil {
		return err
	}
	if err := addMember(zw, eventsMember, method, buf.Bytes()); err != nil {
		return err
	}

	picksCfg := csvtab.WriteConfig{
		Fields:  cfg.FieldsPicks,
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
	}
	for _, ev := range cat.Events {
		if len(ev.Picks) == 0 {
			continue
		}
		if _, err := ev.ResolveOrigin(); err != nil {
			// already warned about by the events-table writer
			continue
		}
		buf.Reset()
		if err := csvtab.WritePicks(ev, formats.StreamDest(&buf), picksCfg); err != nil {
			return err
		}
		if err := addMember(zw, pickMember(ev), method, buf.Bytes()); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

func addMember(zw *zip.Writer, name string, method uint16, payload []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return fmt.Errorf("create archive member %s: %w", name, err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write archive member %s: %w", name, err)
	}
	return nil
}

func pickMember(ev *catalog.Event) string {
	return "picks_" + ev.ResourceID.ShortID() + ".csv"
}

// Read decodes a CSZ bundle into a catalog with picks attached. Events
// without a matching pick member keep empty pick lists; an event that lacks
// a resolvable origin when its pick member is present is a hard error.
func Read(src formats.Source, cfg ReadConfig) (*catalog.Catalog, error) {
	zr, closer, err := openArchive(src)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	readCfg := csvtab.ReadConfig{
		Depth:   cfg.Depth,
		Default: cfg.Default,
		Logger:  cfg.Logger,
		Metrics: cfg.Metrics,
	}

	f, err := zr.Open(eventsMember)
	if err != nil {
		return nil, fmt.Errorf("open archive member %s: %w", eventsMember, err)
	}
	cat, err := csvtab.Read(formats.StreamSource(f), readCfg)
	f.Close()
	if err != nil {
		return nil, err
	}

	members := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		members[f.Name] = true
	}
	for _, ev := range cat.Events {
		name := pickMember(ev)
		if !members[name] {
			continue
		}
		pf, err := zr.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open archive member %s: %w", name, err)
		}
		err = csvtab.ReadPicks(ev, formats.StreamSource(pf), readCfg)
		pf.Close()
		if err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// OpenEvents opens the embedded events table for direct tabular access.
// Closing the returned reader releases the archive as well.
func OpenEvents(src formats.Source) (io.ReadCloser, error) {
	zr, closer, err := openArchive(src)
	if err != nil {
		return nil, err
	}
	f, err := zr.Open(eventsMember)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("open archive member %s: %w", eventsMember, err)
	}
	return &memberReader{ReadCloser: f, archive: closer}, nil
}

type memberReader struct {
	io.ReadCloser
	archive io.Closer
}

func (m *memberReader) Close() error {
	err := m.ReadCloser.Close()
	if cerr := m.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

// openArchive resolves a source into a zip reader. Stream sources are
// buffered in memory, since zip needs random access.
func openArchive(src formats.Source) (*zip.Reader, io.Closer, error) {
	if path, ok := src.Path(); ok {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open archive: %w", err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("stat archive: %w", err)
		}
		zr, err := zip.NewReader(f, info.Size())
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("read archive: %w", err)
		}
		return zr, f, nil
	}

	rc, err := src.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("buffer archive: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("read archive: %w", err)
	}
	return zr, noopCloser{}, nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// taggedComment reports whether an archive comment carries the CSZ tag.
func taggedComment(comment string) bool {
	return strings.HasPrefix(comment, commentPrefix) &&
		strings.HasSuffix(comment, commentSuffix)
}
