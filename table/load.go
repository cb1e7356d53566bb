package table

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/oleg578/swiftcsv"

	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/formats"
	"github.com/seistools/catform/formats/csvtab"
	"github.com/seistools/catform/formats/csz"
)

// Config controls tabular loading.
type Config struct {
	// Names overrides the column names instead of reading a header line.
	Names []string
	// Only restricts loading to the given column names.
	Only []string
	// Delimiter separates columns. Defaults to ','.
	Delimiter byte
}

// Load reads a CSV or CSZ source into typed columns. CSZ input is detected
// by its archive tag and the embedded events table is loaded transparently.
func Load(src formats.Source, cfg Config) (*Table, error) {
	if _, ok := src.Path(); ok {
		if csz.Sniff(src) == formats.Match {
			rc, err := csz.OpenEvents(src)
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return load(rc, cfg)
		}
		rc, err := src.Open()
		if err != nil {
			return nil, fmt.Errorf("open table source: %w", err)
		}
		defer rc.Close()
		return load(rc, cfg)
	}

	// Stream sources are buffered once so the archive check does not consume
	// the payload.
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open table source: %w", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("buffer table source: %w", err)
	}
	if csz.Sniff(formats.StreamSource(bytes.NewReader(data))) == formats.Match {
		er, err := csz.OpenEvents(formats.StreamSource(bytes.NewReader(data)))
		if err != nil {
			return nil, err
		}
		defer er.Close()
		return load(er, cfg)
	}
	return load(bytes.NewReader(data), cfg)
}

// FromCatalog converts a structured catalog into typed columns by staging a
// CSV rendition in memory and loading it.
func FromCatalog(cat *catalog.Catalog, cfg Config) (*Table, error) {
	var buf bytes.Buffer
	if err := csvtab.Write(cat, formats.StreamDest(&buf), csvtab.DefaultWriteConfig()); err != nil {
		return nil, err
	}
	cfg.Names = nil
	cfg.Delimiter = ','
	return load(&buf, cfg)
}

// selection binds a source column index to its destination column.
type selection struct {
	idx int
	col *Column
}

func load(r io.Reader, cfg Config) (*Table, error) {
	delim := cfg.Delimiter
	if delim == 0 {
		delim = ','
	}
	cr := swiftcsv.NewReader(r)
	cr.Comma = delim

	names := cfg.Names
	if names == nil {
		header, err := cr.Read()
		if err == io.EOF {
			return newTable(nil), nil
		}
		if err != nil {
			return nil, fmt.Errorf("read table header: %w", err)
		}
		names = make([]string, len(header))
		for i, n := range header {
			names[i] = strings.TrimSpace(n)
		}
	}

	var only map[string]bool
	if cfg.Only != nil {
		only = make(map[string]bool, len(cfg.Only))
		for _, n := range cfg.Only {
			only[n] = true
		}
	}

	var sels []selection
	for i, name := range names {
		sch, ok := schema[name]
		if !ok || (only != nil && !only[name]) {
			continue
		}
		sels = append(sels, selection{idx: i, col: &Column{Name: name, Kind: sch.kind}})
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read table row: %w", err)
		}
		for _, sel := range sels {
			if sel.idx >= len(rec) {
				return nil, fmt.Errorf("table row has %d columns, need %d", len(rec), sel.idx+1)
			}
			if err := appendCell(sel.col, rec[sel.idx]); err != nil {
				return nil, err
			}
		}
	}

	cols := make([]*Column, len(sels))
	for i, sel := range sels {
		cols[i] = sel.col
	}
	return newTable(cols), nil
}

func appendCell(col *Column, cell string) error {
	switch col.Kind {
	case KindTime:
		t, err := csvtab.ParseTime(cell)
		if err != nil {
			return err
		}
		col.Times = append(col.Times, t.Truncate(time.Millisecond))
	case KindFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return fmt.Errorf("parse %s value %q: %w", col.Name, cell, err)
		}
		col.Floats = append(col.Floats, v)
	default:
		col.Strings = append(col.Strings, truncate(cell, schema[col.Name].width))
	}
	return nil
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
