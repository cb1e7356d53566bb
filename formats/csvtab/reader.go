package csvtab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/oleg578/swiftcsv"

	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/fieldfmt"
	"github.com/seistools/catform/formats"
)

// Read decodes a whole catalog table. Empty input yields an empty catalog.
// The first unparsable row aborts the read; no partial catalog is returned.
func Read(src formats.Source, cfg ReadConfig) (*catalog.Catalog, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open catalog source: %w", err)
	}
	defer rc.Close()
	return readFrom(rc, cfg)
}

func readFrom(r io.Reader, cfg ReadConfig) (*catalog.Catalog, error) {
	cfg = cfg.withDefaults()

	br := bufio.NewReader(r)
	if err := skipLines(br, cfg.SkipHeader); err != nil {
		if errors.Is(err, io.EOF) {
			return catalog.New(), nil
		}
		return nil, fmt.Errorf("skip header lines: %w", err)
	}

	rows, err := newRowScanner(br, cfg)
	if err != nil {
		return nil, err
	}

	cat := catalog.New()
	for {
		row, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ev, err := eventFromRow(row, cfg)
		if err != nil {
			return nil, err
		}
		cat.Append(ev)
	}
	cfg.Metrics.AddEventsRead(cat.Len())
	return cat, nil
}

func skipLines(br *bufio.Reader, n int) error {
	for i := 0; i < n; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return err
		}
	}
	return nil
}

// rowScanner streams name-keyed rows from a delimited table. Column names
// come from the config override or from the table's own header line.
type rowScanner struct {
	cr    *swiftcsv.Reader
	names []string
}

func newRowScanner(r io.Reader, cfg ReadConfig) (*rowScanner, error) {
	cr := swiftcsv.NewReader(r)
	cr.Comma = cfg.Delimiter
	cr.Quote = cfg.Quote

	names := cfg.Names
	if names == nil {
		header, err := cr.Read()
		if err == io.EOF {
			return &rowScanner{cr: cr}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read header line: %w", err)
		}
		names = make([]string, len(header))
		for i, n := range header {
			names[i] = strings.TrimSpace(n)
		}
	}
	return &rowScanner{cr: cr, names: names}, nil
}

// next returns the following data row, skipping blank lines. io.EOF signals
// the end of the table.
func (s *rowScanner) next() (map[string]string, error) {
	if s.names == nil {
		return nil, io.EOF
	}
	for {
		rec, err := s.cr.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			if errors.Is(err, swiftcsv.ErrorFieldCount) && blankRecord(rec) {
				continue
			}
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		if blankRecord(rec) {
			continue
		}
		return s.zip(rec), nil
	}
}

// zip pairs column names with the record's fields, dropping skip-sentinel
// positions and surplus columns on either side.
func (s *rowScanner) zip(rec []string) map[string]string {
	row := make(map[string]string, len(s.names))
	for i, name := range s.names {
		if i >= len(rec) {
			break
		}
		if name == fieldfmt.SkipField || strings.HasPrefix(name, fieldfmt.SkipField) {
			continue
		}
		row[name] = rec[i]
	}
	return row
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
