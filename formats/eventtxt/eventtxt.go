// Package eventtxt reads the pipe-delimited FDSN-style event text format.
//
// The layout is fixed: one header line to skip, then 13 pipe-separated
// columns of which id, time, lat, lon, dep, magtype, and mag are meaningful.
// Reading is a thin parameterization of the csvtab reader; the format is
// read-only.
package eventtxt

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/formats"
	"github.com/seistools/catform/formats/csvtab"
	"github.com/seistools/catform/observability"
)

// columns maps the 13-column external layout onto the row codec's names.
var columns = []string{
	"id", "time", "lat", "lon", "dep",
	"_", "_", "_", "_",
	"magtype", "mag", "_", "_",
}

// Config controls EVENTTXT reading.
type Config struct {
	// Default supplies values for missing fields.
	Default csvtab.Defaults

	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Read decodes an event text file into a catalog.
func Read(src formats.Source, cfg Config) (*catalog.Catalog, error) {
	return csvtab.Read(src, readConfig(cfg))
}

func readConfig(cfg Config) csvtab.ReadConfig {
	rcfg := csvtab.DefaultReadConfig()
	rcfg.SkipHeader = 1
	rcfg.Delimiter = '|'
	rcfg.Names = columns
	rcfg.Default = cfg.Default
	rcfg.Logger = cfg.Logger
	rcfg.Metrics = cfg.Metrics
	return rcfg
}

// Sniff reports whether the source is event text: a pipe-delimited 13-column
// table whose first data row decodes as an event.
func Sniff(src formats.Source) formats.Result {
	rc, err := src.Open()
	if err != nil {
		return formats.Inconclusive
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	header, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return formats.Inconclusive
	}
	if strings.Count(header, "|") != len(columns)-1 {
		return formats.NoMatch
	}
	// err here is io.EOF at most; a final line without newline still counts
	line, _ := br.ReadString('\n')
	if strings.TrimSpace(line) == "" {
		return formats.NoMatch
	}

	rcfg := readConfig(Config{})
	rcfg.SkipHeader = 0
	cat, err := csvtab.Read(formats.StreamSource(strings.NewReader(line)), rcfg)
	if err != nil || cat.Len() == 0 {
		return formats.NoMatch
	}
	return formats.Match
}

func init() {
	formats.Register(formats.Format{
		Name:  "EVENTTXT",
		Sniff: Sniff,
		Read: func(src formats.Source) (*catalog.Catalog, error) {
			return Read(src, Config{})
		},
	})
}
