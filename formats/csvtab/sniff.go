package csvtab

import (
	"io"

	"github.com/seistools/catform/formats"
)

// Sniff reports whether the source is a catalog CSV. The header must look
// structurally right before any row is decoded; the first data row must then
// parse. A table with zero data rows is not detected as this format even
// though Read would accept it.
func Sniff(src formats.Source) formats.Result {
	rc, err := src.Open()
	if err != nil {
		return formats.Inconclusive
	}
	defer rc.Close()
	return sniffFrom(rc)
}

func sniffFrom(r io.Reader) formats.Result {
	cfg := DefaultReadConfig().withDefaults()
	rows, err := newRowScanner(r, cfg)
	if err != nil {
		return formats.NoMatch
	}
	if !plausibleHeader(rows.names) {
		return formats.NoMatch
	}
	row, err := rows.next()
	if err != nil {
		return formats.NoMatch
	}
	if _, err := eventFromRow(row, cfg); err != nil {
		return formats.NoMatch
	}
	return formats.Match
}

// plausibleHeader requires the essentials of the format: a location, a depth,
// and some form of time column. Columns outside the known vocabulary are
// tolerated, matching the reader, which ignores them.
func plausibleHeader(names []string) bool {
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	return seen["lat"] && seen["lon"] && seen["dep"] && (seen["time"] || seen["year"])
}
