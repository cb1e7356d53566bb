// Package formats registers the tabular catalog formats and gives
// format-detecting callers a uniform way to sniff, read, and write them.
//
// Format packages register themselves from init, so importing a format
// package (directly or blank) is what makes it discoverable:
//
//	import (
//		_ "github.com/seistools/catform/formats/csvtab"
//		_ "github.com/seistools/catform/formats/csz"
//		_ "github.com/seistools/catform/formats/eventtxt"
//	)
package formats

import (
	"fmt"
	"strings"

	"github.com/seistools/catform/catalog"
)

// Result is the outcome of sniffing a source for one format.
type Result int

const (
	// Inconclusive means the source could not be examined (for example the
	// file could not be opened). It is neither a hit nor a miss.
	Inconclusive Result = iota
	// NoMatch means the source was examined and is not this format.
	NoMatch
	// Match means the source is this format.
	Match
)

func (r Result) String() string {
	switch r {
	case Match:
		return "match"
	case NoMatch:
		return "no match"
	default:
		return "inconclusive"
	}
}

// SniffFunc examines a source without fully decoding it. It never returns an
// error; failures map to Inconclusive or NoMatch.
type SniffFunc func(Source) Result

// ReadFunc decodes a source into a catalog using the format's defaults.
type ReadFunc func(Source) (*catalog.Catalog, error)

// WriteFunc encodes a catalog using the format's defaults. Nil for read-only
// formats.
type WriteFunc func(*catalog.Catalog, Dest) error

// Format describes one registered catalog format.
type Format struct {
	Name  string
	Sniff SniffFunc
	Read  ReadFunc
	Write WriteFunc
}

var (
	registry = map[string]Format{}
	ordered  []string
)

// Register adds a format under its name. Later registrations under the same
// name replace earlier ones.
func Register(f Format) {
	key := strings.ToUpper(f.Name)
	if _, ok := registry[key]; !ok {
		ordered = append(ordered, key)
	}
	registry[key] = f
}

// Get returns the format registered under name (case-insensitive).
func Get(name string) (Format, error) {
	f, ok := registry[strings.ToUpper(name)]
	if !ok {
		return Format{}, fmt.Errorf("formats: unknown format %q", name)
	}
	return f, nil
}

// Names returns the registered format names in registration order.
func Names() []string {
	return append([]string(nil), ordered...)
}

// Detect sniffs the source against every registered format and returns the
// first one reporting Match. Detection re-reads the source per format, so it
// requires a path source.
func Detect(src Source) (Format, error) {
	if _, ok := src.Path(); !ok {
		return Format{}, fmt.Errorf("formats: detection requires a path source")
	}
	for _, name := range ordered {
		f := registry[name]
		if f.Sniff == nil {
			continue
		}
		if f.Sniff(src) == Match {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("formats: no registered format matches the source")
}
