package csvtab

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/seistools/catform/fieldfmt"
	"github.com/seistools/catform/observability"
)

// PresetBasic is the canonical event and pick table layout.
const PresetBasic = "basic"

// eventPresets maps preset names to event-row templates.
var eventPresets = map[string]string{
	PresetBasic: "{time!s:.25} {lat:.6f} {lon:.6f} {dep:.3f} {mag:.2f} {magtype} {id}",
}

// pickPresets maps preset names to pick-row templates.
var pickPresets = map[string]string{
	PresetBasic: "{seedid} {phase} {time:.5f} {weight:.3f}",
}

// DepthUnit selects the unit of the textual depth column. The zero value is
// kilometers, the historical default of the format.
type DepthUnit int

const (
	// DepthKilometers treats the dep column as kilometers.
	DepthKilometers DepthUnit = iota
	// DepthMeters treats the dep column as meters.
	DepthMeters
)

// toMeters converts a parsed depth value to the catalog's meter convention.
func (u DepthUnit) toMeters(v float64) float64 {
	if u == DepthKilometers {
		return v * 1000
	}
	return v
}

// fromMeters converts a catalog depth to the configured textual unit.
func (u DepthUnit) fromMeters(v float64) float64 {
	if u == DepthKilometers {
		return v / 1000
	}
	return v
}

// Defaults holds substitution values for fields missing from a row.
type Defaults struct {
	// MagType replaces absent or sentinel ("", "none", "null", "nan")
	// magnitude-type values. Empty means no type label.
	MagType string
}

// ReadConfig controls catalog reading. The zero value of DefaultReadConfig is
// the canonical configuration; Delimiter, Quote, and Logger are normalized
// when left unset.
type ReadConfig struct {
	// SkipHeader skips this many leading lines before parsing.
	SkipHeader int
	// Depth is the unit of the dep column.
	Depth DepthUnit
	// Default supplies values for missing fields.
	Default Defaults
	// Names overrides the column names instead of reading a header line.
	// Use fieldfmt.SkipField for columns to ignore; see SplitNames and
	// SparseNames for alternative shapes.
	Names []string
	// Delimiter and Quote are handed to the underlying row parser.
	Delimiter byte
	Quote     byte

	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// DefaultReadConfig returns the canonical read configuration.
func DefaultReadConfig() ReadConfig {
	return ReadConfig{Depth: DepthKilometers, Delimiter: ',', Quote: '"'}
}

func (cfg ReadConfig) withDefaults() ReadConfig {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	if cfg.Quote == 0 {
		cfg.Quote = '"'
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// WriteConfig controls catalog and pick-table writing.
type WriteConfig struct {
	// Fields selects the row layout: a preset name (PresetBasic) or a
	// template string understood by fieldfmt.Parse.
	Fields string
	// FieldList supplies the layout as pre-split template fragments and
	// takes precedence over Fields.
	FieldList []string
	// Depth is the unit written to the dep column.
	Depth DepthUnit
	// Delimiter separates columns. Defaults to ','.
	Delimiter byte

	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// DefaultWriteConfig returns the canonical write configuration.
func DefaultWriteConfig() WriteConfig {
	return WriteConfig{Fields: PresetBasic, Depth: DepthKilometers, Delimiter: ','}
}

func (cfg WriteConfig) withDefaults() WriteConfig {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// resolveTemplate turns a WriteConfig's layout selection into a parsed
// template: FieldList wins, then a preset name, then a raw template string.
func resolveTemplate(presets map[string]string, cfg WriteConfig) (*fieldfmt.Template, error) {
	if len(cfg.FieldList) > 0 {
		return fieldfmt.ParseList(cfg.FieldList, cfg.Delimiter)
	}
	tmpl := cfg.Fields
	if tmpl == "" {
		tmpl = PresetBasic
	}
	if preset, ok := presets[tmpl]; ok {
		tmpl = preset
	}
	t, err := fieldfmt.Parse(tmpl, cfg.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("resolve field template: %w", err)
	}
	return t, nil
}

// SplitNames splits a comma- or space-joined column-name string into the
// Names shape of ReadConfig.
func SplitNames(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

// SparseNames builds a width-long name list from an index-to-name map,
// filling unspecified positions with the skip sentinel.
func SparseNames(width int, byIndex map[int]string) []string {
	names := make([]string, width)
	for i := range names {
		names[i] = fieldfmt.SkipField
	}
	for i, name := range byIndex {
		if i >= 0 && i < width {
			names[i] = name
		}
	}
	return names
}
