// Package table loads catalog CSV and CSZ files directly into typed columns,
// bypassing the structured event model for analysis use cases.
//
// Columns follow a fixed schema: time is a millisecond-resolution timestamp,
// lat/lon/dep/mag are floating point, and magtype/id are width-limited text
// (10 and 50 characters). Unknown columns in the source are ignored, and the
// loaded set can be restricted further with Config.Only.
package table

import "time"

// Kind is the storage type of a column.
type Kind int

const (
	// KindTime stores millisecond-resolution timestamps.
	KindTime Kind = iota
	// KindFloat stores float64 values.
	KindFloat
	// KindString stores width-limited text.
	KindString
)

// colSchema fixes the kind and, for text, the maximum width of a column.
type colSchema struct {
	kind  Kind
	width int
}

var schema = map[string]colSchema{
	"time":    {kind: KindTime},
	"lat":     {kind: KindFloat},
	"lon":     {kind: KindFloat},
	"dep":     {kind: KindFloat},
	"mag":     {kind: KindFloat},
	"magtype": {kind: KindString, width: 10},
	"id":      {kind: KindString, width: 50},
}

// Column is one typed column. Exactly one of the value slices is populated,
// selected by Kind.
type Column struct {
	Name    string
	Kind    Kind
	Times   []time.Time
	Floats  []float64
	Strings []string
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindTime:
		return len(c.Times)
	case KindFloat:
		return len(c.Floats)
	default:
		return len(c.Strings)
	}
}

// Table is a columnar view of an events table, keyed by column name.
type Table struct {
	cols  []*Column
	index map[string]int
}

// Column returns the named column.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Names returns the loaded column names in source order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

func newTable(cols []*Column) *Table {
	t := &Table{cols: cols, index: make(map[string]int, len(cols))}
	for i, c := range cols {
		t.index[c.Name] = i
	}
	return t
}
