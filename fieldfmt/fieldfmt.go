// Package fieldfmt implements the compact row-template language shared by the
// tabular catalog formats.
//
// A template is an ordered list of placeholder fragments such as
//
//	{time!s:.25} {lat:.6f} {lon:.6f} {dep:.3f} {mag:.2f} {magtype} {id}
//
// Each fragment names a field and optionally carries a format spec: a
// fixed-point precision for numbers ({lat:.6f}) or a maximum width for
// strings ({time!s:.25}). Parsing a template yields a [Template] holding a
// structured [FieldSpec] table, so rendering never re-parses the text form.
//
// Field names equal to or prefixed with "_" mark skip positions. They matter
// only when naming the columns of a foreign layout on read; a write template
// renders them as empty columns and never requires them as record keys.
package fieldfmt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SkipField is the sentinel column name marking an ignored position.
const SkipField = "_"

// ErrMissingField is returned by Render when a record lacks a required field.
var ErrMissingField = fmt.Errorf("fieldfmt: missing field")

// timeLayout is the text form of timestamps before width truncation.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// fragmentRe matches one placeholder: {name}, {name!conv}, {name:.3f},
// {name!s:.25}. The part after the colon is an optional ".precision" plus an
// optional verb letter.
var fragmentRe = regexp.MustCompile(`^\{([A-Za-z_][A-Za-z0-9_]*)(?:!([a-z]))?(?::(?:\.([0-9]+))?([a-z])?)?\}$`)

// FieldSpec describes how one field is named and formatted.
type FieldSpec struct {
	// Name is the field name, or a skip sentinel.
	Name string
	// Conv is an explicit conversion ('s' forces string rendering), 0 if absent.
	Conv byte
	// Precision is the fixed-point precision for numbers and the maximum
	// width for strings. -1 means unset.
	Precision int
	// Verb is the format verb ('f' for fixed point), 0 if absent.
	Verb byte
}

// Skip reports whether the spec marks an ignored column position.
func (fs FieldSpec) Skip() bool {
	return fs.Name == SkipField || strings.HasPrefix(fs.Name, SkipField)
}

// Template is a parsed row template: an ordered field table plus the column
// delimiter used for headers and rendered rows.
type Template struct {
	specs []FieldSpec
	delim byte
}

// Parse parses a template given as a single string. Fragments are separated
// by whitespace; a string without whitespace may instead join fragments with
// the delimiter itself. Both forms normalize to the same field list.
func Parse(tmpl string, delim byte) (*Template, error) {
	fragments := strings.Fields(tmpl)
	if len(fragments) == 1 && delim != ' ' && strings.IndexByte(tmpl, delim) >= 0 {
		fragments = strings.Split(tmpl, string(delim))
	}
	return ParseList(fragments, delim)
}

// ParseList parses a template given as pre-split per-field fragments.
func ParseList(fragments []string, delim byte) (*Template, error) {
	if len(fragments) == 0 {
		return nil, fmt.Errorf("fieldfmt: empty template")
	}
	specs := make([]FieldSpec, 0, len(fragments))
	for _, frag := range fragments {
		m := fragmentRe.FindStringSubmatch(strings.TrimSpace(frag))
		if m == nil {
			return nil, fmt.Errorf("fieldfmt: malformed template fragment %q", frag)
		}
		spec := FieldSpec{Name: m[1], Precision: -1}
		if m[2] != "" {
			spec.Conv = m[2][0]
		}
		if m[3] != "" {
			// \d+ matched, Atoi cannot fail
			spec.Precision, _ = strconv.Atoi(m[3])
		}
		if m[4] != "" {
			spec.Verb = m[4][0]
		}
		specs = append(specs, spec)
	}
	return New(specs, delim), nil
}

// New builds a template directly from a field table.
func New(specs []FieldSpec, delim byte) *Template {
	if delim == 0 {
		delim = ','
	}
	return &Template{specs: append([]FieldSpec(nil), specs...), delim: delim}
}

// Fields returns the field names in appearance order, skip sentinels included.
func (t *Template) Fields() []string {
	names := make([]string, len(t.specs))
	for i, s := range t.specs {
		names[i] = s.Name
	}
	return names
}

// Delimiter returns the column delimiter.
func (t *Template) Delimiter() byte {
	return t.delim
}

// Header returns the delimiter-joined field names forming the header line.
func (t *Template) Header() string {
	return strings.Join(t.Fields(), string(t.delim))
}

// Record maps field names to the values rendered into one row.
type Record map[string]any

// Render formats one record into a delimited text line. Skip fields render as
// empty columns; every other field must be present in the record.
func (t *Template) Render(rec Record) (string, error) {
	var b strings.Builder
	for i, spec := range t.specs {
		if i > 0 {
			b.WriteByte(t.delim)
		}
		if spec.Skip() {
			continue
		}
		v, ok := rec[spec.Name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingField, spec.Name)
		}
		b.WriteString(spec.format(v))
	}
	return b.String(), nil
}

// format renders a single value. Non-finite numbers degrade to the empty
// string, never the literal "NaN".
func (fs FieldSpec) format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return fs.formatFloat(val)
	case float32:
		return fs.formatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case time.Time:
		return fs.truncate(val.UTC().Format(timeLayout))
	case string:
		return fs.truncate(val)
	default:
		return fs.truncate(fmt.Sprint(val))
	}
}

func (fs FieldSpec) formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	prec := -1
	if fs.Verb == 'f' {
		prec = fs.Precision
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// truncate caps string output at the spec's width when one is declared.
func (fs FieldSpec) truncate(s string) string {
	if fs.Verb != 0 || fs.Precision < 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= fs.Precision {
		return s
	}
	return string(runes[:fs.Precision])
}
