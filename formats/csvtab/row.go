package csvtab

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/seistools/catform/catalog"
	"github.com/seistools/catform/fieldfmt"
)

// magTypeSentinels are magtype spellings that mean "no value given".
// Matched case-insensitively.
var magTypeSentinels = map[string]bool{
	"":     true,
	"none": true,
	"null": true,
	"nan":  true,
}

// eventFromRow builds one event from a column-name-to-text row. Bad time,
// lat, lon, or dep values are hard errors; a bad magnitude only drops the
// magnitude from the event.
func eventFromRow(row map[string]string, cfg ReadConfig) (*catalog.Event, error) {
	t, err := rowTime(row)
	if err != nil {
		return nil, err
	}
	lat, err := rowFloat(row, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := rowFloat(row, "lon")
	if err != nil {
		return nil, err
	}
	dep, err := rowFloat(row, "dep")
	if err != nil {
		return nil, err
	}

	origin := &catalog.Origin{
		ResourceID: catalog.NewResourceID("origin"),
		Time:       t,
		Latitude:   lat,
		Longitude:  lon,
		Depth:      cfg.Depth.toMeters(dep),
	}

	ev := catalog.NewEvent()
	if id := strings.TrimSpace(row["id"]); id != "" {
		ev.ResourceID = catalog.ResourceID(id)
	}
	ev.Origins = []*catalog.Origin{origin}

	if mag, ok := rowMagnitude(row); ok {
		ev.Magnitudes = []*catalog.Magnitude{{
			ResourceID: catalog.NewResourceID("magnitude"),
			Mag:        mag,
			Type:       rowMagType(row, cfg.Default.MagType),
		}}
	}
	return ev, nil
}

// rowTime reads the time column, or synthesizes the timestamp from separate
// year/mon/day/hour/minu/sec columns.
func rowTime(row map[string]string) (time.Time, error) {
	if s, ok := row["time"]; ok {
		return ParseTime(s)
	}
	return compositeTime(row)
}

// timeLayouts accepted by ParseTime, tried in order. The first covers full
// timestamps with any number of fractional digits, trailing Z already
// stripped and the date/time separator normalized to 'T'.
var timeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime parses the flexible ISO-8601-like timestamps found in catalog
// tables: 'T' or space separated, optional fractional seconds of any length,
// optional trailing Z. The result is UTC.
func ParseTime(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSuffix(v, "Z")
	if i := strings.IndexByte(v, ' '); i >= 0 {
		v = v[:i] + "T" + v[i+1:]
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse event time %q: unrecognized timestamp", s)
}

// compositeTime assembles a timestamp from the year, mon, day, hour, minu,
// and sec columns. All six must be present and numeric.
func compositeTime(row map[string]string) (time.Time, error) {
	var parts [5]int
	for i, name := range []string{"year", "mon", "day", "hour", "minu"} {
		s, ok := row[name]
		if !ok {
			return time.Time{}, fmt.Errorf("row has neither a time column nor a %s column", name)
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, fmt.Errorf("parse %s %q: %w", name, s, err)
		}
		parts[i] = n
	}
	secText, ok := row["sec"]
	if !ok {
		return time.Time{}, fmt.Errorf("row has neither a time column nor a sec column")
	}
	sec, err := strconv.ParseFloat(strings.TrimSpace(secText), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse sec %q: %w", secText, err)
	}
	whole, frac := math.Modf(sec)
	return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4],
		int(whole), int(math.Round(frac*1e9)), time.UTC), nil
}

// rowFloat parses a required numeric column.
func rowFloat(row map[string]string, name string) (float64, error) {
	s, ok := row[name]
	if !ok {
		return 0, fmt.Errorf("row is missing the %s column", name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, s, err)
	}
	return v, nil
}

// rowMagnitude parses the mag column leniently: a missing column, parse
// failure, or non-finite value means the event gets no magnitude at all.
func rowMagnitude(row map[string]string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(row["mag"]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v == 0 {
		// collapse negative zero
		v = 0
	}
	return v, true
}

// rowMagType reads the magtype column, substituting the configured default
// for absent values and the textual null sentinels.
func rowMagType(row map[string]string, def string) string {
	mt, ok := row["magtype"]
	if !ok {
		return def
	}
	if magTypeSentinels[strings.ToLower(strings.TrimSpace(mt))] {
		return def
	}
	return mt
}

// rowFromEvent extracts the formattable values of one event. It returns
// ok=false when the event has no resolvable origin and must be skipped;
// a missing magnitude still produces a row, with NaN magnitude (rendered
// empty) and an empty type.
func rowFromEvent(ev *catalog.Event, cfg WriteConfig) (fieldfmt.Record, bool) {
	evid := ev.ResourceID.ShortID()
	origin, err := ev.ResolveOrigin()
	if err != nil {
		cfg.Logger.Warn("no origin found, skipping event", "event", evid)
		cfg.Metrics.IncEventsSkipped()
		return nil, false
	}

	mag := math.NaN()
	magtype := ""
	if m, err := ev.ResolveMagnitude(); err != nil {
		cfg.Logger.Warn("no magnitude found for event", "event", evid)
	} else {
		mag = m.Mag
		magtype = m.Type
	}

	return fieldfmt.Record{
		"time":    origin.Time,
		"lat":     origin.Latitude,
		"lon":     origin.Longitude,
		"dep":     cfg.Depth.fromMeters(origin.Depth),
		"mag":     mag,
		"magtype": magtype,
		"id":      evid,
	}, true
}
