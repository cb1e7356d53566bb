package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ResourceID identifies a catalog entity. Its string form is a slash-delimited
// URI such as "smi:local/event/20240426120000-1a2b3c4d"; external ids read
// from files are stored verbatim.
type ResourceID string

// NewResourceID generates a fresh identifier under the smi:local authority.
// The embedded timestamp comes from the package clock so tests can freeze it.
func NewResourceID(prefix string) ResourceID {
	stamp := clock.Now().UTC().Format("20060102150405")
	return ResourceID(fmt.Sprintf("smi:local/%s/%s-%.8s", prefix, stamp, uuid.NewString()))
}

// ShortID returns the last slash-separated segment, used as the event id in
// CSV rows and archive member names.
func (r ResourceID) ShortID() string {
	s := string(r)
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// WaveformStreamID names a network/station/location/channel combination.
// The zero value is an empty stream id.
type WaveformStreamID struct {
	Network  string
	Station  string
	Location string
	Channel  string

	// raw preserves seed strings that did not split into four parts.
	raw string
}

// ParseWaveformStreamID splits a SEED string "NET.STA.LOC.CHA" into its
// components. Strings with a different number of parts are preserved verbatim
// and round-trip unchanged through ID.
func ParseWaveformStreamID(seed string) WaveformStreamID {
	parts := strings.Split(seed, ".")
	if len(parts) != 4 {
		return WaveformStreamID{raw: seed}
	}
	return WaveformStreamID{
		Network:  parts[0],
		Station:  parts[1],
		Location: parts[2],
		Channel:  parts[3],
	}
}

// ID returns the SEED string form of the stream id.
func (w WaveformStreamID) ID() string {
	if w.raw != "" {
		return w.raw
	}
	return w.Network + "." + w.Station + "." + w.Location + "." + w.Channel
}
