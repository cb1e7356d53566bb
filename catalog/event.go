package catalog

import (
	"errors"
	"time"
)

var (
	// ErrNoOrigin is returned when an event carries no usable origin.
	ErrNoOrigin = errors.New("catalog: event has no origin")
	// ErrNoMagnitude is returned when an event carries no usable magnitude.
	ErrNoMagnitude = errors.New("catalog: event has no magnitude")
)

// Catalog is an ordered collection of seismic events.
type Catalog struct {
	Events []*Event
}

// New creates a catalog holding the given events.
func New(events ...*Event) *Catalog {
	return &Catalog{Events: events}
}

// Len returns the number of events in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Events)
}

// Append adds events to the end of the catalog.
func (c *Catalog) Append(events ...*Event) {
	c.Events = append(c.Events, events...)
}

// Event is a single seismic event: origin hypotheses, magnitude estimates,
// and phase picks.
type Event struct {
	ResourceID           ResourceID
	Origins              []*Origin
	Magnitudes           []*Magnitude
	Picks                []*Pick
	PreferredOriginID    ResourceID
	PreferredMagnitudeID ResourceID
}

// NewEvent creates an event with a freshly generated resource identifier.
func NewEvent() *Event {
	return &Event{ResourceID: NewResourceID("event")}
}

// PreferredOrigin returns the origin matching PreferredOriginID, or nil.
func (e *Event) PreferredOrigin() *Origin {
	if e.PreferredOriginID == "" {
		return nil
	}
	for _, o := range e.Origins {
		if o.ResourceID == e.PreferredOriginID {
			return o
		}
	}
	return nil
}

// PreferredMagnitude returns the magnitude matching PreferredMagnitudeID, or nil.
func (e *Event) PreferredMagnitude() *Magnitude {
	if e.PreferredMagnitudeID == "" {
		return nil
	}
	for _, m := range e.Magnitudes {
		if m.ResourceID == e.PreferredMagnitudeID {
			return m
		}
	}
	return nil
}

// ResolveOrigin returns the preferred origin, falling back to the first one.
// It returns ErrNoOrigin when the event has none.
func (e *Event) ResolveOrigin() (*Origin, error) {
	if o := e.PreferredOrigin(); o != nil {
		return o, nil
	}
	if len(e.Origins) > 0 {
		return e.Origins[0], nil
	}
	return nil, ErrNoOrigin
}

// ResolveMagnitude returns the preferred magnitude, falling back to the first
// one. It returns ErrNoMagnitude when the event has none.
func (e *Event) ResolveMagnitude() (*Magnitude, error) {
	if m := e.PreferredMagnitude(); m != nil {
		return m, nil
	}
	if len(e.Magnitudes) > 0 {
		return e.Magnitudes[0], nil
	}
	return nil, ErrNoMagnitude
}

// Origin is a hypothesized location and time for an event.
// Depth is in meters.
type Origin struct {
	ResourceID ResourceID
	Time       time.Time
	Latitude   float64
	Longitude  float64
	Depth      float64
	Arrivals   []*Arrival
}

// Magnitude is a size estimate for an event. Type is a free-text label such
// as "Mw" or "Ml" and may be empty.
type Magnitude struct {
	ResourceID ResourceID
	Mag        float64
	Type       string
}

// Pick is an identified arrival of a seismic phase at a station/channel.
type Pick struct {
	ResourceID ResourceID
	Time       time.Time
	WaveformID WaveformStreamID
	PhaseHint  string
}

// Arrival links a pick to the phase label and time weight used when locating
// the owning origin.
type Arrival struct {
	PickID     ResourceID
	Phase      string
	TimeWeight float64
}
