// Package catalog models earthquake-catalog data: events with their origins,
// magnitudes, picks, and arrivals.
//
// # Structure
//
// A [Catalog] is an ordered collection of events. Each [Event] may carry
// several [Origin] hypotheses and several [Magnitude] estimates; at most one
// of each is marked "preferred" via the event's PreferredOriginID and
// PreferredMagnitudeID. The tabular formats resolve an event to a single
// origin/magnitude with [Event.ResolveOrigin] and [Event.ResolveMagnitude],
// which fall back to the first element when no preferred one is set.
//
// A [Pick] records the arrival of a seismic phase at a station/channel
// ([WaveformStreamID]). The origin-side [Arrival] links a pick to the phase
// label and time weight used during location.
//
// # Conventions
//
//   - Origin depth is stored in meters. Unit conversion to/from kilometers
//     happens at the text boundary, never in this package.
//   - Times are UTC with sub-second precision.
//   - Resource identifiers are slash-delimited URIs; the last path segment is
//     the short id used in file names and CSV rows.
package catalog
