package catalog

import "github.com/jonboulle/clockwork"

// Resource identifiers embed the moment of their creation, which would make
// them untestable against golden values. All id generation therefore reads
// the package clock rather than time.Now.
var clock = clockwork.NewRealClock()

// SetClock replaces the package time source, letting tests pin identifier
// timestamps with a fake clock. A nil argument restores the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
