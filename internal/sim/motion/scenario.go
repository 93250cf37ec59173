package motion

import (
	"time"

	"github.com/evrig/rigsim/pkg/randsource"
)

// eventKind identifies an anomaly scenario. Using a closed enum instead of
// string tags means an unhandled kind cannot slip through a switch.
type eventKind int

const (
	eventFall eventKind = iota
	eventPothole
)

// Event durations.
const (
	fallDuration    = 2 * time.Second
	potholeDuration = 500 * time.Millisecond
)

// Inter-arrival bounds between anomaly events, in seconds.
const (
	minEventGap = 20.0
	maxEventGap = 60.0
)

// fallProbability is the chance a scheduled event is a fall rather than a
// pothole.
const fallProbability = 0.3

func (k eventKind) String() string {
	switch k {
	case eventFall:
		return "fall"
	case eventPothole:
		return "pothole"
	}
	return "unknown"
}

// event is a scheduled or active anomaly.
type event struct {
	kind     eventKind
	start    time.Time
	duration time.Duration
}

// scheduleEvent draws the next anomaly: an inter-arrival time uniform in
// [20,60) seconds from now, a fall with probability 0.3, otherwise a
// pothole. The returned start time is always in the future relative to now.
func scheduleEvent(rng randsource.Source, now time.Time) event {
	gap := randsource.Uniform(rng, minEventGap, maxEventGap)
	start := now.Add(time.Duration(gap * float64(time.Second)))

	if randsource.Chance(rng, fallProbability) {
		return event{kind: eventFall, start: start, duration: fallDuration}
	}
	return event{kind: eventPothole, start: start, duration: potholeDuration}
}
