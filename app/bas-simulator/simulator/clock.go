package simulator

import (
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
)

// Clock derives the simulated time of day from the wall clock. Simulated time
// advances at Multiplier times wall speed from a fixed starting point and wraps to
// zero at 86400 seconds. The clock holds no mutable state: the current simulated
// value is a pure function of the wall time passed in, which keeps every tick and
// every test deterministic.
type Clock struct {
	startedAt    time.Time
	startSeconds int
	multiplier   float64
}

// NewClock creates a Clock that reads startSeconds at wall time startedAt
func NewClock(startedAt time.Time, startSeconds int, multiplier float64) *Clock {
	if multiplier <= 0 {
		multiplier = 1
	}
	return &Clock{
		startedAt:    startedAt,
		startSeconds: startSeconds % feed.DaySeconds,
		multiplier:   multiplier,
	}
}

// NewWallClock creates a Clock matching the wall time of day in loc at real speed
func NewWallClock(startedAt time.Time, loc *time.Location) *Clock {
	local := startedAt.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return NewClock(startedAt, int(local.Sub(midnight).Seconds()), 1)
}

// ParseStartSeconds converts an HH:MM:SS start time into seconds since midnight
func ParseStartSeconds(text string) int {
	return feed.TimeToSeconds(text) % feed.DaySeconds
}

// SimSeconds returns the simulated seconds since midnight at wall time now,
// wrapped into [0, 86400)
func (c *Clock) SimSeconds(now time.Time) int {
	elapsed := now.Sub(c.startedAt).Seconds() * c.multiplier
	seconds := (c.startSeconds + int(elapsed)) % feed.DaySeconds
	if seconds < 0 {
		seconds += feed.DaySeconds
	}
	return seconds
}

// Multiplier returns the configured speed multiplier
func (c *Clock) Multiplier() float64 {
	return c.multiplier
}
