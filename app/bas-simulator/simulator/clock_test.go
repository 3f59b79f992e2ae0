package simulator

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func Test_Clock_SimSeconds(t *testing.T) {
	start := time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		startSeconds int
		multiplier   float64
		elapsed      time.Duration
		want         int
	}{
		{
			name:         "no elapsed time returns start",
			startSeconds: 28800,
			multiplier:   1,
			elapsed:      0,
			want:         28800,
		},
		{
			name:         "real speed advances one second per second",
			startSeconds: 28800,
			multiplier:   1,
			elapsed:      90 * time.Second,
			want:         28890,
		},
		{
			name:         "multiplier scales elapsed time",
			startSeconds: 28800,
			multiplier:   60,
			elapsed:      10 * time.Second,
			want:         29400,
		},
		{
			name:         "wraps past midnight",
			startSeconds: 86350,
			multiplier:   1,
			elapsed:      100 * time.Second,
			want:         50,
		},
		{
			name:         "start seconds outside a day are normalized",
			startSeconds: 90000,
			multiplier:   1,
			elapsed:      0,
			want:         3600,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			c := NewClock(start, tt.startSeconds, tt.multiplier)
			is.Equal(c.SimSeconds(start.Add(tt.elapsed)), tt.want)
		})
	}
}

func Test_Clock_InvalidMultiplierDefaultsToRealSpeed(t *testing.T) {
	is := is.New(t)
	start := time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)
	c := NewClock(start, 0, -5)
	is.Equal(c.Multiplier(), 1.0)
	is.Equal(c.SimSeconds(start.Add(30*time.Second)), 30)
}

func Test_NewWallClock(t *testing.T) {
	is := is.New(t)
	startedAt := time.Date(2026, 8, 5, 8, 30, 15, 0, time.UTC)
	c := NewWallClock(startedAt, time.UTC)
	is.Equal(c.SimSeconds(startedAt), 8*3600+30*60+15)
}
