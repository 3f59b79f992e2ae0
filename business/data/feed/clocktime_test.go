package feed

import (
	"testing"

	"github.com/matryer/is"
)

func TestTimeToSeconds(t *testing.T) {
	tests := []struct {
		give string
		want int
	}{
		{give: "00:00:00", want: 0},
		{give: "00:00:01", want: 1},
		{give: "00:01:00", want: 60},
		{give: "01:00:00", want: 3600},
		{give: "08:30:15", want: 30615},
		{give: "23:59:59", want: 86399},
		// trips crossing midnight legitimately exceed 24 hours
		{give: "25:10:00", want: 90600},
		{give: "7:05:00", want: 25500},
	}
	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			is := is.New(t)
			is.Equal(TimeToSeconds(tt.give), tt.want)
		})
	}
}

func TestTimeToSecondsIsInjectiveWithinDay(t *testing.T) {
	seen := make(map[int]string)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 7 {
			for second := 0; second < 60; second += 13 {
				text := SecondsToClock(hour*3600 + minute*60 + second)
				got := TimeToSeconds(text)
				if previous, collides := seen[got]; collides {
					t.Fatalf("TimeToSeconds(%q) = %d collides with %q", text, got, previous)
				}
				seen[got] = text
			}
		}
	}
}

func TestSecondsToClock(t *testing.T) {
	tests := []struct {
		give int
		want string
	}{
		{give: 0, want: "00:00:00"},
		{give: 86399, want: "23:59:59"},
		{give: 90600, want: "25:10:00"},
	}
	for _, tt := range tests {
		is := is.New(t)
		is.Equal(SecondsToClock(tt.give), tt.want)
	}
}

func TestSecondsToHHMM(t *testing.T) {
	is := is.New(t)
	is.Equal(SecondsToHHMM(28800), "08:00")
	is.Equal(SecondsToHHMM(29415), "08:10")
	is.Equal(SecondsToHHMM(0), "00:00")
}
