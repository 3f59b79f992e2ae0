package feed

import (
	"fmt"
	"strconv"
	"strings"
)

// DaySeconds is the number of seconds in one service day. The simulated clock wraps
// to zero when it reaches this value.
const DaySeconds = 24 * 60 * 60

// TimeToSeconds converts a feed clock string in "HH:MM:SS" form to seconds since midnight.
// Feed times may legitimately exceed 24:00:00 for trips crossing midnight, so no
// bounds are applied. Malformed components count as zero.
func TimeToSeconds(text string) int {
	parts := strings.Split(text, ":")
	seconds := 0
	multipliers := []int{3600, 60, 1}
	for i, part := range parts {
		if i >= len(multipliers) {
			break
		}
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		seconds += value * multipliers[i]
	}
	return seconds
}

// SecondsToClock formats seconds since midnight as "HH:MM:SS". Hours are not wrapped,
// mirroring feed times past 24:00:00.
func SecondsToClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// SecondsToHHMM formats seconds since midnight as "HH:MM" for rider facing displays
func SecondsToHHMM(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/3600, (seconds%3600)/60)
}
