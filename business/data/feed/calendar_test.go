package feed

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func testDate(str string) time.Time {
	result, _ := time.Parse("20060102", str)
	return result
}

func TestCalendarActiveOn(t *testing.T) {
	weekdayService := &Calendar{
		ServiceId: "WKDY",
		Monday:    1,
		Tuesday:   1,
		Wednesday: 1,
		Thursday:  1,
		Friday:    1,
		StartDate: "20260101",
		EndDate:   "20261231",
	}
	sundayService := &Calendar{
		ServiceId: "SUN",
		Sunday:    1,
		StartDate: "20260101",
		EndDate:   "20260630",
	}
	tests := []struct {
		name     string
		calendar *Calendar
		date     string
		want     bool
	}{
		{
			name:     "weekday service on a wednesday",
			calendar: weekdayService,
			date:     "20260805",
			want:     true,
		},
		{
			name:     "weekday service on a saturday",
			calendar: weekdayService,
			date:     "20260801",
			want:     false,
		},
		{
			name:     "before start date regardless of flags",
			calendar: weekdayService,
			date:     "20251231",
			want:     false,
		},
		{
			name:     "after end date regardless of flags",
			calendar: weekdayService,
			date:     "20270104",
			want:     false,
		},
		{
			name:     "start date itself is inclusive",
			calendar: sundayService,
			date:     "20260104", // first sunday in range
			want:     true,
		},
		{
			name:     "sunday service on a sunday after its end date",
			calendar: sundayService,
			date:     "20260705",
			want:     false,
		},
		{
			name: "malformed start date is not active",
			calendar: &Calendar{
				ServiceId: "BAD",
				Monday:    1,
				StartDate: "2026",
				EndDate:   "20261231",
			},
			date: "20260803",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(tt.calendar.ActiveOn(testDate(tt.date)), tt.want)
		})
	}
}

func TestServiceActive(t *testing.T) {
	is := is.New(t)
	calendars := map[string]*Calendar{
		"WKDY": {
			ServiceId: "WKDY",
			Monday:    1,
			StartDate: "20260101",
			EndDate:   "20261231",
		},
	}
	monday := testDate("20260803")
	is.True(ServiceActive(calendars, "WKDY", monday))
	// absent service ids are not active, never an error
	is.True(!ServiceActive(calendars, "UNKNOWN", monday))
}
