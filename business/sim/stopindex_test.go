package sim

import (
	"testing"

	"github.com/matryer/is"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
)

// makeIndexData builds a dataset with three departures from stop X at 300, 600 and
// 900 seconds. The 600 departure belongs to a service that is not active, so time
// order queries must skip it when asked to.
func makeIndexData(secondServiceActive bool) *Data {
	tripAt := func(tripId, serviceId string, departure int) *feed.Trip {
		return &feed.Trip{
			TripId:    tripId,
			RouteId:   "R1",
			ServiceId: serviceId,
			Headsign:  "Town Centre",
			StopTimes: []*feed.StopTime{
				makeTestStopTime(tripId, "X", 1, departure, departure),
				makeTestStopTime(tripId, "Y", 2, departure+300, departure+300),
			},
		}
	}
	calendars := map[string]*feed.Calendar{
		"DAILY": everyDayCalendar("DAILY"),
	}
	secondService := "NEVER"
	if secondServiceActive {
		secondService = "DAILY"
	}
	return &Data{
		Stops: map[string]*feed.Stop{
			"X": makeTestStop("X", "X", 6.10, 102.20),
			"Y": makeTestStop("Y", "Y", 6.11, 102.21),
		},
		TripsByRouteId: map[string][]*feed.Trip{
			"R1": {
				// insertion order deliberately not time order
				tripAt("T900", "DAILY", 900),
				tripAt("T300", "DAILY", 300),
				tripAt("T600", secondService, 600),
			},
		},
		Calendars: calendars,
	}
}

func TestBuildStopScheduleIndexSortsByDeparture(t *testing.T) {
	is := is.New(t)
	index := BuildStopScheduleIndex(makeIndexData(true))

	events := index.Events("X")
	is.Equal(len(events), 3)
	is.Equal(events[0].DepartureTime, 300)
	is.Equal(events[1].DepartureTime, 600)
	is.Equal(events[2].DepartureTime, 900)
}

func TestNextArrival(t *testing.T) {
	tests := []struct {
		name                string
		secondServiceActive bool
		currentSeconds      int
		wantTripId          string
		wantNil             bool
	}{
		{
			name:                "first strictly greater departure",
			secondServiceActive: true,
			currentSeconds:      301,
			wantTripId:          "T600",
		},
		{
			name:                "departure at exactly the current time is skipped",
			secondServiceActive: true,
			currentSeconds:      300,
			wantTripId:          "T600",
		},
		{
			name:                "inactive services are skipped in time order",
			secondServiceActive: false,
			currentSeconds:      301,
			wantTripId:          "T900",
		},
		{
			name:                "no departures remain",
			secondServiceActive: true,
			currentSeconds:      900,
			wantNil:             true,
		},
		{
			name:                "unknown stop",
			secondServiceActive: true,
			currentSeconds:      0,
			wantNil:             true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			data := makeIndexData(tt.secondServiceActive)
			index := BuildStopScheduleIndex(data)

			stopId := "X"
			if tt.name == "unknown stop" {
				stopId = "MISSING"
			}
			got := index.NextArrival(stopId, tt.currentSeconds, data.Calendars, testServiceDate)
			if tt.wantNil {
				is.Equal(got, nil)
				return
			}
			if got == nil {
				t.Fatalf("NextArrival() = nil, want trip %s", tt.wantTripId)
			}
			is.Equal(got.TripId, tt.wantTripId)
		})
	}
}

func TestNextRouteTrip(t *testing.T) {
	is := is.New(t)
	data := makeIndexData(false)

	got := NextRouteTrip(data, "R1", 301, testServiceDate)
	if got == nil {
		t.Fatal("NextRouteTrip() = nil, want the 900s trip")
	}
	// the 600s trip's service is inactive today, so the 900s trip is next
	is.Equal(got.TripId, "T900")
	is.Equal(got.Departs, "00:15")
	is.Equal(got.Arrives, "00:20")
	is.Equal(got.Headsign, "Town Centre")

	// end of service
	is.Equal(NextRouteTrip(data, "R1", 901, testServiceDate), nil)

	// unknown route
	is.Equal(NextRouteTrip(data, "R404", 0, testServiceDate), nil)
}
