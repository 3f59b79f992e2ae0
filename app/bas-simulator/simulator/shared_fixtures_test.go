package simulator

import (
	"io"
	logger "log"
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/sim"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/geo"
)

func testLogger() *logger.Logger {
	return logger.New(io.Discard, "", 0)
}

// makeTestData builds a single route with one all-day trip so a snapshot exists
// regardless of the wall time a test runs at
func makeTestData() *sim.Data {
	stopA := &feed.Stop{StopId: "A", Name: "Kota Square", Lat: 6.10, Lon: 102.20}
	stopB := &feed.Stop{StopId: "B", Name: "Pantai Road", Lat: 6.12, Lon: 102.22}
	trip := &feed.Trip{
		TripId:    "T1",
		RouteId:   "R1",
		ServiceId: "DAILY",
		ShapeId:   "S1",
		Headsign:  "Pantai",
		StopTimes: []*feed.StopTime{
			{TripId: "T1", StopSequence: 1, StopId: "A", ArrivalTime: 0, DepartureTime: 0},
			{TripId: "T1", StopSequence: 2, StopId: "B", ArrivalTime: feed.DaySeconds - 1, DepartureTime: feed.DaySeconds - 1},
		},
	}
	route := &feed.Route{RouteId: "R1", ShortName: "1", LongName: "Kota Bharu Loop"}
	return &sim.Data{
		Stops:  map[string]*feed.Stop{"A": stopA, "B": stopB},
		Shapes: map[string][]geo.Point{"S1": {{Lat: 6.10, Lon: 102.20}, {Lat: 6.12, Lon: 102.22}}},
		Routes: []*feed.Route{route},
		RoutesById: map[string]*feed.Route{
			"R1": route,
		},
		TripsByRouteId: map[string][]*feed.Trip{
			"R1": {trip},
		},
		Calendars: map[string]*feed.Calendar{
			"DAILY": {
				ServiceId: "DAILY",
				Monday:    1, Tuesday: 1, Wednesday: 1, Thursday: 1,
				Friday: 1, Saturday: 1, Sunday: 1,
				StartDate: "20200101",
				EndDate:   "20401231",
			},
		},
	}
}

func makeTestSimulator() (*Simulator, *Metrics) {
	metrics := NewMetrics()
	clock := NewClock(time.Now(), 0, 1)
	s := NewSimulator(testLogger(), makeTestData(), clock, time.UTC, time.Second, nil, "", metrics)
	return s, metrics
}
