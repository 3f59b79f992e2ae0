package sim

import (
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/geo"
)

// fixtures shared by the sim package tests: a small two route network around three
// stops on a straight south-west to north-east line.

var testServiceDate = time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC) // a wednesday

func everyDayCalendar(serviceId string) *feed.Calendar {
	return &feed.Calendar{
		ServiceId: serviceId,
		Monday:    1,
		Tuesday:   1,
		Wednesday: 1,
		Thursday:  1,
		Friday:    1,
		Saturday:  1,
		Sunday:    1,
		StartDate: "20200101",
		EndDate:   "20991231",
	}
}

func makeTestStop(stopId, name string, lat, lon float64) *feed.Stop {
	return &feed.Stop{StopId: stopId, Name: name, Lat: lat, Lon: lon}
}

func makeTestStopTime(tripId, stopId string, sequence, arrival, departure int) *feed.StopTime {
	return &feed.StopTime{
		TripId:        tripId,
		StopId:        stopId,
		StopSequence:  sequence,
		ArrivalTime:   arrival,
		DepartureTime: departure,
	}
}

// makeTestData builds lookup tables with one route and one trip serving stops A and B:
// departs A at 28800 (08:00:00), arrives B at 29400 (08:10:00). The shape is the
// straight two point line from A to B.
func makeTestData() *Data {
	stopA := makeTestStop("A", "Kota Square", 6.10, 102.20)
	stopB := makeTestStop("B", "Pantai Road", 6.12, 102.22)

	trip := &feed.Trip{
		TripId:    "T1",
		RouteId:   "R1",
		ServiceId: "DAILY",
		ShapeId:   "S1",
		Headsign:  "Pantai",
		StopTimes: []*feed.StopTime{
			makeTestStopTime("T1", "A", 1, 28800, 28800),
			makeTestStopTime("T1", "B", 2, 29400, 29400),
		},
	}
	route := &feed.Route{RouteId: "R1", ShortName: "1", LongName: "Kota Square - Pantai", Color: "FF6600", TextColor: "FFFFFF"}

	return &Data{
		Stops: map[string]*feed.Stop{
			"A": stopA,
			"B": stopB,
		},
		Shapes: map[string][]geo.Point{
			"S1": {
				{Lat: stopA.Lat, Lon: stopA.Lon},
				{Lat: stopB.Lat, Lon: stopB.Lon},
			},
		},
		Routes:     []*feed.Route{route},
		RoutesById: map[string]*feed.Route{"R1": route},
		TripsByRouteId: map[string][]*feed.Trip{
			"R1": {trip},
		},
		Calendars: map[string]*feed.Calendar{
			"DAILY": everyDayCalendar("DAILY"),
		},
	}
}
