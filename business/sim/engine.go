package sim

import (
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/geo"
)

// VehicleStatus tags what an active vehicle is doing at the simulated instant
type VehicleStatus string

const (
	// StatusMoving means the vehicle is between two stops
	StatusMoving VehicleStatus = "moving"
	// StatusDwelling means the vehicle is held at a stop between arrival and departure
	StatusDwelling VehicleStatus = "dwelling"
)

// ActiveVehicle is the simulated state of one running trip at a single tick.
// Ephemeral: the whole set is rebuilt from scratch every tick and never mutated in
// place, so a new simulated clock value is always fully reflected.
type ActiveVehicle struct {
	TripId     string        `json:"trip_id"`
	RouteId    string        `json:"route_id"`
	Route      *feed.Route   `json:"route,omitempty"`
	Headsign   string        `json:"headsign"`
	Position   geo.Point     `json:"position"`
	Bearing    float64       `json:"bearing"`
	Progress   float64       `json:"progress"`
	PrevStopId string        `json:"prev_stop_id"`
	NextStopId string        `json:"next_stop_id"`
	Status     VehicleStatus `json:"status"`
}

// ComputeActiveVehicles evaluates every scheduled trip against the simulated clock
// value simSeconds (seconds since midnight) and returns the currently running
// vehicles with interpolated positions. serviceDate is the real wall clock date used
// for the calendar activity check.
//
// Each trip is evaluated independently and statelessly; per tick anomalies such as
// gaps in stop time coverage or unresolvable stops silently exclude the trip for
// that tick, since a visualization must never fail on one malformed trip.
func ComputeActiveVehicles(data *Data, serviceDate time.Time, simSeconds int) []ActiveVehicle {
	var vehicles []ActiveVehicle
	for routeId, trips := range data.TripsByRouteId {
		route := data.RoutesById[routeId]
		for _, trip := range trips {
			if !feed.ServiceActive(data.Calendars, trip.ServiceId, serviceDate) {
				continue
			}
			vehicle := evaluateTrip(data, trip, route, simSeconds)
			if vehicle != nil {
				vehicles = append(vehicles, *vehicle)
			}
		}
	}
	return vehicles
}

// evaluateTrip determines the running state of a single service-active trip, returning
// nil when the trip has no vehicle on the map at simSeconds.
func evaluateTrip(data *Data, trip *feed.Trip, route *feed.Route, simSeconds int) *ActiveVehicle {
	stopTimes := trip.StopTimes
	first := trip.FirstStopTime()
	last := trip.LastStopTime()
	if first == nil || last == nil {
		return nil
	}
	// not yet started or already finished
	if simSeconds < first.DepartureTime || simSeconds > last.ArrivalTime {
		return nil
	}

	// scan stop time pairs in order; first match wins, stop time sequences are
	// strictly increasing so segments cannot overlap
	for i, stopTime := range stopTimes {
		if simSeconds >= stopTime.ArrivalTime && simSeconds < stopTime.DepartureTime {
			return dwellingVehicle(data, trip, route, stopTime, i)
		}
		if i+1 >= len(stopTimes) {
			continue
		}
		next := stopTimes[i+1]
		if simSeconds >= stopTime.DepartureTime && simSeconds <= next.ArrivalTime {
			return movingVehicle(data, trip, route, stopTime, next, simSeconds)
		}
	}

	// a gap in stop time coverage inside the trip's bounds; skip this tick
	return nil
}

func dwellingVehicle(data *Data, trip *feed.Trip, route *feed.Route, stopTime *feed.StopTime, index int) *ActiveVehicle {
	stop := data.Stops[stopTime.StopId]
	if stop == nil {
		return nil
	}
	nextStopId := ""
	if index+1 < len(trip.StopTimes) {
		nextStopId = trip.StopTimes[index+1].StopId
	}
	return &ActiveVehicle{
		TripId:     trip.TripId,
		RouteId:    trip.RouteId,
		Route:      route,
		Headsign:   trip.Headsign,
		Position:   geo.Point{Lat: stop.Lat, Lon: stop.Lon},
		PrevStopId: stop.StopId,
		NextStopId: nextStopId,
		Status:     StatusDwelling,
	}
}

func movingVehicle(data *Data, trip *feed.Trip, route *feed.Route, from *feed.StopTime, to *feed.StopTime, simSeconds int) *ActiveVehicle {
	fromStop := data.Stops[from.StopId]
	toStop := data.Stops[to.StopId]
	if fromStop == nil || toStop == nil {
		return nil
	}

	progress := 0.0
	if span := to.ArrivalTime - from.DepartureTime; span > 0 {
		progress = float64(simSeconds-from.DepartureTime) / float64(span)
	}

	position := InterpolatePosition(data.Shapes[trip.ShapeId], fromStop, toStop, progress)
	return &ActiveVehicle{
		TripId:     trip.TripId,
		RouteId:    trip.RouteId,
		Route:      route,
		Headsign:   trip.Headsign,
		Position:   position,
		Bearing:    geo.Bearing(geo.Point{Lat: fromStop.Lat, Lon: fromStop.Lon}, geo.Point{Lat: toStop.Lat, Lon: toStop.Lon}),
		Progress:   progress,
		PrevStopId: fromStop.StopId,
		NextStopId: toStop.StopId,
		Status:     StatusMoving,
	}
}
