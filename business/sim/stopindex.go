package sim

import (
	"sort"
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
)

// StopEvent is one scheduled departure from a stop
type StopEvent struct {
	DepartureTime int    `json:"departure_time"`
	RouteId       string `json:"route_id"`
	TripId        string `json:"trip_id"`
	ServiceId     string `json:"service_id"`
	Headsign      string `json:"headsign"`
}

// StopScheduleIndex precomputes, per stop, the time ordered list of departures across
// all trips. Built once after a data set load and read-only afterward; a feed change
// requires a full rebuild, never an incremental update.
type StopScheduleIndex struct {
	eventsByStopId map[string][]StopEvent
}

// BuildStopScheduleIndex walks every route's trips and their stop times, collecting
// events per stop, then sorts each stop's list ascending by departure time.
func BuildStopScheduleIndex(data *Data) *StopScheduleIndex {
	index := StopScheduleIndex{
		eventsByStopId: make(map[string][]StopEvent),
	}
	for routeId, trips := range data.TripsByRouteId {
		for _, trip := range trips {
			for _, stopTime := range trip.StopTimes {
				index.eventsByStopId[stopTime.StopId] = append(index.eventsByStopId[stopTime.StopId], StopEvent{
					DepartureTime: stopTime.DepartureTime,
					RouteId:       routeId,
					TripId:        trip.TripId,
					ServiceId:     trip.ServiceId,
					Headsign:      trip.Headsign,
				})
			}
		}
	}
	for stopId := range index.eventsByStopId {
		events := index.eventsByStopId[stopId]
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].DepartureTime < events[j].DepartureTime
		})
	}
	return &index
}

// Events returns the full time ordered departure list for stopId
func (x *StopScheduleIndex) Events(stopId string) []StopEvent {
	return x.eventsByStopId[stopId]
}

// NextArrival returns the first departure from stopId, in time order, strictly after
// currentSeconds whose service is active on serviceDate. The calendar check uses the
// real wall clock date regardless of the simulated time of day. Returns nil when no
// departure qualifies.
func (x *StopScheduleIndex) NextArrival(stopId string, currentSeconds int, calendars map[string]*feed.Calendar, serviceDate time.Time) *StopEvent {
	for _, event := range x.eventsByStopId[stopId] {
		if event.DepartureTime <= currentSeconds {
			continue
		}
		if !feed.ServiceActive(calendars, event.ServiceId, serviceDate) {
			continue
		}
		found := event
		return &found
	}
	return nil
}

// UpcomingTrip is a rider facing projection of a route's next departing trip
type UpcomingTrip struct {
	TripId   string `json:"trip_id"`
	RouteId  string `json:"route_id"`
	Headsign string `json:"headsign"`
	Departs  string `json:"departs"` // first stop departure, HH:MM
	Arrives  string `json:"arrives"` // last stop arrival, HH:MM
}

// NextRouteTrip returns the route's next trip to depart after currentSeconds among
// trips whose service is active on serviceDate, or nil at end of service.
func NextRouteTrip(data *Data, routeId string, currentSeconds int, serviceDate time.Time) *UpcomingTrip {
	var candidates []*feed.Trip
	for _, trip := range data.TripsByRouteId[routeId] {
		if feed.ServiceActive(data.Calendars, trip.ServiceId, serviceDate) {
			candidates = append(candidates, trip)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FirstStopTime().DepartureTime < candidates[j].FirstStopTime().DepartureTime
	})
	for _, trip := range candidates {
		first := trip.FirstStopTime()
		if first.DepartureTime <= currentSeconds {
			continue
		}
		return &UpcomingTrip{
			TripId:   trip.TripId,
			RouteId:  routeId,
			Headsign: trip.Headsign,
			Departs:  feed.SecondsToHHMM(first.DepartureTime),
			Arrives:  feed.SecondsToHHMM(trip.LastStopTime().ArrivalTime),
		}
	}
	return nil
}
