package sim

import (
	"testing"

	"github.com/matryer/is"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/geo"
)

func TestComputeActiveVehiclesTripBounds(t *testing.T) {
	// the fixture trip departs its first stop at 28800 and arrives its last at 29400
	tests := []struct {
		name       string
		simSeconds int
		wantActive bool
	}{
		{name: "before first departure", simSeconds: 28500, wantActive: false},
		{name: "at first departure", simSeconds: 28800, wantActive: true},
		{name: "mid trip", simSeconds: 29000, wantActive: true},
		{name: "at last arrival", simSeconds: 29400, wantActive: true},
		{name: "after last arrival", simSeconds: 29700, wantActive: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			vehicles := ComputeActiveVehicles(makeTestData(), testServiceDate, tt.simSeconds)
			if tt.wantActive {
				is.Equal(len(vehicles), 1)
				is.True(vehicles[0].Status == StatusMoving || vehicles[0].Status == StatusDwelling)
			} else {
				is.Equal(len(vehicles), 0)
			}
		})
	}
}

func TestComputeActiveVehiclesMidpointEndToEnd(t *testing.T) {
	// one route, one trip, two stops, straight two point shape: at the exact midpoint
	// time the single active vehicle sits at the geometric midpoint of the stops
	is := is.New(t)
	data := makeTestData()

	vehicles := ComputeActiveVehicles(data, testServiceDate, 29100)
	is.Equal(len(vehicles), 1)

	vehicle := vehicles[0]
	is.Equal(vehicle.TripId, "T1")
	is.Equal(vehicle.RouteId, "R1")
	is.Equal(vehicle.Status, StatusMoving)
	is.Equal(vehicle.PrevStopId, "A")
	is.Equal(vehicle.NextStopId, "B")
	is.True(near(vehicle.Position, geo.Point{Lat: 6.11, Lon: 102.21}, 0.0002))
	is.True(vehicle.Progress > 0.49 && vehicle.Progress < 0.51)
}

func TestComputeActiveVehiclesDwelling(t *testing.T) {
	is := is.New(t)
	data := makeTestData()
	// give the trip an intermediate stop with a 60 second dwell
	data.Stops["M"] = makeTestStop("M", "Midway", 6.11, 102.21)
	trip := data.TripsByRouteId["R1"][0]
	trip.StopTimes = []*feed.StopTime{
		makeTestStopTime("T1", "A", 1, 28800, 28800),
		makeTestStopTime("T1", "M", 2, 29040, 29100),
		makeTestStopTime("T1", "B", 3, 29400, 29400),
	}

	vehicles := ComputeActiveVehicles(data, testServiceDate, 29070)
	is.Equal(len(vehicles), 1)
	is.Equal(vehicles[0].Status, StatusDwelling)
	is.True(near(vehicles[0].Position, geo.Point{Lat: 6.11, Lon: 102.21}, 0.0001))
	is.Equal(vehicles[0].PrevStopId, "M")
	is.Equal(vehicles[0].NextStopId, "B")

	// departure boundary is exclusive for dwelling: at 29100 the vehicle is moving again
	vehicles = ComputeActiveVehicles(data, testServiceDate, 29100)
	is.Equal(len(vehicles), 1)
	is.Equal(vehicles[0].Status, StatusMoving)
	is.Equal(vehicles[0].PrevStopId, "M")
}

func TestComputeActiveVehiclesInactiveService(t *testing.T) {
	is := is.New(t)
	data := makeTestData()
	data.TripsByRouteId["R1"][0].ServiceId = "UNKNOWN"

	vehicles := ComputeActiveVehicles(data, testServiceDate, 29000)
	is.Equal(len(vehicles), 0)
}

func TestComputeActiveVehiclesMissingStopExcludesTrip(t *testing.T) {
	is := is.New(t)
	data := makeTestData()
	delete(data.Stops, "B")

	// the destination stop cannot be resolved; the trip is silently excluded
	vehicles := ComputeActiveVehicles(data, testServiceDate, 29000)
	is.Equal(len(vehicles), 0)
}

func TestComputeActiveVehiclesMissingShapeFallsBack(t *testing.T) {
	is := is.New(t)
	data := makeTestData()
	delete(data.Shapes, "S1")

	// no shape: position degrades to the from stop's coordinates rather than failing
	vehicles := ComputeActiveVehicles(data, testServiceDate, 29000)
	is.Equal(len(vehicles), 1)
	is.True(near(vehicles[0].Position, geo.Point{Lat: 6.10, Lon: 102.20}, 0.0001))
}

func TestComputeActiveVehiclesRebuiltEachTick(t *testing.T) {
	is := is.New(t)
	data := makeTestData()

	first := ComputeActiveVehicles(data, testServiceDate, 29000)
	second := ComputeActiveVehicles(data, testServiceDate, 29200)
	is.Equal(len(first), 1)
	is.Equal(len(second), 1)
	// later tick, further along: recomputation reflects the new clock only
	is.True(second[0].Progress > first[0].Progress)
}
