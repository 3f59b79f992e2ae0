package simulator

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/sim"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/geo"
	"github.com/matryer/is"
)

type fakeDestination struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeDestination) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return f.err
}

func makeTestSnapshot() *VehicleSnapshot {
	return &VehicleSnapshot{
		ServiceDate: "20260805",
		SimSeconds:  29100,
		GeneratedAt: time.Date(2026, 8, 5, 8, 5, 0, 0, time.UTC),
		Vehicles: []sim.ActiveVehicle{
			{
				TripId:     "T1",
				RouteId:    "R1",
				Position:   geo.Point{Lat: 6.11, Lon: 102.21},
				PrevStopId: "A",
				NextStopId: "B",
				Status:     sim.StatusMoving,
			},
		},
	}
}

func Test_SnapshotPublisher(t *testing.T) {
	is := is.New(t)
	destination := &fakeDestination{}
	p := &snapshotPublisher{
		log:         testLogger(),
		destination: destination,
		subject:     "bas-vehicle-snapshots",
		metrics:     NewMetrics(),
	}

	p.publish(makeTestSnapshot())

	is.Equal(destination.subject, "bas-vehicle-snapshots")
	var published VehicleSnapshot
	is.NoErr(json.Unmarshal(destination.data, &published))
	is.Equal(published.SimSeconds, 29100)
	is.Equal(len(published.Vehicles), 1)
	is.Equal(published.Vehicles[0].TripId, "T1")
}

func Test_SnapshotPublisher_NoDestination(t *testing.T) {
	p := makeSnapshotPublisher(testLogger(), nil, "bas-vehicle-snapshots", NewMetrics())
	// nil connection means publishing is disabled, must not panic
	p.publish(makeTestSnapshot())
}

func Test_SnapshotPublisher_DestinationError(t *testing.T) {
	destination := &fakeDestination{err: errors.New("connection closed")}
	p := &snapshotPublisher{
		log:         testLogger(),
		destination: destination,
		subject:     "bas-vehicle-snapshots",
		metrics:     NewMetrics(),
	}
	// errors are logged and counted, not returned
	p.publish(makeTestSnapshot())
}
