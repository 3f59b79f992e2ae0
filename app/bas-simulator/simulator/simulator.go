package simulator

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/sim"
	"github.com/nats-io/nats.go"
)

// Simulator recomputes the active vehicle snapshot on a fixed interval and makes
// the latest snapshot available to the web service. Each tick rebuilds the full
// snapshot from the static schedule data, nothing carries over between ticks.
type Simulator struct {
	log       *log.Logger
	data      *sim.Data
	clock     *Clock
	location  *time.Location
	interval  time.Duration
	publisher *snapshotPublisher
	metrics   *Metrics

	mu       sync.RWMutex
	snapshot *VehicleSnapshot
}

func NewSimulator(log *log.Logger,
	data *sim.Data,
	clock *Clock,
	location *time.Location,
	interval time.Duration,
	natsConnection *nats.Conn,
	natsSubject string,
	metrics *Metrics) *Simulator {
	s := &Simulator{
		log:       log,
		data:      data,
		clock:     clock,
		location:  location,
		interval:  interval,
		publisher: makeSnapshotPublisher(log, natsConnection, natsSubject, metrics),
		metrics:   metrics,
	}
	metrics.speedMultiplier.Set(clock.Multiplier())
	s.tick(time.Now())
	return s
}

// Run ticks the simulation until ctx is canceled
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

// Snapshot returns the latest vehicle snapshot
func (s *Simulator) Snapshot() *VehicleSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Data returns the static schedule data backing the simulation
func (s *Simulator) Data() *sim.Data {
	return s.data
}

// ServiceDate returns the service date at wall time now in the agency timezone
func (s *Simulator) ServiceDate(now time.Time) time.Time {
	local := now.In(s.location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
}

// SimSeconds returns the simulated time of day at wall time now
func (s *Simulator) SimSeconds(now time.Time) int {
	return s.clock.SimSeconds(now)
}

func (s *Simulator) tick(now time.Time) {
	started := time.Now()
	serviceDate := s.ServiceDate(now)
	simSeconds := s.clock.SimSeconds(now)
	vehicles := sim.ComputeActiveVehicles(s.data, serviceDate, simSeconds)
	snapshot := &VehicleSnapshot{
		ServiceDate: serviceDate.Format("20060102"),
		SimSeconds:  simSeconds,
		GeneratedAt: now,
		Vehicles:    vehicles,
	}
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
	s.metrics.recordTick(vehicles, simSeconds, time.Since(started).Seconds())
	s.publisher.publish(snapshot)
}
