package simulator

import (
	"encoding/json"
	"log"
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/sim"
	"github.com/nats-io/nats.go"
)

// natsDestination sends a serialized snapshot to a subject. Behind an interface so
// tests can capture payloads without a running NATS server.
type natsDestination interface {
	Publish(subject string, data []byte) error
}

// VehicleSnapshot is the payload published on every tick
type VehicleSnapshot struct {
	ServiceDate string              `json:"service_date"`
	SimSeconds  int                 `json:"sim_seconds"`
	GeneratedAt time.Time           `json:"generated_at"`
	Vehicles    []sim.ActiveVehicle `json:"vehicles"`
}

// snapshotPublisher sends vehicle snapshots over NATS when a connection is
// configured. A nil destination disables publishing.
type snapshotPublisher struct {
	log         *log.Logger
	destination natsDestination
	subject     string
	metrics     *Metrics
}

func makeSnapshotPublisher(log *log.Logger,
	natsConnection *nats.Conn,
	subject string,
	metrics *Metrics) *snapshotPublisher {
	p := &snapshotPublisher{
		log:     log,
		subject: subject,
		metrics: metrics,
	}
	if natsConnection != nil {
		p.destination = natsConnection
	}
	return p
}

func (p *snapshotPublisher) publish(snapshot *VehicleSnapshot) {
	if p.destination == nil {
		return
	}
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		p.log.Printf("failed to marshal VehicleSnapshot in snapshotPublisher.publish, error:%v", err)
		p.metrics.recordPublish(err)
		return
	}
	err = p.destination.Publish(p.subject, jsonData)
	if err != nil {
		p.log.Printf("failed to send VehicleSnapshot in snapshotPublisher.publish, error:%v", err)
	}
	p.metrics.recordPublish(err)
}
