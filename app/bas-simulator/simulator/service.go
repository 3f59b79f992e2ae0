package simulator

import (
	"context"
	logger "log"
	"os"
	"sync"
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/sim"
	"github.com/nats-io/nats.go"
)

//StartServices brings up the simulation loop and webservice. Exits on shutdown signal
func StartServices(log *logger.Logger,
	data *sim.Data,
	clock *Clock,
	location *time.Location,
	tickInterval time.Duration,
	httpPort int,
	natsConn *nats.Conn,
	vehicleSnapshotSubject string,
	shutdownSignal chan os.Signal) {

	wg := sync.WaitGroup{}

	metrics := NewMetrics()
	simulation := NewSimulator(log, data, clock, location, tickInterval, natsConn, vehicleSnapshotSubject, metrics)

	webServiceShutdown := make(chan bool, 1)
	simulationCtx, cancelSimulation := context.WithCancel(context.Background())

	wg.Add(1)
	go func() {
		defer wg.Done()
		simulation.Run(simulationCtx)
	}()
	go RunWebService(log, &wg, simulation, metrics, httpPort, webServiceShutdown)

	<-shutdownSignal
	log.Printf("Exiting on shutdown signal, shutting down subroutines")
	cancelSimulation()
	webServiceShutdown <- true
	wg.Wait()
	log.Printf("Subroutines shut down, exiting simulator service")
}
