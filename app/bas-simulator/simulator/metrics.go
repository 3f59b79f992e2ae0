package simulator

import (
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/sim"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the instrumentation for the simulation loop. All collectors are
// registered against a private registry so the metrics endpoint only exposes
// simulator series.
type Metrics struct {
	registry        *prometheus.Registry
	ticksTotal      prometheus.Counter
	publishTotal    prometheus.Counter
	publishFailures prometheus.Counter
	activeVehicles  *prometheus.GaugeVec
	simClockSeconds prometheus.Gauge
	speedMultiplier prometheus.Gauge
	tickDuration    prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bas_simulator_ticks_total",
			Help: "Number of simulation ticks performed",
		}),
		publishTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bas_simulator_publish_total",
			Help: "Number of vehicle position snapshots published",
		}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bas_simulator_publish_failures_total",
			Help: "Number of failed snapshot publishes",
		}),
		activeVehicles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bas_simulator_active_vehicles",
			Help: "Number of vehicles active in the latest snapshot",
		}, []string{"status"}),
		simClockSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bas_simulator_clock_seconds",
			Help: "Simulated seconds since midnight at the latest tick",
		}),
		speedMultiplier: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bas_simulator_speed_multiplier",
			Help: "Configured simulated clock speed multiplier",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bas_simulator_tick_duration_seconds",
			Help:    "Time spent recomputing a vehicle snapshot",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.ticksTotal, m.publishTotal, m.publishFailures,
		m.activeVehicles, m.simClockSeconds, m.speedMultiplier, m.tickDuration)
	return m
}

// Registry returns the registry backing the metrics endpoint
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) recordTick(vehicles []sim.ActiveVehicle, simSeconds int, seconds float64) {
	moving, dwelling := 0, 0
	for i := range vehicles {
		if vehicles[i].Status == sim.StatusDwelling {
			dwelling++
		} else {
			moving++
		}
	}
	m.ticksTotal.Inc()
	m.activeVehicles.WithLabelValues(string(sim.StatusMoving)).Set(float64(moving))
	m.activeVehicles.WithLabelValues(string(sim.StatusDwelling)).Set(float64(dwelling))
	m.simClockSeconds.Set(float64(simSeconds))
	m.tickDuration.Observe(seconds)
}

func (m *Metrics) recordPublish(err error) {
	m.publishTotal.Inc()
	if err != nil {
		m.publishFailures.Inc()
	}
}
