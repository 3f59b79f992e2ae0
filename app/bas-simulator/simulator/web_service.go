package simulator

import (
	"context"
	"encoding/json"
	logger "log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	gtfsrtproto "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/sim"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
)

//defaultHttpHandler simple default http handler for default route
type defaultHttpHandler struct {
}

//ServeHTTP implements defaultHttpHandler http.Handler interface
func (h *defaultHttpHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Add("Application-Status", "OK")
}

//routesHandler serves the route list from the loaded schedule
type routesHandler struct {
	log       *logger.Logger
	simulator *Simulator
}

func (h *routesHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeJSON(h.log, w, h.simulator.Data().Routes)
}

//vehiclesHandler serves the latest vehicle snapshot as json
type vehiclesHandler struct {
	log       *logger.Logger
	simulator *Simulator
}

func (h *vehiclesHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	snapshot := h.simulator.Snapshot()
	if snapshot == nil {
		http.Error(w, "No snapshot available", http.StatusServiceUnavailable)
		return
	}
	writeJSON(h.log, w, snapshot)
}

//vehiclePositionsHandler serves the latest snapshot as a gtfs-rt VehiclePositions feed
type vehiclePositionsHandler struct {
	log       *logger.Logger
	simulator *Simulator
}

//ServeHTTP implements vehiclePositionsHandler's http.Handler interface
func (h *vehiclePositionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snapshot := h.simulator.Snapshot()
	if snapshot == nil {
		http.Error(w, "No snapshot available", http.StatusServiceUnavailable)
		return
	}
	feedMessage := buildVehiclePositionFeedMessage(snapshot, uint64(time.Now().Unix()))
	asText := strings.ToLower(r.FormValue("text")) == "true"
	if asText {
		h.writeProtocolBufferAsText(feedMessage, w)
	} else {
		h.writeProtocolBuffer(feedMessage, w)
	}
}

//writeProtocolBuffer marshal gtfsrtproto.FeedMessage as protocol buffer to http.ResponseWriter
func (h *vehiclePositionsHandler) writeProtocolBuffer(feedMessage *gtfsrtproto.FeedMessage, w http.ResponseWriter) {
	bytes, err := proto.Marshal(feedMessage)
	if err != nil {
		h.log.Printf("Failed to marshal gtfsrtproto.FeedMessage to bytes, error:%s", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/grtfeed")
	bytesWritten, err := w.Write(bytes)
	if err != nil {
		h.log.Printf("Error writing bytes to http.ResponseWriter, error:%s", err)
		return
	}
	h.log.Printf("wrote %d bytes for grtfeed", bytesWritten)
}

//writeProtocolBufferAsText write plain text formatting of gtfsrtproto.FeedMessage to http.ResponseWriter
func (h *vehiclePositionsHandler) writeProtocolBufferAsText(feedMessage *gtfsrtproto.FeedMessage, w http.ResponseWriter) {
	stringResponse := prototext.MarshalOptions{Multiline: true}.Format(feedMessage)
	w.Header().Set("Content-Type", "text/plain")
	_, err := w.Write([]byte(stringResponse))
	if err != nil {
		h.log.Printf("Error writing bytes to http.ResponseWriter, error:%s", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
	}
}

//buildVehiclePositionFeedMessage builds gtfsrtproto.FeedMessage from the vehicles in snapshot
func buildVehiclePositionFeedMessage(snapshot *VehicleSnapshot, now uint64) *gtfsrtproto.FeedMessage {
	gtfsRealtimeVersion := "2.0"
	incrementality := gtfsrtproto.FeedHeader_FULL_DATASET
	feedMessage := gtfsrtproto.FeedMessage{
		Header: &gtfsrtproto.FeedHeader{
			GtfsRealtimeVersion: &gtfsRealtimeVersion,
			Incrementality:      &incrementality,
			Timestamp:           &now,
		},
		Entity: []*gtfsrtproto.FeedEntity{},
	}
	for i := range snapshot.Vehicles {
		feedMessage.Entity = append(feedMessage.Entity, makeVehiclePositionFeedEntity(&snapshot.Vehicles[i], now))
	}
	return &feedMessage
}

//makeVehiclePositionFeedEntity creates gtfsrtproto.FeedEntity for a single vehicle
func makeVehiclePositionFeedEntity(vehicle *sim.ActiveVehicle, now uint64) *gtfsrtproto.FeedEntity {
	currentStatus := gtfsrtproto.VehiclePosition_IN_TRANSIT_TO
	if vehicle.Status == sim.StatusDwelling {
		currentStatus = gtfsrtproto.VehiclePosition_STOPPED_AT
	}
	lat := float32(vehicle.Position.Lat)
	lon := float32(vehicle.Position.Lon)
	bearing := float32(vehicle.Bearing)
	entity := gtfsrtproto.FeedEntity{
		Id: &vehicle.TripId,
		Vehicle: &gtfsrtproto.VehiclePosition{
			Trip: &gtfsrtproto.TripDescriptor{
				TripId:  &vehicle.TripId,
				RouteId: &vehicle.RouteId,
			},
			Position: &gtfsrtproto.Position{
				Latitude:  &lat,
				Longitude: &lon,
				Bearing:   &bearing,
			},
			CurrentStatus: &currentStatus,
			StopId:        &vehicle.NextStopId,
			Timestamp:     &now,
		},
	}
	return &entity
}

//nextArrivalHandler serves the next departure from a stop
type nextArrivalHandler struct {
	log       *logger.Logger
	simulator *Simulator
	stopIndex *sim.StopScheduleIndex
}

//NextArrivalResponse wraps a stop departure lookup result
type NextArrivalResponse struct {
	StopId     string         `json:"stop_id"`
	SimSeconds int            `json:"sim_seconds"`
	Next       *sim.StopEvent `json:"next"`
}

func (h *nextArrivalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stopId := mux.Vars(r)["stopId"]
	if _, found := h.simulator.Data().Stops[stopId]; !found {
		http.Error(w, "Unknown stop", http.StatusNotFound)
		return
	}
	now := time.Now()
	simSeconds := h.simulator.SimSeconds(now)
	next := h.stopIndex.NextArrival(stopId, simSeconds,
		h.simulator.Data().Calendars, h.simulator.ServiceDate(now))
	writeJSON(h.log, w, &NextArrivalResponse{
		StopId:     stopId,
		SimSeconds: simSeconds,
		Next:       next,
	})
}

//stopScheduleHandler serves the full ordered departure list for a stop
type stopScheduleHandler struct {
	log       *logger.Logger
	simulator *Simulator
	stopIndex *sim.StopScheduleIndex
}

//StopScheduleResponse wraps a stop's full departure board
type StopScheduleResponse struct {
	StopId     string          `json:"stop_id"`
	Departures []sim.StopEvent `json:"departures"`
}

func (h *stopScheduleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stopId := mux.Vars(r)["stopId"]
	if _, found := h.simulator.Data().Stops[stopId]; !found {
		http.Error(w, "Unknown stop", http.StatusNotFound)
		return
	}
	writeJSON(h.log, w, &StopScheduleResponse{
		StopId:     stopId,
		Departures: h.stopIndex.Events(stopId),
	})
}

//nextRouteTripHandler serves the next trip departing on a route
type nextRouteTripHandler struct {
	log       *logger.Logger
	simulator *Simulator
}

//NextRouteTripResponse wraps a route departure lookup result
type NextRouteTripResponse struct {
	RouteId    string            `json:"route_id"`
	SimSeconds int               `json:"sim_seconds"`
	Next       *sim.UpcomingTrip `json:"next"`
}

func (h *nextRouteTripHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	routeId := mux.Vars(r)["routeId"]
	if _, found := h.simulator.Data().RoutesById[routeId]; !found {
		http.Error(w, "Unknown route", http.StatusNotFound)
		return
	}
	now := time.Now()
	simSeconds := h.simulator.SimSeconds(now)
	next := sim.NextRouteTrip(h.simulator.Data(), routeId, simSeconds, h.simulator.ServiceDate(now))
	writeJSON(h.log, w, &NextRouteTripResponse{
		RouteId:    routeId,
		SimSeconds: simSeconds,
		Next:       next,
	})
}

//serviceDayHandler describes the current service day, including public holidays
type serviceDayHandler struct {
	log       *logger.Logger
	simulator *Simulator
}

func (h *serviceDayHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	day := sim.DescribeServiceDay(h.simulator.ServiceDate(time.Now()))
	writeJSON(h.log, w, day)
}

//healthHandler reports the loaded data set
type healthHandler struct {
	simulator *Simulator
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok","trips":` +
		strconv.Itoa(h.simulator.Data().TripCount()) + `}`))
}

func writeJSON(log *logger.Logger, w http.ResponseWriter, payload interface{}) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling json response: error:%v\n", err)
		http.Error(w, "Error serving request", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(jsonData)
	if err != nil {
		log.Printf("Error writing json response: %s", err)
	}
}

//createRouter wires all simulator endpoints onto a mux.Router
func createRouter(log *logger.Logger, simulator *Simulator, metrics *Metrics) *mux.Router {
	stopIndex := sim.BuildStopScheduleIndex(simulator.Data())

	r := mux.NewRouter()
	r.Handle("/", &defaultHttpHandler{})
	r.Handle("/routes", &routesHandler{log: log, simulator: simulator})
	r.Handle("/vehicles", &vehiclesHandler{log: log, simulator: simulator})
	r.Handle("/vehiclePositions", &vehiclePositionsHandler{log: log, simulator: simulator})
	r.Handle("/stops/{stopId}/next", &nextArrivalHandler{log: log, simulator: simulator, stopIndex: stopIndex})
	r.Handle("/stops/{stopId}/schedule", &stopScheduleHandler{log: log, simulator: simulator, stopIndex: stopIndex})
	r.Handle("/routes/{routeId}/next", &nextRouteTripHandler{log: log, simulator: simulator})
	r.Handle("/serviceDay", &serviceDayHandler{log: log, simulator: simulator})
	r.Handle("/health", &healthHandler{simulator: simulator})
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	return r
}

//createServer creates configured http.Server for the simulator endpoints
func createServer(log *logger.Logger, simulator *Simulator, metrics *Metrics, httpPort int) *http.Server {
	srv := &http.Server{
		Addr:         strings.Join([]string{"0.0.0.0", strconv.Itoa(httpPort)}, ":"),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      createRouter(log, simulator, metrics),
	}
	return srv
}

//RunWebService starts up the simulator web service, and terminates on shutdown signal
func RunWebService(log *logger.Logger,
	wg *sync.WaitGroup,
	simulator *Simulator,
	metrics *Metrics,
	httpPort int,
	shutdownSignal chan bool,
) {
	wg.Add(1)
	defer wg.Done()
	srv := createServer(log, simulator, metrics, httpPort)
	log.Printf("Starting server on port %d", httpPort)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Printf("server ListenAndServe ended. %s", err)
		}
	}()
	shutdownCtx, serverCancelFunc := context.WithTimeout(context.Background(), time.Duration(5)*time.Second)
	defer serverCancelFunc()

	<-shutdownSignal
	log.Printf("ending webservice on shutdown signal")
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("error shutting down webservice, error:%s", err)
	}
}
