// Package sim derives simulated vehicle positions from a static transit feed
package sim

import (
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/geo"
)

// Data holds the flattened lookup tables the simulation engine works from.
// Built once per data set load and read-only afterward; no locking is required
// because nothing mutates these tables after Load returns.
type Data struct {
	DataSet        *feed.DataSet
	Stops          map[string]*feed.Stop
	Shapes         map[string][]geo.Point
	Routes         []*feed.Route
	RoutesById     map[string]*feed.Route
	TripsByRouteId map[string][]*feed.Trip
	Calendars      map[string]*feed.Calendar
}

// Load retrieves the lookup tables for the latest saved data set. The five tables are
// fetched concurrently and awaited as a unit: any failure surfaces as an error and no
// Data is returned, so simulation never runs against partially loaded data.
func Load(db *sqlx.DB) (*Data, error) {
	dataSet, err := feed.GetLatestSavedDataSet(db)
	if err != nil {
		return nil, fmt.Errorf("retrieving latest data set: %w", err)
	}
	return loadDataSet(db, dataSet)
}

func loadDataSet(db *sqlx.DB, dataSet *feed.DataSet) (*Data, error) {
	data := Data{
		DataSet: dataSet,
	}

	var wg sync.WaitGroup
	errs := make([]error, 5)

	wg.Add(5)
	go func() {
		defer wg.Done()
		data.Stops, errs[0] = feed.GetStops(db, dataSet.Id)
	}()
	go func() {
		defer wg.Done()
		data.Shapes, errs[1] = feed.GetShapes(db, dataSet.Id)
	}()
	go func() {
		defer wg.Done()
		data.Routes, errs[2] = feed.GetRoutes(db, dataSet.Id)
	}()
	go func() {
		defer wg.Done()
		data.TripsByRouteId, errs[3] = feed.GetTripsByRouteId(db, dataSet.Id)
	}()
	go func() {
		defer wg.Done()
		data.Calendars, errs[4] = feed.GetCalendars(db, dataSet.Id)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("loading data set %d: %w", dataSet.Id, err)
		}
	}

	data.RoutesById = make(map[string]*feed.Route, len(data.Routes))
	for _, route := range data.Routes {
		data.RoutesById[route.RouteId] = route
	}
	return &data, nil
}

// TripCount returns the number of simulatable trips across all routes
func (d *Data) TripCount() int {
	count := 0
	for _, trips := range d.TripsByRouteId {
		count += len(trips)
	}
	return count
}
