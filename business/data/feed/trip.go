package feed

import (
	"github.com/jmoiron/sqlx"
)

// Trip contains a record from a feed trips.txt file
type Trip struct {
	DataSetId int64  `db:"data_set_id" json:"-"`
	TripId    string `db:"trip_id" json:"trip_id"`
	RouteId   string `db:"route_id" json:"route_id"`
	ServiceId string `db:"service_id" json:"service_id"`
	ShapeId   string `db:"shape_id" json:"shape_id"`
	Headsign  string `db:"headsign" json:"headsign"`

	// StopTimes is the trip's scheduled stops ordered by stop sequence. Populated by
	// GetTripsByRouteId, not stored on the trip row itself.
	StopTimes []*StopTime `db:"-" json:"stop_times"`
}

// FirstStopTime returns the trip's first scheduled stop or nil when the trip has none
func (t *Trip) FirstStopTime() *StopTime {
	if len(t.StopTimes) == 0 {
		return nil
	}
	return t.StopTimes[0]
}

// LastStopTime returns the trip's final scheduled stop or nil when the trip has none
func (t *Trip) LastStopTime() *StopTime {
	if len(t.StopTimes) == 0 {
		return nil
	}
	return t.StopTimes[len(t.StopTimes)-1]
}

// RecordTrips saves trips to database in a batch
func RecordTrips(trips []*Trip, dsTx *DataSetTransaction) error {
	if len(trips) == 0 {
		return nil
	}
	for _, trip := range trips {
		trip.DataSetId = dsTx.DS.Id
	}

	statementString := "insert into trip ( " +
		"data_set_id, " +
		"trip_id, " +
		"route_id, " +
		"service_id, " +
		"shape_id, " +
		"headsign) " +
		"values (" +
		":data_set_id, " +
		":trip_id, " +
		":route_id, " +
		":service_id, " +
		":shape_id, " +
		":headsign)"
	statementString = dsTx.Tx.Rebind(statementString)
	_, err := dsTx.Tx.NamedExec(statementString, trips)
	return err
}

// GetTripsByRouteId retrieves all trips in dataSetId with their stop times attached,
// grouped by owning route. Trips without any stop times are not eligible for
// simulation and are dropped here.
func GetTripsByRouteId(db *sqlx.DB, dataSetId int64) (map[string][]*Trip, error) {
	query := "select * from trip where data_set_id = $1 order by route_id, trip_id"
	var trips []*Trip
	err := db.Select(&trips, db.Rebind(query), dataSetId)
	if err != nil {
		return nil, err
	}

	tripIds := make([]string, 0, len(trips))
	for _, trip := range trips {
		tripIds = append(tripIds, trip.TripId)
	}
	stopTimesByTripId, err := getStopTimesByTripId(db, dataSetId, tripIds)
	if err != nil {
		return nil, err
	}

	results := make(map[string][]*Trip)
	for _, trip := range trips {
		stopTimes, present := stopTimesByTripId[trip.TripId]
		if !present || len(stopTimes) == 0 {
			continue
		}
		trip.StopTimes = stopTimes
		results[trip.RouteId] = append(results[trip.RouteId], trip)
	}
	return results, nil
}
