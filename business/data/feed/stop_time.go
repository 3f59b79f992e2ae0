package feed

import (
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/database"
	"github.com/jmoiron/sqlx"
)

// StopTime contains a record from a feed stop_times.txt file; a scheduled arrival and
// departure at a stop. Times are seconds since midnight and may exceed 24 hours.
type StopTime struct {
	DataSetId     int64  `db:"data_set_id" json:"-"`
	TripId        string `db:"trip_id" json:"trip_id"`
	StopSequence  int    `db:"stop_sequence" json:"stop_sequence"`
	StopId        string `db:"stop_id" json:"stop_id"`
	ArrivalTime   int    `db:"arrival_time" json:"arrival_time"`
	DepartureTime int    `db:"departure_time" json:"departure_time"`
}

// RecordStopTimes saves stopTimes to database in a batch
func RecordStopTimes(stopTimes []*StopTime, dsTx *DataSetTransaction) error {
	if len(stopTimes) == 0 {
		return nil
	}
	for _, stopTime := range stopTimes {
		stopTime.DataSetId = dsTx.DS.Id
	}

	statementString := "insert into stop_time ( " +
		"data_set_id, " +
		"trip_id, " +
		"stop_sequence, " +
		"stop_id, " +
		"arrival_time, " +
		"departure_time) " +
		"values (" +
		":data_set_id, " +
		":trip_id, " +
		":stop_sequence, " +
		":stop_id, " +
		":arrival_time, " +
		":departure_time)"
	statementString = dsTx.Tx.Rebind(statementString)
	_, err := dsTx.Tx.NamedExec(statementString, stopTimes)
	return err
}

// getStopTimesByTripId collects stop times for tripIds grouped by trip, each group
// ordered by stop_sequence
func getStopTimesByTripId(db *sqlx.DB, dataSetId int64, tripIds []string) (map[string][]*StopTime, error) {
	results := make(map[string][]*StopTime)
	if len(tripIds) == 0 {
		return results, nil
	}

	statementString := "select * from stop_time where data_set_id = :data_set_id and trip_id in (:trip_ids) " +
		"order by trip_id, stop_sequence"
	rows, err := database.NamedQueryRowsFromMap(statementString, db, map[string]interface{}{
		"data_set_id": dataSetId,
		"trip_ids":    tripIds,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		stopTime := StopTime{}
		err = rows.StructScan(&stopTime)
		if err != nil {
			return nil, err
		}
		results[stopTime.TripId] = append(results[stopTime.TripId], &stopTime)
	}
	return results, rows.Err()
}
