package feed

import (
	"github.com/jmoiron/sqlx"
)

// Stop contains a record from a feed stops.txt file. Immutable once loaded.
type Stop struct {
	DataSetId int64   `db:"data_set_id" json:"-"`
	StopId    string  `db:"stop_id" json:"stop_id"`
	Name      string  `db:"name" json:"name"`
	Lat       float64 `db:"lat" json:"lat"`
	Lon       float64 `db:"lon" json:"lon"`
}

// RecordStops saves stops to database in a batch
func RecordStops(stops []*Stop, dsTx *DataSetTransaction) error {
	if len(stops) == 0 {
		return nil
	}
	for _, stop := range stops {
		stop.DataSetId = dsTx.DS.Id
	}

	statementString := "insert into stop ( " +
		"data_set_id, " +
		"stop_id, " +
		"name, " +
		"lat, " +
		"lon) " +
		"values (" +
		":data_set_id, " +
		":stop_id, " +
		":name, " +
		":lat, " +
		":lon)"
	statementString = dsTx.Tx.Rebind(statementString)
	_, err := dsTx.Tx.NamedExec(statementString, stops)
	return err
}

// GetStops retrieves all stops in dataSetId keyed by stop id
func GetStops(db *sqlx.DB, dataSetId int64) (map[string]*Stop, error) {
	query := "select * from stop where data_set_id = $1"
	var rows []*Stop
	err := db.Select(&rows, db.Rebind(query), dataSetId)
	if err != nil {
		return nil, err
	}
	results := make(map[string]*Stop, len(rows))
	for _, stop := range rows {
		results[stop.StopId] = stop
	}
	return results, nil
}
