package feed

import (
	"github.com/jmoiron/sqlx"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/geo"
)

// ShapePoint contains a row from a feed shapes.txt file. A shape's points ordered by
// ShapePtSequence describe the physical path a vehicle follows.
type ShapePoint struct {
	DataSetId       int64   `db:"data_set_id" json:"-"`
	ShapeId         string  `db:"shape_id" json:"shape_id"`
	ShapePtLat      float64 `db:"shape_pt_lat" json:"shape_pt_lat"`
	ShapePtLon      float64 `db:"shape_pt_lon" json:"shape_pt_lon"`
	ShapePtSequence int     `db:"shape_pt_sequence" json:"shape_pt_sequence"`
}

// RecordShapePoints saves shape points to database in a batch
func RecordShapePoints(shapePoints []*ShapePoint, dsTx *DataSetTransaction) error {
	if len(shapePoints) == 0 {
		return nil
	}
	for _, shapePoint := range shapePoints {
		shapePoint.DataSetId = dsTx.DS.Id
	}

	statementString := "insert into shape ( " +
		"data_set_id, " +
		"shape_id, " +
		"shape_pt_lat, " +
		"shape_pt_lon, " +
		"shape_pt_sequence) " +
		"values (" +
		":data_set_id, " +
		":shape_id, " +
		":shape_pt_lat, " +
		":shape_pt_lon, " +
		":shape_pt_sequence)"
	statementString = dsTx.Tx.Rebind(statementString)
	_, err := dsTx.Tx.NamedExec(statementString, shapePoints)
	return err
}

// GetShapes retrieves all shapes in dataSetId as point sequences keyed by shape id.
// Points are ordered by shape_pt_sequence, the traversal order the simulator depends on.
func GetShapes(db *sqlx.DB, dataSetId int64) (map[string][]geo.Point, error) {
	query := "select * from shape where data_set_id = $1 order by shape_id, shape_pt_sequence"
	var rows []*ShapePoint
	err := db.Select(&rows, db.Rebind(query), dataSetId)
	if err != nil {
		return nil, err
	}
	results := make(map[string][]geo.Point)
	for _, row := range rows {
		results[row.ShapeId] = append(results[row.ShapeId], geo.Point{Lat: row.ShapePtLat, Lon: row.ShapePtLon})
	}
	return results, nil
}
