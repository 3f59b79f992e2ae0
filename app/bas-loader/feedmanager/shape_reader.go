package feedmanager

import "github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"

const batchedShapePointCount = 250

// shapeRowReader implements feedRowReader interface for feed.ShapePoint
// batches inserts
type shapeRowReader struct {
	batchedShapePoints []*feed.ShapePoint
}

func newShapeRowReader() *shapeRowReader {
	return &shapeRowReader{}
}

func (r *shapeRowReader) addRow(parser *feedFileParser, dsTx *feed.DataSetTransaction) error {
	shapePoint, err := buildShapePoint(parser)
	if err != nil {
		return err
	}

	r.batchedShapePoints = append(r.batchedShapePoints, shapePoint)

	//check if its time to save the batch
	if len(r.batchedShapePoints) == batchedShapePointCount {
		return r.flush(dsTx)
	}
	return nil
}

func (r *shapeRowReader) flush(dsTx *feed.DataSetTransaction) error {
	if len(r.batchedShapePoints) == 0 {
		return nil
	}

	err := feed.RecordShapePoints(r.batchedShapePoints, dsTx)
	if err != nil {
		return err
	}
	//truncate batch
	r.batchedShapePoints = make([]*feed.ShapePoint, 0)
	return nil
}

func buildShapePoint(parser *feedFileParser) (*feed.ShapePoint, error) {
	shapePoint := feed.ShapePoint{
		ShapeId:         parser.getString("shape_id", false),
		ShapePtLat:      parser.getFloat64("shape_pt_lat", false),
		ShapePtLon:      parser.getFloat64("shape_pt_lon", false),
		ShapePtSequence: parser.getInt("shape_pt_sequence", false),
	}
	return &shapePoint, parser.getError()
}
