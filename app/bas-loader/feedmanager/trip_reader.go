package feedmanager

import "github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"

const batchedTripCount = 250

// tripRowReader implements feedRowReader interface for feed.Trip
// batches inserts
type tripRowReader struct {
	batchedTrips []*feed.Trip
}

func newTripRowReader() *tripRowReader {
	return &tripRowReader{}
}

func (r *tripRowReader) addRow(parser *feedFileParser, dsTx *feed.DataSetTransaction) error {
	trip, err := buildTrip(parser)
	if err != nil {
		return err
	}

	r.batchedTrips = append(r.batchedTrips, trip)

	//check if its time to save the batch
	if len(r.batchedTrips) == batchedTripCount {
		return r.flush(dsTx)
	}
	return nil
}

func (r *tripRowReader) flush(dsTx *feed.DataSetTransaction) error {
	if len(r.batchedTrips) == 0 {
		return nil
	}

	err := feed.RecordTrips(r.batchedTrips, dsTx)
	if err != nil {
		return err
	}
	//truncate batch
	r.batchedTrips = make([]*feed.Trip, 0)
	return nil
}

func buildTrip(parser *feedFileParser) (*feed.Trip, error) {
	trip := feed.Trip{
		TripId:    parser.getString("trip_id", false),
		RouteId:   parser.getString("route_id", false),
		ServiceId: parser.getString("service_id", false),
		ShapeId:   parser.getString("shape_id", true),
		Headsign:  parser.getString("trip_headsign", true),
	}
	return &trip, parser.getError()
}
