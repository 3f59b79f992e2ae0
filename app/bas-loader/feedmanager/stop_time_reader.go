package feedmanager

import "github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"

const batchedStopTimeCount = 250

// stopTimeRowReader implements feedRowReader interface for feed.StopTime
// batches inserts
type stopTimeRowReader struct {
	batchedStopTimes []*feed.StopTime
}

func newStopTimeRowReader() *stopTimeRowReader {
	return &stopTimeRowReader{}
}

func (r *stopTimeRowReader) addRow(parser *feedFileParser, dsTx *feed.DataSetTransaction) error {
	stopTime, err := buildStopTime(parser)
	if err != nil {
		return err
	}

	r.batchedStopTimes = append(r.batchedStopTimes, stopTime)

	//check if its time to save the batch
	if len(r.batchedStopTimes) == batchedStopTimeCount {
		return r.flush(dsTx)
	}
	return nil
}

func (r *stopTimeRowReader) flush(dsTx *feed.DataSetTransaction) error {
	if len(r.batchedStopTimes) == 0 {
		return nil
	}

	err := feed.RecordStopTimes(r.batchedStopTimes, dsTx)
	if err != nil {
		return err
	}
	//truncate batch
	r.batchedStopTimes = make([]*feed.StopTime, 0)
	return nil
}

func buildStopTime(parser *feedFileParser) (*feed.StopTime, error) {
	stopTime := feed.StopTime{
		TripId:        parser.getString("trip_id", false),
		StopSequence:  parser.getInt("stop_sequence", false),
		StopId:        parser.getString("stop_id", false),
		ArrivalTime:   parser.getFeedTime("arrival_time", false),
		DepartureTime: parser.getFeedTime("departure_time", false),
	}
	return &stopTime, parser.getError()
}
