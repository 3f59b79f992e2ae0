package feedmanager

import "github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"

const batchedStopCount = 250

// stopRowReader implements feedRowReader interface for feed.Stop
// batches inserts
type stopRowReader struct {
	batchedStops []*feed.Stop
}

func newStopRowReader() *stopRowReader {
	return &stopRowReader{}
}

func (r *stopRowReader) addRow(parser *feedFileParser, dsTx *feed.DataSetTransaction) error {
	stop, err := buildStop(parser)
	if err != nil {
		return err
	}

	r.batchedStops = append(r.batchedStops, stop)

	//check if its time to save the batch
	if len(r.batchedStops) == batchedStopCount {
		return r.flush(dsTx)
	}
	return nil
}

func (r *stopRowReader) flush(dsTx *feed.DataSetTransaction) error {
	if len(r.batchedStops) == 0 {
		return nil
	}

	err := feed.RecordStops(r.batchedStops, dsTx)
	if err != nil {
		return err
	}
	//truncate batch
	r.batchedStops = make([]*feed.Stop, 0)
	return nil
}

func buildStop(parser *feedFileParser) (*feed.Stop, error) {
	stop := feed.Stop{
		StopId: parser.getString("stop_id", false),
		Name:   parser.getString("stop_name", false),
		Lat:    parser.getFloat64("stop_lat", false),
		Lon:    parser.getFloat64("stop_lon", false),
	}
	return &stop, parser.getError()
}
