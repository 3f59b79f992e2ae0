package feedmanager

import "github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"

const batchedRouteCount = 250

// routeRowReader implements feedRowReader interface for feed.Route
// batches inserts
type routeRowReader struct {
	batchedRoutes []*feed.Route
}

func newRouteRowReader() *routeRowReader {
	return &routeRowReader{}
}

func (r *routeRowReader) addRow(parser *feedFileParser, dsTx *feed.DataSetTransaction) error {
	route, err := buildRoute(parser)
	if err != nil {
		return err
	}

	r.batchedRoutes = append(r.batchedRoutes, route)

	//check if its time to save the batch
	if len(r.batchedRoutes) == batchedRouteCount {
		return r.flush(dsTx)
	}
	return nil
}

func (r *routeRowReader) flush(dsTx *feed.DataSetTransaction) error {
	if len(r.batchedRoutes) == 0 {
		return nil
	}

	err := feed.RecordRoutes(r.batchedRoutes, dsTx)
	if err != nil {
		return err
	}
	//truncate batch
	r.batchedRoutes = make([]*feed.Route, 0)
	return nil
}

func buildRoute(parser *feedFileParser) (*feed.Route, error) {
	route := feed.Route{
		RouteId:   parser.getString("route_id", false),
		ShortName: parser.getString("route_short_name", true),
		LongName:  parser.getString("route_long_name", true),
		Color:     parser.getString("route_color", true),
		TextColor: parser.getString("route_text_color", true),
		SortOrder: parser.getInt("route_sort_order", true),
	}
	return &route, parser.getError()
}
