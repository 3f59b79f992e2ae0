package feedmanager

import "github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"

const batchedCalendarCount = 250

// calendarRowReader implements feedRowReader interface for feed.Calendar
// batches inserts
type calendarRowReader struct {
	batchedCalendars []*feed.Calendar
}

func newCalendarRowReader() *calendarRowReader {
	return &calendarRowReader{}
}

func (r *calendarRowReader) addRow(parser *feedFileParser, dsTx *feed.DataSetTransaction) error {
	calendar, err := buildCalendar(parser)
	if err != nil {
		return err
	}

	r.batchedCalendars = append(r.batchedCalendars, calendar)

	//check if its time to save the batch
	if len(r.batchedCalendars) == batchedCalendarCount {
		return r.flush(dsTx)
	}
	return nil
}

func (r *calendarRowReader) flush(dsTx *feed.DataSetTransaction) error {
	if len(r.batchedCalendars) == 0 {
		return nil
	}

	err := feed.RecordCalendars(r.batchedCalendars, dsTx)
	if err != nil {
		return err
	}
	//truncate batch
	r.batchedCalendars = make([]*feed.Calendar, 0)
	return nil
}

func buildCalendar(parser *feedFileParser) (*feed.Calendar, error) {
	calendar := feed.Calendar{
		ServiceId: parser.getString("service_id", false),
		Monday:    parser.getInt("monday", false),
		Tuesday:   parser.getInt("tuesday", false),
		Wednesday: parser.getInt("wednesday", false),
		Thursday:  parser.getInt("thursday", false),
		Friday:    parser.getInt("friday", false),
		Saturday:  parser.getInt("saturday", false),
		Sunday:    parser.getInt("sunday", false),
		StartDate: parser.getFeedDate("start_date", false),
		EndDate:   parser.getFeedDate("end_date", false),
	}
	return &calendar, parser.getError()
}
