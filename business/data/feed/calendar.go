package feed

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// Calendar contains a record from a feed calendar.txt file. StartDate and EndDate are
// inclusive calendar dates in YYYYMMDD form with no time component.
type Calendar struct {
	DataSetId int64  `db:"data_set_id" json:"-"`
	ServiceId string `db:"service_id" json:"service_id"`
	Monday    int    `json:"monday"`
	Tuesday   int    `json:"tuesday"`
	Wednesday int    `json:"wednesday"`
	Thursday  int    `json:"thursday"`
	Friday    int    `json:"friday"`
	Saturday  int    `json:"saturday"`
	Sunday    int    `json:"sunday"`
	StartDate string `db:"start_date" json:"start_date"`
	EndDate   string `db:"end_date" json:"end_date"`
}

// dayFlag returns the day-of-week flag for weekday, time.Sunday being index 0
func (c *Calendar) dayFlag(weekday time.Weekday) int {
	switch weekday {
	case time.Sunday:
		return c.Sunday
	case time.Monday:
		return c.Monday
	case time.Tuesday:
		return c.Tuesday
	case time.Wednesday:
		return c.Wednesday
	case time.Thursday:
		return c.Thursday
	case time.Friday:
		return c.Friday
	case time.Saturday:
		return c.Saturday
	}
	return 0
}

// ActiveOn reports whether the service runs on date: the date must lie within
// [StartDate, EndDate] inclusive and the flag for the date's weekday must be set.
// Malformed date ranges yield not active rather than an error.
func (c *Calendar) ActiveOn(date time.Time) bool {
	if len(c.StartDate) != 8 || len(c.EndDate) != 8 {
		return false
	}
	// YYYYMMDD strings compare correctly lexicographically
	yyyymmdd := date.Format("20060102")
	if yyyymmdd < c.StartDate || yyyymmdd > c.EndDate {
		return false
	}
	return c.dayFlag(date.Weekday()) == 1
}

// ServiceActive reports whether serviceId is active on date in calendars.
// A serviceId absent from the table is not active; this is never an error.
func ServiceActive(calendars map[string]*Calendar, serviceId string, date time.Time) bool {
	calendar, present := calendars[serviceId]
	if !present {
		return false
	}
	return calendar.ActiveOn(date)
}

// RecordCalendars saves calendars to database in a batch
func RecordCalendars(calendars []*Calendar, dsTx *DataSetTransaction) error {
	if len(calendars) == 0 {
		return nil
	}
	for _, calendar := range calendars {
		calendar.DataSetId = dsTx.DS.Id
	}

	statementString := "insert into calendar ( " +
		"data_set_id, " +
		"service_id, " +
		"monday, " +
		"tuesday, " +
		"wednesday, " +
		"thursday, " +
		"friday, " +
		"saturday, " +
		"sunday, " +
		"start_date, " +
		"end_date) " +
		"values (" +
		":data_set_id, " +
		":service_id, " +
		":monday, " +
		":tuesday, " +
		":wednesday, " +
		":thursday, " +
		":friday, " +
		":saturday, " +
		":sunday, " +
		":start_date, " +
		":end_date)"
	statementString = dsTx.Tx.Rebind(statementString)
	_, err := dsTx.Tx.NamedExec(statementString, calendars)
	return err
}

// GetCalendars retrieves all service calendars in dataSetId keyed by service id
func GetCalendars(db *sqlx.DB, dataSetId int64) (map[string]*Calendar, error) {
	query := "select * from calendar where data_set_id = $1"
	var rows []*Calendar
	err := db.Select(&rows, db.Rebind(query), dataSetId)
	if err != nil {
		return nil, err
	}
	results := make(map[string]*Calendar, len(rows))
	for _, calendar := range rows {
		results[calendar.ServiceId] = calendar
	}
	return results, nil
}
