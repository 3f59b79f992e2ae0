package sim

import (
	"time"

	"github.com/rickar/cal/v2"
)

// ServiceDay annotates the calendar day a simulation runs against. Informational only:
// holiday observance never alters service calendar evaluation, feeds encode reduced
// holiday service through their own service ids.
type ServiceDay struct {
	Date        string `json:"date"` // YYYYMMDD
	Weekday     string `json:"weekday"`
	Holiday     bool   `json:"holiday"`
	HolidayName string `json:"holiday_name,omitempty"`
}

// national fixed-date public holidays observed by the agency
// TODO: lunar calendar holidays (Hari Raya, Chinese New Year, Deepavali) shift each
// year and need per-year dates from configuration.
var agencyHolidays = []*cal.Holiday{
	{Name: "New Year's Day", Type: cal.ObservancePublic, Month: time.January, Day: 1, Func: cal.CalcDayOfMonth},
	{Name: "Hari Pekerja", Type: cal.ObservancePublic, Month: time.May, Day: 1, Func: cal.CalcDayOfMonth},
	{Name: "Hari Merdeka", Type: cal.ObservancePublic, Month: time.August, Day: 31, Func: cal.CalcDayOfMonth},
	{Name: "Malaysia Day", Type: cal.ObservancePublic, Month: time.September, Day: 16, Func: cal.CalcDayOfMonth},
	{Name: "Christmas Day", Type: cal.ObservancePublic, Month: time.December, Day: 25, Func: cal.CalcDayOfMonth},
}

var agencyCalendar = makeAgencyCalendar()

func makeAgencyCalendar() *cal.BusinessCalendar {
	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(agencyHolidays...)
	return calendar
}

// DescribeServiceDay reports the weekday and holiday status of date
func DescribeServiceDay(date time.Time) ServiceDay {
	day := ServiceDay{
		Date:    date.Format("20060102"),
		Weekday: date.Weekday().String(),
	}
	actual, _, holiday := agencyCalendar.IsHoliday(date)
	if actual && holiday != nil {
		day.Holiday = true
		day.HolidayName = holiday.Name
	}
	return day
}
