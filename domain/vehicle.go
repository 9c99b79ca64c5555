package domain

import "time"

// Vehicle represents a fleet vehicle. Vehicles are read-only to the
// scheduling engine; they are maintained by seeding or an external
// vehicle-management flow.
type Vehicle struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Depot       string    `json:"depot"`
	Mileage     int       `json:"mileage"`
	LastService time.Time `json:"last_service"`
	Interval    string    `json:"interval"`
}

// NextDue computes the date the vehicle next requires maintenance.
func (v *Vehicle) NextDue(calendar IntervalCalendar) time.Time {
	return DateOnly(v.LastService).AddDate(0, 0, calendar.Days(v.Interval))
}
