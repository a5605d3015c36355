package models

import "time"

// MaintenanceStatus is the service health of a station.
type MaintenanceStatus struct {
	StationID      int64      `json:"stationId"`
	Name           string     `json:"name"`
	LastServicedAt *time.Time `json:"lastServicedAt,omitempty"`
	DaysSince      int        `json:"daysSince"`
	DaysLeft       int        `json:"daysLeft"`
	HealthPercent  float64    `json:"healthPercent"`
	NeedsAttention bool       `json:"needsAttention"`
}

// DemandPoint is one heat map entry.
type DemandPoint struct {
	StationID int64    `json:"stationId"`
	Name      string   `json:"name"`
	Location  Location `json:"location"`
	Bookings  int      `json:"bookings"`
	Intensity float64  `json:"intensity"`
}
