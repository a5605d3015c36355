package models

import "time"

// DateLayout is the booking date wire format.
const DateLayout = "2006-01-02"

// Booking reserves one slot at a station on a given day.
type Booking struct {
	ID          int64     `json:"id"`
	StationName string    `json:"stationName"`
	Slot        string    `json:"slot"`
	Date        string    `json:"date"`
	Email       string    `json:"email"`
	UserID      int64     `json:"userId,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// SlotAvailability tells whether a slot can still be booked.
type SlotAvailability struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}
