package models

import "time"

// Request statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Request priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var transitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// ValidStatus reports whether s is a known status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// CanTransition reports whether a request may move from one status to another.
// Completed and cancelled are terminal.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// EmergencyRequest is a roadside charging assistance request.
type EmergencyRequest struct {
	ID            string    `json:"id"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Location      string    `json:"location"`
	CarModel      string    `json:"carModel"`
	ChargerType   string    `json:"chargerType"`
	RequesterName string    `json:"requesterName"`
	Phone         string    `json:"phone"`
	BatteryLevel  int       `json:"batteryLevel"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	RequesterID   int64     `json:"requesterId,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Filter narrows request listings. Empty fields match everything.
type Filter struct {
	Status string
	Query  string
}

// Stats counts requests overall and per status.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// Add counts n requests in status.
func (s *Stats) Add(status string, n int) {
	s.Total += n
	switch status {
	case StatusPending:
		s.Pending += n
	case StatusInProgress:
		s.InProgress += n
	case StatusCompleted:
		s.Completed += n
	case StatusCancelled:
		s.Cancelled += n
	}
}

// Event types pushed to responders.
const (
	EventCreated = "created"
	EventUpdated = "updated"
)

// Event is the live feed payload.
type Event struct {
	Type    string           `json:"type"`
	Request EmergencyRequest `json:"request"`
}
