package models

import (
	"time"

	"everse/backend/libs/geo"
)

// Station operational types.
const (
	TypeCharging = "charging"
	TypeSwapping = "swapping"
)

// ValidType reports whether t is a supported operational type.
func ValidType(t string) bool {
	return t == TypeCharging || t == TypeSwapping
}

// Location is where a station sits.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Point converts the location for distance math.
func (l Location) Point() geo.Point {
	return geo.Point{Lat: l.Lat, Lng: l.Lng}
}

// Station is a charging or battery swapping site.
type Station struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Slug           string     `json:"slug"`
	Location       Location   `json:"location"`
	Types          []string   `json:"types"`
	Connectors     []string   `json:"connectors"`
	Ports          int        `json:"ports"`
	PowerKW        float64    `json:"powerKw"`
	OwnerID        int64      `json:"ownerId,omitempty"`
	LastServicedAt *time.Time `json:"lastServicedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NearbyStation is a station annotated with its distance from a query point.
type NearbyStation struct {
	Station
	DistanceKm float64 `json:"distanceKm"`
}
