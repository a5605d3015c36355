package models

import "everse/backend/libs/geo"

// Route types returned for every request.
const (
	RouteShortest = "shortest"
	RouteMostEV   = "most_ev"
	RouteScenic   = "scenic"
)

// RouteRequest asks for the three route variants between start and end.
type RouteRequest struct {
	Start       *geo.Point  `json:"start"`
	End         *geo.Point  `json:"end"`
	EVStations  []geo.Point `json:"evStations"`
	ScenicSpots []geo.Point `json:"scenicSpots"`
}

// Directions is one upstream directions result.
type Directions struct {
	DurationSeconds float64     `json:"durationSeconds"`
	DistanceMeters  float64     `json:"distanceMeters"`
	Geometry        []geo.Point `json:"geometry"`
}

// Route is a rendered route variant.
type Route struct {
	Type       string      `json:"type"`
	ETAMinutes int         `json:"eta"`
	DistanceKm float64     `json:"distance"`
	Stops      int         `json:"stops"`
	Geometry   []geo.Point `json:"geometry"`
}

// Place is a geocoding hit.
type Place struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}
