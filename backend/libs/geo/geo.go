// Package geo holds the great-circle helpers shared by the station and routing services.
// All coordinates are WGS-84 degrees and all distances are kilometers.
package geo

import (
	"math"
)

// EarthRadiusKm is the mean radius of Earth.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the point lies inside the WGS-84 coordinate ranges.
func (p Point) Valid() bool {
	return ValidLatLng(p.Lat, p.Lng)
}

// ValidLatLng reports whether lat is within [-90,90] and lng within [-180,180].
func ValidLatLng(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// DistanceKm returns the Haversine distance between a and b.
func DistanceKm(a, b Point) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng
	// rounding can push h a hair above 1 for antipodal points
	h = math.Min(1, h)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// Nearest returns the index of the point closest to from and its distance.
// ok is false when points is empty.
func Nearest(from Point, points []Point) (idx int, distKm float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}
	idx, distKm = 0, DistanceKm(from, points[0])
	for i := 1; i < len(points); i++ {
		if d := DistanceKm(from, points[i]); d < distKm {
			idx, distKm = i, d
		}
	}
	return idx, distKm, true
}

// Centroid returns the arithmetic mean of points. Adequate for clusters that span
// a city or region; it does not handle the antimeridian.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(points))
	return Point{Lat: sumLat / n, Lng: sumLng / n}, true
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
