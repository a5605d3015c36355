package placement

import (
	"math"

	"everse/backend/libs/geo"
)

// Candidate sources.
const (
	SourceGrid    = "grid"
	SourceCluster = "cluster"
)

// Candidate is a scored potential station location.
type Candidate struct {
	Point            geo.Point `json:"point"`
	Score            float64   `json:"score"`
	Source           string    `json:"source"`
	NearestStationKm float64   `json:"nearestStationKm"`
}

// Score sums demand within the service radius, weighted by 1 - d/R, subtracts the
// crowding penalty when the closest site is nearer than the minimum spacing and clamps
// at zero. A candidate on top of a site always takes the full penalty.
func Score(candidate geo.Point, sites []Site, params Params) float64 {
	score, _ := score(candidate, sites, params.withDefaults())
	return score
}

func score(candidate geo.Point, sites []Site, params Params) (float64, float64) {
	total := 0.0
	nearest := math.Inf(1)
	for _, s := range sites {
		d := geo.DistanceKm(candidate, s.Point)
		nearest = math.Min(nearest, d)
		if d < params.RadiusKm {
			total += s.Demand * (1 - d/params.RadiusKm)
		}
	}
	if nearest == 0 || nearest < params.MinSpacingKm {
		total -= params.Penalty
	}
	return math.Max(0, total), nearest
}

// ScoreAll scores every point and tags the candidates with source.
func ScoreAll(points []geo.Point, sites []Site, params Params, source string) []Candidate {
	params = params.withDefaults()
	out := make([]Candidate, 0, len(points))
	for _, p := range points {
		s, nearest := score(p, sites, params)
		if math.IsInf(nearest, 1) {
			nearest = 0
		}
		out = append(out, Candidate{Point: p, Score: s, Source: source, NearestStationKm: nearest})
	}
	return out
}
