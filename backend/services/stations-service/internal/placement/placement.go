// Package placement suggests locations for new stations from existing stations and
// their booking demand. Everything here is a pure function of its inputs; nothing is
// cached or persisted between calls.
package placement

import (
	"math"
	"math/rand/v2"

	"everse/backend/libs/geo"
)

// Site is an existing station with its observed demand.
type Site struct {
	Name   string    `json:"name"`
	Point  geo.Point `json:"point"`
	Demand float64   `json:"demand"`
}

// Params tunes the heuristic. Zero fields are replaced by DefaultParams values.
type Params struct {
	// RadiusKm is the service radius a new station would cover.
	RadiusKm float64 `yaml:"radiusKm"`
	// MinSpacingKm is the distance below which a candidate crowds an existing station.
	MinSpacingKm float64 `yaml:"minSpacingKm"`
	// Penalty is subtracted from crowded candidates.
	Penalty float64 `yaml:"penalty"`
	// GridSteps is the number of rows and columns of the candidate grid.
	GridSteps int `yaml:"gridSteps"`
	// DemandThreshold selects high demand sites for clustering. Zero means mean demand.
	DemandThreshold float64 `yaml:"demandThreshold"`
	K               int     `yaml:"k"`
	MaxIterations   int     `yaml:"maxIterations"`
	ConvergenceKm   float64 `yaml:"convergenceKm"`
	// SeparationKm is the minimum distance between two suggestions.
	SeparationKm float64 `yaml:"separationKm"`
	// TopGrid caps how many grid candidates enter the merge.
	TopGrid int `yaml:"topGrid"`
	Limit   int `yaml:"limit"`
}

// DefaultParams are tuned for city scale station networks.
func DefaultParams() Params {
	return Params{
		RadiusKm:      5,
		MinSpacingKm:  1,
		Penalty:       10,
		GridSteps:     12,
		K:             3,
		MaxIterations: 100,
		ConvergenceKm: 0.01,
		SeparationKm:  1.5,
		TopGrid:       20,
		Limit:         5,
	}
}

// withDefaults fills the structural fields a run cannot do without. MinSpacingKm, Penalty,
// SeparationKm and DemandThreshold keep an explicit zero, which turns the crowding penalty,
// de-duplication or the fixed threshold off. The zero Params means DefaultParams.
func (p Params) withDefaults() Params {
	if p == (Params{}) {
		return DefaultParams()
	}
	d := DefaultParams()
	if p.RadiusKm <= 0 {
		p.RadiusKm = d.RadiusKm
	}
	if p.GridSteps <= 0 {
		p.GridSteps = d.GridSteps
	}
	if p.K <= 0 {
		p.K = d.K
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = d.MaxIterations
	}
	if p.ConvergenceKm <= 0 {
		p.ConvergenceKm = d.ConvergenceKm
	}
	if p.TopGrid <= 0 {
		p.TopGrid = d.TopGrid
	}
	if p.Limit <= 0 {
		p.Limit = d.Limit
	}
	p.MinSpacingKm = math.Max(0, p.MinSpacingKm)
	p.Penalty = math.Max(0, p.Penalty)
	p.SeparationKm = math.Max(0, p.SeparationKm)
	p.DemandThreshold = math.Max(0, p.DemandThreshold)
	return p
}

// Result is the outcome of one Suggest run.
type Result struct {
	Suggestions []Candidate `json:"suggestions"`
	Centroids   []geo.Point `json:"centroids"`
}

// Suggest scores a grid over the sites' bounding box, clusters the high demand sites and
// merges both into at most params.Limit well separated suggestions.
func Suggest(sites []Site, params Params, rng *rand.Rand) Result {
	params = params.withDefaults()
	if len(sites) == 0 {
		return Result{Suggestions: []Candidate{}, Centroids: []geo.Point{}}
	}

	points := make([]geo.Point, len(sites))
	for i, s := range sites {
		points[i] = s.Point
	}
	box, _ := geo.Bounds(points)
	grid := ScoreAll(box.Grid(params.GridSteps), sites, params, SourceGrid)

	centroids := KMeans(highDemand(sites, params.DemandThreshold), params.K, params.MaxIterations, params.ConvergenceKm, rng)
	clustered := ScoreAll(centroids, sites, params, SourceCluster)

	return Result{
		Suggestions: Select(grid, clustered, params),
		Centroids:   centroids,
	}
}

func highDemand(sites []Site, threshold float64) []geo.Point {
	if threshold <= 0 {
		var total float64
		for _, s := range sites {
			total += s.Demand
		}
		threshold = total / float64(len(sites))
	}
	out := make([]geo.Point, 0, len(sites))
	for _, s := range sites {
		if s.Demand > 0 && s.Demand >= threshold {
			out = append(out, s.Point)
		}
	}
	return out
}
