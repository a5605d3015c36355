package placement

import (
	"sort"

	"everse/backend/libs/geo"
)

// Select merges the best grid candidates with the cluster candidates, drops anything
// closer than params.SeparationKm to an already chosen suggestion and returns at most
// params.Limit entries ordered by score. Grid candidates with a zero score never make
// the list; cluster candidates always compete.
func Select(grid, clustered []Candidate, params Params) []Candidate {
	params = params.withDefaults()

	ranked := make([]Candidate, 0, len(grid))
	for _, c := range grid {
		if c.Score > 0 {
			ranked = append(ranked, c)
		}
	}
	sortByScore(ranked)
	if len(ranked) > params.TopGrid {
		ranked = ranked[:params.TopGrid]
	}

	pool := append(ranked, clustered...)
	sortByScore(pool)

	out := make([]Candidate, 0, params.Limit)
	for _, c := range pool {
		if len(out) == params.Limit {
			break
		}
		if tooClose(c.Point, out, params.SeparationKm) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// sortByScore orders by score descending; ties prefer cluster candidates, then north-west
// points, so output is deterministic for a given input.
func sortByScore(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Source != b.Source {
			return a.Source == SourceCluster
		}
		if a.Point.Lat != b.Point.Lat {
			return a.Point.Lat > b.Point.Lat
		}
		return a.Point.Lng < b.Point.Lng
	})
}

func tooClose(p geo.Point, chosen []Candidate, minKm float64) bool {
	for _, c := range chosen {
		if geo.DistanceKm(p, c.Point) < minKm {
			return true
		}
	}
	return false
}
