package placement

import (
	"math/rand/v2"

	"everse/backend/libs/geo"
)

// KMeans runs Lloyd's algorithm over points and returns at most k centroids.
// Initial centroids are distinct input points picked with rng. Iteration stops once no
// centroid moves more than epsKm or after maxIter rounds. A cluster that loses all its
// members keeps its previous centroid.
func KMeans(points []geo.Point, k, maxIter int, epsKm float64, rng *rand.Rand) []geo.Point {
	if len(points) == 0 || k <= 0 {
		return []geo.Point{}
	}
	if k > len(points) {
		k = len(points)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	centroids := make([]geo.Point, k)
	for i, idx := range rng.Perm(len(points))[:k] {
		centroids[i] = points[idx]
	}

	members := make([][]geo.Point, k)
	for iter := 0; iter < maxIter; iter++ {
		for c := range members {
			members[c] = members[c][:0]
		}
		for _, p := range points {
			idx, _, _ := geo.Nearest(p, centroids)
			members[idx] = append(members[idx], p)
		}

		moved := 0.0
		for c := range centroids {
			next, ok := geo.Centroid(members[c])
			if !ok {
				continue
			}
			moved = max(moved, geo.DistanceKm(centroids[c], next))
			centroids[c] = next
		}
		if moved < epsKm {
			break
		}
	}
	return centroids
}
