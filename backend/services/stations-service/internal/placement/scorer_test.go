package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"everse/backend/libs/geo"
)

var hub = geo.Point{Lat: 12.9716, Lng: 77.5946}

func testParams() Params {
	return Params{RadiusKm: 5, MinSpacingKm: 1, Penalty: 10}
}

func TestScoreNoSiteWithinRadius(t *testing.T) {
	far := geo.Point{Lat: hub.Lat + 1, Lng: hub.Lng}
	assert.Zero(t, Score(far, []Site{{Point: hub, Demand: 100}}, testParams()))
	assert.Zero(t, Score(hub, nil, testParams()))
}

func TestScoreCoincidentTakesFullPenalty(t *testing.T) {
	assert.InDelta(t, 20, Score(hub, []Site{{Point: hub, Demand: 30}}, testParams()), 1e-9)
	assert.Zero(t, Score(hub, []Site{{Point: hub, Demand: 5}}, testParams()))
}

func TestScoreWeightsByDistance(t *testing.T) {
	// 0.018 degrees of latitude is about 2 km
	candidate := geo.Point{Lat: hub.Lat + 0.018, Lng: hub.Lng}
	d := geo.DistanceKm(candidate, hub)

	got := Score(candidate, []Site{{Point: hub, Demand: 50}}, testParams())
	assert.InDelta(t, 50*(1-d/5), got, 1e-9)
}

func TestScoreNonIncreasingMovingAwayFromDemand(t *testing.T) {
	sites := []Site{
		{Point: hub, Demand: 40},
		{Point: geo.Point{Lat: hub.Lat - 0.01, Lng: hub.Lng + 0.01}, Demand: 25},
	}
	// Start outside the crowding radius of both sites and walk north.
	prev := Score(geo.Point{Lat: hub.Lat + 0.01, Lng: hub.Lng}, sites, testParams())
	for i := 2; i <= 60; i++ {
		p := geo.Point{Lat: hub.Lat + 0.01*float64(i)/2, Lng: hub.Lng}
		cur := Score(p, sites, testParams())
		assert.LessOrEqual(t, cur, prev+1e-9, "score rose at step %d", i)
		assert.GreaterOrEqual(t, cur, 0.0)
		prev = cur
	}
	assert.Zero(t, prev)
}

func TestScoreAllTagsSource(t *testing.T) {
	out := ScoreAll([]geo.Point{hub}, []Site{{Point: hub, Demand: 12}}, testParams(), SourceCluster)
	assert.Len(t, out, 1)
	assert.Equal(t, SourceCluster, out[0].Source)
	assert.InDelta(t, 2, out[0].Score, 1e-9)
	assert.Zero(t, out[0].NearestStationKm)
}

func TestScoreZeroPenaltyDisablesCrowding(t *testing.T) {
	params := testParams()
	params.Penalty = 0

	assert.InDelta(t, 30, Score(hub, []Site{{Point: hub, Demand: 30}}, params), 1e-9)
	near := geo.Point{Lat: hub.Lat + 0.0045, Lng: hub.Lng}
	d := geo.DistanceKm(near, hub)
	assert.InDelta(t, 30*(1-d/5), Score(near, []Site{{Point: hub, Demand: 30}}, params), 1e-9)
}
