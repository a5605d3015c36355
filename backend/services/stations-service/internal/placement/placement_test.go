package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"everse/backend/libs/geo"
)

func citySites() []Site {
	return []Site{
		{Name: "MG Road", Point: geo.Point{Lat: 12.9756, Lng: 77.6050}, Demand: 140},
		{Name: "Indiranagar", Point: geo.Point{Lat: 12.9784, Lng: 77.6408}, Demand: 95},
		{Name: "Koramangala", Point: geo.Point{Lat: 12.9352, Lng: 77.6245}, Demand: 120},
		{Name: "Whitefield", Point: geo.Point{Lat: 12.9698, Lng: 77.7500}, Demand: 30},
		{Name: "Yelahanka", Point: geo.Point{Lat: 13.1005, Lng: 77.5963}, Demand: 10},
		{Name: "Jayanagar", Point: geo.Point{Lat: 12.9250, Lng: 77.5938}, Demand: 80},
	}
}

func TestSuggestRespectsCapAndSeparation(t *testing.T) {
	params := DefaultParams()
	res := Suggest(citySites(), params, seeded(42))

	require.NotEmpty(t, res.Suggestions)
	assert.LessOrEqual(t, len(res.Suggestions), params.Limit)
	assert.LessOrEqual(t, len(res.Centroids), params.K)
	for i, a := range res.Suggestions {
		assert.GreaterOrEqual(t, a.Score, 0.0)
		for _, b := range res.Suggestions[i+1:] {
			assert.GreaterOrEqual(t, geo.DistanceKm(a.Point, b.Point), params.SeparationKm)
		}
	}
}

func TestSuggestIsDeterministicForSeed(t *testing.T) {
	a := Suggest(citySites(), DefaultParams(), seeded(9))
	b := Suggest(citySites(), DefaultParams(), seeded(9))
	assert.Equal(t, a, b)
}

func TestSuggestLimitOverride(t *testing.T) {
	params := DefaultParams()
	params.Limit = 1
	res := Suggest(citySites(), params, seeded(1))
	assert.Len(t, res.Suggestions, 1)
}

func TestSuggestWithoutSites(t *testing.T) {
	res := Suggest(nil, DefaultParams(), seeded(1))
	assert.Empty(t, res.Suggestions)
	assert.Empty(t, res.Centroids)
}

func TestHighDemandUsesMeanByDefault(t *testing.T) {
	sites := []Site{
		{Point: geo.Point{Lat: 1}, Demand: 10},
		{Point: geo.Point{Lat: 2}, Demand: 20},
		{Point: geo.Point{Lat: 3}, Demand: 30},
		{Point: geo.Point{Lat: 4}, Demand: 0},
	}
	assert.Len(t, highDemand(sites, 0), 2)
	assert.Len(t, highDemand(sites, 10), 3)
}

func TestParamsKeepExplicitZeros(t *testing.T) {
	p := DefaultParams()
	p.Penalty = 0
	p.MinSpacingKm = 0
	p.SeparationKm = 0

	got := p.withDefaults()
	assert.Zero(t, got.Penalty)
	assert.Zero(t, got.MinSpacingKm)
	assert.Zero(t, got.SeparationKm)
	assert.Equal(t, DefaultParams().RadiusKm, got.RadiusKm)

	assert.Equal(t, DefaultParams(), Params{}.withDefaults())

	neg := Params{Limit: 3, Penalty: -4}.withDefaults()
	assert.Zero(t, neg.Penalty)
	assert.Equal(t, 3, neg.Limit)
	assert.Equal(t, DefaultParams().K, neg.K)
}
