package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"everse/backend/libs/geo"
	"everse/backend/services/route-engine/internal/cache"
	"everse/backend/services/route-engine/internal/models"
)

// DefaultMaxWaypoints bounds start, end and every intermediate stop of one route.
const DefaultMaxWaypoints = 25

// DirectionsProvider returns a driving route through the points in order.
type DirectionsProvider interface {
	Directions(ctx context.Context, points []geo.Point) (*models.Directions, error)
}

// Cache stores JSON values. Get returns redis.Nil on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// Planner builds the shortest, EV-heavy and scenic route variants.
type Planner struct {
	provider     DirectionsProvider
	cache        Cache
	maxWaypoints int
	logger       *zap.Logger
}

// NewPlanner builds planner. cache may be nil.
func NewPlanner(provider DirectionsProvider, cache Cache, maxWaypoints int, logger *zap.Logger) *Planner {
	if maxWaypoints < 2 {
		maxWaypoints = DefaultMaxWaypoints
	}
	return &Planner{provider: provider, cache: cache, maxWaypoints: maxWaypoints, logger: logger}
}

type variant struct {
	kind   string
	points []geo.Point
	stops  int
}

// Plan fetches all three variants concurrently. Any provider failure fails the whole request.
func (p *Planner) Plan(ctx context.Context, req models.RouteRequest) ([]models.Route, error) {
	if err := p.validate(req); err != nil {
		return nil, err
	}

	start, end := *req.Start, *req.End
	variants := []variant{
		{kind: models.RouteShortest, points: []geo.Point{start, end}},
		{kind: models.RouteMostEV, points: through(start, req.EVStations, end), stops: len(req.EVStations)},
		{kind: models.RouteScenic, points: through(start, req.ScenicSpots, end), stops: len(req.ScenicSpots)},
	}

	routes := make([]models.Route, len(variants))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			d, err := p.directions(gctx, v.points)
			if err != nil {
				return fmt.Errorf("%w: %s route: %v", ErrUpstream, v.kind, err)
			}
			routes[i] = render(v, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return routes, nil
}

func (p *Planner) validate(req models.RouteRequest) error {
	if req.Start == nil || req.End == nil {
		return invalid("start and end are required")
	}
	if !req.Start.Valid() {
		return invalid("start must be a valid coordinate")
	}
	if !req.End.Valid() {
		return invalid("end must be a valid coordinate")
	}
	for _, stops := range [][]geo.Point{req.EVStations, req.ScenicSpots} {
		if len(stops)+2 > p.maxWaypoints {
			return invalid(fmt.Sprintf("at most %d waypoints per route", p.maxWaypoints))
		}
		for _, s := range stops {
			if !s.Valid() {
				return invalid("waypoints must be valid coordinates")
			}
		}
	}
	return nil
}

func (p *Planner) directions(ctx context.Context, points []geo.Point) (*models.Directions, error) {
	key := cache.PointsKey(points)
	if p.cache != nil {
		var cached models.Directions
		err := p.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			p.logger.Warn("route cache read failed", zap.Error(err))
		}
	}

	d, err := p.provider.Directions(ctx, points)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, d); err != nil {
			p.logger.Warn("route cache write failed", zap.Error(err))
		}
	}
	return d, nil
}

func through(start geo.Point, stops []geo.Point, end geo.Point) []geo.Point {
	points := make([]geo.Point, 0, len(stops)+2)
	points = append(points, start)
	points = append(points, stops...)
	return append(points, end)
}

func render(v variant, d *models.Directions) models.Route {
	geometry := d.Geometry
	if geometry == nil {
		geometry = []geo.Point{}
	}
	return models.Route{
		Type:       v.kind,
		ETAMinutes: int(math.Round(d.DurationSeconds / 60)),
		DistanceKm: math.Round(d.DistanceMeters/10) / 100,
		Stops:      v.stops,
		Geometry:   geometry,
	}
}
