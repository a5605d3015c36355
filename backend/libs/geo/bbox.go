package geo

// BoundingBox is an axis-aligned lat/lng rectangle.
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// Bounds computes the box enclosing all points. ok is false for an empty slice.
func Bounds(points []Point) (box BoundingBox, ok bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}
	box = BoundingBox{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLng: points[0].Lng, MaxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		box.MinLat = min(box.MinLat, p.Lat)
		box.MaxLat = max(box.MaxLat, p.Lat)
		box.MinLng = min(box.MinLng, p.Lng)
		box.MaxLng = max(box.MaxLng, p.Lng)
	}
	return box, true
}

// Contains reports whether p lies inside the box, edges included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Grid returns steps×steps evenly spaced points covering the box, corners included.
// A degenerate box (single point or a line) collapses duplicate rows and columns.
func (b BoundingBox) Grid(steps int) []Point {
	if steps < 2 {
		return []Point{{Lat: (b.MinLat + b.MaxLat) / 2, Lng: (b.MinLng + b.MaxLng) / 2}}
	}

	lats := axis(b.MinLat, b.MaxLat, steps)
	lngs := axis(b.MinLng, b.MaxLng, steps)

	out := make([]Point, 0, len(lats)*len(lngs))
	for _, lat := range lats {
		for _, lng := range lngs {
			out = append(out, Point{Lat: lat, Lng: lng})
		}
	}
	return out
}

func axis(lo, hi float64, steps int) []float64 {
	if lo == hi {
		return []float64{lo}
	}
	out := make([]float64, steps)
	step := (hi - lo) / float64(steps-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[steps-1] = hi
	return out
}
