package geo

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidGeometry marks a zone geometry that cannot be evaluated
// (too few polygon vertices, missing or non-positive circle radius,
// out-of-range coordinates). Monitoring skips such zones instead of
// aborting the whole evaluation.
var ErrInvalidGeometry = errors.New("invalid zone geometry")

// Circle is a center point plus a radius in meters.
type Circle struct {
	Center       Point
	RadiusMeters float64
}

// Geometry is a tagged variant: exactly one of Circle or Polygon is set.
// A zone is never both shapes at once.
type Geometry struct {
	Circle  *Circle
	Polygon []Point
}

// CircleGeometry builds a circular geometry.
func CircleGeometry(center Point, radiusMeters float64) Geometry {
	return Geometry{Circle: &Circle{Center: center, RadiusMeters: radiusMeters}}
}

// PolygonGeometry builds a polygonal geometry from ordered vertices.
// The ring is implicitly closed.
func PolygonGeometry(vertices []Point) Geometry {
	return Geometry{Polygon: vertices}
}

// Validate checks the variant holds exactly one well-formed shape.
func (g Geometry) Validate() error {
	switch {
	case g.Circle != nil && g.Polygon != nil:
		return fmt.Errorf("%w: both circle and polygon set", ErrInvalidGeometry)
	case g.Circle != nil:
		c := g.Circle
		if c.RadiusMeters <= 0 {
			return fmt.Errorf("%w: circle radius must be positive", ErrInvalidGeometry)
		}
		if !ValidCoordinate(c.Center.Lat, c.Center.Lng) {
			return fmt.Errorf("%w: circle center out of range", ErrInvalidGeometry)
		}
		return nil
	case g.Polygon != nil:
		if len(g.Polygon) < 3 {
			return fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrInvalidGeometry, len(g.Polygon))
		}
		for _, v := range g.Polygon {
			if !ValidCoordinate(v.Lat, v.Lng) {
				return fmt.Errorf("%w: polygon vertex out of range", ErrInvalidGeometry)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: no shape set", ErrInvalidGeometry)
	}
}

// ContainsPoint dispatches to the circle or polygon test.
// The geometry must have passed Validate.
func (g Geometry) ContainsPoint(p Point) bool {
	if g.Circle != nil {
		return PointInCircle(p, g.Circle.Center, g.Circle.RadiusMeters)
	}
	return PointInPolygon(p, g.Polygon)
}

// Wire / storage format. Device dashboards and the seed fixtures exchange
// geometry in the compact form the tracking devices already use:
//
//	polygon: [[lat,lng], [lat,lng], ...]
//	circle:  {"center": [lat,lng], "radius": meters}

type circleJSON struct {
	Center [2]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	if g.Circle != nil {
		return json.Marshal(circleJSON{
			Center: [2]float64{g.Circle.Center.Lat, g.Circle.Center.Lng},
			Radius: g.Circle.RadiusMeters,
		})
	}

	pairs := make([][2]float64, len(g.Polygon))
	for i, v := range g.Polygon {
		pairs[i] = [2]float64{v.Lat, v.Lng}
	}
	return json.Marshal(pairs)
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	// Object form is a circle, array form is a polygon.
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var c struct {
			Center *[2]float64 `json:"center"`
			Radius *float64    `json:"radius"`
		}
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
		}
		if c.Center == nil || c.Radius == nil {
			return fmt.Errorf("%w: circle needs both center and radius", ErrInvalidGeometry)
		}
		*g = CircleGeometry(Point{Lat: c.Center[0], Lng: c.Center[1]}, *c.Radius)
		return nil
	}

	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	vertices := make([]Point, len(pairs))
	for i, p := range pairs {
		vertices[i] = Point{Lat: p[0], Lng: p[1]}
	}
	*g = PolygonGeometry(vertices)
	return nil
}

// Value implements driver.Valuer so gorm stores the geometry as JSON text.
func (g Geometry) Value() (driver.Value, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for the matching TEXT column.
func (g *Geometry) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*g = Geometry{}
		return nil
	case []byte:
		return g.UnmarshalJSON(v)
	case string:
		return g.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into Geometry", src)
	}
}
