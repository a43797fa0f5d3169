// Package geo holds the pure geometry used by zone monitoring: great-circle
// distance and the point-in-circle / point-in-polygon containment tests.
// Nothing in here touches the database or the network.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// ValidCoordinate reports whether lat/lng fall inside the WGS84 ranges.
// Callers validate before any evaluation starts.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Distance returns the great-circle distance between a and b in meters,
// computed with the haversine formula. Symmetric in its arguments.
func Distance(a, b Point) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// PointInCircle reports whether p lies within radiusMeters of center.
// The boundary is inclusive: a point exactly at the radius is inside.
func PointInCircle(p, center Point, radiusMeters float64) bool {
	return Distance(p, center) <= radiusMeters
}

// PointInPolygon runs the standard ray-casting parity test over the vertex
// sequence, treating it as implicitly closed (last vertex connects back to
// the first). Behavior for points exactly on an edge or vertex is
// implementation-defined; callers must not rely on it either way.
// The polygon is assumed valid (at least 3 vertices).
func PointInPolygon(p Point, vertices []Point) bool {
	inside := false
	for i, j := 0, len(vertices)-1; i < len(vertices); j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]

		intersects := (vi.Lng > p.Lng) != (vj.Lng > p.Lng) &&
			p.Lat < (vj.Lat-vi.Lat)*(p.Lng-vi.Lng)/(vj.Lng-vi.Lng)+vi.Lat
		if intersects {
			inside = !inside
		}
	}
	return inside
}
