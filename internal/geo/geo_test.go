package geo

import (
	"math"
	"testing"
)

// squareVertices is a 10x10 degree square anchored at the origin.
var squareVertices = []Point{
	{Lat: 0, Lng: 0},
	{Lat: 0, Lng: 10},
	{Lat: 10, Lng: 10},
	{Lat: 10, Lng: 0},
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := []struct{ a, b Point }{
		{Point{Lat: 9.52, Lng: -13.68}, Point{Lat: 9.50, Lng: -13.70}},
		{Point{Lat: 48.85, Lng: 2.35}, Point{Lat: 51.51, Lng: -0.13}},
		{Point{Lat: -33.86, Lng: 151.21}, Point{Lat: 35.68, Lng: 139.69}},
	}
	for _, p := range pairs {
		ab := Distance(p.a, p.b)
		ba := Distance(p.b, p.a)
		if math.Abs(ab-ba) > 1e-6 {
			t.Errorf("Distance(%v,%v)=%f but Distance(%v,%v)=%f", p.a, p.b, ab, p.b, p.a, ba)
		}
	}
}

func TestDistanceZeroOnSamePoint(t *testing.T) {
	p := Point{Lat: 9.52, Lng: -13.68}
	if d := Distance(p, p); d != 0 {
		t.Errorf("Distance(p,p) = %f, want 0", d)
	}
}

func TestDistanceOneDegreeAtEquator(t *testing.T) {
	// One degree of arc on a 6371000m sphere: R * pi/180.
	want := EarthRadiusMeters * math.Pi / 180
	got := Distance(Point{Lat: 0, Lng: 0}, Point{Lat: 0, Lng: 1})
	if math.Abs(got-want) > 1 {
		t.Errorf("one degree at equator = %f m, want ~%f m", got, want)
	}
}

func TestPointInCircleBoundary(t *testing.T) {
	center := Point{Lat: 9.50, Lng: -13.70}
	point := Point{Lat: 9.51, Lng: -13.70}
	radius := Distance(point, center)

	if !PointInCircle(point, center, radius) {
		t.Error("point exactly at the radius should be inside (inclusive boundary)")
	}
	if PointInCircle(point, center, radius-1) {
		t.Error("point one meter beyond the radius should be outside")
	}
	if !PointInCircle(center, center, 0) {
		t.Error("center is always inside, even with zero radius")
	}
}

func TestPointInPolygonSquare(t *testing.T) {
	cases := []struct {
		name string
		p    Point
		want bool
	}{
		{"center of square", Point{Lat: 5, Lng: 5}, true},
		{"well outside", Point{Lat: 20, Lng: 20}, false},
		{"outside one axis", Point{Lat: 5, Lng: 15}, false},
		{"near corner inside", Point{Lat: 9.9, Lng: 9.9}, true},
		{"negative quadrant", Point{Lat: -1, Lng: -1}, false},
	}
	for _, tc := range cases {
		if got := PointInPolygon(tc.p, squareVertices); got != tc.want {
			t.Errorf("%s: PointInPolygon(%v) = %v, want %v", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestPointInPolygonConcave(t *testing.T) {
	// U-shape: the notch between the arms is outside.
	u := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 10, Lng: 0},
		{Lat: 10, Lng: 3},
		{Lat: 2, Lng: 3},
		{Lat: 2, Lng: 7},
		{Lat: 10, Lng: 7},
		{Lat: 10, Lng: 10},
		{Lat: 0, Lng: 10},
	}
	if PointInPolygon(Point{Lat: 6, Lng: 5}, u) {
		t.Error("point in the notch of a concave polygon should be outside")
	}
	if !PointInPolygon(Point{Lat: 1, Lng: 5}, u) {
		t.Error("point in the base of a concave polygon should be inside")
	}
}

func TestValidCoordinate(t *testing.T) {
	valid := []Point{{0, 0}, {90, 180}, {-90, -180}, {9.52, -13.68}}
	for _, p := range valid {
		if !ValidCoordinate(p.Lat, p.Lng) {
			t.Errorf("ValidCoordinate(%v) = false, want true", p)
		}
	}
	invalid := []Point{{91, 0}, {-91, 0}, {0, 181}, {0, -181}}
	for _, p := range invalid {
		if ValidCoordinate(p.Lat, p.Lng) {
			t.Errorf("ValidCoordinate(%v) = true, want false", p)
		}
	}
}
