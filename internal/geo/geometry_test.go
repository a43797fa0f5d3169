package geo

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestGeometryUnmarshalCircleForm(t *testing.T) {
	var g Geometry
	if err := json.Unmarshal([]byte(`{"center":[9.50,-13.70],"radius":1000}`), &g); err != nil {
		t.Fatalf("unmarshal circle: %v", err)
	}
	if g.Circle == nil {
		t.Fatal("expected circle variant")
	}
	if g.Polygon != nil {
		t.Fatal("circle geometry must not also carry a polygon")
	}
	if g.Circle.Center.Lat != 9.50 || g.Circle.Center.Lng != -13.70 || g.Circle.RadiusMeters != 1000 {
		t.Errorf("unexpected circle: %+v", g.Circle)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("valid circle rejected: %v", err)
	}
}

func TestGeometryUnmarshalPolygonForm(t *testing.T) {
	var g Geometry
	if err := json.Unmarshal([]byte(`[[0,0],[0,10],[10,10],[10,0]]`), &g); err != nil {
		t.Fatalf("unmarshal polygon: %v", err)
	}
	if g.Polygon == nil || g.Circle != nil {
		t.Fatalf("expected polygon variant, got %+v", g)
	}
	if len(g.Polygon) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(g.Polygon))
	}
	if err := g.Validate(); err != nil {
		t.Errorf("valid polygon rejected: %v", err)
	}
}

func TestGeometryUnmarshalRejectsPartialCircle(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"missing center", `{"radius":500}`},
		{"missing radius", `{"center":[9.5,-13.7]}`},
		{"empty object", `{}`},
	}
	for _, tc := range cases {
		var g Geometry
		err := json.Unmarshal([]byte(tc.in), &g)
		if err == nil {
			t.Errorf("%s: unmarshal accepted %s", tc.name, tc.in)
			continue
		}
		if !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("%s: error %v does not wrap ErrInvalidGeometry", tc.name, err)
		}
	}
}

func TestGeometryMarshalRoundTrip(t *testing.T) {
	circle := CircleGeometry(Point{Lat: 9.50, Lng: -13.70}, 1500)
	b, err := json.Marshal(circle)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Geometry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Circle == nil || back.Circle.RadiusMeters != 1500 {
		t.Errorf("circle did not survive the round trip: %s", b)
	}
}

func TestGeometryValidateRejectsDegenerate(t *testing.T) {
	cases := []struct {
		name string
		g    Geometry
	}{
		{"empty", Geometry{}},
		{"two-vertex polygon", PolygonGeometry([]Point{{0, 0}, {1, 1}})},
		{"zero radius", CircleGeometry(Point{Lat: 1, Lng: 1}, 0)},
		{"negative radius", CircleGeometry(Point{Lat: 1, Lng: 1}, -5)},
		{"center out of range", CircleGeometry(Point{Lat: 95, Lng: 0}, 100)},
		{"vertex out of range", PolygonGeometry([]Point{{0, 0}, {0, 200}, {5, 5}})},
	}
	for _, tc := range cases {
		err := tc.g.Validate()
		if err == nil {
			t.Errorf("%s: Validate() = nil, want error", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("%s: error %v does not wrap ErrInvalidGeometry", tc.name, err)
		}
	}
}

func TestGeometryContainsPointDispatch(t *testing.T) {
	circle := CircleGeometry(Point{Lat: 9.50, Lng: -13.70}, 1000)
	if !circle.ContainsPoint(Point{Lat: 9.50, Lng: -13.70}) {
		t.Error("circle should contain its own center")
	}

	polygon := PolygonGeometry([]Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}})
	if !polygon.ContainsPoint(Point{Lat: 5, Lng: 5}) {
		t.Error("polygon should contain its interior point")
	}
	if polygon.ContainsPoint(Point{Lat: 20, Lng: 20}) {
		t.Error("polygon should not contain a far-away point")
	}
}

func TestGeometryScanFromDatabaseText(t *testing.T) {
	var g Geometry
	if err := g.Scan(`{"center":[9.5,-13.7],"radius":800}`); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if g.Circle == nil {
		t.Fatal("expected circle after scanning string")
	}

	var g2 Geometry
	if err := g2.Scan([]byte(`[[0,0],[0,1],[1,1]]`)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if len(g2.Polygon) != 3 {
		t.Fatalf("expected 3 vertices after scanning bytes, got %d", len(g2.Polygon))
	}
}
