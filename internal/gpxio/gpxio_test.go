package gpxio

import (
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/garethjevans/GPXviz/internal/track"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>Morning Ride</name>
    <trkseg>
      <trkpt lat="45.5" lon="6.25"><ele>1200.5</ele></trkpt>
      <trkpt lat="45.502" lon="6.252"><ele>1210</ele></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="45.504" lon="6.254"></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestParseFlattensSegments(t *testing.T) {
	points, name, err := Parse([]byte(sampleGPX))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if name != "Morning Ride" {
		t.Fatalf("name = %q", name)
	}
	if len(points) != 3 {
		t.Fatalf("expected all segments flattened into 3 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Idx != i {
			t.Fatalf("point %d has index %d", i, p.Idx)
		}
	}
	if points[0].Lat != 45.5 || points[0].Lon != 6.25 || points[0].Ele != 1200.5 {
		t.Fatalf("first point = %+v", points[0])
	}
	if points[2].Ele != 0 {
		t.Fatalf("missing elevation must parse as zero, got %v", points[2].Ele)
	}
}

func TestParseRejectsBadDocument(t *testing.T) {
	if _, _, err := Parse([]byte("not a gpx document")); err == nil {
		t.Fatalf("expected an error for junk input")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	points := track.Reindex([]track.TrackPoint{
		{Lat: 45.5, Lon: 6.25, Ele: 1200.5},
		{Lat: 45.502, Lon: 6.252, Ele: 1210},
		{Lat: 45.504, Lon: 6.254, Ele: 1215.25},
	})
	data, err := Serialize(points, "Ridge Run")
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(string(data), "Ridge Run") {
		t.Fatalf("output does not carry the track name:\n%s", data)
	}
	if !strings.Contains(string(data), `creator="GPXviz"`) {
		t.Fatalf("output does not carry the creator:\n%s", data)
	}

	back, name, err := Parse(data)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if name != "Ridge Run" {
		t.Fatalf("round-trip name = %q", name)
	}
	if len(back) != len(points) {
		t.Fatalf("round-trip point count = %d", len(back))
	}
	for i := range points {
		if math.Abs(back[i].Lat-points[i].Lat) > 1e-6 ||
			math.Abs(back[i].Lon-points[i].Lon) > 1e-6 ||
			math.Abs(back[i].Ele-points[i].Ele) > 1e-6 {
			t.Fatalf("point %d: %+v != %+v", i, back[i], points[i])
		}
	}
}

func TestToGeoJSON(t *testing.T) {
	points := track.Reindex([]track.TrackPoint{
		{Lat: 45.5, Lon: 6.25, Ele: 1200},
		{Lat: 45.502, Lon: 6.252, Ele: 1210},
		{Lat: 45.504, Lon: 6.254, Ele: 1215},
	})
	data, err := ToGeoJSON(points, "Loop")
	if err != nil {
		t.Fatalf("geojson: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected a single feature, got %d", len(fc.Features))
	}
	feature := fc.Features[0]
	line, ok := feature.Geometry.(orb.LineString)
	if !ok {
		t.Fatalf("geometry is %T, want LineString", feature.Geometry)
	}
	if len(line) != 3 {
		t.Fatalf("line has %d positions", len(line))
	}
	if line[0][0] != 6.25 || line[0][1] != 45.5 {
		t.Fatalf("coordinates must be lon/lat ordered, got %v", line[0])
	}
	if feature.Properties["name"] != "Loop" {
		t.Fatalf("name property = %v", feature.Properties["name"])
	}
	if feature.Properties["points"] != float64(3) {
		t.Fatalf("points property = %v", feature.Properties["points"])
	}
}
