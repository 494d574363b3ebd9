// Package gpxio converts between GPX documents and track point sequences.
// The GPX XML handling itself is delegated to tkrajina/gpxgo; paulmach/orb
// provides the GeoJSON export.
package gpxio

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/garethjevans/GPXviz/internal/track"
)

const creator = "GPXviz"

// Parse reads a GPX document and flattens every track segment into a single
// ordered point sequence. Points without an elevation get elevation zero.
func Parse(data []byte) ([]track.TrackPoint, string, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("parse gpx: %w", err)
	}

	name := doc.Name
	var points []track.TrackPoint
	for _, trk := range doc.Tracks {
		if name == "" && trk.Name != "" {
			name = trk.Name
		}
		for _, segment := range trk.Segments {
			for _, p := range segment.Points {
				var ele float64
				if p.Elevation.NotNull() {
					ele = p.Elevation.Value()
				}
				points = append(points, track.TrackPoint{
					Lat: p.Latitude,
					Lon: p.Longitude,
					Ele: ele,
				})
			}
		}
	}
	return track.Reindex(points), name, nil
}

// Serialize renders the point sequence as a single-track, single-segment
// GPX 1.1 document.
func Serialize(points []track.TrackPoint, name string) ([]byte, error) {
	doc := &gpx.GPX{
		Creator: creator,
		Name:    name,
	}
	segment := gpx.GPXTrackSegment{}
	for _, p := range points {
		var gp gpx.GPXPoint
		gp.Latitude = p.Lat
		gp.Longitude = p.Lon
		gp.Elevation = *gpx.NewNullableFloat64(p.Ele)
		segment.Points = append(segment.Points, gp)
	}
	doc.Tracks = append(doc.Tracks, gpx.GPXTrack{
		Name:     name,
		Segments: []gpx.GPXTrackSegment{segment},
	})

	xml, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("serialize gpx: %w", err)
	}
	return xml, nil
}

// ToGeoJSON renders the point sequence as a FeatureCollection holding one
// LineString in lon/lat order, with the track name and point count carried
// as feature properties.
func ToGeoJSON(points []track.TrackPoint, name string) ([]byte, error) {
	line := make(orb.LineString, 0, len(points))
	for _, p := range points {
		line = append(line, orb.Point{p.Lon, p.Lat})
	}

	feature := geojson.NewFeature(line)
	feature.Properties["name"] = name
	feature.Properties["points"] = len(points)

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)
	out, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("serialize geojson: %w", err)
	}
	return out, nil
}
