package track

import (
	"math"

	"github.com/garethjevans/GPXviz/internal/shared/geo"
)

// DeriveScaling computes the projection frame for a point sequence. An empty
// sequence yields a degenerate frame at the origin rather than an error.
func DeriveScaling(points []TrackPoint) ScalingInfo {
	info := ScalingInfo{MetresPerDegree: geo.MetresPerDegree}
	if len(points) == 0 {
		return info
	}
	info.MinLat, info.MaxLat = points[0].Lat, points[0].Lat
	info.MinLon, info.MaxLon = points[0].Lon, points[0].Lon
	info.MinEle, info.MaxEle = points[0].Ele, points[0].Ele
	for _, p := range points[1:] {
		info.MinLat = math.Min(info.MinLat, p.Lat)
		info.MaxLat = math.Max(info.MaxLat, p.Lat)
		info.MinLon = math.Min(info.MinLon, p.Lon)
		info.MaxLon = math.Max(info.MaxLon, p.Lon)
		info.MinEle = math.Min(info.MinEle, p.Ele)
		info.MaxEle = math.Max(info.MaxEle, p.Ele)
	}
	info.CentreLat = (info.MinLat + info.MaxLat) / 2
	info.CentreLon = (info.MinLon + info.MaxLon) / 2
	info.CentreEle = (info.MinEle + info.MaxEle) / 2
	info.LargestDimension = math.Max(info.MaxLat-info.MinLat, info.MaxLon-info.MinLon)
	return info
}

// ProjectToLocal converts one point into local metres. Longitude uses the
// same scale as latitude: the flat approximation is intentional and must not
// be "corrected" with cos(lat), which would change every derived x value.
func ProjectToLocal(scaling ScalingInfo, p TrackPoint) DrawingNode {
	return DrawingNode{
		TrackPoint: p,
		X:          (p.Lon - scaling.CentreLon) * scaling.MetresPerDegree,
		Y:          (p.Lat - scaling.CentreLat) * scaling.MetresPerDegree,
		Z:          p.Ele,
	}
}

// UnprojectLocal maps a local-frame location back to degrees, the exact
// inverse of ProjectToLocal. Idx is left 0 for a later Reindex.
func UnprojectLocal(scaling ScalingInfo, x, y, z float64) TrackPoint {
	return TrackPoint{
		Lat: scaling.CentreLat + y/scaling.MetresPerDegree,
		Lon: scaling.CentreLon + x/scaling.MetresPerDegree,
		Ele: z,
	}
}

func DeriveNodes(scaling ScalingInfo, points []TrackPoint) []DrawingNode {
	nodes := make([]DrawingNode, len(points))
	for i, p := range points {
		nodes[i] = ProjectToLocal(scaling, p)
	}
	return nodes
}

// DeriveRoads pairs consecutive nodes into segments. Length is great-circle
// and ignores elevation; gradient is 0 on zero-length segments instead of a
// division by zero; cumulative distances accumulate strictly left to right.
func DeriveRoads(nodes []DrawingNode) []DrawingRoad {
	if len(nodes) < 2 {
		return nil
	}
	roads := make([]DrawingRoad, 0, len(nodes)-1)
	distance := 0.0
	for i := 0; i+1 < len(nodes); i++ {
		n1, n2 := nodes[i], nodes[i+1]
		p1, p2 := n1.TrackPoint, n2.TrackPoint
		length := geo.Distance(p1.Lat, p1.Lon, p2.Lat, p2.Lon)
		gradient := 0.0
		if length > 0 {
			gradient = 100 * (p2.Ele - p1.Ele) / length
		}
		roads = append(roads, DrawingRoad{
			StartsAt:      n1,
			EndsAt:        n2,
			Length:        length,
			Bearing:       geo.Bearing(p1.Lat, p1.Lon, p2.Lat, p2.Lon),
			Gradient:      gradient,
			StartDistance: distance,
			EndDistance:   distance + length,
			Index:         i,
		})
		distance += length
	}
	return roads
}

// DeriveSummary is a single left-to-right fold over the road sequence.
// Climbing figures accumulate only over strictly positive gradients,
// descending only over strictly negative ones.
func DeriveSummary(roads []DrawingRoad) SummaryData {
	var s SummaryData
	if len(roads) == 0 {
		return s
	}
	s.Highest = roads[0].StartsAt.Z
	s.Lowest = roads[0].StartsAt.Z
	for _, r := range roads {
		s.Highest = math.Max(s.Highest, r.EndsAt.Z)
		s.Lowest = math.Min(s.Lowest, r.EndsAt.Z)
		s.TrackLength += r.Length
		rise := r.EndsAt.Z - r.StartsAt.Z
		switch {
		case r.Gradient > 0:
			s.ClimbingDistance += r.Length
			s.TotalClimbing += rise
		case r.Gradient < 0:
			s.DescendingDistance += r.Length
			s.TotalDescending -= rise
		}
	}
	return s
}

// Interpolate returns the point the fraction t of the way from p1 to p2,
// linear in lat, lon and elevation. t outside [0,1] extrapolates along the
// same line. Idx is left 0 for a later Reindex.
func Interpolate(t float64, p1, p2 TrackPoint) TrackPoint {
	return TrackPoint{
		Lat: p1.Lat + t*(p2.Lat-p1.Lat),
		Lon: p1.Lon + t*(p2.Lon-p1.Lon),
		Ele: p1.Ele + t*(p2.Ele-p1.Ele),
	}
}

// Reindex returns a fresh sequence with Idx reassigned 0..n-1 in order. It
// must run after every structural edit before index-based references (road
// Index, anomaly nodes) are trusted again.
func Reindex(points []TrackPoint) []TrackPoint {
	out := make([]TrackPoint, len(points))
	for i, p := range points {
		p.Idx = i
		out[i] = p
	}
	return out
}
