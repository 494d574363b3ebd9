package smooth

import (
	"math"

	"github.com/garethjevans/GPXviz/internal/shared/geo"
	"github.com/garethjevans/GPXviz/internal/track"
)

// SmoothedBend is a replacement sub-sequence for a sharp corner: the arc
// points, the node index range they replace, and the incircle that generated
// them.
type SmoothedBend struct {
	TrackPoints []track.TrackPoint `json:"track_points"`
	StartIndex  int                `json:"start_index"`
	EndIndex    int                `json:"end_index"`
	Radius      float64            `json:"radius"`
	Centre      geo.Point          `json:"centre"`
}

// BendIncircle computes the arc replacing the corner between nodes n1 and n2,
// with roads[n1] as the entry segment and roads[n2-1] as the exit segment.
// numPoints arc points, tangent points included, are spaced evenly by angle
// along the arc on the corner side. ok is false when the indices do not bound
// a corner (n2 < n1+2), when the boundary lines are parallel, or when the
// triangle they span is degenerate.
func BendIncircle(scaling track.ScalingInfo, roads []track.DrawingRoad, n1, n2, numPoints int) (SmoothedBend, bool) {
	if n1 < 0 || n2 > len(roads) || n2 < n1+2 || numPoints < 2 {
		return SmoothedBend{}, false
	}
	entry := roads[n1]
	exit := roads[n2-1]

	entryStart := geo.Point{X: entry.StartsAt.X, Y: entry.StartsAt.Y}
	entryEnd := geo.Point{X: entry.EndsAt.X, Y: entry.EndsAt.Y}
	exitStart := geo.Point{X: exit.StartsAt.X, Y: exit.StartsAt.Y}
	exitEnd := geo.Point{X: exit.EndsAt.X, Y: exit.EndsAt.Y}

	entryLine := geo.LineFromPoints(entryStart, entryEnd)
	exitLine := geo.LineFromPoints(exitStart, exitEnd)

	corner := entryEnd
	if n2 > n1+2 {
		p, ok := geo.Intersect(entryLine, exitLine)
		if !ok {
			return SmoothedBend{}, false
		}
		corner = p
	}

	circle, ok := geo.Incircle(entryStart, exitEnd, corner)
	if !ok {
		return SmoothedBend{}, false
	}
	t1, ok := geo.TangentPoint(entryLine, circle)
	if !ok {
		return SmoothedBend{}, false
	}
	t2, ok := geo.TangentPoint(exitLine, circle)
	if !ok {
		return SmoothedBend{}, false
	}

	eleT1 := elevationAlong(entry, t1)
	eleT2 := elevationAlong(exit, t2)

	a1 := math.Atan2(t1.Y-circle.Centre.Y, t1.X-circle.Centre.X)
	a2 := math.Atan2(t2.Y-circle.Centre.Y, t2.X-circle.Centre.X)
	sweep := wrapToPi(a2 - a1)

	points := make([]track.TrackPoint, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		f := float64(i) / float64(numPoints-1)
		angle := a1 + sweep*f
		x := circle.Centre.X + circle.Radius*math.Cos(angle)
		y := circle.Centre.Y + circle.Radius*math.Sin(angle)
		ele := eleT1 + f*(eleT2-eleT1)
		points = append(points, track.UnprojectLocal(scaling, x, y, ele))
	}

	return SmoothedBend{
		TrackPoints: points,
		StartIndex:  n1,
		EndIndex:    n2,
		Radius:      circle.Radius,
		Centre:      circle.Centre,
	}, true
}

// wrapToPi folds an angle difference into (-pi, pi], which selects the arc on
// the corner side: incircle tangent points always subtend less than pi.
func wrapToPi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// elevationAlong interpolates a road's elevation at a planar location on its
// line, by the fraction of the segment covered from the start node.
func elevationAlong(r track.DrawingRoad, p geo.Point) float64 {
	segLen := math.Hypot(r.EndsAt.X-r.StartsAt.X, r.EndsAt.Y-r.StartsAt.Y)
	if segLen == 0 {
		return r.StartsAt.Z
	}
	f := math.Hypot(p.X-r.StartsAt.X, p.Y-r.StartsAt.Y) / segLen
	return r.StartsAt.Z + f*(r.EndsAt.Z-r.StartsAt.Z)
}
