package edit

import (
	"fmt"
	"math"

	"github.com/garethjevans/GPXviz/internal/shared/geo"
	"github.com/garethjevans/GPXviz/internal/smooth"
	"github.com/garethjevans/GPXviz/internal/track"
)

// Every operation here is a one-shot pure transform: it never mutates its
// input, returns a freshly reindexed sequence, and pairs it with a short
// label an external undo layer can display. Out-of-range parameters are
// explicit errors, never clamped or ignored.

// Straighten moves the points strictly between nodes n1 and n2 onto the
// straight line between those nodes, keeping each point's proportional
// distance along the span and its original elevation.
func Straighten(points []track.TrackPoint, n1, n2 int) ([]track.TrackPoint, string, error) {
	if n1 < 0 || n2 >= len(points) || n2 < n1+2 {
		return nil, "", fmt.Errorf("%w: straighten needs 0 <= n1 and n1+2 <= n2 <= %d, got %d and %d",
			track.ErrInvalidRange, len(points)-1, n1, n2)
	}
	cumulative := make([]float64, 0, n2-n1)
	total := 0.0
	for i := n1; i < n2; i++ {
		total += geo.Distance(points[i].Lat, points[i].Lon, points[i+1].Lat, points[i+1].Lon)
		cumulative = append(cumulative, total)
	}
	if total <= 0 {
		return nil, "", fmt.Errorf("%w: nodes %d and %d are coincident",
			track.ErrDegenerateGeometry, n1, n2)
	}

	out := make([]track.TrackPoint, len(points))
	copy(out, points)
	for i := n1 + 1; i < n2; i++ {
		p := track.Interpolate(cumulative[i-n1-1]/total, points[n1], points[n2])
		p.Ele = points[i].Ele
		out[i] = p
	}
	return track.Reindex(out), fmt.Sprintf("straighten between %d and %d", n1, n2), nil
}

// Chamfer replaces the interior node n with two points, each set back along
// its adjacent segment by at most 4 metres (half the segment for short
// segments), turning one sharp transition into two gentler ones.
func Chamfer(points []track.TrackPoint, n int) ([]track.TrackPoint, string, error) {
	if n < 1 || n > len(points)-2 {
		return nil, "", fmt.Errorf("%w: chamfer needs an interior node, got %d of %d points",
			track.ErrInvalidRange, n, len(points))
	}
	prev, curr, next := points[n-1], points[n], points[n+1]
	lenBefore := geo.Distance(prev.Lat, prev.Lon, curr.Lat, curr.Lon)
	lenAfter := geo.Distance(curr.Lat, curr.Lon, next.Lat, next.Lon)
	if lenBefore <= 0 || lenAfter <= 0 {
		return nil, "", fmt.Errorf("%w: node %d has a zero-length side",
			track.ErrDegenerateGeometry, n)
	}
	backOff := math.Min(4.0, lenBefore/2)
	fwdOff := math.Min(4.0, lenAfter/2)
	before := track.Interpolate(1-backOff/lenBefore, prev, curr)
	after := track.Interpolate(fwdOff/lenAfter, curr, next)

	out := make([]track.TrackPoint, 0, len(points)+1)
	out = append(out, points[:n]...)
	out = append(out, before, after)
	out = append(out, points[n+1:]...)
	return track.Reindex(out), fmt.Sprintf("chamfer node %d", n), nil
}

// Nudge moves node n sideways, perpendicular to the given road bearing:
// positive factor is to the right of travel, roughly factor*10 metres on the
// ground.
func Nudge(points []track.TrackPoint, scaling track.ScalingInfo, n int, bearing, factor float64) ([]track.TrackPoint, string, error) {
	if n < 0 || n >= len(points) {
		return nil, "", fmt.Errorf("%w: nudge needs a node in [0, %d), got %d",
			track.ErrInvalidRange, len(points), n)
	}
	if scaling.MetresPerDegree <= 0 {
		return nil, "", fmt.Errorf("%w: scaling frame has no degree conversion", track.ErrInvalidRange)
	}
	out := make([]track.TrackPoint, len(points))
	copy(out, points)
	out[n] = NudgePreview(points[n], scaling, bearing, factor)
	return track.Reindex(out), fmt.Sprintf("nudge node %d by %.1f", n, factor), nil
}

// NudgePreview computes the nudged point without splicing it anywhere, for
// live drag feedback. The scaling frame must come from DeriveScaling.
func NudgePreview(p track.TrackPoint, scaling track.ScalingInfo, bearing, factor float64) track.TrackPoint {
	d := factor * 10 / scaling.MetresPerDegree
	p.Lat -= d * math.Sin(bearing)
	p.Lon += d * math.Cos(bearing)
	return p
}

// Split inserts the midpoint of segment roadIndex.
func Split(points []track.TrackPoint, roadIndex int) ([]track.TrackPoint, string, error) {
	if roadIndex < 0 || roadIndex >= len(points)-1 {
		return nil, "", fmt.Errorf("%w: split needs a segment in [0, %d), got %d",
			track.ErrInvalidRange, len(points)-1, roadIndex)
	}
	mid := track.Interpolate(0.5, points[roadIndex], points[roadIndex+1])
	out := make([]track.TrackPoint, 0, len(points)+1)
	out = append(out, points[:roadIndex+1]...)
	out = append(out, mid)
	out = append(out, points[roadIndex+1:]...)
	return track.Reindex(out), fmt.Sprintf("split segment %d", roadIndex), nil
}

// DeleteZeroLength drops the points whose Idx matches a flagged zero-length
// segment index, removing one of each duplicated pair.
func DeleteZeroLength(points []track.TrackPoint, zeroIndices []int) ([]track.TrackPoint, string, error) {
	if len(zeroIndices) == 0 {
		return nil, "", fmt.Errorf("%w: no zero-length segments to delete", track.ErrInvalidRange)
	}
	drop := make(map[int]struct{}, len(zeroIndices))
	for _, idx := range zeroIndices {
		if idx < 0 || idx >= len(points) {
			return nil, "", fmt.Errorf("%w: segment %d outside track of %d points",
				track.ErrInvalidRange, idx, len(points))
		}
		drop[idx] = struct{}{}
	}
	out := make([]track.TrackPoint, 0, len(points))
	for _, p := range points {
		if _, gone := drop[p.Idx]; gone {
			continue
		}
		out = append(out, p)
	}
	return track.Reindex(out), "delete zero-length segments", nil
}

// CloseLoop closes a nearly-closed track. A gap under a metre collapses the
// last point onto the first; a larger gap gains one bridging point about a
// metre short of the start, then a copy of the start point, closing the ring.
func CloseLoop(points []track.TrackPoint) ([]track.TrackPoint, string, error) {
	if len(points) < 3 {
		return nil, "", fmt.Errorf("%w: close loop needs at least 3 points, got %d",
			track.ErrInvalidRange, len(points))
	}
	first := points[0]
	last := points[len(points)-1]
	gap := geo.Distance(first.Lat, first.Lon, last.Lat, last.Lon)

	out := make([]track.TrackPoint, len(points))
	copy(out, points)
	if gap < 1.0 {
		out[len(out)-1] = first
		return track.Reindex(out), "close the loop", nil
	}
	bridge := track.Interpolate(-1/gap, first, last)
	out = append(out, bridge, first)
	return track.Reindex(out), "close the loop", nil
}

// SmoothBend replaces the corner between nodes n1 and n2 with the incircle
// arc between the boundary segments, keeping both boundary nodes.
func SmoothBend(points []track.TrackPoint, scaling track.ScalingInfo, roads []track.DrawingRoad, n1, n2, numPoints int) ([]track.TrackPoint, string, error) {
	if n1 < 0 || n2 > len(roads) || n2 < n1+2 || numPoints < 2 {
		return nil, "", fmt.Errorf("%w: smooth bend needs 0 <= n1, n1+2 <= n2 <= %d and at least 2 arc points",
			track.ErrInvalidRange, len(roads))
	}
	bend, ok := smooth.BendIncircle(scaling, roads, n1, n2, numPoints)
	if !ok {
		return nil, "", fmt.Errorf("%w: no smoothable bend between %d and %d",
			track.ErrDegenerateGeometry, n1, n2)
	}
	out := make([]track.TrackPoint, 0, n1+1+len(bend.TrackPoints)+len(points)-n2)
	out = append(out, points[:n1+1]...)
	out = append(out, bend.TrackPoints...)
	out = append(out, points[n2:]...)
	return track.Reindex(out),
		fmt.Sprintf("bend smoothing from %d to %d, radius %.1f.", n1, n2, bend.Radius), nil
}

// SmoothGradientBetween drives the elevations between two nodes toward one
// uniform gradient, blended against the originals by the bumpiness factor.
func SmoothGradientBetween(points []track.TrackPoint, roads []track.DrawingRoad, start, finish int, gradient, bumpiness float64) ([]track.TrackPoint, string, error) {
	out, err := smooth.SmoothGradient(points, roads, start, finish, gradient, bumpiness)
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("gradient smoothing from %d to %d, bumpiness %.2f.", start, finish, bumpiness), nil
}
