package smooth

import (
	"fmt"

	"github.com/garethjevans/GPXviz/internal/track"
)

// AverageGradient is the net elevation change between two nodes over the
// ground distance between them, in percent. ok is false when start >= finish,
// the indices fall outside the sequence, or the span has no length.
func AverageGradient(points []track.TrackPoint, roads []track.DrawingRoad, start, finish int) (float64, bool) {
	if start < 0 || start >= finish || finish >= len(points) || finish > len(roads) {
		return 0, false
	}
	length := 0.0
	for _, r := range roads[start:finish] {
		length += r.Length
	}
	if length <= 0 {
		return 0, false
	}
	return 100 * (points[finish].Ele - points[start].Ele) / length, true
}

// SmoothGradient recomputes the elevations between the start and finish nodes
// so the span tends toward one uniform gradient, keeping the start elevation
// fixed: each successive elevation adds length*gradient/100, then blends with
// the original as bumpiness*original + (1-bumpiness)*new. Bumpiness 0 is
// fully smoothed, 1 leaves the originals untouched.
func SmoothGradient(points []track.TrackPoint, roads []track.DrawingRoad, start, finish int, gradient, bumpiness float64) ([]track.TrackPoint, error) {
	if start < 0 || start >= finish || finish >= len(points) {
		return nil, fmt.Errorf("%w: smooth gradient needs 0 <= start < finish <= %d, got %d and %d",
			track.ErrInvalidRange, len(points)-1, start, finish)
	}
	if finish > len(roads) {
		return nil, fmt.Errorf("%w: road sequence has %d segments, need %d",
			track.ErrInvalidRange, len(roads), finish)
	}
	if bumpiness < 0 || bumpiness > 1 {
		return nil, fmt.Errorf("%w: bumpiness %.2f not in [0, 1]", track.ErrInvalidRange, bumpiness)
	}

	out := make([]track.TrackPoint, len(points))
	copy(out, points)
	ele := points[start].Ele
	for i := start; i < finish; i++ {
		ele += roads[i].Length * gradient / 100
		p := out[i+1]
		p.Ele = bumpiness*p.Ele + (1-bumpiness)*ele
		out[i+1] = p
	}
	return track.Reindex(out), nil
}
