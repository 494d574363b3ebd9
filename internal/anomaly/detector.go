package anomaly

import (
	"fmt"
	"math"

	"github.com/garethjevans/GPXviz/internal/shared/geo"
	"github.com/garethjevans/GPXviz/internal/track"
)

func (o Options) Validate() error {
	if o.GradientChangeThreshold < 5 || o.GradientChangeThreshold > 20 {
		return fmt.Errorf("%w: gradient change threshold %.1f not in [5, 20]",
			track.ErrInvalidRange, o.GradientChangeThreshold)
	}
	if o.BearingChangeThreshold < 30 || o.BearingChangeThreshold > 120 {
		return fmt.Errorf("%w: bearing change threshold %.1f not in [30, 120]",
			track.ErrInvalidRange, o.BearingChangeThreshold)
	}
	return nil
}

// AbruptGradientChanges flags nodes where the gradient jumps by strictly more
// than threshold percentage points between consecutive roads. Pairs with a
// zero-length member are skipped: their gradient is a placeholder.
func AbruptGradientChanges(roads []track.DrawingRoad, threshold float64) ([]AbruptChange, error) {
	if threshold < 5 || threshold > 20 {
		return nil, fmt.Errorf("%w: gradient change threshold %.1f not in [5, 20]",
			track.ErrInvalidRange, threshold)
	}
	var changes []AbruptChange
	for i := 0; i+1 < len(roads); i++ {
		before, after := roads[i], roads[i+1]
		if before.Length <= 0 || after.Length <= 0 {
			continue
		}
		if math.Abs(before.Gradient-after.Gradient) > threshold {
			changes = append(changes, AbruptChange{Node: before.EndsAt, Before: before, After: after})
		}
	}
	return changes, nil
}

// AbruptBearingChanges flags nodes where the included angle between
// consecutive roads strictly exceeds the threshold in degrees.
func AbruptBearingChanges(roads []track.DrawingRoad, thresholdDegrees float64) ([]AbruptChange, error) {
	if thresholdDegrees < 30 || thresholdDegrees > 120 {
		return nil, fmt.Errorf("%w: bearing change threshold %.1f not in [30, 120]",
			track.ErrInvalidRange, thresholdDegrees)
	}
	var changes []AbruptChange
	for i := 0; i+1 < len(roads); i++ {
		before, after := roads[i], roads[i+1]
		if before.Length <= 0 || after.Length <= 0 {
			continue
		}
		if geo.RadToDeg(IncludedAngle(before.Bearing, after.Bearing)) > thresholdDegrees {
			changes = append(changes, AbruptChange{Node: before.EndsAt, Before: before, After: after})
		}
	}
	return changes, nil
}

// IncludedAngle returns the absolute angle between two bearings, wrapped into
// [0, pi]: a reflex difference d reflects to 2*pi - d.
func IncludedAngle(b1, b2 float64) float64 {
	diff := math.Abs(b1 - b2)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	return diff
}

// ZeroLengthRoads returns the segments with exactly zero length, typically
// produced by duplicated consecutive points.
func ZeroLengthRoads(roads []track.DrawingRoad) []track.DrawingRoad {
	var zero []track.DrawingRoad
	for _, r := range roads {
		if r.Length == 0.0 {
			zero = append(zero, r)
		}
	}
	return zero
}

// DetectLoopiness classifies how nearly the track closes on itself: IsALoop
// when both the ground gap and the elevation gap are under half a metre,
// AlmostLoop when the ground gap is under a kilometre, NotALoop otherwise.
// Fewer than two points cannot close anything.
func DetectLoopiness(points []track.TrackPoint) LoopStatus {
	if len(points) < 2 {
		return LoopStatus{Kind: NotALoop}
	}
	first, last := points[0], points[len(points)-1]
	gap := geo.Distance(first.Lat, first.Lon, last.Lat, last.Lon)
	eleGap := math.Abs(first.Ele - last.Ele)
	switch {
	case gap < 0.5 && eleGap < 0.5:
		return LoopStatus{Kind: IsALoop, GapMetres: gap}
	case gap < 1000:
		return LoopStatus{Kind: AlmostLoop, GapMetres: gap}
	default:
		return LoopStatus{Kind: NotALoop, GapMetres: gap}
	}
}

// DeriveProblems runs every scan over the derived model.
func DeriveProblems(points []track.TrackPoint, roads []track.DrawingRoad, opts Options) (Problems, error) {
	if err := opts.Validate(); err != nil {
		return Problems{}, err
	}
	gradients, err := AbruptGradientChanges(roads, opts.GradientChangeThreshold)
	if err != nil {
		return Problems{}, err
	}
	bearings, err := AbruptBearingChanges(roads, opts.BearingChangeThreshold)
	if err != nil {
		return Problems{}, err
	}
	return Problems{
		GradientChanges: gradients,
		BearingChanges:  bearings,
		ZeroLengths:     ZeroLengthRoads(roads),
		Loop:            DetectLoopiness(points),
	}, nil
}
