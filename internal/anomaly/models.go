package anomaly

import "github.com/garethjevans/GPXviz/internal/track"

// AbruptChange flags the shared node between two consecutive roads whose
// physical properties jump more than a threshold allows.
type AbruptChange struct {
	Node   track.DrawingNode `json:"node"`
	Before track.DrawingRoad `json:"before"`
	After  track.DrawingRoad `json:"after"`
}

// LoopKind is the three-state closure classification. AlmostLoop is distinct
// from NotALoop because it drives the offer to close the track.
type LoopKind string

const (
	NotALoop   LoopKind = "not_a_loop"
	IsALoop    LoopKind = "is_a_loop"
	AlmostLoop LoopKind = "almost_loop"
)

// LoopStatus carries the classification and the measured start/end gap.
type LoopStatus struct {
	Kind      LoopKind `json:"kind"`
	GapMetres float64  `json:"gap_metres"`
}

// Options are the scan thresholds. Out-of-range values are rejected, not
// clamped.
type Options struct {
	GradientChangeThreshold float64 `json:"gradient_change_threshold"` // percentage points, 5-20
	BearingChangeThreshold  float64 `json:"bearing_change_threshold"`  // degrees, 30-120
}

func DefaultOptions() Options {
	return Options{
		GradientChangeThreshold: 10.0,
		BearingChangeThreshold:  90.0,
	}
}

// Problems is the aggregate anomaly report for one track.
type Problems struct {
	GradientChanges []AbruptChange      `json:"gradient_changes"`
	BearingChanges  []AbruptChange      `json:"bearing_changes"`
	ZeroLengths     []track.DrawingRoad `json:"zero_lengths"`
	Loop            LoopStatus          `json:"loop"`
}

// Count is the number of flagged locations; loop status does not count as a
// problem.
func (p Problems) Count() int {
	return len(p.GradientChanges) + len(p.BearingChanges) + len(p.ZeroLengths)
}
