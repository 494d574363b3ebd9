package editor

import (
	"time"

	"github.com/garethjevans/GPXviz/internal/anomaly"
	"github.com/garethjevans/GPXviz/internal/track"
)

// Session is one in-progress editing session. The whole state lives as a
// JSON blob in redis and expires with the session TTL.
type Session struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Points    []track.TrackPoint `json:"points"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	EditCount int                `json:"edit_count"`
	LastLabel string             `json:"last_label,omitempty"`
}

// View is the session representation handed to clients: the stored session
// plus everything derived from its current points.
type View struct {
	Session
	Summary  track.SummaryData  `json:"summary"`
	Loop     anomaly.LoopStatus `json:"loop"`
	Problems int                `json:"problem_count"`
}

// EditRequest selects one operation and carries its parameters. Node and
// segment indices refer to the current point sequence.
type EditRequest struct {
	Op         string  `json:"op"`
	Start      int     `json:"start"`
	Finish     int     `json:"finish"`
	Node       int     `json:"node"`
	Segment    int     `json:"segment"`
	Bearing    float64 `json:"bearing"`
	Factor     float64 `json:"factor"`
	NumPoints  int     `json:"num_points"`
	Gradient   float64 `json:"gradient"`
	Bumpiness  float64 `json:"bumpiness"`
	UseAverage bool    `json:"use_average"`
}

// PreviewResult is an edit computed but not stored.
type PreviewResult struct {
	Label   string             `json:"label"`
	Points  []track.TrackPoint `json:"points"`
	Summary track.SummaryData  `json:"summary"`
}

// SavedTrack is a finished track persisted to postgres.
type SavedTrack struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Points      []track.TrackPoint `json:"points,omitempty"`
	LengthM     float64            `json:"length_m"`
	ClimbingM   float64            `json:"climbing_m"`
	DescendingM float64            `json:"descending_m"`
	CreatedAt   time.Time          `json:"created_at"`
}
