package track

// TrackPoint is one raw GPS sample in degrees and metres. Idx is the stable
// sequence position assigned by Reindex; edits and anomaly reports refer back
// to it after re-derivation.
type TrackPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Ele float64 `json:"ele"`
	Idx int     `json:"idx"`
}

// ScalingInfo is the projection frame derived once per track: bounding
// extents, centres, and the degree-to-metre conversion. Recomputed in full
// whenever the point sequence changes, never patched in place.
type ScalingInfo struct {
	MinLat           float64 `json:"min_lat"`
	MaxLat           float64 `json:"max_lat"`
	MinLon           float64 `json:"min_lon"`
	MaxLon           float64 `json:"max_lon"`
	MinEle           float64 `json:"min_ele"`
	MaxEle           float64 `json:"max_ele"`
	CentreLat        float64 `json:"centre_lat"`
	CentreLon        float64 `json:"centre_lon"`
	CentreEle        float64 `json:"centre_ele"`
	LargestDimension float64 `json:"largest_dimension"`
	MetresPerDegree  float64 `json:"metres_per_degree"`
}

// DrawingNode pairs a TrackPoint with its location in the local planar frame,
// in metres relative to the track centre.
type DrawingNode struct {
	TrackPoint TrackPoint `json:"track_point"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Z          float64    `json:"z"`
}

// DrawingRoad is the directed segment between two consecutive nodes. Index
// matches the segment's position in the road sequence and is the stable key
// edit operations select by.
type DrawingRoad struct {
	StartsAt      DrawingNode `json:"starts_at"`
	EndsAt        DrawingNode `json:"ends_at"`
	Length        float64     `json:"length"`   // metres, great-circle
	Bearing       float64     `json:"bearing"`  // radians, 0 = north, clockwise
	Gradient      float64     `json:"gradient"` // percent, signed, 0 on zero length
	StartDistance float64     `json:"start_distance"`
	EndDistance   float64     `json:"end_distance"`
	Index         int         `json:"index"`
}

// SummaryData aggregates whole-track statistics. Climbing and descending
// totals are positive magnitudes.
type SummaryData struct {
	Highest            float64 `json:"highest"`
	Lowest             float64 `json:"lowest"`
	TrackLength        float64 `json:"track_length"`
	ClimbingDistance   float64 `json:"climbing_distance"`
	DescendingDistance float64 `json:"descending_distance"`
	TotalClimbing      float64 `json:"total_climbing"`
	TotalDescending    float64 `json:"total_descending"`
}
