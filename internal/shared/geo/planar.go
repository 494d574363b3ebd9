package geo

import "math"

// intersectEpsilon bounds the determinant below which two lines are treated
// as parallel. Degeneracy is a routine outcome here, not an error.
const intersectEpsilon = 1e-10

// incircleEpsilon bounds the squared inradius below which a triangle is
// treated as collinear. Rounding in derived coordinates keeps the Heron
// radicand slightly off zero even for straight runs.
const incircleEpsilon = 1e-9

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineEquation is the implicit form a·x + b·y + c = 0.
type LineEquation struct {
	A, B, C float64
}

type Circle struct {
	Centre Point   `json:"centre"`
	Radius float64 `json:"radius"`
}

// LineFromPoints returns the implicit line through p1 and p2. All three
// coefficients are zero when the points coincide; callers guard.
func LineFromPoints(p1, p2 Point) LineEquation {
	return LineEquation{
		A: p1.Y - p2.Y,
		B: p2.X - p1.X,
		C: p1.X*p2.Y - p2.X*p1.Y,
	}
}

// Intersect solves the pair of line equations as a 2x2 linear system. ok is
// false when |det| is at or below intersectEpsilon (parallel or coincident
// lines), so near-singular systems never produce NaN or Inf.
func Intersect(l1, l2 LineEquation) (Point, bool) {
	det := l1.A*l2.B - l2.A*l1.B
	if math.Abs(det) <= intersectEpsilon {
		return Point{}, false
	}
	return Point{
		X: (l1.B*l2.C - l2.B*l1.C) / det,
		Y: (l2.A*l1.C - l1.A*l2.C) / det,
	}, true
}

// Incircle returns the inscribed circle of the triangle p1 p2 p3: centre is
// the side-length-weighted average of the vertices, radius comes from Heron's
// formula, r = sqrt((s-a)(s-b)(s-c)/s). ok is false for degenerate triangles
// (coincident or collinear vertices).
func Incircle(p1, p2, p3 Point) (Circle, bool) {
	a := planarDist(p2, p3)
	b := planarDist(p1, p3)
	c := planarDist(p1, p2)
	if a <= 0 || b <= 0 || c <= 0 {
		return Circle{}, false
	}
	s := (a + b + c) / 2
	radicand := (s - a) * (s - b) * (s - c) / s
	if radicand <= incircleEpsilon {
		return Circle{}, false
	}
	centre := Point{
		X: (a*p1.X + b*p2.X + c*p3.X) / (a + b + c),
		Y: (a*p1.Y + b*p2.Y + c*p3.Y) / (a + b + c),
	}
	return Circle{Centre: centre, Radius: math.Sqrt(radicand)}, true
}

// TangentPoint returns where the circle touches the line, by dropping a
// perpendicular from the centre onto the line and reusing Intersect.
func TangentPoint(l LineEquation, c Circle) (Point, bool) {
	alongNormal := Point{X: c.Centre.X + l.A, Y: c.Centre.Y + l.B}
	return Intersect(l, LineFromPoints(c.Centre, alongNormal))
}

func planarDist(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}
