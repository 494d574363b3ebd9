package geo

import (
	"math"
	"testing"
)

func TestLineFromPointsCoefficients(t *testing.T) {
	p1 := Point{X: 1, Y: 2}
	p2 := Point{X: 4, Y: 3}
	l := LineFromPoints(p1, p2)
	if l.A != -1 || l.B != 3 || l.C != -5 {
		t.Fatalf("unexpected coefficients: %+v", l)
	}
	for _, p := range []Point{p1, p2} {
		if v := l.A*p.X + l.B*p.Y + l.C; math.Abs(v) > 1e-12 {
			t.Fatalf("point %+v not on its own line: %v", p, v)
		}
	}
}

func TestIntersectCrossingLines(t *testing.T) {
	l1 := LineFromPoints(Point{0, 0}, Point{2, 2})
	l2 := LineFromPoints(Point{0, 2}, Point{2, 0})
	p, ok := Intersect(l1, l2)
	if !ok {
		t.Fatalf("expected intersection")
	}
	if math.Abs(p.X-1) > 1e-12 || math.Abs(p.Y-1) > 1e-12 {
		t.Fatalf("intersection = %+v, want (1,1)", p)
	}
}

func TestIntersectParallelLines(t *testing.T) {
	l1 := LineFromPoints(Point{0, 0}, Point{1, 0})
	l2 := LineFromPoints(Point{0, 1}, Point{1, 1})
	if _, ok := Intersect(l1, l2); ok {
		t.Fatalf("parallel lines must not intersect")
	}
}

func TestIntersectEpsilonBoundary(t *testing.T) {
	// determinant = l1.A*l2.B exactly; at the threshold the result must be
	// rejected, strictly above it must not be.
	l1 := LineEquation{A: 1, B: 0, C: -1}
	atThreshold := LineEquation{A: 0, B: intersectEpsilon, C: -1}
	if _, ok := Intersect(l1, atThreshold); ok {
		t.Fatalf("determinant at epsilon must report no intersection")
	}
	above := LineEquation{A: 0, B: 2 * intersectEpsilon, C: -1}
	if _, ok := Intersect(l1, above); !ok {
		t.Fatalf("determinant above epsilon must intersect")
	}
}

func TestIncircleRightTriangle(t *testing.T) {
	// Right triangle with legs 1 and 2, hypotenuse sqrt(5): the inradius is
	// (3-sqrt(5))/2.
	c, ok := Incircle(Point{0, 0}, Point{1, 0}, Point{1, 2})
	if !ok {
		t.Fatalf("expected incircle")
	}
	want := (3 - math.Sqrt(5)) / 2
	if math.Abs(c.Radius-want) > 1e-6 {
		t.Fatalf("radius = %v, want %v", c.Radius, want)
	}
	// Tangent to both legs: distance to y=0 and to x=1 both equal the radius.
	if math.Abs(c.Centre.Y-c.Radius) > 1e-9 {
		t.Fatalf("centre %+v not at radius height above y=0", c.Centre)
	}
	if math.Abs((1-c.Centre.X)-c.Radius) > 1e-9 {
		t.Fatalf("centre %+v not at radius distance from x=1", c.Centre)
	}
}

func TestIncircleDegenerate(t *testing.T) {
	if _, ok := Incircle(Point{0, 0}, Point{1, 0}, Point{2, 0}); ok {
		t.Fatalf("collinear vertices must not produce an incircle")
	}
	if _, ok := Incircle(Point{0, 0}, Point{0, 0}, Point{1, 0}); ok {
		t.Fatalf("coincident vertices must not produce an incircle")
	}
}

func TestTangentPointOnLine(t *testing.T) {
	line := LineFromPoints(Point{0, 1}, Point{1, 1})
	circle := Circle{Centre: Point{0, 0}, Radius: 1}
	p, ok := TangentPoint(line, circle)
	if !ok {
		t.Fatalf("expected tangent point")
	}
	if math.Abs(p.X) > 1e-12 || math.Abs(p.Y-1) > 1e-12 {
		t.Fatalf("tangent point = %+v, want (0,1)", p)
	}
}

func TestTangentPointDegenerateLine(t *testing.T) {
	if _, ok := TangentPoint(LineEquation{}, Circle{Centre: Point{1, 1}, Radius: 1}); ok {
		t.Fatalf("degenerate line must not yield a tangent point")
	}
}
