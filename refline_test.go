package odr2gml

import (
	"fmt"
	"math"
	"testing"
)

// the plain tolerance-rounding comparisons below follow the style of the
// surrounding geometry tests

func Round(x, unit float64) float64 {
	if x > 0 {
		return float64(int64(x/unit+0.5)) * unit
	}
	return float64(int64(x/unit-0.5)) * unit
}

func TestLinePose(t *testing.T) {
	line := lineCurve2D{x: 1, y: 2, hdg: math.Pi / 2, domain: NewRangeClosed(0, 10)}
	pt, hdg := line.Pose(4)
	if Round(pt[0], 1e-9) != Round(1.0, 1e-9) || Round(pt[1], 1e-9) != Round(6.0, 1e-9) {
		t.Errorf("Line point must be (1, 6), but got %v", pt)
	}
	if hdg != math.Pi/2 {
		t.Errorf("Line heading must stay constant, but got %f", hdg)
	}
}

func TestArcPose(t *testing.T) {
	curvature := 0.01
	arc := arcCurve2D{x: 0, y: 0, hdg: 0, curvature: curvature, domain: NewRangeClosed(0, 100)}
	s := 100.0
	pt, hdg := arc.Pose(s)
	expectedX := math.Sin(curvature*s) / curvature
	expectedY := (1 - math.Cos(curvature*s)) / curvature
	if Round(pt[0], 1e-9) != Round(expectedX, 1e-9) {
		t.Errorf("Arc X must be %f, but got %f", expectedX, pt[0])
	}
	if Round(pt[1], 1e-9) != Round(expectedY, 1e-9) {
		t.Errorf("Arc Y must be %f, but got %f", expectedY, pt[1])
	}
	if Round(hdg, 1e-9) != Round(curvature*s, 1e-9) {
		t.Errorf("Arc heading must be %f, but got %f", curvature*s, hdg)
	}
}

func TestSpiralPose(t *testing.T) {
	// clothoid from straight to curvature 0.01 over 30 meters
	curvDot := 0.01 / 30
	spiral := spiralCurve2D{x: 0, y: 0, hdg: 0, curvStart: 0, curvDot: curvDot, domain: NewRangeClosed(0, 30)}

	_, hdg := spiral.Pose(30)
	expectedHdg := 0.5 * curvDot * 30 * 30
	if Round(hdg, 1e-9) != Round(expectedHdg, 1e-9) {
		t.Errorf("Spiral heading must be %f, but got %f", expectedHdg, hdg)
	}

	// reference positions by dense trapezoid integration
	steps := 300000
	h := 30.0 / float64(steps)
	x, y := 0.0, 0.0
	theta := func(u float64) float64 { return 0.5 * curvDot * u * u }
	for i := 0; i < steps; i++ {
		u0 := float64(i) * h
		u1 := u0 + h
		x += h * (math.Cos(theta(u0)) + math.Cos(theta(u1))) / 2
		y += h * (math.Sin(theta(u0)) + math.Sin(theta(u1))) / 2
	}
	pt, _ := spiral.Pose(30)
	if math.Abs(pt[0]-x) > 1e-6 || math.Abs(pt[1]-y) > 1e-6 {
		t.Errorf("Spiral end point must be (%f, %f), but got %v", x, y, pt)
	}
}

func TestConcatenatedCurvePoses(t *testing.T) {
	line := lineCurve2D{x: 0, y: 0, hdg: 0, domain: NewRangeClosedOpen(0, 50)}
	arc := arcCurve2D{x: 50, y: 0, hdg: 0, curvature: 0.02, domain: NewRangeClosed(0, 50)}
	curve, err := NewConcatenatedCurve2D([]float64{0, 50}, []Curve2D{line, arc}, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if curve.Length() != 100 {
		t.Errorf("Reference line length must be 100, but got %f", curve.Length())
	}

	pt, hdg, err := curve.PoseGlobal(25)
	if err != nil {
		t.Fatal(err)
	}
	if pt[0] != 25 || pt[1] != 0 || hdg != 0 {
		t.Errorf("Pose at s=25 must be on the line, but got %v with heading %f", pt, hdg)
	}

	pt, _, err = curve.PoseGlobal(50)
	if err != nil {
		t.Fatal(err)
	}
	if Round(pt[0], 1e-9) != 50 || Round(pt[1], 1e-9) != 0 {
		t.Errorf("Pose at s=50 must be the arc start, but got %v", pt)
	}

	// the closed upper endpoint is evaluable
	if _, _, err = curve.PoseGlobal(100); err != nil {
		t.Errorf("Pose at the upper domain endpoint must succeed: %v", err)
	}
	if _, _, err = curve.PoseGlobal(100.001); err == nil {
		t.Error("Pose beyond the domain must fail")
	}
}

func TestPolylineCurveReparameterisation(t *testing.T) {
	// a poly3 shaped as a straight diagonal: v = u
	length := 10 * math.Sqrt2
	curve := newPolylineCurve2D(0, 0, 0, length, func(p float64) (float64, float64) {
		u := p * 10
		return u, u
	})
	pt, hdg := curve.Pose(length / 2)
	if Round(pt[0], 1e-6) != 5 || Round(pt[1], 1e-6) != 5 {
		t.Errorf("Polyline midpoint must be (5, 5), but got %v", pt)
	}
	if Round(hdg, 1e-6) != Round(math.Pi/4, 1e-6) {
		t.Errorf("Polyline heading must be %f, but got %f", math.Pi/4, hdg)
	}
}

func ExamplePrepareWKTPoint() {
	fmt.Println(PrepareWKTPoint(Vector3D{X: 1, Y: 2, Z: 3}))
	// Output: POINT Z(1.000000 2.000000 3.000000)
}
