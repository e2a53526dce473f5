package odr2gml

import (
	"math"

	"github.com/pkg/errors"
)

// Cuboid3D is an axis-aligned box placed by a pose. The pose marks the
// center of the base rectangle.
type Cuboid3D struct {
	Pose   Pose3D
	Length float64
	Width  float64
	Height float64
}

// PolygonsGlobal returns the six faces of the cuboid as global polygons
func (c Cuboid3D) PolygonsGlobal(tolerance float64) ([]*Polygon3D, error) {
	if c.Length <= 0 || c.Width <= 0 || c.Height <= 0 {
		return nil, newGeometry("cuboid dimensions must be positive: %f x %f x %f", c.Length, c.Width, c.Height)
	}
	affine := NewAffineFromPose(c.Pose)
	halfL, halfW := c.Length/2, c.Width/2
	corner := func(x, y, z float64) Vector3D {
		return affine.Transform(Vector3D{X: x, Y: y, Z: z})
	}
	base := []Vector3D{
		corner(-halfL, -halfW, 0), corner(halfL, -halfW, 0),
		corner(halfL, halfW, 0), corner(-halfL, halfW, 0),
	}
	top := []Vector3D{
		corner(-halfL, -halfW, c.Height), corner(-halfL, halfW, c.Height),
		corner(halfL, halfW, c.Height), corner(halfL, -halfW, c.Height),
	}
	faces := [][]Vector3D{base, top}
	// the top ring is wound opposite to the base, above base[i] sits top[(4-i)%4]
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		faces = append(faces, []Vector3D{base[i], base[j], top[(4-j)%4], top[(4-i)%4]})
	}
	polygons := make([]*Polygon3D, 0, len(faces))
	for _, face := range faces {
		polygon, err := NewPolygon3D(face, tolerance)
		if err != nil {
			return nil, errors.Wrap(err, "Can't build cuboid face")
		}
		polygons = append(polygons, polygon)
	}
	return polygons, nil
}

// Cylinder3D is an upright cylinder placed by a pose at the center of its base
type Cylinder3D struct {
	Pose   Pose3D
	Radius float64
	Height float64
}

// PolygonsGlobal returns the tessellated hull of the cylinder: both caps and
// one quad per slice
func (c Cylinder3D) PolygonsGlobal(slices int, tolerance float64) ([]*Polygon3D, error) {
	if c.Radius <= 0 || c.Height <= 0 {
		return nil, newGeometry("cylinder dimensions must be positive: radius %f, height %f", c.Radius, c.Height)
	}
	if slices < 3 {
		return nil, newGeometry("cylinder needs at least 3 slices, got %d", slices)
	}
	affine := NewAffineFromPose(c.Pose)
	bottom := make([]Vector3D, slices)
	top := make([]Vector3D, slices)
	for i := 0; i < slices; i++ {
		angle := 2 * math.Pi * float64(i) / float64(slices)
		x, y := c.Radius*math.Cos(angle), c.Radius*math.Sin(angle)
		bottom[i] = affine.Transform(Vector3D{X: x, Y: y, Z: 0})
		top[i] = affine.Transform(Vector3D{X: x, Y: y, Z: c.Height})
	}
	var polygons []*Polygon3D
	appendFace := func(face []Vector3D) error {
		polygon, err := NewPolygon3D(face, tolerance)
		if err != nil {
			return errors.Wrap(err, "Can't build cylinder face")
		}
		polygons = append(polygons, polygon)
		return nil
	}
	if err := appendFace(reversedPoints(bottom)); err != nil {
		return nil, err
	}
	if err := appendFace(top); err != nil {
		return nil, err
	}
	for i := 0; i < slices; i++ {
		j := (i + 1) % slices
		if err := appendFace([]Vector3D{bottom[i], bottom[j], top[j], top[i]}); err != nil {
			return nil, err
		}
	}
	return polygons, nil
}

func reversedPoints(points []Vector3D) []Vector3D {
	reversed := make([]Vector3D, len(points))
	for i, pt := range points {
		reversed[len(points)-1-i] = pt
	}
	return reversed
}

// ParametricSweep3D sweeps a rectangular cross section along a 3D curve. The
// cross section width and height may vary with the curve position.
type ParametricSweep3D struct {
	ReferenceCurve Curve3D
	Width          UnivariateFunction
	Height         UnivariateFunction
}

// PolygonsGlobal samples the sweep at given step size and returns the side
// wall quads of the swept volume hull
func (sw ParametricSweep3D) PolygonsGlobal(step, tolerance float64) ([]*Polygon3D, error) {
	points, err := SamplePointList(sw.ReferenceCurve, step)
	if err != nil {
		return nil, errors.Wrap(err, "Can't sample sweep reference curve")
	}
	if len(points) < 2 {
		return nil, newGeometry("sweep reference curve yields less than 2 points")
	}
	domain := sw.ReferenceCurve.Domain()
	sections := make([][]Vector3D, 0, len(points))
	for i, pt := range points {
		s := domain.Lower() + float64(i)*step
		if i == len(points)-1 {
			s = domain.Upper()
		}
		width, err := sw.Width.ValueFuzzy(s, tolerance)
		if err != nil {
			return nil, errors.Wrap(err, "Can't evaluate sweep width")
		}
		height, err := sw.Height.ValueFuzzy(s, tolerance)
		if err != nil {
			return nil, errors.Wrap(err, "Can't evaluate sweep height")
		}
		// heading of the local frame follows the chord to the neighbouring point
		next := pt
		prev := pt
		if i < len(points)-1 {
			next = points[i+1]
		} else {
			prev = points[i-1]
		}
		hdg := math.Atan2(next.Y-prev.Y, next.X-prev.X)
		affine := NewAffineFromPose(Pose3D{Position: pt, Heading: hdg})
		halfW := width / 2
		sections = append(sections, []Vector3D{
			affine.Transform(Vector3D{X: 0, Y: -halfW, Z: 0}),
			affine.Transform(Vector3D{X: 0, Y: halfW, Z: 0}),
			affine.Transform(Vector3D{X: 0, Y: halfW, Z: height}),
			affine.Transform(Vector3D{X: 0, Y: -halfW, Z: height}),
		})
	}
	var polygons []*Polygon3D
	for i := 0; i < len(sections)-1; i++ {
		for c := 0; c < 4; c++ {
			d := (c + 1) % 4
			face := []Vector3D{sections[i][c], sections[i][d], sections[i+1][d], sections[i+1][c]}
			polygon, err := NewPolygon3D(face, tolerance)
			if err != nil {
				continue
			}
			polygons = append(polygons, polygon)
		}
	}
	if len(polygons) == 0 {
		return nil, newGeometry("sweep produced no polygons")
	}
	return polygons, nil
}
