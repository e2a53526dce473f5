package odr2gml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRingRemovesDuplicates(t *testing.T) {
	ring, err := NewLinearRing3D([]Vector3D{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0.5e-7},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 0},
	}, DefaultTolerance)
	require.NoError(t, err)
	assert.Len(t, ring.Points(), 3)
}

func TestLinearRingDegenerate(t *testing.T) {
	_, err := NewLinearRing3D([]Vector3D{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
	}, DefaultTolerance)
	require.Error(t, err)
	assert.True(t, IsGeometry(err))
}

func TestRingsBetweenBoundaries(t *testing.T) {
	left := []Vector3D{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	right := []Vector3D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	rings, err := ringsBetweenBoundaries(left, right, DefaultTolerance)
	require.NoError(t, err)
	assert.Len(t, rings, 2)

	// coinciding boundaries yield no rings
	rings, err = ringsBetweenBoundaries(right, right, DefaultTolerance)
	require.NoError(t, err)
	assert.Empty(t, rings)
}

func TestAffineFromPose(t *testing.T) {
	// pure translation
	affine := NewAffineFromPose(Pose3D{Position: Vector3D{X: 1, Y: 2, Z: 3}})
	pt := affine.Transform(Vector3D{X: 1, Y: 1, Z: 1})
	assert.InDelta(t, 2.0, pt.X, DefaultTolerance)
	assert.InDelta(t, 3.0, pt.Y, DefaultTolerance)
	assert.InDelta(t, 4.0, pt.Z, DefaultTolerance)

	// heading rotates the lateral axis
	affine = NewAffineFromPose(Pose3D{Heading: math.Pi / 2})
	pt = affine.Transform(Vector3D{X: 0, Y: 1, Z: 0})
	assert.InDelta(t, -1.0, pt.X, DefaultTolerance)
	assert.InDelta(t, 0.0, pt.Y, DefaultTolerance)

	// roll lifts the lateral axis
	roll := 0.1
	affine = NewAffineFromPose(Pose3D{Roll: roll})
	pt = affine.Transform(Vector3D{X: 0, Y: 1, Z: 0})
	assert.InDelta(t, math.Cos(roll), pt.Y, DefaultTolerance)
	assert.InDelta(t, math.Sin(roll), pt.Z, DefaultTolerance)
}

func TestAffineSequenceSolve(t *testing.T) {
	sequence := NewAffineSequence3D(
		NewTranslation(Vector3D{X: 5}),
		NewRotationZ(math.Pi),
	)
	pt := sequence.Solve().Transform(Vector3D{X: 1})
	assert.InDelta(t, 4.0, pt.X, DefaultTolerance)
	assert.InDelta(t, 0.0, pt.Y, DefaultTolerance)
}

func TestCuboidPolygons(t *testing.T) {
	cuboid := Cuboid3D{Pose: Pose3D{Position: Vector3D{Z: 1}}, Length: 2, Width: 4, Height: 6}
	polygons, err := cuboid.PolygonsGlobal(DefaultTolerance)
	require.NoError(t, err)
	require.Len(t, polygons, 6)
	for _, polygon := range polygons {
		assert.Len(t, polygon.Ring().Points(), 4)
	}

	_, err = Cuboid3D{Length: 0, Width: 1, Height: 1}.PolygonsGlobal(DefaultTolerance)
	assert.True(t, IsGeometry(err))
}

func TestCylinderPolygons(t *testing.T) {
	cylinder := Cylinder3D{Radius: 1, Height: 2}
	polygons, err := cylinder.PolygonsGlobal(16, DefaultTolerance)
	require.NoError(t, err)
	// both caps plus one quad per slice
	assert.Len(t, polygons, 18)
}
