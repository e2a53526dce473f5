package odr2gml

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Affine3D is an affine transform in homogeneous coordinates (4x4 matrix)
type Affine3D struct {
	m *mat.Dense
}

// NewAffineIdentity returns the identity transform
func NewAffineIdentity() Affine3D {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return Affine3D{m: m}
}

// NewTranslation returns a transform moving points by given vector
func NewTranslation(v Vector3D) Affine3D {
	a := NewAffineIdentity()
	a.m.Set(0, 3, v.X)
	a.m.Set(1, 3, v.Y)
	a.m.Set(2, 3, v.Z)
	return a
}

// NewRotationZ returns a rotation about the Z axis (heading)
func NewRotationZ(angle float64) Affine3D {
	a := NewAffineIdentity()
	c, s := math.Cos(angle), math.Sin(angle)
	a.m.Set(0, 0, c)
	a.m.Set(0, 1, -s)
	a.m.Set(1, 0, s)
	a.m.Set(1, 1, c)
	return a
}

// NewRotationY returns a rotation about the Y axis (pitch)
func NewRotationY(angle float64) Affine3D {
	a := NewAffineIdentity()
	c, s := math.Cos(angle), math.Sin(angle)
	a.m.Set(0, 0, c)
	a.m.Set(0, 2, s)
	a.m.Set(2, 0, -s)
	a.m.Set(2, 2, c)
	return a
}

// NewRotationX returns a rotation about the X axis (roll)
func NewRotationX(angle float64) Affine3D {
	a := NewAffineIdentity()
	c, s := math.Cos(angle), math.Sin(angle)
	a.m.Set(1, 1, c)
	a.m.Set(1, 2, -s)
	a.m.Set(2, 1, s)
	a.m.Set(2, 2, c)
	return a
}

// Mul returns the composition a∘b (b applied first)
func (a Affine3D) Mul(b Affine3D) Affine3D {
	result := mat.NewDense(4, 4, nil)
	result.Mul(a.m, b.m)
	return Affine3D{m: result}
}

// Transform applies the transform to given point
func (a Affine3D) Transform(p Vector3D) Vector3D {
	in := mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1})
	out := mat.NewVecDense(4, nil)
	out.MulVec(a.m, in)
	return Vector3D{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// AffineSequence3D is an ordered list of affine transforms
type AffineSequence3D struct {
	transforms []Affine3D
}

// NewAffineSequence3D returns sequence over given transforms; the first
// listed transform is applied last, matching matrix composition order
func NewAffineSequence3D(transforms ...Affine3D) AffineSequence3D {
	return AffineSequence3D{transforms: transforms}
}

// Append adds a transform at the end of the sequence
func (seq AffineSequence3D) Append(t Affine3D) AffineSequence3D {
	transforms := make([]Affine3D, 0, len(seq.transforms)+1)
	transforms = append(transforms, seq.transforms...)
	transforms = append(transforms, t)
	return AffineSequence3D{transforms: transforms}
}

// Solve folds the sequence into a single transform
func (seq AffineSequence3D) Solve() Affine3D {
	result := NewAffineIdentity()
	for _, t := range seq.transforms {
		result = result.Mul(t)
	}
	return result
}

// NewAffineFromPose returns the transform placing local coordinates into the
// global frame of given pose: translation, then heading, pitch, roll.
func NewAffineFromPose(pose Pose3D) Affine3D {
	return NewAffineSequence3D(
		NewTranslation(pose.Position),
		NewRotationZ(pose.Heading),
		NewRotationY(pose.Pitch),
		NewRotationX(pose.Roll),
	).Solve()
}
