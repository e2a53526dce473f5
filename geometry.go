package odr2gml

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3D is a point or direction in 3D Euclidean space
type Vector3D = r3.Vec

// Pose3D is a position with orientation given as heading/pitch/roll angles (radians)
type Pose3D struct {
	Position Vector3D
	Heading  float64
	Pitch    float64
	Roll     float64
}

// String returns pretty printed value for Pose3D
func (p Pose3D) String() string {
	return fmt.Sprintf("X: %f | Y: %f | Z: %f | Heading: %f", p.Position.X, p.Position.Y, p.Position.Z, p.Heading)
}

// fuzzyEqualPoints checks if two points coincide within given tolerance
func fuzzyEqualPoints(a, b Vector3D, tolerance float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tolerance
}

// fuzzyEqualPointLists checks if two point lists coincide pairwise within given tolerance
func fuzzyEqualPointLists(a, b []Vector3D, tolerance float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !fuzzyEqualPoints(a[i], b[i], tolerance) {
			return false
		}
	}
	return true
}

// removeAdjacentDuplicates drops consecutive points which coincide within
// given tolerance, keeping the first of each run
func removeAdjacentDuplicates(points []Vector3D, tolerance float64) []Vector3D {
	if len(points) == 0 {
		return nil
	}
	cleaned := make([]Vector3D, 0, len(points))
	cleaned = append(cleaned, points[0])
	for _, pt := range points[1:] {
		if !fuzzyEqualPoints(cleaned[len(cleaned)-1], pt, tolerance) {
			cleaned = append(cleaned, pt)
		}
	}
	return cleaned
}

// LinearRing3D is a closed sequence of at least three distinct points. The
// closing edge from the last point back to the first is implicit.
type LinearRing3D struct {
	points []Vector3D
}

// NewLinearRing3D returns linear ring built from given points after removing
// adjacent duplicates (fuzzy at given tolerance). The implicit closing
// duplicate is removed as well.
func NewLinearRing3D(points []Vector3D, tolerance float64) (*LinearRing3D, error) {
	cleaned := removeAdjacentDuplicates(points, tolerance)
	if len(cleaned) > 1 && fuzzyEqualPoints(cleaned[0], cleaned[len(cleaned)-1], tolerance) {
		cleaned = cleaned[:len(cleaned)-1]
	}
	if len(cleaned) < 3 {
		return nil, newGeometry("linear ring needs at least 3 distinct points, got %d", len(cleaned))
	}
	return &LinearRing3D{points: cleaned}, nil
}

// Points returns the ring points without the closing duplicate
func (lr *LinearRing3D) Points() []Vector3D {
	return lr.points
}

// Polygon3D is a planar surface patch bounded by a linear ring
type Polygon3D struct {
	ring *LinearRing3D
}

// NewPolygon3D returns polygon bounded by a ring over given points
func NewPolygon3D(points []Vector3D, tolerance float64) (*Polygon3D, error) {
	ring, err := NewLinearRing3D(points, tolerance)
	if err != nil {
		return nil, err
	}
	return &Polygon3D{ring: ring}, nil
}

// Ring returns the boundary ring of the polygon
func (p *Polygon3D) Ring() *LinearRing3D {
	return p.ring
}

// CompositeSurface3D is an aggregation of linear rings forming one surface
type CompositeSurface3D struct {
	rings []*LinearRing3D
}

// NewCompositeSurface3D returns composite surface over given rings
func NewCompositeSurface3D(rings []*LinearRing3D) *CompositeSurface3D {
	return &CompositeSurface3D{rings: rings}
}

// Rings returns the member rings
func (cs *CompositeSurface3D) Rings() []*LinearRing3D {
	return cs.rings
}

// IsEmpty returns true if the surface carries no geometry
func (cs *CompositeSurface3D) IsEmpty() bool {
	return len(cs.rings) == 0
}

// ringsBetweenBoundaries builds one quadrilateral ring per segment pair of
// the two boundary point lists. Degenerate quads (under 3 distinct corners)
// are skipped, which happens where the boundaries touch.
func ringsBetweenBoundaries(left, right []Vector3D, tolerance float64) ([]*LinearRing3D, error) {
	if len(left) != len(right) {
		return nil, newGeometry("boundary point lists differ in length: %d vs %d", len(left), len(right))
	}
	if len(left) < 2 {
		return nil, newGeometry("boundary point lists need at least 2 points, got %d", len(left))
	}
	var rings []*LinearRing3D
	for i := 0; i < len(left)-1; i++ {
		ring, err := NewLinearRing3D([]Vector3D{left[i], right[i], right[i+1], left[i+1]}, tolerance)
		if err != nil {
			continue
		}
		rings = append(rings, ring)
	}
	return rings, nil
}
