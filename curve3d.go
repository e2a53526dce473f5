package odr2gml

import (
	"math"

	"github.com/pkg/errors"
)

// Curve3D produces a global point for every curve position of its domain
type Curve3D interface {
	// Domain returns the curve position domain of the curve
	Domain() Range
	// PointGlobal returns the global point at given curve position
	PointGlobal(s float64) (Vector3D, error)
}

// SamplePointList walks the curve domain with given step size and returns
// the global points, always including the exact domain endpoints. Adjacent
// duplicates are kept; consumers building rings remove them fuzzily.
func SamplePointList(curve Curve3D, step float64) ([]Vector3D, error) {
	if step <= 0 {
		return nil, newGeometry("step size must be positive, got %f", step)
	}
	domain := curve.Domain()
	if !domain.HasLowerBound() || !domain.HasUpperBound() {
		return nil, newGeometry("can't sample a curve with an unbounded domain %s", domain)
	}
	lower, upper := domain.Lower(), domain.Upper()
	steps := int(math.Ceil((upper - lower) / step))
	points := make([]Vector3D, 0, steps+1)
	for i := 0; i < steps; i++ {
		pt, err := curve.PointGlobal(lower + float64(i)*step)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't sample curve at position %f", lower+float64(i)*step)
		}
		points = append(points, pt)
	}
	pt, err := curve.PointGlobal(upper)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't sample curve at position %f", upper)
	}
	points = append(points, pt)
	return points, nil
}

// CurveOnParametricSurface3D is a 3D curve defined by a surface, a lateral
// offset function and an optional height offset function, all over the curve
// position parameter.
type CurveOnParametricSurface3D struct {
	surface       CurveRelativeSurface3D
	lateralOffset UnivariateFunction
	heightOffset  UnivariateFunction
	domain        Range
	tolerance     float64
}

// NewCurveOnParametricSurface3D returns curve on given surface. The height
// offset function may be nil. The curve domain is the intersection of the
// surface domain and the offset function domains.
func NewCurveOnParametricSurface3D(surface CurveRelativeSurface3D, lateralOffset, heightOffset UnivariateFunction, tolerance float64) (*CurveOnParametricSurface3D, error) {
	domain, ok := surface.DomainS().Intersection(lateralOffset.Domain())
	if !ok {
		return nil, newGeometry("lateral offset domain %s does not intersect the surface domain %s", lateralOffset.Domain(), surface.DomainS())
	}
	if heightOffset != nil {
		domain, ok = domain.Intersection(heightOffset.Domain())
		if !ok {
			return nil, newGeometry("height offset domain %s does not intersect the surface domain %s", heightOffset.Domain(), surface.DomainS())
		}
	}
	return &CurveOnParametricSurface3D{
		surface:       surface,
		lateralOffset: lateralOffset,
		heightOffset:  heightOffset,
		domain:        domain,
		tolerance:     tolerance,
	}, nil
}

// Domain returns the curve position domain of the curve
func (c *CurveOnParametricSurface3D) Domain() Range {
	return c.domain
}

// PointGlobal returns the global point at given curve position
func (c *CurveOnParametricSurface3D) PointGlobal(s float64) (Vector3D, error) {
	t, err := c.lateralOffset.ValueFuzzy(s, c.tolerance)
	if err != nil {
		return Vector3D{}, errors.Wrap(err, "Can't evaluate lateral offset")
	}
	height := 0.0
	if c.heightOffset != nil {
		height, err = c.heightOffset.ValueFuzzy(s, c.tolerance)
		if err != nil {
			return Vector3D{}, errors.Wrap(err, "Can't evaluate height offset")
		}
	}
	return c.surface.PointGlobal(s, t, height)
}
