package odr2gml

import (
	"sort"

	"github.com/pkg/errors"
)

// CurveRelativeSurface3D is a surface parameterised by the curve position s
// and the lateral offset t over a rectangular curve-relative domain. The
// height argument lifts the produced point along the local surface normal.
type CurveRelativeSurface3D interface {
	// DomainS returns the curve position domain of the surface
	DomainS() Range
	// PointGlobal returns the global point at curve position s, lateral
	// offset t, lifted by given height
	PointGlobal(s, t, height float64) (Vector3D, error)
}

// shapeCut is the lateral surface height polynomial set at one curve position
type shapeCut struct {
	s  float64
	fn UnivariateFunction
}

// LateralShapeFunction models the road shape entries: per curve position a
// t-indexed height profile, linearly interpolated between adjacent cuts.
type LateralShapeFunction struct {
	cuts      []shapeCut
	tolerance float64
}

func newLateralShapeFunction(cuts []shapeCut, tolerance float64) (*LateralShapeFunction, error) {
	if len(cuts) == 0 {
		return nil, newIllegalState("lateral shape without cuts")
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].s < cuts[j].s })
	return &LateralShapeFunction{cuts: cuts, tolerance: tolerance}, nil
}

func (lsf *LateralShapeFunction) evaluateCut(cut shapeCut, t float64) (float64, error) {
	v, err := cut.fn.ValueFuzzy(t, lsf.tolerance)
	if err == nil {
		return v, nil
	}
	// outside the cut's lateral domain the profile continues with its edge value
	return cut.fn.ValueFuzzy(cut.fn.Domain().Clamp(t), lsf.tolerance)
}

// Value returns the surface height offset at curve position s and lateral
// offset t. Before the first and after the last cut the nearest cut applies.
func (lsf *LateralShapeFunction) Value(s, t float64) (float64, error) {
	first, last := lsf.cuts[0], lsf.cuts[len(lsf.cuts)-1]
	if s <= first.s {
		return lsf.evaluateCut(first, t)
	}
	if s >= last.s {
		return lsf.evaluateCut(last, t)
	}
	upper := sort.Search(len(lsf.cuts), func(i int) bool { return lsf.cuts[i].s > s })
	lower := upper - 1
	lowerValue, err := lsf.evaluateCut(lsf.cuts[lower], t)
	if err != nil {
		return 0, err
	}
	upperValue, err := lsf.evaluateCut(lsf.cuts[upper], t)
	if err != nil {
		return 0, err
	}
	ratio := (s - lsf.cuts[lower].s) / (lsf.cuts[upper].s - lsf.cuts[lower].s)
	return lowerValue + ratio*(upperValue-lowerValue), nil
}

// CurveRelativeParametricSurface3D is the road surface: the plan-view
// reference line swept along elevation, superelevation (torsion) and the
// optional lateral shape. A nil superelevation yields the torsion free twin.
type CurveRelativeParametricSurface3D struct {
	refLine        *ConcatenatedCurve2D
	elevation      UnivariateFunction
	superelevation UnivariateFunction
	shape          *LateralShapeFunction
	domainS        Range
	tolerance      float64
}

// NewCurveRelativeParametricSurface3D returns road surface over given
// reference line and profiles. Superelevation and shape may be nil.
func NewCurveRelativeParametricSurface3D(refLine *ConcatenatedCurve2D, elevation, superelevation UnivariateFunction, shape *LateralShapeFunction, tolerance float64) *CurveRelativeParametricSurface3D {
	return &CurveRelativeParametricSurface3D{
		refLine:        refLine,
		elevation:      elevation,
		superelevation: superelevation,
		shape:          shape,
		domainS:        refLine.Domain(),
		tolerance:      tolerance,
	}
}

// DomainS returns the curve position domain of the surface
func (srf *CurveRelativeParametricSurface3D) DomainS() Range {
	return srf.domainS
}

// PointGlobal returns the global point at curve position s, lateral offset t,
// lifted by given height
func (srf *CurveRelativeParametricSurface3D) PointGlobal(s, t, height float64) (Vector3D, error) {
	if !srf.domainS.FuzzyContains(s, srf.tolerance) {
		return Vector3D{}, newOutOfDomain(s, srf.domainS)
	}
	pt, hdg, err := srf.refLine.PoseGlobal(s)
	if err != nil {
		return Vector3D{}, errors.Wrap(err, "Can't evaluate reference line")
	}
	z, err := srf.elevation.ValueFuzzy(s, srf.tolerance)
	if err != nil {
		return Vector3D{}, errors.Wrap(err, "Can't evaluate elevation profile")
	}
	roll := 0.0
	if srf.superelevation != nil {
		roll, err = srf.superelevation.ValueFuzzy(s, srf.tolerance)
		if err != nil {
			return Vector3D{}, errors.Wrap(err, "Can't evaluate superelevation profile")
		}
	}
	shapeHeight := 0.0
	if srf.shape != nil {
		shapeHeight, err = srf.shape.Value(s, t)
		if err != nil {
			return Vector3D{}, errors.Wrap(err, "Can't evaluate lateral shape")
		}
	}
	pose := Pose3D{Position: Vector3D{X: pt[0], Y: pt[1], Z: z}, Heading: hdg, Roll: roll}
	return NewAffineFromPose(pose).Transform(Vector3D{X: 0, Y: t, Z: height + shapeHeight}), nil
}

// SectionedCurveRelativeParametricSurface3D restricts a source surface to a
// sub range of its curve position domain, shifted so the sectioned domain
// starts at zero.
type SectionedCurveRelativeParametricSurface3D struct {
	source    CurveRelativeSurface3D
	shift     float64
	domainS   Range
	tolerance float64
}

// NewSectionedSurface returns the restriction of given surface to given
// curve position range
func NewSectionedSurface(source CurveRelativeSurface3D, subRange Range, tolerance float64) (*SectionedCurveRelativeParametricSurface3D, error) {
	if !subRange.HasLowerBound() {
		return nil, newGeometry("sectioning range must have a finite lower endpoint")
	}
	if !source.DomainS().FuzzyContainsRange(subRange, tolerance) {
		return nil, newGeometry("sectioning range %s is not contained in the surface domain %s", subRange, source.DomainS())
	}
	domain := NewRange(0, subRange.LowerType(), subRange.Length(), subRange.UpperType())
	return &SectionedCurveRelativeParametricSurface3D{
		source:    source,
		shift:     subRange.Lower(),
		domainS:   domain,
		tolerance: tolerance,
	}, nil
}

// DomainS returns the curve position domain of the sectioned surface
func (srf *SectionedCurveRelativeParametricSurface3D) DomainS() Range {
	return srf.domainS
}

// PointGlobal returns the global point at sectioned curve position s,
// lateral offset t, lifted by given height
func (srf *SectionedCurveRelativeParametricSurface3D) PointGlobal(s, t, height float64) (Vector3D, error) {
	if !srf.domainS.FuzzyContains(s, srf.tolerance) {
		return Vector3D{}, newOutOfDomain(s, srf.domainS)
	}
	return srf.source.PointGlobal(srf.shift+s, t, height)
}
