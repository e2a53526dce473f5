package odr2gml

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/integrate/quad"
)

// Curve2D is a plan-view curve parameterised by arc length, yielding a
// global position and heading for each local parameter value.
type Curve2D interface {
	// Domain returns the local arc-length domain of the curve
	Domain() Range
	// Pose returns global position and heading at given local arc length.
	// The underlying formulas are total, the domain is enforced by the caller.
	Pose(s float64) (orb.Point, float64)
}

// lineCurve2D is a straight plan-view geometry
type lineCurve2D struct {
	x, y, hdg float64
	domain    Range
}

func (c lineCurve2D) Domain() Range {
	return c.domain
}

func (c lineCurve2D) Pose(s float64) (orb.Point, float64) {
	return orb.Point{c.x + s*math.Cos(c.hdg), c.y + s*math.Sin(c.hdg)}, c.hdg
}

// arcCurve2D is a circular plan-view geometry with constant curvature
type arcCurve2D struct {
	x, y, hdg float64
	curvature float64
	domain    Range
}

func (c arcCurve2D) Domain() Range {
	return c.domain
}

func (c arcCurve2D) Pose(s float64) (orb.Point, float64) {
	hdg := c.hdg + c.curvature*s
	x := c.x + (math.Sin(hdg)-math.Sin(c.hdg))/c.curvature
	y := c.y - (math.Cos(hdg)-math.Cos(c.hdg))/c.curvature
	return orb.Point{x, y}, hdg
}

// spiralCurve2D is a clothoid plan-view geometry with linearly changing
// curvature. Positions are obtained by Gauss-Legendre quadrature over the
// heading function, which is quadratic in the arc length.
type spiralCurve2D struct {
	x, y, hdg          float64
	curvStart, curvDot float64
	domain             Range
}

func (c spiralCurve2D) Domain() Range {
	return c.domain
}

func (c spiralCurve2D) heading(s float64) float64 {
	return c.hdg + c.curvStart*s + 0.5*c.curvDot*s*s
}

func (c spiralCurve2D) Pose(s float64) (orb.Point, float64) {
	n := 10 + int(math.Abs(s))
	x := c.x + quad.Fixed(func(u float64) float64 { return math.Cos(c.heading(u)) }, 0, s, n, nil, 0)
	y := c.y + quad.Fixed(func(u float64) float64 { return math.Sin(c.heading(u)) }, 0, s, n, nil, 0)
	return orb.Point{x, y}, c.heading(s)
}

// polylineCurve2D approximates a plan-view geometry given in a local (u, v)
// frame by a dense polyline with an arc-length lookup table. Used for the
// cubic and parametric cubic polynomial geometries, whose native parameter
// is not the arc length.
type polylineCurve2D struct {
	points   []orb.Point // global coordinates
	headings []float64
	lengths  []float64 // cumulative arc length per vertex
	domain   Range
}

func (c polylineCurve2D) Domain() Range {
	return c.domain
}

func (c polylineCurve2D) Pose(s float64) (orb.Point, float64) {
	total := c.lengths[len(c.lengths)-1]
	if s <= 0 {
		return c.points[0], c.headings[0]
	}
	if s >= total {
		last := len(c.points) - 1
		return c.points[last], c.headings[last]
	}
	// binary search for the segment containing s
	lo, hi := 0, len(c.lengths)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if c.lengths[mid] <= s {
			lo = mid
		} else {
			hi = mid
		}
	}
	segment := c.lengths[hi] - c.lengths[lo]
	ratio := 0.0
	if segment > 0 {
		ratio = (s - c.lengths[lo]) / segment
	}
	x := c.points[lo][0] + ratio*(c.points[hi][0]-c.points[lo][0])
	y := c.points[lo][1] + ratio*(c.points[hi][1]-c.points[lo][1])
	hdg := c.headings[lo] + ratio*(c.headings[hi]-c.headings[lo])
	return orb.Point{x, y}, hdg
}

// polylineSamples is the number of vertices used for arc-length lookup tables
const polylineSamples = 1000

// newPolylineCurve2D builds the lookup polyline from a local curve sampler.
// The sampler returns local (u, v) coordinates for a native parameter in
// [0, 1]; the result is placed at (x, y) with given start heading and
// reparameterised to the declared arc length.
func newPolylineCurve2D(x, y, hdg, length float64, local func(p float64) (float64, float64)) polylineCurve2D {
	cosH, sinH := math.Cos(hdg), math.Sin(hdg)
	points := make([]orb.Point, polylineSamples+1)
	headings := make([]float64, polylineSamples+1)
	lengths := make([]float64, polylineSamples+1)
	var prevU, prevV float64
	for i := 0; i <= polylineSamples; i++ {
		p := float64(i) / float64(polylineSamples)
		u, v := local(p)
		points[i] = orb.Point{x + u*cosH - v*sinH, y + u*sinH + v*cosH}
		if i > 0 {
			du, dv := u-prevU, v-prevV
			lengths[i] = lengths[i-1] + math.Hypot(du, dv)
			headings[i] = hdg + math.Atan2(dv, du)
			if i == 1 {
				headings[0] = headings[1]
			}
		}
		prevU, prevV = u, v
	}
	// rescale the measured length onto the declared one
	measured := lengths[polylineSamples]
	if measured > 0 {
		scale := length / measured
		for i := range lengths {
			lengths[i] *= scale
		}
	}
	return polylineCurve2D{
		points:   points,
		headings: headings,
		lengths:  lengths,
		domain:   NewRangeClosedOpen(0, length),
	}
}

// ConcatenatedCurve2D is the road reference line: an ordered sequence of
// plan-view geometries tiling the curve position domain [0, length].
type ConcatenatedCurve2D struct {
	starts    []float64
	members   []Curve2D
	domain    Range
	tolerance float64
}

// NewConcatenatedCurve2D arranges given member curves at given absolute start
// positions. Starts must be strictly ascending and begin at zero.
func NewConcatenatedCurve2D(starts []float64, members []Curve2D, tolerance float64) (*ConcatenatedCurve2D, error) {
	if len(members) == 0 {
		return nil, newIllegalState("concatenation of zero curves")
	}
	if len(starts) != len(members) {
		return nil, newIllegalState("number of starts (%d) does not match number of curves (%d)", len(starts), len(members))
	}
	if !fuzzyEquals(starts[0], 0, tolerance) {
		return nil, newIllegalState("reference line must start at curve position 0, got %f", starts[0])
	}
	for i := 1; i < len(starts); i++ {
		if starts[i-1] >= starts[i] {
			return nil, newIllegalState("start positions are not in strict ascending order: %f >= %f", starts[i-1], starts[i])
		}
	}
	last := len(members) - 1
	domain := NewRangeClosed(starts[0], starts[last]+members[last].Domain().Upper())
	return &ConcatenatedCurve2D{starts: starts, members: members, domain: domain, tolerance: tolerance}, nil
}

// Domain returns the curve position domain of the reference line
func (cc *ConcatenatedCurve2D) Domain() Range {
	return cc.domain
}

// Length returns total length of the reference line
func (cc *ConcatenatedCurve2D) Length() float64 {
	return cc.domain.Length()
}

// selectMember resolves the member responsible for given curve position,
// fuzzily at the container tolerance. The last member also covers the upper
// domain endpoint.
func (cc *ConcatenatedCurve2D) selectMember(s float64) (int, error) {
	if !cc.domain.FuzzyContains(s, cc.tolerance) {
		return 0, newOutOfDomain(s, cc.domain)
	}
	for i := len(cc.starts) - 1; i >= 0; i-- {
		if s >= cc.starts[i] || fuzzyEquals(s, cc.starts[i], cc.tolerance) {
			return i, nil
		}
	}
	return 0, nil
}

// PoseGlobal returns global position and heading at given curve position
func (cc *ConcatenatedCurve2D) PoseGlobal(s float64) (orb.Point, float64, error) {
	i, err := cc.selectMember(s)
	if err != nil {
		return orb.Point{}, 0, err
	}
	local := s - cc.starts[i]
	pt, hdg := cc.members[i].Pose(local)
	return pt, hdg, nil
}
