package odr2gml

import (
	"fmt"

	"github.com/pkg/errors"
)

// Road is the reconstructed geometric model of a single road: the full
// length surfaces, the reference line lateral offset and the lane topology.
// A road is immutable after construction; all queries are pure.
type Road struct {
	ID         RoadspaceIdentifier
	Attributes *AttributeList

	surface               CurveRelativeSurface3D
	surfaceWithoutTorsion CurveRelativeSurface3D
	laneOffset            UnivariateFunction
	laneSections          []*LaneSection
	tolerance             float64
}

// NewRoad returns road over given surfaces, lane offset and lane sections.
// Both surfaces must share the same bounded curve position domain; the lane
// sections must be sorted with ids forming 0..N-1.
func NewRoad(id RoadspaceIdentifier, surface, surfaceWithoutTorsion CurveRelativeSurface3D, laneOffset UnivariateFunction, laneSections []*LaneSection, attributes *AttributeList, tolerance float64) (*Road, error) {
	domain := surface.DomainS()
	if !domain.HasLowerBound() || !domain.HasUpperBound() {
		return nil, newIllegalState("road %s has an unbounded surface domain %s", id, domain)
	}
	other := surfaceWithoutTorsion.DomainS()
	if !fuzzyEquals(domain.Lower(), other.Lower(), tolerance) || !fuzzyEquals(domain.Upper(), other.Upper(), tolerance) {
		return nil, newIllegalState("road %s surfaces disagree on the curve position domain: %s vs %s", id, domain, other)
	}
	if len(laneSections) == 0 {
		return nil, newIllegalState("road %s contains no lane sections", id)
	}
	for i, laneSection := range laneSections {
		if laneSection.ID.LaneSectionID != i {
			return nil, newIllegalState("road %s lane sections are not sorted without gaps: expected id %d, got %d", id, i, laneSection.ID.LaneSectionID)
		}
		if i > 0 && laneSections[i-1].CurvePositionStart >= laneSection.CurvePositionStart {
			return nil, newIllegalState("road %s lane section starts are not ascending: %f >= %f", id, laneSections[i-1].CurvePositionStart, laneSection.CurvePositionStart)
		}
	}
	return &Road{
		ID:                    id,
		Attributes:            attributes,
		surface:               surface,
		surfaceWithoutTorsion: surfaceWithoutTorsion,
		laneOffset:            laneOffset,
		laneSections:          laneSections,
		tolerance:             tolerance,
	}, nil
}

// LaneSections returns the lane sections in ascending id order
func (r *Road) LaneSections() []*LaneSection {
	return r.laneSections
}

// LaneSection returns the lane section with given id
func (r *Road) LaneSection(laneSectionID int) (*LaneSection, error) {
	if laneSectionID < 0 || laneSectionID >= len(r.laneSections) {
		return nil, &NotFoundError{What: "lane section", ID: fmt.Sprintf("%s | LaneSection: %d", r.ID, laneSectionID)}
	}
	return r.laneSections[laneSectionID], nil
}

// LaneSectionCurvePositionDomains returns the curve position range of every
// lane section: closed between adjacent section starts, the last section
// inheriting the upper endpoint of the road surface domain. A boundary
// position belongs to both adjacent sections; lookups resolve to the earlier
// one.
func (r *Road) LaneSectionCurvePositionDomains() []Range {
	surfaceDomain := r.surface.DomainS()
	domains := make([]Range, len(r.laneSections))
	for i, laneSection := range r.laneSections {
		if i != len(r.laneSections)-1 {
			domains[i] = NewRangeClosed(laneSection.CurvePositionStart, r.laneSections[i+1].CurvePositionStart)
		} else {
			domains[i] = NewRange(laneSection.CurvePositionStart, BoundClosed, surfaceDomain.Upper(), surfaceDomain.UpperType())
		}
	}
	return domains
}

// LaneSectionForPosition returns the lane section covering given curve
// position. Positions on a section boundary resolve to the section with the
// lower id.
func (r *Road) LaneSectionForPosition(s float64) (*LaneSection, error) {
	for i, domain := range r.LaneSectionCurvePositionDomains() {
		if domain.FuzzyContains(s, r.tolerance) {
			return r.laneSections[i], nil
		}
	}
	return nil, &NotFoundError{What: "lane section at curve position", ID: fmt.Sprintf("%s | s: %f", r.ID, s)}
}

// sectionedSurface returns the surface restricted to given lane section.
// Flat lanes (level attribute) are built on the torsion free surface.
func (r *Road) sectionedSurface(laneSectionID int, level bool) (CurveRelativeSurface3D, error) {
	domains := r.LaneSectionCurvePositionDomains()
	if laneSectionID < 0 || laneSectionID >= len(domains) {
		return nil, &NotFoundError{What: "lane section", ID: fmt.Sprintf("%s | LaneSection: %d", r.ID, laneSectionID)}
	}
	source := r.surface
	if level {
		source = r.surfaceWithoutTorsion
	}
	return NewSectionedSurface(source, domains[laneSectionID], r.tolerance)
}

// sectionedLaneOffset returns the reference line lateral offset restricted
// to given lane section
func (r *Road) sectionedLaneOffset(laneSectionID int) (UnivariateFunction, error) {
	domains := r.LaneSectionCurvePositionDomains()
	if laneSectionID < 0 || laneSectionID >= len(domains) {
		return nil, &NotFoundError{What: "lane section", ID: fmt.Sprintf("%s | LaneSection: %d", r.ID, laneSectionID)}
	}
	return NewSectionedFunction(r.laneOffset, domains[laneSectionID], r.tolerance)
}

// GetCurveOnLane returns the curve along given lane at given lateral factor:
// 0 is the inner boundary, 1 the outer boundary, 0.5 the centerline.
func (r *Road) GetCurveOnLane(id LaneIdentifier, factor float64) (*CurveOnParametricSurface3D, error) {
	laneSection, err := r.LaneSection(id.LaneSection.LaneSectionID)
	if err != nil {
		return nil, err
	}
	lane, err := laneSection.Lane(id.LaneID)
	if err != nil {
		return nil, err
	}
	surface, err := r.sectionedSurface(id.LaneSection.LaneSectionID, lane.Level)
	if err != nil {
		return nil, errors.Wrap(err, "Can't section the road surface")
	}
	referenceOffset, err := r.sectionedLaneOffset(id.LaneSection.LaneSectionID)
	if err != nil {
		return nil, errors.Wrap(err, "Can't section the lane offset")
	}
	laneOffset, err := laneSection.GetLateralLaneOffset(id.LaneID, factor)
	if err != nil {
		return nil, err
	}
	lateralOffset, err := NewStackedSum(referenceOffset, laneOffset)
	if err != nil {
		return nil, errors.Wrap(err, "Can't combine lateral offsets")
	}
	heightOffset, err := laneSection.GetLaneHeightOffset(id.LaneID, factor)
	if err != nil {
		return nil, err
	}
	return NewCurveOnParametricSurface3D(surface, lateralOffset, heightOffset, r.tolerance)
}

// GetLeftLaneBoundary returns the boundary of given lane lying to the left
// in traffic direction: the outer boundary for left lanes, the inner one for
// right lanes.
func (r *Road) GetLeftLaneBoundary(id LaneIdentifier) (*CurveOnParametricSurface3D, error) {
	factor := 0.0
	if id.LaneID > 0 {
		factor = 1.0
	}
	return r.GetCurveOnLane(id, factor)
}

// GetRightLaneBoundary returns the boundary of given lane lying to the right
// in traffic direction
func (r *Road) GetRightLaneBoundary(id LaneIdentifier) (*CurveOnParametricSurface3D, error) {
	factor := 0.0
	if id.LaneID < 0 {
		factor = 1.0
	}
	return r.GetCurveOnLane(id, factor)
}

// GetLaneSurface samples both lane boundaries at given step size and builds
// the lane surface out of quadrilateral rings. Where the boundaries coincide
// the surface stays empty.
func (r *Road) GetLaneSurface(id LaneIdentifier, step float64) (*CompositeSurface3D, error) {
	leftBoundary, err := r.GetLeftLaneBoundary(id)
	if err != nil {
		return nil, err
	}
	rightBoundary, err := r.GetRightLaneBoundary(id)
	if err != nil {
		return nil, err
	}
	leftPoints, err := SamplePointList(leftBoundary, step)
	if err != nil {
		return nil, errors.Wrap(err, "Can't sample left lane boundary")
	}
	rightPoints, err := SamplePointList(rightBoundary, step)
	if err != nil {
		return nil, errors.Wrap(err, "Can't sample right lane boundary")
	}
	rings, err := ringsBetweenBoundaries(leftPoints, rightPoints, r.tolerance)
	if err != nil {
		return nil, err
	}
	return NewCompositeSurface3D(rings), nil
}
