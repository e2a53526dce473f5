package odr2gml

import (
	"github.com/pkg/errors"
)

// LaneSurfaceEntry is one produced lane surface with its identity and attributes
type LaneSurfaceEntry struct {
	ID         LaneIdentifier
	Surface    *CompositeSurface3D
	Attributes *AttributeList
}

// LaneCurveEntry is one produced lane curve with its identity and attributes
type LaneCurveEntry struct {
	ID         LaneIdentifier
	Curve      *CurveOnParametricSurface3D
	Attributes *AttributeList
}

// allLaneIdentifiers returns the identifiers of every lane of the road, in
// lane section order and ascending lane id order within a section
func (r *Road) allLaneIdentifiers() []LaneIdentifier {
	var ids []LaneIdentifier
	for _, laneSection := range r.laneSections {
		for _, laneID := range laneSection.LaneIDs() {
			ids = append(ids, LaneIdentifier{LaneID: laneID, LaneSection: laneSection.ID})
		}
	}
	return ids
}

func (r *Road) laneAttributes(id LaneIdentifier) *AttributeList {
	laneSection, err := r.LaneSection(id.LaneSection.LaneSectionID)
	if err != nil {
		return nil
	}
	lane, err := laneSection.Lane(id.LaneID)
	if err != nil {
		return nil
	}
	return lane.Attributes
}

// GetAllLanes returns the surface of every lane of the road, sampled at
// given step size
func (r *Road) GetAllLanes(step float64) ([]LaneSurfaceEntry, error) {
	var entries []LaneSurfaceEntry
	for _, id := range r.allLaneIdentifiers() {
		surface, err := r.GetLaneSurface(id, step)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build surface of lane %s", id)
		}
		entries = append(entries, LaneSurfaceEntry{ID: id, Surface: surface, Attributes: r.laneAttributes(id)})
	}
	return entries, nil
}

// GetAllCurvesOnLanes returns the curve at given lateral factor for every
// lane of the road
func (r *Road) GetAllCurvesOnLanes(factor float64) ([]LaneCurveEntry, error) {
	var entries []LaneCurveEntry
	for _, id := range r.allLaneIdentifiers() {
		curve, err := r.GetCurveOnLane(id, factor)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build curve on lane %s", id)
		}
		entries = append(entries, LaneCurveEntry{ID: id, Curve: curve, Attributes: r.laneAttributes(id)})
	}
	return entries, nil
}

// GetAllLeftLaneBoundaries returns the left boundary of every lane of the road
func (r *Road) GetAllLeftLaneBoundaries() ([]LaneCurveEntry, error) {
	var entries []LaneCurveEntry
	for _, id := range r.allLaneIdentifiers() {
		curve, err := r.GetLeftLaneBoundary(id)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build left boundary of lane %s", id)
		}
		entries = append(entries, LaneCurveEntry{ID: id, Curve: curve, Attributes: r.laneAttributes(id)})
	}
	return entries, nil
}

// GetAllRightLaneBoundaries returns the right boundary of every lane of the road
func (r *Road) GetAllRightLaneBoundaries() ([]LaneCurveEntry, error) {
	var entries []LaneCurveEntry
	for _, id := range r.allLaneIdentifiers() {
		curve, err := r.GetRightLaneBoundary(id)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build right boundary of lane %s", id)
		}
		entries = append(entries, LaneCurveEntry{ID: id, Curve: curve, Attributes: r.laneAttributes(id)})
	}
	return entries, nil
}

// GetAllFillerSurfaces returns the lateral filler surfaces of every lane
// section of the road, sampled at given step size
func (r *Road) GetAllFillerSurfaces(step float64) ([]FillerSurface, error) {
	var fillers []FillerSurface
	for _, laneSection := range r.laneSections {
		sectionFillers, err := r.GetLateralFillerSurfaces(laneSection.ID.LaneSectionID, step)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't build filler surfaces of lane section %d", laneSection.ID.LaneSectionID)
		}
		fillers = append(fillers, sectionFillers...)
	}
	return fillers, nil
}
