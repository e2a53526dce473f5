package odr2gml

import (
	"github.com/pkg/errors"
)

// FillerSurface bridges a vertical discontinuity between two laterally
// adjacent lanes of one lane section
type FillerSurface struct {
	InnerLaneID LaneIdentifier
	OuterLaneID LaneIdentifier
	Surface     *CompositeSurface3D
}

// GetLateralFillerSurfaces derives the filler surfaces of given lane
// section. Every lane except the one with the largest id is paired with its
// successor in the sorted id order (the lane to its left, skipping the
// absent center lane): where the left boundary of the lane and the right
// boundary of its neighbour disagree, a filler surface is produced.
func (r *Road) GetLateralFillerSurfaces(laneSectionID int, step float64) ([]FillerSurface, error) {
	laneSection, err := r.LaneSection(laneSectionID)
	if err != nil {
		return nil, err
	}
	ids := laneSection.LaneIDs()
	var fillers []FillerSurface
	for i := 0; i < len(ids)-1; i++ {
		laneID := ids[i]
		neighbourID := ids[i+1]
		laneIdentifier := LaneIdentifier{LaneID: laneID, LaneSection: laneSection.ID}
		neighbourIdentifier := LaneIdentifier{LaneID: neighbourID, LaneSection: laneSection.ID}

		leftBoundary, err := r.GetLeftLaneBoundary(laneIdentifier)
		if err != nil {
			return nil, err
		}
		rightBoundary, err := r.GetRightLaneBoundary(neighbourIdentifier)
		if err != nil {
			return nil, err
		}
		leftPoints, err := SamplePointList(leftBoundary, step)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't sample left boundary of lane %d", laneID)
		}
		rightPoints, err := SamplePointList(rightBoundary, step)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't sample right boundary of lane %d", neighbourID)
		}
		if fuzzyEqualPointLists(leftPoints, rightPoints, r.tolerance) {
			continue
		}
		rings, err := ringsBetweenBoundaries(leftPoints, rightPoints, r.tolerance)
		if err != nil {
			return nil, err
		}
		if len(rings) == 0 {
			continue
		}
		fillers = append(fillers, FillerSurface{
			InnerLaneID: laneIdentifier,
			OuterLaneID: neighbourIdentifier,
			Surface:     NewCompositeSurface3D(rings),
		})
	}
	return fillers, nil
}
