package odr2gml

import (
	"fmt"
)

// RoadspaceIdentifier identifies a road within the road-space model
type RoadspaceIdentifier struct {
	RoadID string
}

// String returns pretty printed value for RoadspaceIdentifier
func (id RoadspaceIdentifier) String() string {
	return fmt.Sprintf("Road: %s", id.RoadID)
}

// LaneSectionIdentifier identifies a lane section within a road
type LaneSectionIdentifier struct {
	LaneSectionID      int
	CurveRelativeStart float64
	Roadspace          RoadspaceIdentifier
}

// String returns pretty printed value for LaneSectionIdentifier
func (id LaneSectionIdentifier) String() string {
	return fmt.Sprintf("%s | LaneSection: %d", id.Roadspace, id.LaneSectionID)
}

// LaneIdentifier identifies a lane within a lane section
type LaneIdentifier struct {
	LaneID      int
	LaneSection LaneSectionIdentifier
}

// String returns pretty printed value for LaneIdentifier
func (id LaneIdentifier) String() string {
	return fmt.Sprintf("%s | Lane: %d", id.LaneSection, id.LaneID)
}

// IsLeft returns true for lanes on the left side of the reference line
func (id LaneIdentifier) IsLeft() bool {
	return id.LaneID > 0
}

// IsRight returns true for lanes on the right side of the reference line
func (id LaneIdentifier) IsRight() bool {
	return id.LaneID < 0
}
