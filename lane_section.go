package odr2gml

import (
	"fmt"
	"sort"
)

// LaneSection is a contiguous curve position range of a road over which the
// number of lanes is constant. The center lane (id 0) has no width and is
// not part of the lane map.
type LaneSection struct {
	ID                 LaneSectionIdentifier
	CurvePositionStart float64
	lanes              map[int]*Lane
}

// NewLaneSection returns lane section over given lanes. The lane ids must
// form a contiguous integer range around (but excluding) zero.
func NewLaneSection(id LaneSectionIdentifier, lanes []*Lane) (*LaneSection, error) {
	if len(lanes) == 0 {
		return nil, newIllegalState("lane section %s contains no lanes", id)
	}
	laneMap := make(map[int]*Lane, len(lanes))
	for _, lane := range lanes {
		laneID := lane.ID.LaneID
		if laneID == 0 {
			return nil, newIllegalState("lane section %s contains the center lane 0 in its lane list", id)
		}
		if _, ok := laneMap[laneID]; ok {
			return nil, newIllegalState("lane section %s contains duplicated lane id %d", id, laneID)
		}
		laneMap[laneID] = lane
	}
	ids := sortedLaneIDs(laneMap)
	if ids[0] > 1 || ids[len(ids)-1] < -1 {
		return nil, newIllegalState("lane section %s has lane ids %v not adjacent to the center lane", id, ids)
	}
	for i := 1; i < len(ids); i++ {
		expected := ids[i-1] + 1
		if expected == 0 {
			expected = 1
		}
		if ids[i] != expected {
			return nil, newIllegalState("lane section %s has a gap in lane ids: %d is followed by %d", id, ids[i-1], ids[i])
		}
	}
	return &LaneSection{ID: id, CurvePositionStart: id.CurveRelativeStart, lanes: laneMap}, nil
}

func sortedLaneIDs(lanes map[int]*Lane) []int {
	ids := make([]int, 0, len(lanes))
	for id := range lanes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// LaneIDs returns the lane ids in ascending order
func (ls *LaneSection) LaneIDs() []int {
	return sortedLaneIDs(ls.lanes)
}

// Lane returns the lane with given id
func (ls *LaneSection) Lane(laneID int) (*Lane, error) {
	lane, ok := ls.lanes[laneID]
	if !ok {
		return nil, &NotFoundError{What: "lane", ID: fmt.Sprintf("%s | Lane: %d", ls.ID, laneID)}
	}
	return lane, nil
}

// Lanes returns all lanes keyed by lane id
func (ls *LaneSection) Lanes() map[int]*Lane {
	return ls.lanes
}

// GetLateralLaneOffset returns the lateral offset function of given lane
// within this section, measured from the reference line. The factor selects
// the inner boundary (0), the outer boundary (1) or any position in between.
// The cumulative width of all lanes between the center lane and the queried
// lane forms the inner boundary offset; left lanes yield positive offsets,
// right lanes negative ones.
func (ls *LaneSection) GetLateralLaneOffset(laneID int, factor float64) (UnivariateFunction, error) {
	lane, err := ls.Lane(laneID)
	if err != nil {
		return nil, err
	}
	laneSign := sign(laneID)
	members := []UnivariateFunction{}
	for innerID := laneSign; innerID != laneID; innerID += laneSign {
		inner, err := ls.Lane(innerID)
		if err != nil {
			return nil, err
		}
		members = append(members, inner.Width)
	}
	members = append(members, lane.Width)
	return NewStackedFunction(members, func(values []float64) float64 {
		offset := 0.0
		for _, width := range values[:len(values)-1] {
			offset += width
		}
		offset += factor * values[len(values)-1]
		return float64(laneSign) * offset
	})
}

// GetLaneHeightOffset returns the height offset function of given lane at
// given factor: inner*(1-factor) + outer*factor.
func (ls *LaneSection) GetLaneHeightOffset(laneID int, factor float64) (UnivariateFunction, error) {
	lane, err := ls.Lane(laneID)
	if err != nil {
		return nil, err
	}
	return NewStackedFunction(
		[]UnivariateFunction{lane.InnerHeightOffset, lane.OuterHeightOffset},
		func(values []float64) float64 {
			return values[0]*(1-factor) + values[1]*factor
		})
}
