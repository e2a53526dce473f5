package odr2gml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLaneSectionIdentifier() LaneSectionIdentifier {
	return LaneSectionIdentifier{
		LaneSectionID:      0,
		CurveRelativeStart: 0,
		Roadspace:          RoadspaceIdentifier{RoadID: "1"},
	}
}

func constantWidthLane(sectionID LaneSectionIdentifier, laneID int, width float64) *Lane {
	zero := NewConstantFunction(0, NewRangeAll())
	return &Lane{
		ID:                LaneIdentifier{LaneID: laneID, LaneSection: sectionID},
		Width:             NewConstantFunction(width, NewRangeAll()),
		InnerHeightOffset: zero,
		OuterHeightOffset: zero,
	}
}

func TestLaneSectionRejectsCenterLane(t *testing.T) {
	sectionID := testLaneSectionIdentifier()
	_, err := NewLaneSection(sectionID, []*Lane{constantWidthLane(sectionID, 0, 0)})
	require.Error(t, err)
	assert.True(t, IsIllegalState(err))
}

func TestLaneSectionRejectsGaps(t *testing.T) {
	sectionID := testLaneSectionIdentifier()
	_, err := NewLaneSection(sectionID, []*Lane{
		constantWidthLane(sectionID, -1, 3),
		constantWidthLane(sectionID, 2, 3),
	})
	require.Error(t, err)
	assert.True(t, IsIllegalState(err))

	_, err = NewLaneSection(sectionID, nil)
	require.Error(t, err)
	assert.True(t, IsIllegalState(err))
}

func TestLaneSectionIDsAroundCenter(t *testing.T) {
	sectionID := testLaneSectionIdentifier()
	laneSection, err := NewLaneSection(sectionID, []*Lane{
		constantWidthLane(sectionID, 1, 3),
		constantWidthLane(sectionID, -1, 3),
		constantWidthLane(sectionID, -2, 2),
		constantWidthLane(sectionID, 2, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{-2, -1, 1, 2}, laneSection.LaneIDs())

	_, err = laneSection.Lane(3)
	assert.True(t, IsNotFound(err))
}

func TestLateralLaneOffsetAccumulatesInnerWidths(t *testing.T) {
	sectionID := testLaneSectionIdentifier()
	laneSection, err := NewLaneSection(sectionID, []*Lane{
		constantWidthLane(sectionID, 1, 3.5),
		constantWidthLane(sectionID, 2, 3.0),
		constantWidthLane(sectionID, 3, 2.5),
		constantWidthLane(sectionID, -1, 4.0),
		constantWidthLane(sectionID, -2, 2.0),
	})
	require.NoError(t, err)

	// the inner boundary offset is the sum of all widths between the
	// center lane and the queried lane
	inner, err := laneSection.GetLateralLaneOffset(3, 0)
	require.NoError(t, err)
	v, err := inner.Value(0)
	require.NoError(t, err)
	assert.InDelta(t, 3.5+3.0, v, DefaultTolerance)

	outer, err := laneSection.GetLateralLaneOffset(3, 1)
	require.NoError(t, err)
	vOuter, err := outer.Value(0)
	require.NoError(t, err)
	assert.InDelta(t, 3.5+3.0+2.5, vOuter, DefaultTolerance)

	// outer minus inner equals the signed lane width
	assert.InDelta(t, 2.5, vOuter-v, DefaultTolerance)

	// right lanes yield negative offsets
	rightOuter, err := laneSection.GetLateralLaneOffset(-2, 1)
	require.NoError(t, err)
	v, err = rightOuter.Value(0)
	require.NoError(t, err)
	assert.InDelta(t, -(4.0 + 2.0), v, DefaultTolerance)

	// center position of the innermost left lane
	center, err := laneSection.GetLateralLaneOffset(1, 0.5)
	require.NoError(t, err)
	v, err = center.Value(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.75, v, DefaultTolerance)
}

func TestLaneHeightOffsetInterpolation(t *testing.T) {
	sectionID := testLaneSectionIdentifier()
	lane := constantWidthLane(sectionID, -1, 3.5)
	lane.InnerHeightOffset = NewConstantFunction(0, NewRangeAll())
	lane.OuterHeightOffset = NewConstantFunction(-0.15, NewRangeAll())
	laneSection, err := NewLaneSection(sectionID, []*Lane{lane})
	require.NoError(t, err)

	center, err := laneSection.GetLaneHeightOffset(-1, 0.5)
	require.NoError(t, err)
	v, err := center.Value(10)
	require.NoError(t, err)
	assert.InDelta(t, -0.075, v, DefaultTolerance)

	outer, err := laneSection.GetLaneHeightOffset(-1, 1)
	require.NoError(t, err)
	v, err = outer.Value(10)
	require.NoError(t, err)
	assert.InDelta(t, -0.15, v, DefaultTolerance)
}
