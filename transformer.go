package odr2gml

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RoadspaceTransformer builds the road-space model out of validated
// OpenDRIVE records in a single pass
type RoadspaceTransformer struct {
	configuration TransformerConfiguration
	log           *logrus.Logger
}

// NewRoadspaceTransformer returns transformer with given configuration. A
// nil logger discards the repair log; the repairs are still reported through
// the returned Report.
func NewRoadspaceTransformer(configuration TransformerConfiguration, log *logrus.Logger) *RoadspaceTransformer {
	if configuration.Tolerance <= 0 {
		configuration.Tolerance = DefaultTolerance
	}
	if configuration.AttributesPrefix == "" {
		configuration.AttributesPrefix = "opendrive_"
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &RoadspaceTransformer{configuration: configuration, log: log}
}

// CheckProcessability verifies that given road record can be reconstructed:
// the plan view lengths must add up to the road length and a lateral shape
// must not coexist with a lane offset profile.
func (t *RoadspaceTransformer) CheckProcessability(record *OpenDriveRoad) error {
	lengthSum := 0.0
	for _, geometry := range record.PlanView {
		lengthSum += geometry.Length
	}
	if math.Abs(lengthSum-record.Length) > t.configuration.Tolerance {
		return newIllegalState("plan view lengths of road %s sum up to %f, but the road length is %f", record.ID, lengthSum, record.Length)
	}
	if len(record.Shape) > 0 && len(record.Lanes.LaneOffset) > 0 {
		return newIllegalState("road %s carries a lateral shape and a lane offset profile at the same time", record.ID)
	}
	return nil
}

// Transform builds the road-space model. Unprocessable roads are skipped
// with a report entry; the transform only fails if no road survives.
func (t *RoadspaceTransformer) Transform(data *OpenDriveData) (*Roadspace, *Report, error) {
	report := NewReport()
	roads := make([]*Road, 0, len(data.Roads))
	for _, record := range data.Roads {
		if err := t.CheckProcessability(record); err != nil {
			report.Append(fmt.Sprintf("Skipping road %s: %s", record.ID, err.Error()))
			continue
		}
		road, err := t.transformRoad(record, report)
		if err != nil {
			report.Append(fmt.Sprintf("Skipping road %s: %s", record.ID, err.Error()))
			continue
		}
		roads = append(roads, road)
	}
	if len(roads) == 0 && len(data.Roads) > 0 {
		return nil, report, newIllegalState("no road of the input could be transformed")
	}
	roadspace, err := NewRoadspace(data.Name, roads)
	if err != nil {
		return nil, report, errors.Wrap(err, "Can't assemble roadspace")
	}
	for _, message := range report.Messages {
		t.log.Warn(message)
	}
	return roadspace, report, nil
}

func (t *RoadspaceTransformer) transformRoad(record *OpenDriveRoad, report *Report) (*Road, error) {
	tolerance := t.configuration.Tolerance
	refLine, err := buildPlanViewCurve(record.ID, record.PlanView, tolerance)
	if err != nil {
		return nil, err
	}

	elevation, messages, err := buildFunctionFromPolyEntries("elevation", record.ID, record.ElevationProfile, &zeroPrefix, tolerance)
	if err != nil {
		return nil, err
	}
	report.AppendAll(messages)
	if len(record.ElevationProfile) == 0 {
		elevation = NewConstantFunction(0, NewRangeAll())
	}

	var superelevation UnivariateFunction
	if len(record.Superelevation) > 0 {
		superelevation, messages, err = buildFunctionFromPolyEntries("superelevation", record.ID, record.Superelevation, &zeroPrefix, tolerance)
		if err != nil {
			return nil, err
		}
		report.AppendAll(messages)
	}

	shape, messages, err := buildLateralShape(record.ID, record.Shape, tolerance)
	if err != nil {
		return nil, err
	}
	report.AppendAll(messages)

	laneOffset := UnivariateFunction(NewConstantFunction(0, NewRangeAll()))
	if len(record.Lanes.LaneOffset) > 0 {
		laneOffset, messages, err = buildFunctionFromPolyEntries("laneOffset", record.ID, record.Lanes.LaneOffset, &zeroPrefix, tolerance)
		if err != nil {
			return nil, err
		}
		report.AppendAll(messages)
	}

	surface := NewCurveRelativeParametricSurface3D(refLine, elevation, superelevation, shape, tolerance)
	surfaceWithoutTorsion := NewCurveRelativeParametricSurface3D(refLine, elevation, nil, nil, tolerance)

	roadspaceID := RoadspaceIdentifier{RoadID: record.ID}
	laneSections, err := t.transformLaneSections(record, roadspaceID, report)
	if err != nil {
		return nil, err
	}

	attributes := NewAttributeList(t.configuration.AttributesPrefix)
	attributes.AddString("id", record.ID)
	attributes.AddString("name", record.Name)
	attributes.AddString("junction", record.Junction)
	attributes.AddString("rule", record.Rule.String())
	attributes.AddDouble("length", record.Length)
	if t.configuration.CrsEpsg != 0 {
		attributes.AddInt("crs_epsg", t.configuration.CrsEpsg)
	}

	return NewRoad(roadspaceID, surface, surfaceWithoutTorsion, laneOffset, laneSections, attributes, tolerance)
}

func (t *RoadspaceTransformer) transformLaneSections(record *OpenDriveRoad, roadspaceID RoadspaceIdentifier, report *Report) ([]*LaneSection, error) {
	if len(record.Lanes.LaneSection) == 0 {
		return nil, newIllegalState("road %s contains no lane sections", record.ID)
	}
	laneSections := make([]*LaneSection, 0, len(record.Lanes.LaneSection))
	for i, sectionRecord := range record.Lanes.LaneSection {
		sectionID := LaneSectionIdentifier{
			LaneSectionID:      i,
			CurveRelativeStart: sectionRecord.S,
			Roadspace:          roadspaceID,
		}
		var lanes []*Lane
		for _, laneRecord := range sectionRecord.AllLanes() {
			if laneRecord.ID == 0 {
				// the center lane carries no width, it only separates the sides
				continue
			}
			lane, err := t.transformLane(record.ID, sectionID, laneRecord, report)
			if err != nil {
				return nil, err
			}
			lanes = append(lanes, lane)
		}
		laneSection, err := NewLaneSection(sectionID, lanes)
		if err != nil {
			return nil, err
		}
		laneSections = append(laneSections, laneSection)
	}
	return laneSections, nil
}

func (t *RoadspaceTransformer) transformLane(roadID string, sectionID LaneSectionIdentifier, laneRecord OpenDriveLane, report *Report) (*Lane, error) {
	tolerance := t.configuration.Tolerance
	width, messages, err := buildLaneWidth(roadID, laneRecord.ID, laneRecord.Width, tolerance)
	if err != nil {
		return nil, err
	}
	report.AppendAll(messages)

	inner, outer, messages, err := buildLaneHeightOffsets(roadID, laneRecord.ID, laneRecord.Height, tolerance)
	if err != nil {
		return nil, err
	}
	report.AppendAll(messages)

	attributes := NewAttributeList(t.configuration.AttributesPrefix)
	attributes.AddString("road_id", roadID)
	attributes.AddInt("lane_section_id", sectionID.LaneSectionID)
	attributes.AddInt("lane_id", laneRecord.ID)
	attributes.AddString("type", laneRecord.Type)
	attributes.AddBool("level", laneRecord.Level)
	if laneRecord.Predecessor != nil {
		attributes.AddString("predecessor", strconv.Itoa(*laneRecord.Predecessor))
	}
	if laneRecord.Successor != nil {
		attributes.AddString("successor", strconv.Itoa(*laneRecord.Successor))
	}

	return &Lane{
		ID:                LaneIdentifier{LaneID: laneRecord.ID, LaneSection: sectionID},
		Width:             width,
		InnerHeightOffset: inner,
		OuterHeightOffset: outer,
		Level:             laneRecord.Level,
		Type:              laneRecord.Type,
		Attributes:        attributes,
	}, nil
}
