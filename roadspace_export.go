package odr2gml

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// ExportToCSV writes the sampled lane geometry of every road into CSV files
// next to the given file name: one file for the lane boundary curves and one
// for the filler surfaces. Lane boundaries are written as a planimetric WKT
// footprint plus a 3D GeoJSON column; filler rings as a 3D GeoJSON column
// only.
func (rs *Roadspace) ExportToCSV(fname string, step float64) error {

	fnameParts := strings.Split(fname, ".csv")
	fnameBoundaries := fmt.Sprintf(fnameParts[0] + "_lane_boundaries.csv")
	fnameFillers := fmt.Sprintf(fnameParts[0] + "_filler_surfaces.csv")

	err := rs.exportLaneBoundariesToCSV(fnameBoundaries, step)
	if err != nil {
		return errors.Wrap(err, "Can't export lane boundaries")
	}

	err = rs.exportFillerSurfacesToCSV(fnameFillers, step)
	if err != nil {
		return errors.Wrap(err, "Can't export filler surfaces")
	}

	return nil
}

func footprint(points []Vector3D) orb.LineString {
	line := make(orb.LineString, len(points))
	for i, pt := range points {
		line[i] = orb.Point{pt.X, pt.Y}
	}
	return line
}

func (rs *Roadspace) exportLaneBoundariesToCSV(fname string, step float64) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"road_id", "lane_section_id", "lane_id", "lane_type", "side", "geom", "geom_3d"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, road := range rs.Roads() {
		sides := []struct {
			name  string
			query func(LaneIdentifier) (*CurveOnParametricSurface3D, error)
		}{
			{"left", road.GetLeftLaneBoundary},
			{"right", road.GetRightLaneBoundary},
		}
		for _, laneSection := range road.LaneSections() {
			for _, laneID := range laneSection.LaneIDs() {
				lane, err := laneSection.Lane(laneID)
				if err != nil {
					return err
				}
				id := LaneIdentifier{LaneID: laneID, LaneSection: laneSection.ID}
				for _, side := range sides {
					boundary, err := side.query(id)
					if err != nil {
						return errors.Wrapf(err, "Can't build %s boundary of lane %s", side.name, id)
					}
					points, err := SamplePointList(boundary, step)
					if err != nil {
						return errors.Wrapf(err, "Can't sample %s boundary of lane %s", side.name, id)
					}
					err = writer.Write([]string{
						road.ID.RoadID,
						fmt.Sprintf("%d", laneSection.ID.LaneSectionID),
						fmt.Sprintf("%d", laneID),
						lane.Type,
						side.name,
						wkt.MarshalString(footprint(points)),
						PrepareGeoJSONLinestring(points),
					})
					if err != nil {
						return errors.Wrap(err, "Can't write lane boundary")
					}
				}
			}
		}
	}
	return nil
}

func (rs *Roadspace) exportFillerSurfacesToCSV(fname string, step float64) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"road_id", "lane_section_id", "inner_lane_id", "outer_lane_id", "ring_index", "geom_3d"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, road := range rs.Roads() {
		fillers, err := road.GetAllFillerSurfaces(step)
		if err != nil {
			return errors.Wrapf(err, "Can't build filler surfaces of road %s", road.ID.RoadID)
		}
		for _, filler := range fillers {
			for i, ring := range filler.Surface.Rings() {
				err = writer.Write([]string{
					road.ID.RoadID,
					fmt.Sprintf("%d", filler.InnerLaneID.LaneSection.LaneSectionID),
					fmt.Sprintf("%d", filler.InnerLaneID.LaneID),
					fmt.Sprintf("%d", filler.OuterLaneID.LaneID),
					fmt.Sprintf("%d", i),
					PrepareGeoJSONPolygon(ring),
				})
				if err != nil {
					return errors.Wrap(err, "Can't write filler surface")
				}
			}
		}
	}
	return nil
}
