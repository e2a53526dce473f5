package odr2gml

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// The function builder translates the piecewise polynomial groups of the
// OpenDRIVE records into concatenated function trees. Malformed groups are
// repaired where possible; every repair emits a report message.

var zeroPrefix = 0.0

// filterToStrictOrder stable sorts given entries by their curve position key
// and drops entries whose key equals (fuzzily) the key of an already kept
// entry, so the first of each run survives.
func filterToStrictOrder(entries []OpenDrivePoly, tolerance float64) ([]OpenDrivePoly, int) {
	sorted := make([]OpenDrivePoly, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].S < sorted[j].S })
	filtered := sorted[:0]
	removed := 0
	for _, entry := range sorted {
		if len(filtered) > 0 && fuzzyEquals(filtered[len(filtered)-1].S, entry.S, tolerance) {
			removed++
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered, removed
}

// buildFunctionFromPolyEntries builds a concatenated function from a
// piecewise cubic polynomial group. An empty group yields the identity
// function; callers decide whether that placeholder is usable. The name and
// road id only flavour the report messages.
func buildFunctionFromPolyEntries(name, roadID string, entries []OpenDrivePoly, prependConstant *float64, tolerance float64) (UnivariateFunction, []string, error) {
	if len(entries) == 0 {
		return XAxis, nil, nil
	}
	var messages []string
	filtered, removed := filterToStrictOrder(entries, tolerance)
	if removed > 0 {
		messages = append(messages, fmt.Sprintf("Removing %s entries of road %s due to duplicated curve positions (%d dropped)", name, roadID, removed))
	}
	starts := make([]float64, len(filtered))
	coefficients := make([][]float64, len(filtered))
	for i, entry := range filtered {
		starts[i] = entry.S
		coefficients[i] = entry.Coefficients()
	}
	fn, factoryMessages, err := NewConcatenatedPolynomials(starts, coefficients, prependConstant)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Can't build %s function of road %s", name, roadID)
	}
	messages = append(messages, factoryMessages...)
	return fn, messages, nil
}

// buildLaneWidth builds the width function of a lane. Undefined regions
// before the first entry default to zero width, which is reported.
func buildLaneWidth(roadID string, laneID int, entries []OpenDrivePoly, tolerance float64) (UnivariateFunction, []string, error) {
	if len(entries) == 0 {
		return NewConstantFunction(0, NewRangeAll()), nil, nil
	}
	name := fmt.Sprintf("width (lane %d)", laneID)
	fn, messages, err := buildFunctionFromPolyEntries(name, roadID, entries, &zeroPrefix, tolerance)
	if err != nil {
		return nil, nil, err
	}
	filtered, _ := filterToStrictOrder(entries, tolerance)
	if filtered[0].S > tolerance {
		messages = append(messages, fmt.Sprintf("Width of lane %d of road %s is undefined before sOffset %f: defaulting to zero width", laneID, roadID, filtered[0].S))
	}
	return fn, messages, nil
}

// buildLateralShape groups the shape entries by curve position and builds
// one lateral cut function per position
func buildLateralShape(roadID string, entries []OpenDriveShapeEntry, tolerance float64) (*LateralShapeFunction, []string, error) {
	if len(entries) == 0 {
		return nil, nil, nil
	}
	sorted := make([]OpenDriveShapeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].S != sorted[j].S {
			return sorted[i].S < sorted[j].S
		}
		return sorted[i].T < sorted[j].T
	})

	var messages []string
	var cuts []shapeCut
	for begin := 0; begin < len(sorted); {
		end := begin
		for end < len(sorted) && fuzzyEquals(sorted[end].S, sorted[begin].S, tolerance) {
			end++
		}
		group := sorted[begin:end]
		starts := make([]float64, 0, len(group))
		coefficients := make([][]float64, 0, len(group))
		for _, entry := range group {
			if len(starts) > 0 && fuzzyEquals(starts[len(starts)-1], entry.T, tolerance) {
				messages = append(messages, fmt.Sprintf("Removing shape entries of road %s at s=%f due to duplicated lateral position %f", roadID, entry.S, entry.T))
				continue
			}
			starts = append(starts, entry.T)
			coefficients = append(coefficients, entry.Coefficients())
		}
		fn, factoryMessages, err := NewConcatenatedPolynomials(starts, coefficients, nil)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Can't build lateral shape cut of road %s at s=%f", roadID, group[0].S)
		}
		messages = append(messages, factoryMessages...)
		cuts = append(cuts, shapeCut{s: group[0].S, fn: fn})
		begin = end
	}
	shape, err := newLateralShapeFunction(cuts, tolerance)
	if err != nil {
		return nil, nil, err
	}
	return shape, messages, nil
}

// buildLaneHeightOffsets builds the inner and outer height offset functions
// of a lane as step functions over the height entries
func buildLaneHeightOffsets(roadID string, laneID int, entries []OpenDriveLaneHeight, tolerance float64) (UnivariateFunction, UnivariateFunction, []string, error) {
	if len(entries) == 0 {
		zero := NewConstantFunction(0, NewRangeAll())
		return zero, zero, nil, nil
	}
	sorted := make([]OpenDriveLaneHeight, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SOffset < sorted[j].SOffset })

	var messages []string
	starts := make([]float64, 0, len(sorted)+1)
	inners := make([]float64, 0, len(sorted)+1)
	outers := make([]float64, 0, len(sorted)+1)
	if sorted[0].SOffset > tolerance {
		// the surface level applies before the first entry
		starts = append(starts, 0)
		inners = append(inners, 0)
		outers = append(outers, 0)
		messages = append(messages, fmt.Sprintf("Height of lane %d of road %s is undefined before sOffset %f: defaulting to zero offset", laneID, roadID, sorted[0].SOffset))
	}
	for _, entry := range sorted {
		if len(starts) > 0 && fuzzyEquals(starts[len(starts)-1], entry.SOffset, tolerance) {
			messages = append(messages, fmt.Sprintf("Removing height entries of lane %d of road %s due to duplicated sOffset %f", laneID, roadID, entry.SOffset))
			continue
		}
		starts = append(starts, entry.SOffset)
		inners = append(inners, entry.Inner)
		outers = append(outers, entry.Outer)
	}
	inner, err := NewConcatenatedLinears(starts, inners, nil)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "Can't build inner height offset of lane %d of road %s", laneID, roadID)
	}
	outer, err := NewConcatenatedLinears(starts, outers, nil)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "Can't build outer height offset of lane %d of road %s", laneID, roadID)
	}
	return inner, outer, messages, nil
}

// buildPlanViewCurve builds the road reference line from the plan view
// geometry records
func buildPlanViewCurve(roadID string, geometries []OpenDriveGeometry, tolerance float64) (*ConcatenatedCurve2D, error) {
	if len(geometries) == 0 {
		return nil, newIllegalState("road %s has an empty plan view", roadID)
	}
	starts := make([]float64, len(geometries))
	members := make([]Curve2D, len(geometries))
	for i, geometry := range geometries {
		starts[i] = geometry.S
		domain := NewRangeClosedOpen(0, geometry.Length)
		if i == len(geometries)-1 {
			domain = NewRangeClosed(0, geometry.Length)
		}
		switch geometry.Kind {
		case GeometryKindLine:
			members[i] = lineCurve2D{x: geometry.X, y: geometry.Y, hdg: geometry.Hdg, domain: domain}
		case GeometryKindArc:
			if geometry.Curvature == 0 {
				return nil, newIllegalState("road %s has an arc geometry with zero curvature at s=%f", roadID, geometry.S)
			}
			members[i] = arcCurve2D{x: geometry.X, y: geometry.Y, hdg: geometry.Hdg, curvature: geometry.Curvature, domain: domain}
		case GeometryKindSpiral:
			curvDot := (geometry.CurvEnd - geometry.CurvStart) / geometry.Length
			members[i] = spiralCurve2D{x: geometry.X, y: geometry.Y, hdg: geometry.Hdg, curvStart: geometry.CurvStart, curvDot: curvDot, domain: domain}
		case GeometryKindPoly3:
			g := geometry
			members[i] = newPolylineCurve2D(g.X, g.Y, g.Hdg, g.Length, func(p float64) (float64, float64) {
				u := p * g.Length
				return u, g.A + g.B*u + g.C*u*u + g.D*u*u*u
			})
		case GeometryKindParamPoly3:
			g := geometry
			scale := 1.0
			if g.ParamPoly3RangeIsArcLength {
				scale = g.Length
			}
			members[i] = newPolylineCurve2D(g.X, g.Y, g.Hdg, g.Length, func(p float64) (float64, float64) {
				q := p * scale
				u := g.AU + g.BU*q + g.CU*q*q + g.DU*q*q*q
				v := g.AV + g.BV*q + g.CV*q*q + g.DV*q*q*q
				return u, v
			})
		default:
			return nil, newIllegalState("road %s has a plan geometry of unknown kind at s=%f", roadID, geometry.S)
		}
	}
	curve, err := NewConcatenatedCurve2D(starts, members, tolerance)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't build reference line of road %s", roadID)
	}
	return curve, nil
}
