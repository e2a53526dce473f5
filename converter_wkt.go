package odr2gml

import (
	"fmt"
	"strings"
)

// PrepareWKTLinestring returns WKT representation of a sampled curve with
// elevation as third ordinate
func PrepareWKTLinestring(pts []Vector3D) string {
	ptsStr := make([]string, len(pts))
	for i := range pts {
		ptsStr[i] = fmt.Sprintf("%f %f %f", pts[i].X, pts[i].Y, pts[i].Z)
	}
	return fmt.Sprintf("LINESTRING Z(%s)", strings.Join(ptsStr, ","))
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt Vector3D) string {
	return fmt.Sprintf("POINT Z(%f %f %f)", pt.X, pt.Y, pt.Z)
}

// PrepareWKTPolygon returns WKT representation of a linear ring. The closing
// vertex is appended since WKT rings are explicit.
func PrepareWKTPolygon(ring *LinearRing3D) string {
	points := ring.Points()
	ptsStr := make([]string, 0, len(points)+1)
	for _, pt := range points {
		ptsStr = append(ptsStr, fmt.Sprintf("%f %f %f", pt.X, pt.Y, pt.Z))
	}
	ptsStr = append(ptsStr, ptsStr[0])
	return fmt.Sprintf("POLYGON Z((%s))", strings.Join(ptsStr, ","))
}
