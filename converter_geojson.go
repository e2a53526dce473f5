package odr2gml

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of a sampled curve
// with elevation as third ordinate
func PrepareGeoJSONLinestring(pts []Vector3D) string {
	pts3d := make([][]float64, len(pts))
	for i := range pts {
		pts3d[i] = []float64{pts[i].X, pts[i].Y, pts[i].Z}
	}
	b, err := geojson.NewLineStringGeometry(pts3d).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt Vector3D) string {
	b, err := geojson.NewPointGeometry([]float64{pt.X, pt.Y, pt.Z}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPolygon returns GeoJSON representation of a linear ring. The
// closing vertex is appended since GeoJSON rings are explicit.
func PrepareGeoJSONPolygon(ring *LinearRing3D) string {
	points := ring.Points()
	ring3d := make([][]float64, 0, len(points)+1)
	for _, pt := range points {
		ring3d = append(ring3d, []float64{pt.X, pt.Y, pt.Z})
	}
	ring3d = append(ring3d, ring3d[0])
	b, err := geojson.NewPolygonGeometry([][][]float64{ring3d}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}
