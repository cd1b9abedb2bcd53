package raster

import (
	"github.com/kadaan/linedensity/lib/downsample"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/series"
	"seehuhn.de/go/geom/vec"
)

// FullLayout places a series in chart space. Regular series must carry at
// least width*k points; point i lands at x = i/k and only the first width*k
// points are used. Irregular series are already mapped into chart columns.
func FullLayout(s series.Series, width int, k int) ([]vec.Vec2, error) {
	if !s.Regular {
		if s.Len() < 2 {
			return nil, errors.NewInvariantViolation("series %q has %d points, need at least 2", s.Name, s.Len())
		}
		pts := make([]vec.Vec2, s.Len())
		for i, p := range s.Points {
			pts[i] = vec.Vec2{X: p.T, Y: p.V}
		}
		return pts, nil
	}
	n := width * k
	if k <= 0 || width <= 0 || s.Len() < n {
		return nil, errors.NewInvariantViolation("series %q has %d points, need width*k = %d", s.Name, s.Len(), n)
	}
	pts := make([]vec.Vec2, n)
	for i := 0; i < n; i++ {
		pts[i] = vec.Vec2{X: float64(i) / float64(k), Y: s.Points[i].V}
	}
	return pts, nil
}

// M4Layout places flattened M4 output in chart space. Point i sits at
// x = i/4 except the last value of each bucket, which is moved to the
// position of the final source sample of its column, ((i/4+1)*k-1)/k.
func M4Layout(values []float64, width int, k int) ([]vec.Vec2, error) {
	if k <= 0 || width <= 0 || len(values) != downsample.PointsPerBucket*width {
		return nil, errors.NewInvariantViolation("m4 series has %d values, need 4*width = %d",
			len(values), downsample.PointsPerBucket*width)
	}
	pts := make([]vec.Vec2, len(values))
	for i, v := range values {
		bucket := i / downsample.PointsPerBucket
		x := float64(i) / downsample.PointsPerBucket
		if i%downsample.PointsPerBucket == downsample.LastSlot {
			x = (float64((bucket+1)*k) - 1) / float64(k)
		}
		pts[i] = vec.Vec2{X: x, Y: v}
	}
	return pts, nil
}

// ToPoints and FromPoints convert between chart space polylines and series
// points so that point based downsamplers can run on a layout.
func ToPoints(pts []vec.Vec2) []series.Point {
	result := make([]series.Point, len(pts))
	for i, p := range pts {
		result[i] = series.Point{T: p.X, V: p.Y}
	}
	return result
}

func FromPoints(points []series.Point) []vec.Vec2 {
	result := make([]vec.Vec2, len(points))
	for i, p := range points {
		result[i] = vec.Vec2{X: p.T, Y: p.V}
	}
	return result
}
