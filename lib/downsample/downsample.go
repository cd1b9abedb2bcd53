package downsample

import (
	"github.com/kadaan/linedensity/lib/series"
	"math"
)

type Downsampler interface {
	Downsample(points []series.Point, targetPointCount int) ([]series.Point, error)
}

type point struct {
	X float64
	Y float64
}

func calculateAverageDataPoint(points []series.Point) (avg point) {
	for _, p := range points {
		avg.X += p.T
		avg.Y += p.V
	}
	l := float64(len(points))
	avg.X /= l
	avg.Y /= l
	return avg
}

func calculateTriangleArea(pa series.Point, pb point, pc series.Point) float64 {
	area := ((pa.T-pc.T)*(pb.Y-pa.V) - (pa.T-pb.X)*(pc.V-pa.V)) * 0.5
	return math.Abs(area)
}
