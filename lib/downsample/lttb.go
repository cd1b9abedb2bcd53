package downsample

import (
	"github.com/kadaan/linedensity/lib/series"
	"math"
)

func NewLttbDownsampler() Downsampler {
	return &lttb{}
}

type lttb struct {
}

// Downsample keeps the first and last point and, for every bucket in
// between, the point forming the largest triangle with the previously kept
// point and the average of the next bucket.
func (d *lttb) Downsample(points []series.Point, targetPointCount int) ([]series.Point, error) {
	if targetPointCount >= len(points) || targetPointCount < 3 {
		result := make([]series.Point, len(points))
		copy(result, points)
		return result, nil
	}

	bucketSize := float64(len(points)-2) / float64(targetPointCount-2)
	sourcePointCount := len(points)

	sampled := make([]series.Point, 0, targetPointCount)
	sampled = append(sampled, points[0])

	bucketLow := 1
	bucketMiddle := int(math.Floor(bucketSize)) + 1

	var prevMaxAreaPoint int
	for i := 0; i < targetPointCount-2; i++ {
		bucketHigh := int(math.Floor(float64(i+2)*bucketSize)) + 1
		if bucketHigh >= sourcePointCount-1 {
			bucketHigh = sourcePointCount - 2
		}

		avgPoint := calculateAverageDataPoint(points[bucketMiddle : bucketHigh+1])

		pointA := points[prevMaxAreaPoint]
		maxArea := -1.0
		maxAreaPoint := bucketLow
		for j := bucketLow; j < bucketMiddle; j++ {
			area := calculateTriangleArea(pointA, avgPoint, points[j])
			if area > maxArea {
				maxArea = area
				maxAreaPoint = j
			}
		}

		sampled = append(sampled, points[maxAreaPoint])
		prevMaxAreaPoint = maxAreaPoint

		bucketLow = bucketMiddle
		bucketMiddle = bucketHigh
	}

	sampled = append(sampled, points[sourcePointCount-1])
	return sampled, nil
}
