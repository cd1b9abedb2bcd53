package downsample

import (
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/series"
)

// PointsPerBucket is the number of values M4 keeps per pixel column.
const PointsPerBucket = 4

// Slot positions of the values of one bucket in flattened M4 output. The
// order is fixed: first, last, min, max.
const (
	FirstSlot = iota
	LastSlot
	MinSlot
	MaxSlot
)

// Bucket holds the representative values of one pixel column.
type Bucket struct {
	First float64
	Last  float64
	Min   float64
	Max   float64

	firstIndex int
	lastIndex  int
	minIndex   int
	maxIndex   int
}

// Values returns the bucket in slot order.
func (b Bucket) Values() [PointsPerBucket]float64 {
	return [PointsPerBucket]float64{b.First, b.Last, b.Min, b.Max}
}

func (b Bucket) indexes() [PointsPerBucket]int {
	return [PointsPerBucket]int{b.firstIndex, b.lastIndex, b.minIndex, b.maxIndex}
}

// M4 splits values into width equal index ranges of len(values)/width
// samples and extracts first, last, min and max of each. Samples past
// width*(len(values)/width) are not part of any bucket. Ties for min and
// max keep the first occurrence.
func M4(values []float64, width int) ([]Bucket, error) {
	if width <= 0 {
		return nil, errors.NewInvariantViolation("m4 width must be positive, got %d", width)
	}
	bucketLength := len(values) / width
	if bucketLength == 0 {
		return nil, errors.NewInvariantViolation("m4 needs at least %d values, got %d", width, len(values))
	}
	buckets := make([]Bucket, width)
	for i := range buckets {
		start := bucketLength * i
		end := bucketLength * (i + 1)
		b := Bucket{
			First:      values[start],
			Last:       values[end-1],
			Min:        values[start],
			Max:        values[start],
			firstIndex: start,
			lastIndex:  end - 1,
			minIndex:   start,
			maxIndex:   start,
		}
		for j := start + 1; j < end; j++ {
			if values[j] < b.Min {
				b.Min = values[j]
				b.minIndex = j
			}
			if values[j] > b.Max {
				b.Max = values[j]
				b.maxIndex = j
			}
		}
		buckets[i] = b
	}
	return buckets, nil
}

// M4Values flattens the buckets of values into 4*width values in slot order.
func M4Values(values []float64, width int) ([]float64, error) {
	buckets, err := M4(values, width)
	if err != nil {
		return nil, err
	}
	result := make([]float64, 0, PointsPerBucket*width)
	for _, b := range buckets {
		v := b.Values()
		result = append(result, v[:]...)
	}
	return result, nil
}

func NewM4Downsampler() Downsampler {
	return &m4{}
}

type m4 struct {
}

// Downsample reduces points to targetPointCount/4 buckets. The returned
// points keep the position of the source sample each value came from, in
// slot order.
func (d *m4) Downsample(points []series.Point, targetPointCount int) ([]series.Point, error) {
	if targetPointCount%PointsPerBucket != 0 {
		return nil, errors.NewInvariantViolation("m4 target %d is not a multiple of %d", targetPointCount, PointsPerBucket)
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.V
	}
	buckets, err := M4(values, targetPointCount/PointsPerBucket)
	if err != nil {
		return nil, err
	}
	result := make([]series.Point, 0, targetPointCount)
	for _, b := range buckets {
		for _, idx := range b.indexes() {
			result = append(result, points[idx])
		}
	}
	return result, nil
}
