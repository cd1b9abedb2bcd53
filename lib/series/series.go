package series

import (
	"math"
)

// Point is one sample of a series. For regular series T is the dense
// integer index; for irregular series it is a position already mapped into
// chart columns.
type Point struct {
	T float64
	V float64
}

type Series struct {
	Name    string
	Points  []Point
	Regular bool
}

func (s Series) Len() int {
	return len(s.Points)
}

func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.V
	}
	return values
}

// Source produces the series of one run. Series must be safe to call
// concurrently for distinct indexes.
type Source interface {
	Len() int
	Series(i int) (Series, error)
}

// Extent is the value range seen across series. Merge is commutative and
// associative with EmptyExtent as identity, so per-series extents can be
// folded in any order.
type Extent struct {
	Min float64
	Max float64
}

func EmptyExtent() Extent {
	return Extent{Min: math.Inf(1), Max: math.Inf(-1)}
}

func (e Extent) Observe(v float64) Extent {
	return Extent{Min: math.Min(e.Min, v), Max: math.Max(e.Max, v)}
}

func (e Extent) Merge(o Extent) Extent {
	return Extent{Min: math.Min(e.Min, o.Min), Max: math.Max(e.Max, o.Max)}
}

func (e Extent) Empty() bool {
	return e.Min > e.Max
}

// Scale maps v linearly from the extent into [0, height]. A degenerate
// extent maps every value to 0.
func (e Extent) Scale(v float64, height float64) float64 {
	span := e.Max - e.Min
	if span == 0 {
		return 0
	}
	return (v - e.Min) / span * height
}
