package series

import (
	"github.com/kadaan/linedensity/lib/errors"
	"math"
)

// Raw is one ingested source: its samples in source order, before any
// scaling. T is the source timestamp.
type Raw struct {
	Name   string
	Points []Point
}

// QueryWindow is the [Start, End] timestamp range mapped onto the chart
// columns of irregular series.
type QueryWindow struct {
	Start float64
	End   float64
}

// Snap moves End outward so that End-Start is a whole multiple of 2*width,
// keeping column boundaries aligned to whole buckets.
func (w QueryWindow) Snap(width int) QueryWindow {
	step := 2 * float64(width)
	return QueryWindow{
		Start: w.Start,
		End:   math.Ceil((w.End-w.Start)/step)*step + w.Start,
	}
}

// Contains reports whether t lies in [Start, End].
func (w QueryWindow) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

// Position maps timestamp t into [0, width).
func (w QueryWindow) Position(t float64, width int) float64 {
	return (t - w.Start) / (w.End - w.Start) * float64(width)
}

type IngestConfig struct {
	Width       int
	Height      int
	K           int
	QueryWindow *QueryWindow
}

type IngestedSource struct {
	series []Series
	extent Extent
}

// NewIngestedSource keeps the first width*k samples of every source and
// rescales all values into [0, height] using the minimum and maximum seen
// across every source. With a query window the series are irregular: samples
// outside the window are dropped and the remaining timestamps are mapped into
// chart columns. Otherwise the sample index is the position.
func NewIngestedSource(raws []Raw, c IngestConfig) (*IngestedSource, error) {
	if c.Width <= 0 || c.Height <= 0 || c.K <= 0 {
		return nil, errors.NewConfigError("ingested source needs positive width, height and k")
	}
	if len(raws) == 0 {
		return nil, errors.NewDataError("no sources to ingest")
	}
	var window QueryWindow
	if c.QueryWindow != nil {
		if c.QueryWindow.End <= c.QueryWindow.Start {
			return nil, errors.NewConfigError("query end %v is not after query start %v", c.QueryWindow.End, c.QueryWindow.Start)
		}
		window = c.QueryWindow.Snap(c.Width)
	}

	if c.QueryWindow != nil {
		raws = withinWindow(raws, *c.QueryWindow)
	}

	n := c.Width * c.K
	extent := EmptyExtent()
	for _, raw := range raws {
		if len(raw.Points) < n {
			return nil, errors.NewDataError("source %q has %d samples, need width*k = %d", raw.Name, len(raw.Points), n)
		}
		local := EmptyExtent()
		for _, p := range raw.Points[:n] {
			if math.IsNaN(p.V) || math.IsInf(p.V, 0) {
				return nil, errors.NewDataError("source %q has non-finite value %v at t=%v", raw.Name, p.V, p.T)
			}
			local = local.Observe(p.V)
		}
		extent = extent.Merge(local)
	}

	height := float64(c.Height)
	result := make([]Series, len(raws))
	for i, raw := range raws {
		points := make([]Point, n)
		for j, p := range raw.Points[:n] {
			t := float64(j)
			if c.QueryWindow != nil {
				t = window.Position(p.T, c.Width)
			}
			points[j] = Point{T: t, V: extent.Scale(p.V, height)}
		}
		result[i] = Series{
			Name:    raw.Name,
			Points:  points,
			Regular: c.QueryWindow == nil,
		}
	}
	return &IngestedSource{
		series: result,
		extent: extent,
	}, nil
}

func withinWindow(raws []Raw, window QueryWindow) []Raw {
	result := make([]Raw, len(raws))
	for i, raw := range raws {
		points := make([]Point, 0, len(raw.Points))
		for _, p := range raw.Points {
			if window.Contains(p.T) {
				points = append(points, p)
			}
		}
		result[i] = Raw{Name: raw.Name, Points: points}
	}
	return result
}

func (s *IngestedSource) Len() int {
	return len(s.series)
}

func (s *IngestedSource) Series(i int) (Series, error) {
	if i < 0 || i >= len(s.series) {
		return Series{}, errors.NewInvariantViolation("series index %d out of range [0, %d)", i, len(s.series))
	}
	return s.series[i], nil
}

// Extent is the global value range used for scaling.
func (s *IngestedSource) Extent() Extent {
	return s.extent
}
