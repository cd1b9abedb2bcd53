package raster

import (
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/kadaan/linedensity/lib/grid"
	"math"
	"seehuhn.de/go/geom/vec"
	"strings"
)

// Rasterizer draws a polyline into a grid, adding coverage to every pixel a
// segment passes through. Coverage accumulates: a pixel touched by several
// segments receives the sum of their contributions.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer interface {
	DrawPolyline(g *grid.Grid, pts []vec.Vec2)
}

type Kind string

const (
	Bresenham   Kind = "bresenham"
	AntiAliased Kind = "antialiased"
)

var kinds = []Kind{Bresenham, AntiAliased}

// String is used both by fmt.Print and by Cobra in help text
func (k *Kind) String() string {
	return string(*k)
}

// Set must have pointer receiver, so it doesn't change the value of a copy
func (k *Kind) Set(v string) error {
	for _, kind := range kinds {
		if strings.EqualFold(v, string(kind)) {
			*k = kind
			return nil
		}
	}
	return errors.NewConfigError("unknown rasterizer %q, must be one of %q or %q", v, Bresenham, AntiAliased)
}

// Type is only used in help text
func (k *Kind) Type() string {
	return "rasterizer"
}

func NewRasterizer(kind Kind) (Rasterizer, error) {
	switch kind {
	case Bresenham, "":
		return &bresenham{}, nil
	case AntiAliased:
		return newAntiAliased(), nil
	default:
		return nil, errors.NewConfigError("unknown rasterizer %q", string(kind))
	}
}

// clampRows copies pts into dst, limiting the y of every point on the closed
// chart range [0, height] to [lo, hi]. Samples on the top edge of the chart
// belong to the last row. Points off the chart are copied unchanged.
func clampRows(dst []vec.Vec2, pts []vec.Vec2, height int, lo float64, hi float64) []vec.Vec2 {
	dst = dst[:0]
	h := float64(height)
	for _, p := range pts {
		if p.Y >= 0 && p.Y <= h {
			p.Y = math.Max(lo, math.Min(hi, p.Y))
		}
		dst = append(dst, p)
	}
	return dst
}
