package raster

import (
	"github.com/kadaan/linedensity/lib/grid"
	"math"
	"seehuhn.de/go/geom/vec"
)

type bresenham struct {
	clamped []vec.Vec2
}

func (b *bresenham) DrawPolyline(g *grid.Grid, pts []vec.Vec2) {
	b.clamped = clampRows(b.clamped, pts, g.Height, 0, math.Nextafter(float64(g.Height), 0))
	for i := 0; i+1 < len(b.clamped); i++ {
		p0, p1 := b.clamped[i], b.clamped[i+1]
		b.drawSegment(g, p0.X, p0.Y, p1.X, p1.Y)
	}
}

// drawSegment walks the segment along its major axis starting from the
// floored endpoints and adds one unit to every in-bounds pixel visited.
func (b *bresenham) drawSegment(g *grid.Grid, x0, y0, x1, y1 float64) {
	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := math.Abs(y1 - y0)
	yStep := -1
	if y0 < y1 {
		yStep = 1
	}
	e := dx / 2
	y := int(math.Floor(y0))
	endX := int(math.Floor(x1))
	for x := int(math.Floor(x0)); x <= endX; x++ {
		px, py := x, y
		if steep {
			px, py = y, x
		}
		if g.InBounds(px, py) {
			g.Add(px, py, 1)
		}
		e -= dy
		if e < 0 {
			y += yStep
			e += dx
		}
	}
}
