package raster

import (
	"github.com/kadaan/linedensity/lib/grid"
	"golang.org/x/image/vector"
	"image"
	"image/color"
	"image/draw"
	"math"
	"seehuhn.de/go/geom/vec"
)

const (
	lineWidth           = 1.0
	zeroLengthThreshold = 1e-9
)

// antiAliased strokes every segment as a one pixel wide rectangle with
// square caps and adds the exact area coverage of each pixel.
type antiAliased struct {
	r       *vector.Rasterizer
	src     image.Image
	scratch []uint8
	clamped []vec.Vec2
}

func newAntiAliased() *antiAliased {
	return &antiAliased{
		r:   vector.NewRasterizer(1, 1),
		src: image.NewUniform(color.Alpha{A: 0xff}),
	}
}

// DrawPolyline keeps the whole stroke of a sample on the chart range inside
// the grid rows.
func (a *antiAliased) DrawPolyline(g *grid.Grid, pts []vec.Vec2) {
	a.clamped = clampRows(a.clamped, pts, g.Height, lineWidth/2, float64(g.Height)-lineWidth/2)
	for i := 0; i+1 < len(a.clamped); i++ {
		a.drawSegment(g, a.clamped[i], a.clamped[i+1])
	}
}

func (a *antiAliased) drawSegment(g *grid.Grid, p0 vec.Vec2, p1 vec.Vec2) {
	d := p1.Sub(p0)
	t := vec.Vec2{X: 1, Y: 0}
	if length := d.Length(); length >= zeroLengthThreshold {
		t = d.Mul(1 / length)
	}
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(lineWidth / 2)
	ext := t.Mul(lineWidth / 2)
	corners := [4]vec.Vec2{
		p0.Sub(ext).Add(n),
		p1.Add(ext).Add(n),
		p1.Add(ext).Sub(n),
		p0.Sub(ext).Sub(n),
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	x0, y0 := int(math.Floor(minX)), int(math.Floor(minY))
	x1, y1 := int(math.Ceil(maxX)), int(math.Ceil(maxY))
	if x1 <= 0 || y1 <= 0 || x0 >= g.Width || y0 >= g.Height {
		return
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, g.Width), min(y1, g.Height)
	w, h := x1-x0, y1-y0

	if cap(a.scratch) < w*h {
		a.scratch = make([]uint8, w*h)
	}
	mask := &image.Alpha{
		Pix:    a.scratch[:w*h],
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}

	a.r.Reset(w, h)
	a.r.DrawOp = draw.Src
	origin := vec.Vec2{X: float64(x0), Y: float64(y0)}
	for i, c := range corners {
		local := c.Sub(origin)
		if i == 0 {
			a.r.MoveTo(float32(local.X), float32(local.Y))
		} else {
			a.r.LineTo(float32(local.X), float32(local.Y))
		}
	}
	a.r.ClosePath()
	a.r.Draw(mask, mask.Bounds(), a.src, image.Point{})

	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, coverage := range row {
			if coverage == 0 {
				continue
			}
			g.Add(x0+x, y0+y, float64(coverage)/0xff)
		}
	}
}
