package colorize

import (
	"github.com/kadaan/linedensity/lib/grid"
	"image"
	"image/color"
)

var (
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Colorize maps every cell of g through scale relative to the grid maximum.
// Empty cells are white, as is every cell of a grid whose maximum is 0.
// Row y of the grid is row y of the image.
func Colorize(g *grid.Grid, scale *ColorScale) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	max := g.Max()
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			v := g.At(x, y)
			if v == 0 || max <= 0 {
				img.SetRGBA(x, y, white)
				continue
			}
			img.SetRGBA(x, y, scale.At(v/max))
		}
	}
	return img
}
