package grid

import (
	"encoding/binary"
	"github.com/cespare/xxhash/v2"
	"github.com/kadaan/linedensity/lib/errors"
	"math"
)

// Grid is a width x height field of float coverage values indexed by
// (x, y). Cells are stored column-major so a column is a contiguous slice.
type Grid struct {
	Width  int
	Height int
	Cells  []float64
}

func NewGrid(width int, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.NewInvariantViolation("grid dimensions must be positive, got %dx%d", width, height)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]float64, width*height),
	}, nil
}

func (g *Grid) InBounds(x int, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *Grid) At(x int, y int) float64 {
	return g.Cells[x*g.Height+y]
}

func (g *Grid) Set(x int, y int, v float64) {
	g.Cells[x*g.Height+y] = v
}

func (g *Grid) Add(x int, y int, v float64) {
	g.Cells[x*g.Height+y] += v
}

func (g *Grid) Column(x int) []float64 {
	return g.Cells[x*g.Height : (x+1)*g.Height]
}

func (g *Grid) ColumnSum(x int) float64 {
	var sum float64
	for _, v := range g.Column(x) {
		sum += v
	}
	return sum
}

// NormalizeColumns rescales every column with coverage so that it sums to
// one. Columns with no coverage stay all-zero.
func (g *Grid) NormalizeColumns() {
	for x := 0; x < g.Width; x++ {
		column := g.Column(x)
		var sum float64
		for _, v := range column {
			sum += v
		}
		if sum == 0 {
			continue
		}
		for y := range column {
			column[y] /= sum
		}
	}
}

func (g *Grid) Max() float64 {
	var max float64
	for _, v := range g.Cells {
		if v > max {
			max = v
		}
	}
	return max
}

func (g *Grid) Reset() {
	clear(g.Cells)
}

func (g *Grid) Clone() *Grid {
	cells := make([]float64, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// Checksum fingerprints the cell values. Equal grids have equal checksums.
func (g *Grid) Checksum() uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(g.Width))
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(g.Height))
	_, _ = d.Write(buf[:])
	for _, v := range g.Cells {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Combine folds src into dst by elementwise addition.
func Combine(dst *Grid, src *Grid) error {
	if dst.Width != src.Width || dst.Height != src.Height {
		return errors.NewInvariantViolation("cannot combine %dx%d grid into %dx%d grid",
			src.Width, src.Height, dst.Width, dst.Height)
	}
	for i, v := range src.Cells {
		dst.Cells[i] += v
	}
	return nil
}
