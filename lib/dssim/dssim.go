package dssim

import (
	"github.com/kadaan/linedensity/lib/errors"
	"golang.org/x/image/draw"
	"image"
)

const (
	WindowSize = 7
	k1         = 0.01
	k2         = 0.03
)

// SSIM returns the mean structural similarity of two images. b is resized to
// the size of a, both are reduced to luma in [0,1] and compared with a
// uniform 7x7 window using sample covariance. The dynamic range is taken
// from b; a flat b uses a range of 1. Only windows that fit entirely inside
// the image contribute to the mean.
func SSIM(a image.Image, b image.Image) (float64, error) {
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	if w < WindowSize || h < WindowSize {
		return 0, errors.NewDataError("images must be at least %dx%d, got %dx%d", WindowSize, WindowSize, w, h)
	}
	if b.Bounds().Dx() == 0 || b.Bounds().Dy() == 0 {
		return 0, errors.NewDataError("cannot compare against an empty image")
	}
	x := luma(a)
	y := luma(resize(b, w, h))

	min, max := y.pix[0], y.pix[0]
	for _, v := range y.pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	dataRange := max - min
	if dataRange == 0 {
		dataRange = 1
	}
	c1 := (k1 * dataRange) * (k1 * dataRange)
	c2 := (k2 * dataRange) * (k2 * dataRange)

	sx := newIntegral(x, x, identity)
	sy := newIntegral(y, y, identity)
	sxx := newIntegral(x, x, product)
	syy := newIntegral(y, y, product)
	sxy := newIntegral(x, y, product)

	n := float64(WindowSize * WindowSize)
	covNorm := n / (n - 1)
	total := 0.0
	count := 0
	for top := 0; top+WindowSize <= h; top++ {
		for left := 0; left+WindowSize <= w; left++ {
			ux := sx.window(left, top) / n
			uy := sy.window(left, top) / n
			vx := covNorm * (sxx.window(left, top)/n - ux*ux)
			vy := covNorm * (syy.window(left, top)/n - uy*uy)
			vxy := covNorm * (sxy.window(left, top)/n - ux*uy)
			num := (2*ux*uy + c1) * (2*vxy + c2)
			den := (ux*ux + uy*uy + c1) * (vx + vy + c2)
			total += num / den
			count++
		}
	}
	return total / float64(count), nil
}

// DSSIM maps an SSIM score onto [0,1] with identical images scoring 1.
func DSSIM(a image.Image, b image.Image) (float64, error) {
	s, err := SSIM(a, b)
	if err != nil {
		return 0, err
	}
	return FromSSIM(s), nil
}

func FromSSIM(s float64) float64 {
	return 1 - (1-s)/2
}

func resize(src image.Image, w int, h int) image.Image {
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

type plane struct {
	width  int
	height int
	pix    []float64
}

func (p *plane) at(x int, y int) float64 {
	return p.pix[y*p.width+x]
}

func luma(img image.Image) *plane {
	bounds := img.Bounds()
	p := &plane{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pix:    make([]float64, bounds.Dx()*bounds.Dy()),
	}
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			p.pix[y*p.width+x] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
		}
	}
	return p
}

func identity(a float64, _ float64) float64 {
	return a
}

func product(a float64, b float64) float64 {
	return a * b
}

// integral is a summed-area table over f(a, b) with a zero border row and column.
type integral struct {
	stride int
	sums   []float64
}

func newIntegral(a *plane, b *plane, f func(float64, float64) float64) *integral {
	stride := a.width + 1
	s := &integral{stride: stride, sums: make([]float64, stride*(a.height+1))}
	for y := 0; y < a.height; y++ {
		row := 0.0
		for x := 0; x < a.width; x++ {
			row += f(a.at(x, y), b.at(x, y))
			s.sums[(y+1)*stride+x+1] = s.sums[y*stride+x+1] + row
		}
	}
	return s
}

func (s *integral) window(left int, top int) float64 {
	right, bottom := left+WindowSize, top+WindowSize
	return s.sums[bottom*s.stride+right] - s.sums[top*s.stride+right] - s.sums[bottom*s.stride+left] + s.sums[top*s.stride+left]
}
