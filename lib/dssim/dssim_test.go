package dssim

import (
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func noise(seed int64, w int, h int) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			v := uint8(rng.Intn(256))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	return img
}

func TestIdenticalImages(t *testing.T) {
	a := noise(1, 32, 24)
	s, err := SSIM(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-9)

	d, err := DSSIM(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d, 1e-9)
}

func TestIdenticalFlatImages(t *testing.T) {
	a := image.NewUniform(color.White)
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, a.C)
		}
	}
	s, err := SSIM(img, img)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, 1e-9)
}

func TestDifferentImagesScoreLower(t *testing.T) {
	a := noise(1, 32, 32)
	b := noise(2, 32, 32)
	s, err := SSIM(a, b)
	require.NoError(t, err)
	assert.Less(t, s, 0.5)

	d, err := DSSIM(a, b)
	require.NoError(t, err)
	assert.InDelta(t, FromSSIM(s), d, 1e-12)
	assert.Less(t, d, 1.0)
}

func TestResizesSecondImage(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 16, 16))
	b := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			c := color.RGBA{A: 0xff}
			if x < 16 {
				c = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			}
			b.SetRGBA(x, y, c)
			if x < 16 && y < 16 {
				ac := color.RGBA{A: 0xff}
				if x < 8 {
					ac = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
				}
				a.SetRGBA(x, y, ac)
			}
		}
	}
	s, err := SSIM(a, b)
	require.NoError(t, err)
	assert.Greater(t, s, 0.5)
}

func TestTooSmall(t *testing.T) {
	a := noise(1, 6, 20)
	_, err := SSIM(a, a)
	assert.True(t, errors.IsDataError(err))
}
