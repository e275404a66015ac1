package board

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceSnapshotRoundTrip(t *testing.T) {
	s := NewSurface(image.Pt(40, 30), DefaultFallback)
	drawLine(s.Image(), 0, 0, 39, 29, color.RGBA{200, 10, 10, 255}, 3)

	before := s.Clone()
	require.NoError(t, s.Restore(s.Snapshot()))
	assert.Equal(t, before.Pix, s.Image().Pix)
}

func TestSurfaceSnapshotIsCopy(t *testing.T) {
	s := NewSurface(image.Pt(10, 10), DefaultFallback)
	snap := s.Snapshot()
	s.Image().SetRGBA(5, 5, color.RGBA{255, 255, 255, 255})

	require.NoError(t, s.Restore(snap))
	assert.Equal(t, DefaultFallback, s.Image().RGBAAt(5, 5))
}

func TestSurfaceRestoreWrongSize(t *testing.T) {
	s := NewSurface(image.Pt(10, 10), DefaultFallback)
	err := s.Restore(make([]byte, 12))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSnapshotSize))
}

func TestSurfaceResetFills(t *testing.T) {
	fill := color.RGBA{1, 2, 3, 255}
	s := NewSurface(image.Pt(4, 3), fill)
	assert.Equal(t, image.Pt(4, 3), s.Size())
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, fill, s.Image().RGBAAt(x, y))
		}
	}
}

func TestSurfaceCompositeKeepsFillUnderTransparency(t *testing.T) {
	s := NewSurface(image.Pt(8, 8), DefaultFallback)
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	s.Composite(src)
	assert.Equal(t, DefaultFallback, s.Image().RGBAAt(3, 3))

	blue := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(blue.Pix); i += 4 {
		blue.Pix[i+2], blue.Pix[i+3] = 255, 255
	}
	s.Reset(image.Pt(8, 8))
	s.Composite(blue)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, s.Image().RGBAAt(4, 4))
}
