package board

import (
	"image"
	"math"
)

const (
	// DefaultMaxWidth bounds the surface width when fitting a background.
	DefaultMaxWidth = 1024
	// DefaultMaxHeight bounds the surface height when fitting a background.
	DefaultMaxHeight = 768
)

// DefaultMaxSize returns the default bounding box for the surface.
func DefaultMaxSize() image.Point { return image.Pt(DefaultMaxWidth, DefaultMaxHeight) }

// FitSize scales natural down so that it fits within max while keeping its
// aspect ratio. Sizes that already fit are returned unchanged; a background
// is never scaled up.
func FitSize(natural, max image.Point) image.Point {
	if natural.X <= 0 || natural.Y <= 0 || max.X <= 0 || max.Y <= 0 {
		return image.Point{}
	}
	scale := 1.0
	if sx := float64(max.X) / float64(natural.X); sx < scale {
		scale = sx
	}
	if sy := float64(max.Y) / float64(natural.Y); sy < scale {
		scale = sy
	}
	if scale == 1 {
		return natural
	}
	w := clampDim(int(math.Round(float64(natural.X)*scale)), max.X)
	h := clampDim(int(math.Round(float64(natural.Y)*scale)), max.Y)
	return image.Pt(w, h)
}

func clampDim(v, max int) int {
	if v < 1 {
		return 1
	}
	if v > max {
		return max
	}
	return v
}
