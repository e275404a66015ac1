package board

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitSize(t *testing.T) {
	max := DefaultMaxSize()
	tests := []struct {
		name    string
		natural image.Point
		want    image.Point
	}{
		{"already fits", image.Pt(800, 600), image.Pt(800, 600)},
		{"exact max", image.Pt(1024, 768), image.Pt(1024, 768)},
		{"wide", image.Pt(2048, 768), image.Pt(1024, 384)},
		{"tall", image.Pt(768, 1536), image.Pt(384, 768)},
		{"same ratio larger", image.Pt(1280, 960), image.Pt(1024, 768)},
		{"tiny", image.Pt(3, 2), image.Pt(3, 2)},
		{"extreme strip", image.Pt(100000, 1), image.Pt(1024, 1)},
		{"zero", image.Point{}, image.Point{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FitSize(tc.natural, max))
		})
	}
}

func TestFitSizePreservesAspect(t *testing.T) {
	max := DefaultMaxSize()
	for w := 50; w <= 5000; w += 137 {
		for h := 40; h <= 4000; h += 211 {
			natural := image.Pt(w, h)
			got := FitSize(natural, max)
			if got.X > max.X || got.Y > max.Y {
				t.Fatalf("FitSize(%v) = %v exceeds %v", natural, got, max)
			}
			if got.X > w || got.Y > h {
				t.Fatalf("FitSize(%v) = %v scaled up", natural, got)
			}
			// One pixel of rounding on either side bounds the ratio error.
			want := float64(w) / float64(h)
			lo := (float64(got.X) - 1) / (float64(got.Y) + 1)
			hi := (float64(got.X) + 1) / math.Max(float64(got.Y)-1, 0.5)
			if want < lo || want > hi {
				t.Fatalf("FitSize(%v) = %v ratio %.4f outside [%.4f, %.4f]", natural, got, want, lo, hi)
			}
		}
	}
}
