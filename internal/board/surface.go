package board

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// ErrSnapshotSize is returned when a snapshot does not match the surface.
var ErrSnapshotSize = errors.New("snapshot does not match surface size")

// Surface is the flattened raster every tool paints onto.
type Surface struct {
	img  *image.RGBA
	fill color.RGBA
}

// NewSurface returns a surface of the given size filled with fill.
func NewSurface(size image.Point, fill color.RGBA) *Surface {
	s := &Surface{fill: fill}
	s.Reset(size)
	return s
}

// Reset reallocates the raster at size and paints it with the fallback tone.
func (s *Surface) Reset(size image.Point) {
	if size.X < 1 {
		size.X = 1
	}
	if size.Y < 1 {
		size.Y = 1
	}
	s.img = image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.fill), image.Point{}, draw.Src)
}

// Composite scales src over the whole raster. Transparent areas of src keep
// the fallback tone underneath.
func (s *Surface) Composite(src image.Image) {
	xdraw.ApproxBiLinear.Scale(s.img, s.img.Bounds(), src, src.Bounds(), draw.Over, nil)
}

// Fill returns the fallback tone, which is also the eraser colour.
func (s *Surface) Fill() color.RGBA { return s.fill }

// Size returns the raster dimensions.
func (s *Surface) Size() image.Point { return s.img.Bounds().Size() }

// Bounds returns the raster bounds. The origin is always (0, 0).
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Image exposes the live raster. Callers must not retain it across a Reset.
func (s *Surface) Image() *image.RGBA { return s.img }

// Snapshot returns a copy of the raw pixel buffer.
func (s *Surface) Snapshot() []byte {
	out := make([]byte, len(s.img.Pix))
	copy(out, s.img.Pix)
	return out
}

// Restore overwrites the raster with a buffer taken by Snapshot.
func (s *Surface) Restore(pix []byte) error {
	if len(pix) != len(s.img.Pix) {
		return fmt.Errorf("restore %d bytes onto %v: %w", len(pix), s.Size(), ErrSnapshotSize)
	}
	copy(s.img.Pix, pix)
	return nil
}

// Clone returns an independent copy of the raster.
func (s *Surface) Clone() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}
