// Package render builds the translucent, drop-shadowed sprite that follows the
// pointer while an icon is dragged from the palette onto the board.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow under a sprite.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a soft shadow sized for icon badges.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  3,
		Offset:  image.Pt(3, 4),
		Opacity: 0.45,
	}
}

// Ghost is a sprite ready to be drawn under the pointer.
type Ghost struct {
	Image *image.RGBA
	// Hotspot is the pixel of Image that sits under the pointer.
	Hotspot image.Point
}

// At returns the top-left corner that places the hotspot at p.
func (g Ghost) At(p image.Point) image.Point { return p.Sub(g.Hotspot) }

// DragGhost fades sprite to alpha and gives it a drop shadow. hotspot is the
// pointer position within sprite; it is carried over into the expanded image.
func DragGhost(sprite *image.RGBA, hotspot image.Point, alpha float64, opts ShadowOptions) Ghost {
	if sprite == nil || sprite.Bounds().Empty() {
		return Ghost{}
	}
	faded := Fade(sprite, alpha)
	img, shift := ApplyShadow(faded, opts)
	return Ghost{Image: img, Hotspot: hotspot.Sub(sprite.Bounds().Min).Add(shift)}
}

// Fade returns a copy of img with every pixel scaled by alpha (0..1).
// Pixels are premultiplied, so all four channels scale together.
func Fade(img *image.RGBA, alpha float64) *image.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	if alpha == 1 {
		return out
	}
	for i := range out.Pix {
		out.Pix[i] = uint8(float64(out.Pix[i])*alpha + 0.5)
	}
	return out
}

// ApplyShadow composites img over a blurred copy of its alpha. The result is
// zero-based; shift reports where img's top-left corner ended up.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil {
		return nil, image.Point{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	srcBounds := img.Bounds()
	paddedBounds := srcBounds.Inset(-radius)
	shadowBounds := paddedBounds.Add(opts.Offset)
	compositeBounds := srcBounds.Union(shadowBounds)
	dstRect := compositeBounds.Sub(compositeBounds.Min)

	shift := srcBounds.Min.Sub(compositeBounds.Min)
	shadowOrigin := shadowBounds.Min.Sub(compositeBounds.Min)

	mask := image.NewAlpha(paddedBounds.Sub(paddedBounds.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetAlpha(x-paddedBounds.Min.X, y-paddedBounds.Min.Y, color.Alpha{A: a})
			}
		}
	}
	blurred := boxBlur(mask, radius)

	dst := image.NewRGBA(dstRect)
	if shadowAlpha := uint8(opacity*255 + 0.5); shadowAlpha > 0 {
		draw.DrawMask(dst, blurred.Bounds().Add(shadowOrigin), image.NewUniform(color.RGBA{0, 0, 0, shadowAlpha}), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	}
	draw.Draw(dst, srcBounds.Sub(compositeBounds.Min), img, srcBounds.Min, draw.Over)
	return dst, shift
}

// boxBlur runs a separable box filter of the given radius over the coverage
// in src.
func boxBlur(src *image.Alpha, radius int) *image.Alpha {
	out := image.NewAlpha(src.Bounds())
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewAlpha(src.Bounds())
	blurPass(src.Pix, tmp.Pix, w, h, 1, src.Stride, radius)
	blurPass(tmp.Pix, out.Pix, h, w, tmp.Stride, 1, radius)
	return out
}

// blurPass averages n samples along each of m lines. step moves along a line
// and lineStep moves between lines.
func blurPass(src, dst []uint8, n, m, step, lineStep, radius int) {
	prefix := make([]int, n+1)
	for line := 0; line < m; line++ {
		base := line * lineStep
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + int(src[base+i*step])
		}
		for i := 0; i < n; i++ {
			lo := max(i-radius, 0)
			hi := min(i+radius, n-1)
			dst[base+i*step] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
		}
	}
}
