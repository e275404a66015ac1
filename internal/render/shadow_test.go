package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out, shift := ApplyShadow(img, opts)
	if out == nil {
		t.Fatal("expected output image")
	}
	expected := image.Rect(0, 0, 22, 20)
	if !out.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), expected)
	}
	if shift != (image.Point{}) {
		t.Fatalf("content should stay at the origin, shifted by %v", shift)
	}
	// Spot check that the shadow alpha was written near the offset pixel.
	shadowPt := subject.Add(opts.Offset)
	if out.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
	if got := out.RGBAAt(subject.X, subject.Y); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("subject pixel changed: %+v", got)
	}
}

func TestApplyShadowNegativeOffsetShiftsContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	out, shift := ApplyShadow(img, ShadowOptions{Radius: 1, Offset: image.Pt(-3, -2), Opacity: 1})
	if shift != image.Pt(4, 3) {
		t.Fatalf("unexpected shift %v", shift)
	}
	if got := out.RGBAAt(shift.X, shift.Y); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("content not at shift: %+v", got)
	}
}

func TestApplyShadowNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	out, _ := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if !out.Bounds().Eq(img.Bounds()) {
		t.Fatalf("bounds changed unexpectedly: %v vs %v", out.Bounds(), img.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestApplyShadowBlurredAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out, _ := ApplyShadow(img, opts)
	if out.Bounds().Dx() <= img.Bounds().Dx() {
		t.Fatalf("expected wider output bounds")
	}
	// Check that blur spreads alpha beyond the exact offset location.
	base := img.Bounds().Min.Add(opts.Offset)
	baseAlpha := out.RGBAAt(base.X, base.Y).A
	if baseAlpha == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	neighbor := out.RGBAAt(base.X+1, base.Y)
	if neighbor.A == 0 {
		t.Fatalf("expected blurred alpha to reach neighbor, base alpha=%d", baseAlpha)
	}
}

func TestFade(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{200, 100, 0, 255})
	out := Fade(img, 0.5)
	if got := out.RGBAAt(0, 0); got != (color.RGBA{100, 50, 0, 128}) {
		t.Fatalf("unexpected faded pixel %+v", got)
	}
	if img.RGBAAt(0, 0).A != 255 {
		t.Fatal("source modified")
	}
}

func TestDragGhostHotspot(t *testing.T) {
	sprite := image.NewRGBA(image.Rect(0, 0, 33, 33))
	sprite.SetRGBA(16, 16, color.RGBA{255, 255, 255, 255})
	g := DragGhost(sprite, image.Pt(16, 16), 0.5, DefaultShadowOptions())
	if g.Image == nil {
		t.Fatal("expected ghost image")
	}
	if g.Hotspot != image.Pt(16, 16) {
		t.Fatalf("positive shadow offsets keep the hotspot, got %v", g.Hotspot)
	}
	if got := g.Image.RGBAAt(16, 16).A; got != 128 {
		t.Fatalf("hotspot alpha %d", got)
	}
	if at := g.At(image.Pt(100, 50)); at != image.Pt(84, 34) {
		t.Fatalf("unexpected placement %v", at)
	}
	if (DragGhost(nil, image.Point{}, 1, DefaultShadowOptions()) != Ghost{}) {
		t.Fatal("nil sprite should give an empty ghost")
	}
}

func TestShadowFollowsSpriteShape(t *testing.T) {
	sprite := image.NewRGBA(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			sprite.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	out, shift := ApplyShadow(sprite, ShadowOptions{Radius: 3, Offset: image.Pt(3, 4), Opacity: 0.45})
	if shift != (image.Point{}) {
		t.Fatalf("unexpected shift %v", shift)
	}
	edge := out.RGBAAt(12, 8).A
	corner := out.RGBAAt(14, 15).A
	if edge == 0 || edge >= 115 {
		t.Fatalf("shadow edge should be partly covered, alpha %d", edge)
	}
	if corner == 0 || corner >= edge {
		t.Fatalf("shadow should fade towards the corner: edge %d corner %d", edge, corner)
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("sprite pixel changed: %+v", got)
	}
}
