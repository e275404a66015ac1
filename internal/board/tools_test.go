package board

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTool(t *testing.T) {
	for name, want := range map[string]Tool{
		"pencil":    ToolPencil,
		" Eraser ":  ToolEraser,
		"square":    ToolSquare,
		"rectangle": ToolSquare,
		"circle":    ToolCircle,
		"pen":       ToolPencil,
	} {
		got, err := ParseTool(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseTool("lasso")
	assert.Error(t, err)
}

func TestToolKinds(t *testing.T) {
	assert.True(t, ToolPencil.Freehand())
	assert.True(t, ToolEraser.Freehand())
	assert.False(t, ToolSquare.Freehand())
	assert.True(t, ToolCircle.Shape())
	assert.False(t, ToolIcon.Shape())
	assert.False(t, ToolIcon.Freehand())
	assert.Equal(t, "Tool(9)", Tool(9).String())
}

func TestRadiusFrom(t *testing.T) {
	assert.Equal(t, 5, RadiusFrom(image.Pt(0, 0), image.Pt(3, 4)))
	assert.Equal(t, 5, RadiusFrom(image.Pt(10, 10), image.Pt(7, 6)))
	assert.Equal(t, 0, RadiusFrom(image.Pt(2, 2), image.Pt(2, 2)))
}

func TestRectFromAnyDirection(t *testing.T) {
	want := image.Rect(50, 50, 100, 100)
	assert.Equal(t, want, RectFrom(image.Pt(50, 50), image.Pt(100, 100)))
	assert.Equal(t, want, RectFrom(image.Pt(100, 100), image.Pt(50, 50)))
	assert.Equal(t, want, RectFrom(image.Pt(50, 100), image.Pt(100, 50)))
	assert.Equal(t, want, RectFrom(image.Pt(100, 50), image.Pt(50, 100)))
}

func TestDrawRingIsHollow(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	drawRing(img, 30, 30, 20, red, 2)
	assert.Equal(t, red, img.RGBAAt(50, 30))
	assert.Equal(t, red, img.RGBAAt(30, 10))
	assert.Zero(t, img.RGBAAt(30, 30).A)
}

func TestDrawRectOutlineIsHollow(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	drawRectOutline(img, image.Rect(10, 10, 40, 30), red, 1)
	assert.Equal(t, red, img.RGBAAt(10, 10))
	assert.Equal(t, red, img.RGBAAt(40, 30))
	assert.Equal(t, red, img.RGBAAt(25, 10))
	assert.Zero(t, img.RGBAAt(25, 20).A)
}

func TestDrawLineClipsOutsideBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.NotPanics(t, func() { drawLine(img, -20, -20, 30, 30, red, 5) })
	assert.Equal(t, red, img.RGBAAt(5, 5))
}
