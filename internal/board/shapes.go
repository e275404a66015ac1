package board

import (
	"image"
	"image/color"
	"math"
)

// RectFrom returns the axis-aligned box spanned by two drag points. Dragging
// in any direction between the same two points yields the same box.
func RectFrom(origin, p image.Point) image.Rectangle {
	return image.Rectangle{Min: origin, Max: p}.Canon()
}

// RadiusFrom returns the circle radius for a drag from origin to p.
func RadiusFrom(origin, p image.Point) int {
	d := p.Sub(origin)
	return int(math.Round(math.Hypot(float64(d.X), float64(d.Y))))
}

// strokeSegment paints one freehand segment.
func strokeSegment(img *image.RGBA, from, to image.Point, col color.RGBA, thick int) {
	drawLine(img, from.X, from.Y, to.X, to.Y, col, thick)
}

// drawShape outlines the shape described by the tool between origin and p.
func drawShape(img *image.RGBA, t Tool, origin, p image.Point, col color.RGBA, thick int) {
	switch t {
	case ToolSquare:
		drawRectOutline(img, RectFrom(origin, p), col, thick)
	case ToolCircle:
		drawRing(img, origin.X, origin.Y, RadiusFrom(origin, p), col, thick)
	}
}

// brush returns the colour and width a freehand tool paints with. The eraser
// paints the fallback tone at twice the brush width.
func brush(t Tool, st ToolState, fill color.RGBA) (color.RGBA, int) {
	if t == ToolEraser {
		return fill, st.BrushSize * 2
	}
	return st.Color, st.BrushSize
}
