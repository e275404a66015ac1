package board

import (
	"image"
	"image/color"
	"math"
)

// stampDisc paints a round brush tip of diameter thick centred at (x, y).
func stampDisc(img *image.RGBA, x, y, thick int, col color.RGBA) {
	if thick <= 1 {
		setPixel(img, x, y, col)
		return
	}
	r := float64(thick) / 2
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				setPixel(img, x+dx, y+dy, col)
			}
		}
	}
}

func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, col)
	}
}

// drawLine walks a Bresenham line and stamps the brush at every step.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA, thick int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		stampDisc(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// drawRectOutline strokes rect with both corners inclusive, so a rectangle
// dragged between two points touches both of them.
func drawRectOutline(img *image.RGBA, rect image.Rectangle, col color.RGBA, thick int) {
	r := rect.Canon()
	drawLine(img, r.Min.X, r.Min.Y, r.Max.X, r.Min.Y, col, thick)
	drawLine(img, r.Max.X, r.Min.Y, r.Max.X, r.Max.Y, col, thick)
	drawLine(img, r.Max.X, r.Max.Y, r.Min.X, r.Max.Y, col, thick)
	drawLine(img, r.Min.X, r.Max.Y, r.Min.X, r.Min.Y, col, thick)
}

// drawRing strokes a full circle of radius r. Pixels whose distance to the
// centre lies within half the stroke width of r are painted.
func drawRing(img *image.RGBA, cx, cy, r int, col color.RGBA, thick int) {
	if thick < 1 {
		thick = 1
	}
	half := float64(thick) / 2
	if thick == 1 {
		half = 0.5
	}
	reach := r + int(math.Ceil(half))
	box := image.Rect(cx-reach, cy-reach, cx+reach+1, cy+reach+1).Intersect(img.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			d := math.Hypot(float64(x-cx), float64(y-cy))
			if math.Abs(d-float64(r)) <= half {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

func drawFilledCircle(img *image.RGBA, cx, cy, r int, col color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setPixel(img, cx+dx, cy+dy, col)
			}
		}
	}
}

// contrastText picks black or white for text drawn over col.
func contrastText(col color.RGBA) color.RGBA {
	brightness := 0.299*float64(col.R) + 0.587*float64(col.G) + 0.114*float64(col.B)
	if brightness < 150 {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{0, 0, 0, 255}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
