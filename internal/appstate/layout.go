package appstate

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/example/tacboard/internal/board"
)

const (
	headerHeight  = 24
	statusHeight  = 24
	toolRowHeight = 24
	headingHeight = 16
	sectionGap    = 4
	swatchSize    = 16
	swatchStep    = 18
	widthRowH     = 16
	iconRowHeight = 2*board.BadgeRadius + 6

	minToolbarWidth = 112
)

// region identifies which part of the window a point falls in.
type region int

const (
	regionNone region = iota
	regionHeader
	regionTool
	regionColor
	regionWidth
	regionIcon
	regionCanvas
	regionShortcut
)

// toolOrder lists the toolbar buttons top to bottom.
var toolOrder = []board.Tool{board.ToolPencil, board.ToolEraser, board.ToolSquare, board.ToolCircle}

var toolLabels = map[board.Tool]string{
	board.ToolPencil: "P:Pencil",
	board.ToolEraser: "E:Eraser",
	board.ToolSquare: "S:Square",
	board.ToolCircle: "C:Circle",
}

// statusShortcut is a clickable entry in the status bar.
type statusShortcut struct {
	label  string
	action string
}

var statusShortcuts = []statusShortcut{
	{label: "^Z:undo", action: "undo"},
	{label: "^L:clear", action: "clear"},
	{label: "[ ]:width", action: "thicker"},
	{label: "Q:quit", action: "quit"},
}

// layout positions every element of the window. It is a value type so the
// paint goroutine can hold its own copy.
type layout struct {
	width, height int
	boardSize     image.Point
	toolbar       int
	colors        int
	widths        int
	icons         []board.CatalogEntry
}

func newLayout(width, height int, boardSize image.Point, icons []board.CatalogEntry) layout {
	return layout{
		width:     width,
		height:    height,
		boardSize: boardSize,
		toolbar:   toolbarWidthFor(icons),
		colors:    paletteLen(),
		widths:    widthsLen(),
		icons:     icons,
	}
}

// toolbarWidthFor makes the toolbar wide enough for the program title, the
// tool labels and the icon labels next to their badges.
func toolbarWidthFor(icons []board.CatalogEntry) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString(programTitle).Ceil() + 8
	for _, lbl := range toolLabels {
		if w := d.MeasureString(lbl).Ceil() + 8; w > max {
			max = w
		}
	}
	for _, e := range icons {
		if w := iconLabelX + d.MeasureString(e.Label).Ceil() + 4; w > max {
			max = w
		}
	}
	if max < minToolbarWidth {
		max = minToolbarWidth
	}
	return max
}

func (l layout) toolRect(i int) image.Rectangle {
	y := headerHeight + i*toolRowHeight
	return image.Rect(0, y, l.toolbar, y+toolRowHeight)
}

func (l layout) toolsEnd() int { return headerHeight + len(toolOrder)*toolRowHeight }

func (l layout) swatchCols() int {
	cols := (l.toolbar - 4) / swatchStep
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (l layout) colorsTop() int { return l.toolsEnd() + sectionGap + headingHeight }

func (l layout) swatchRect(i int) image.Rectangle {
	cols := l.swatchCols()
	x := 4 + (i%cols)*swatchStep
	y := l.colorsTop() + (i/cols)*swatchStep
	return image.Rect(x, y, x+swatchSize, y+swatchSize)
}

func (l layout) colorsEnd() int {
	cols := l.swatchCols()
	rows := (l.colors + cols - 1) / cols
	return l.colorsTop() + rows*swatchStep
}

func (l layout) widthsTop() int { return l.colorsEnd() + sectionGap + headingHeight }

func (l layout) widthRect(i int) image.Rectangle {
	y := l.widthsTop() + i*widthRowH
	return image.Rect(0, y, l.toolbar, y+widthRowH)
}

func (l layout) widthsEnd() int { return l.widthsTop() + l.widths*widthRowH }

func (l layout) iconsTop() int { return l.widthsEnd() + sectionGap + headingHeight }

func (l layout) iconRect(i int) image.Rectangle {
	y := l.iconsTop() + i*iconRowHeight
	return image.Rect(0, y, l.toolbar, y+iconRowHeight)
}

func (l layout) toolbarEnd() int { return l.iconsTop() + len(l.icons)*iconRowHeight }

// headingY returns the baselines of the section headings.
func (l layout) headingY() (colors, widths, icons int) {
	return l.colorsTop() - 3, l.widthsTop() - 3, l.iconsTop() - 3
}

// preferredSize is the window size that shows the board at full scale
// next to the whole toolbar.
func (l layout) preferredSize() image.Point {
	h := l.boardSize.Y + headerHeight
	if t := l.toolbarEnd(); t > h {
		h = t
	}
	return image.Pt(l.toolbar+l.boardSize.X, h+statusHeight)
}

// canvasArea is the space right of the toolbar between header and status
// bar. It is empty, not inverted, when the window is too small for it.
func (l layout) canvasArea() image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(l.toolbar, headerHeight),
		Max: image.Pt(max(l.width, l.toolbar), max(l.height-statusHeight, headerHeight)),
	}
}

// zoom shrinks the board to fit the window but never enlarges it.
func (l layout) zoom() float64 {
	a := l.canvasArea()
	if l.boardSize.X <= 0 || l.boardSize.Y <= 0 || a.Dx() <= 0 || a.Dy() <= 0 {
		return 1
	}
	z := math.Min(float64(a.Dx())/float64(l.boardSize.X), float64(a.Dy())/float64(l.boardSize.Y))
	if z > 1 {
		return 1
	}
	return z
}

// canvasRect is where the board is drawn. It is anchored to the top-left
// corner of the canvas area and never leaves it.
func (l layout) canvasRect() image.Rectangle {
	z := l.zoom()
	area := l.canvasArea()
	min := area.Min
	return image.Rect(min.X, min.Y,
		min.X+int(float64(l.boardSize.X)*z), min.Y+int(float64(l.boardSize.Y)*z)).Intersect(area)
}

// toBoard maps a window point to board coordinates. Points outside the
// canvas map outside the board.
func (l layout) toBoard(p image.Point) image.Point {
	z := l.zoom()
	min := l.canvasArea().Min
	return image.Pt(
		int(math.Floor(float64(p.X-min.X)/z)),
		int(math.Floor(float64(p.Y-min.Y)/z)),
	)
}

func (l layout) shortcutRect(i int) image.Rectangle {
	meas := &font.Drawer{Face: basicfont.Face7x13}
	x := l.toolbar + 4
	y := l.height - statusHeight + 16
	for j := 0; j < len(statusShortcuts); j++ {
		w := meas.MeasureString(statusShortcuts[j].label).Ceil()
		r := image.Rect(x-2, y-14, x+w+2, y+4)
		if j == i {
			return r
		}
		x = r.Max.X + 8
	}
	return image.Rectangle{}
}

func (l layout) statusTextX() int {
	return l.shortcutRect(len(statusShortcuts)-1).Max.X + 16
}

// hit reports the region under p and, for list regions, the item index.
func (l layout) hit(p image.Point) (region, int) {
	switch {
	case p.Y < headerHeight:
		return regionHeader, -1
	case p.Y >= l.height-statusHeight:
		for i := range statusShortcuts {
			if p.In(l.shortcutRect(i)) {
				return regionShortcut, i
			}
		}
		return regionNone, -1
	case p.X < l.toolbar:
		for i := range toolOrder {
			if p.In(l.toolRect(i)) {
				return regionTool, i
			}
		}
		for i := 0; i < l.colors; i++ {
			if p.In(l.swatchRect(i)) {
				return regionColor, i
			}
		}
		for i := 0; i < l.widths; i++ {
			if p.In(l.widthRect(i)) {
				return regionWidth, i
			}
		}
		for i := range l.icons {
			if p.In(l.iconRect(i)) {
				return regionIcon, i
			}
		}
		return regionNone, -1
	case p.In(l.canvasRect()):
		return regionCanvas, -1
	}
	return regionNone, -1
}
