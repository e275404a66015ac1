package board

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Tool identifies how pointer gestures are interpreted.
type Tool int

const (
	ToolPencil Tool = iota
	ToolEraser
	ToolSquare
	ToolCircle
	// ToolIcon is entered when an icon drag starts from the palette. Presses
	// on the canvas do nothing in this state; placement happens on drop.
	ToolIcon
)

var toolNames = []string{"pencil", "eraser", "square", "circle", "icon"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool resolves a tool by name.
func ParseTool(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range toolNames {
		if s == n {
			return Tool(i), nil
		}
	}
	switch n {
	case "pen", "draw":
		return ToolPencil, nil
	case "rect", "rectangle":
		return ToolSquare, nil
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Freehand reports whether the tool paints along the pointer path.
func (t Tool) Freehand() bool { return t == ToolPencil || t == ToolEraser }

// Shape reports whether the tool previews a shape between press and release.
func (t Tool) Shape() bool { return t == ToolSquare || t == ToolCircle }

// ToolState is a read-only view of the toolbar selection and the gesture in
// progress.
type ToolState struct {
	Tool      Tool
	Color     color.RGBA
	BrushSize int
	// PendingOrigin is set while a square or circle gesture is held down.
	PendingOrigin *image.Point
	// PendingIcon is the catalog type being dragged in ToolIcon.
	PendingIcon string
}

// gesture tracks one press-move-release sequence.
type gesture struct {
	active   bool
	tool     Tool
	origin   image.Point
	last     image.Point
	baseline []byte
}
