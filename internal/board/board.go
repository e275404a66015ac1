package board

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/google/uuid"
)

// ErrUnknownIcon is returned when a drop names a type missing from the catalog.
var ErrUnknownIcon = errors.New("unknown icon type")

// DefaultFallback is the tone painted under the background and used by the eraser.
var DefaultFallback = color.RGBA{30, 30, 30, 255}

const (
	defaultBrushSize = 4
)

var defaultColor = color.RGBA{255, 0, 0, 255}

// Board is a single-user drawing board: a raster over a background image,
// a set of icons drawn above it, and a linear undo history. A Board is not
// safe for concurrent use; one event loop owns it.
type Board struct {
	surface *Surface
	history *History
	icons   []Icon
	catalog *Catalog
	overlay *Overlay

	maxSize image.Point
	tools   ToolState
	gesture gesture
	loaded  bool
	// resume is the tool to return to when icon placement ends.
	resume Tool

	newID func() string
}

// Option configures a Board during creation.
type Option func(*Board)

// WithMaxSize sets the bounding box the background is fitted into.
func WithMaxSize(size image.Point) Option {
	return func(b *Board) {
		if size.X > 0 && size.Y > 0 {
			b.maxSize = size
		}
	}
}

// WithFallback sets the fill tone painted under the background.
func WithFallback(col color.RGBA) Option {
	return func(b *Board) { b.surface.fill = col }
}

// WithCatalog replaces the compiled-in icon catalog. A nil or empty catalog
// is ignored.
func WithCatalog(c *Catalog) Option {
	return func(b *Board) {
		if c != nil && len(c.Entries()) > 0 {
			b.catalog = c
		}
	}
}

// WithTool sets the initial drawing tool. ToolIcon is only entered by a drag
// and is ignored here.
func WithTool(t Tool) Option {
	return func(b *Board) {
		if t != ToolIcon && t >= 0 && int(t) < len(toolNames) {
			b.tools.Tool = t
		}
	}
}

// WithColor sets the initial stroke colour.
func WithColor(col color.RGBA) Option { return func(b *Board) { b.tools.Color = col } }

// WithBrushSize sets the initial stroke width.
func WithBrushSize(size int) Option { return func(b *Board) { b.SetBrushSize(size) } }

// WithIDGenerator overrides how icon ids are minted.
func WithIDGenerator(fn func() string) Option { return func(b *Board) { b.newID = fn } }

// New returns a board that is immediately usable on a blank surface of the
// maximum size. Initialize or Fallback replace it once the background load
// settles.
func New(opts ...Option) *Board {
	b := &Board{
		surface: &Surface{fill: DefaultFallback},
		catalog: DefaultCatalog(),
		maxSize: DefaultMaxSize(),
		tools:   ToolState{Tool: ToolPencil, Color: defaultColor, BrushSize: defaultBrushSize},
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(b)
	}
	b.overlay = NewOverlay(b.catalog)
	b.seed(nil)
	return b
}

// Initialize sizes the surface to the background, paints the fallback tone,
// composites bg over it and makes the result the root of a fresh history.
// Icons and any earlier drawing are discarded. A nil or empty image is
// treated as a failed load.
func (b *Board) Initialize(bg image.Image) {
	if bg == nil || bg.Bounds().Empty() {
		b.Fallback(errors.New("background image is empty"))
		return
	}
	b.seed(bg)
	b.loaded = true
}

// Fallback records a failed background load and seeds the history with a
// blank surface of the maximum size. The board stays fully usable.
func (b *Board) Fallback(err error) {
	log.Printf("background: %v; using blank canvas", err)
	b.seed(nil)
	b.loaded = false
}

func (b *Board) seed(bg image.Image) {
	b.gesture = gesture{}
	b.icons = nil
	size := b.maxSize
	if bg != nil {
		size = FitSize(bg.Bounds().Size(), b.maxSize)
	}
	b.surface.Reset(size)
	if bg != nil {
		b.surface.Composite(bg)
	}
	b.history = NewHistory(Entry{Pixels: b.surface.Snapshot()})
	b.tools.PendingOrigin = nil
}

// Loaded reports whether a background image was composited.
func (b *Board) Loaded() bool { return b.loaded }

// Surface exposes the raster. Icons are not part of it.
func (b *Board) Surface() *Surface { return b.surface }

// Catalog returns the icon catalog in use.
func (b *Board) Catalog() *Catalog { return b.catalog }

// Size returns the surface dimensions.
func (b *Board) Size() image.Point { return b.surface.Size() }

// ToolState returns the current toolbar selection.
func (b *Board) ToolState() ToolState {
	st := b.tools
	if b.gesture.active && b.gesture.tool.Shape() {
		o := b.gesture.origin
		st.PendingOrigin = &o
	}
	return st
}

// SelectTool switches the active tool. A gesture in progress is committed
// first.
func (b *Board) SelectTool(t Tool) {
	b.finishGesture()
	b.tools.Tool = t
	if t != ToolIcon {
		b.tools.PendingIcon = ""
	}
}

// BeginIconDrag enters icon placement for a catalog type. Placement ends
// with Drop or CancelIconDrag, which return to the previous tool.
func (b *Board) BeginIconDrag(kind string) error {
	if _, ok := b.catalog.Lookup(kind); !ok {
		return fmt.Errorf("drag %q: %w", kind, ErrUnknownIcon)
	}
	b.finishGesture()
	if b.tools.Tool != ToolIcon {
		b.resume = b.tools.Tool
	}
	b.tools.Tool = ToolIcon
	b.tools.PendingIcon = kind
	return nil
}

// CancelIconDrag abandons a drag that did not end on the canvas.
func (b *Board) CancelIconDrag() { b.endIconDrag() }

func (b *Board) endIconDrag() {
	if b.tools.Tool == ToolIcon {
		b.tools.Tool = b.resume
	}
	b.tools.PendingIcon = ""
}

// SetColor changes the stroke colour for subsequent gestures.
func (b *Board) SetColor(col color.RGBA) { b.tools.Color = col }

// SetBrushSize changes the stroke width. Widths below one are raised to one.
func (b *Board) SetBrushSize(size int) {
	if size < 1 {
		size = 1
	}
	b.tools.BrushSize = size
}

// Drawing reports whether a pointer gesture is in progress.
func (b *Board) Drawing() bool { return b.gesture.active }

// Press starts a gesture at p.
func (b *Board) Press(p image.Point) {
	b.finishGesture()
	t := b.tools.Tool
	switch {
	case t.Freehand():
		b.gesture = gesture{active: true, tool: t, origin: p, last: p}
		col, w := brush(t, b.tools, b.surface.Fill())
		strokeSegment(b.surface.Image(), p, p, col, w)
	case t.Shape():
		b.gesture = gesture{active: true, tool: t, origin: p, last: p, baseline: b.surface.Snapshot()}
	}
}

// Move extends the gesture to p. Moves without a press are ignored.
func (b *Board) Move(p image.Point) {
	if !b.gesture.active {
		return
	}
	g := &b.gesture
	img := b.surface.Image()
	switch {
	case g.tool.Freehand():
		col, w := brush(g.tool, b.tools, b.surface.Fill())
		strokeSegment(img, g.last, p, col, w)
	case g.tool.Shape():
		if err := b.surface.Restore(g.baseline); err != nil {
			log.Printf("shape preview: %v", err)
			return
		}
		drawShape(img, g.tool, g.origin, p, b.tools.Color, b.tools.BrushSize)
	}
	g.last = p
}

// Release ends the gesture at p and records one history entry. Pointer
// leave should be reported as a release at the last known position.
func (b *Board) Release(p image.Point) {
	if !b.gesture.active {
		return
	}
	if p != b.gesture.last || b.gesture.tool.Shape() {
		b.Move(p)
	}
	b.commit()
}

// Leave ends the gesture at the last pointer position.
func (b *Board) Leave() {
	if !b.gesture.active {
		return
	}
	b.Release(b.gesture.last)
}

func (b *Board) finishGesture() {
	if b.gesture.active {
		b.Leave()
	}
}

func (b *Board) commit() {
	b.gesture = gesture{}
	b.pushHistory()
}

func (b *Board) pushHistory() {
	b.history.Push(Entry{Pixels: b.surface.Snapshot(), Icons: cloneIcons(b.icons)})
}

// Drop places an icon of the given type at p and records a history entry.
// Points outside the surface are accepted; the badge is simply clipped.
func (b *Board) Drop(kind string, p image.Point) (Icon, error) {
	if _, ok := b.catalog.Lookup(kind); !ok {
		return Icon{}, fmt.Errorf("drop %q: %w", kind, ErrUnknownIcon)
	}
	b.finishGesture()
	ic := Icon{ID: b.newID(), X: p.X, Y: p.Y, Type: kind}
	b.icons = append(b.icons, ic)
	b.endIconDrag()
	b.pushHistory()
	return ic, nil
}

// Undo reverts the newest history entry. It reports false, changing
// nothing, when only the pristine background is left.
func (b *Board) Undo() bool {
	b.finishGesture()
	e, ok := b.history.Pop()
	if !ok {
		return false
	}
	b.restore(e)
	return true
}

// Clear returns to the pristine background: no drawing, no icons and a
// history holding only the root entry.
func (b *Board) Clear() {
	b.finishGesture()
	b.restore(b.history.Truncate())
}

func (b *Board) restore(e Entry) {
	if err := b.surface.Restore(e.Pixels); err != nil {
		log.Printf("restore: %v", err)
	}
	b.icons = cloneIcons(e.Icons)
}

// HistoryLen reports the number of history entries, root included.
func (b *Board) HistoryLen() int { return b.history.Len() }

// Icons returns a copy of the placed icons in placement order.
func (b *Board) Icons() []Icon { return cloneIcons(b.icons) }

// Frame returns a new image holding the raster with the icons drawn on top.
func (b *Board) Frame() *image.RGBA {
	out := b.surface.Clone()
	b.overlay.Render(out, b.icons)
	return out
}
