package board

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{255, 0, 0, 255}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 90, 255})
		}
	}
	return img
}

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("icon-%d", n)
	})
}

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	b := New(WithMaxSize(image.Pt(200, 150)), WithColor(red), WithBrushSize(3), sequentialIDs())
	b.Initialize(gradient(400, 300))
	require.True(t, b.Loaded())
	require.Equal(t, image.Pt(200, 150), b.Size())
	require.Equal(t, 1, b.HistoryLen())
	return b
}

func stroke(b *Board, pts ...image.Point) {
	b.Press(pts[0])
	for _, p := range pts[1 : len(pts)-1] {
		b.Move(p)
	}
	b.Release(pts[len(pts)-1])
}

func TestNewIsUsableBeforeLoad(t *testing.T) {
	b := New()
	assert.Equal(t, DefaultMaxSize(), b.Size())
	assert.False(t, b.Loaded())
	assert.Equal(t, 1, b.HistoryLen())

	stroke(b, image.Pt(10, 10), image.Pt(20, 20), image.Pt(30, 30))
	assert.Equal(t, 2, b.HistoryLen())
}

func TestInitializeResetsBoard(t *testing.T) {
	b := newTestBoard(t)
	stroke(b, image.Pt(10, 10), image.Pt(50, 50))
	_, err := b.Drop("ct", image.Pt(20, 20))
	require.NoError(t, err)

	b.Initialize(gradient(100, 400))
	assert.Equal(t, image.Pt(38, 150), b.Size())
	assert.Equal(t, 1, b.HistoryLen())
	assert.Empty(t, b.Icons())
}

func TestFallbackKeepsBoardUsable(t *testing.T) {
	b := New(WithMaxSize(image.Pt(64, 48)), WithFallback(color.RGBA{9, 9, 9, 255}))
	b.Fallback(errors.New("decode failed"))
	assert.False(t, b.Loaded())
	assert.Equal(t, image.Pt(64, 48), b.Size())
	assert.Equal(t, color.RGBA{9, 9, 9, 255}, b.Surface().Image().RGBAAt(30, 30))

	b.Initialize(nil)
	assert.False(t, b.Loaded())
	assert.Equal(t, 1, b.HistoryLen())
}

func TestPencilStrokePaintsAndPushesOnce(t *testing.T) {
	b := newTestBoard(t)
	stroke(b, image.Pt(10, 10), image.Pt(40, 10), image.Pt(40, 40), image.Pt(80, 40))

	assert.Equal(t, 2, b.HistoryLen())
	img := b.Surface().Image()
	assert.Equal(t, red, img.RGBAAt(25, 10))
	assert.Equal(t, red, img.RGBAAt(40, 25))
	assert.Equal(t, red, img.RGBAAt(80, 40))
}

func TestTapLeavesDot(t *testing.T) {
	b := newTestBoard(t)
	b.Press(image.Pt(60, 60))
	b.Release(image.Pt(60, 60))

	assert.Equal(t, 2, b.HistoryLen())
	assert.Equal(t, red, b.Surface().Image().RGBAAt(60, 60))
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	b := newTestBoard(t)
	before := b.Surface().Snapshot()
	b.Move(image.Pt(10, 10))
	b.Move(image.Pt(90, 90))
	b.Release(image.Pt(90, 90))

	assert.Equal(t, before, b.Surface().Snapshot())
	assert.Equal(t, 1, b.HistoryLen())
}

func TestEraserPaintsFallbackAtDoubleWidth(t *testing.T) {
	b := newTestBoard(t)
	b.SetBrushSize(4)
	stroke(b, image.Pt(20, 50), image.Pt(120, 50))

	b.SelectTool(ToolEraser)
	stroke(b, image.Pt(20, 50), image.Pt(120, 50))

	img := b.Surface().Image()
	assert.Equal(t, DefaultFallback, img.RGBAAt(70, 50))
	// Double width reaches beyond the pencil stroke.
	assert.Equal(t, DefaultFallback, img.RGBAAt(70, 53))
	assert.Equal(t, 3, b.HistoryLen())
}

func TestUndoFloor(t *testing.T) {
	b := newTestBoard(t)
	before := b.Surface().Snapshot()
	for i := 0; i < 5; i++ {
		assert.False(t, b.Undo())
	}
	assert.Equal(t, before, b.Surface().Snapshot())
	assert.Empty(t, b.Icons())
	assert.Equal(t, 1, b.HistoryLen())
}

func TestUndoRestoresPreviousStep(t *testing.T) {
	b := newTestBoard(t)
	stroke(b, image.Pt(10, 10), image.Pt(100, 10))
	afterFirst := b.Surface().Snapshot()
	stroke(b, image.Pt(10, 80), image.Pt(100, 80))

	require.True(t, b.Undo())
	assert.Equal(t, afterFirst, b.Surface().Snapshot())
	assert.Equal(t, 2, b.HistoryLen())
}

func TestClearIsUndoToRoot(t *testing.T) {
	b := newTestBoard(t)
	pristine := b.Surface().Snapshot()

	stroke(b, image.Pt(10, 10), image.Pt(100, 100))
	_, err := b.Drop("combo", image.Pt(50, 50))
	require.NoError(t, err)
	b.SelectTool(ToolCircle)
	stroke(b, image.Pt(100, 70), image.Pt(110, 75), image.Pt(130, 80))
	b.SelectTool(ToolEraser)
	stroke(b, image.Pt(0, 0), image.Pt(199, 149))
	_, err = b.Drop("kill-ep", image.Pt(190, 10))
	require.NoError(t, err)

	b.Clear()
	assert.Equal(t, pristine, b.Surface().Snapshot())
	assert.Empty(t, b.Icons())
	assert.Equal(t, 1, b.HistoryLen())

	b.Clear()
	assert.Equal(t, pristine, b.Surface().Snapshot())
	assert.Equal(t, 1, b.HistoryLen())
}

func TestDropIsAdditiveAndUndoable(t *testing.T) {
	b := newTestBoard(t)
	stroke(b, image.Pt(10, 10), image.Pt(100, 100))
	first, err := b.Drop("ct", image.Pt(30, 40))
	require.NoError(t, err)
	raster := b.Surface().Snapshot()
	n := b.HistoryLen()

	ic, err := b.Drop("apoio", image.Pt(70, 80))
	require.NoError(t, err)
	assert.Equal(t, Icon{ID: "icon-2", X: 70, Y: 80, Type: "apoio"}, ic)
	assert.Equal(t, n+1, b.HistoryLen())
	assert.Equal(t, []Icon{first, ic}, b.Icons())
	assert.Equal(t, raster, b.Surface().Snapshot(), "icons must not be baked into the raster")

	require.True(t, b.Undo())
	assert.Equal(t, n, b.HistoryLen())
	assert.Equal(t, []Icon{first}, b.Icons())
	assert.Equal(t, raster, b.Surface().Snapshot())
}

func TestDropUnknownType(t *testing.T) {
	b := newTestBoard(t)
	_, err := b.Drop("sniper", image.Pt(5, 5))
	assert.ErrorIs(t, err, ErrUnknownIcon)
	assert.Equal(t, 1, b.HistoryLen())
	assert.ErrorIs(t, b.BeginIconDrag("sniper"), ErrUnknownIcon)
}

func TestDropOutsideCanvasIsAccepted(t *testing.T) {
	b := newTestBoard(t)
	_, err := b.Drop("back-def", image.Pt(-40, 500))
	require.NoError(t, err)
	assert.Len(t, b.Icons(), 1)
	assert.Equal(t, 2, b.HistoryLen())
}

func TestIconDragState(t *testing.T) {
	b := newTestBoard(t)
	b.SelectTool(ToolCircle)
	require.NoError(t, b.BeginIconDrag("kill-ct"))
	st := b.ToolState()
	assert.Equal(t, ToolIcon, st.Tool)
	assert.Equal(t, "kill-ct", st.PendingIcon)

	before := b.Surface().Snapshot()
	stroke(b, image.Pt(10, 10), image.Pt(50, 50))
	assert.Equal(t, before, b.Surface().Snapshot(), "presses do nothing while placing icons")
	assert.Equal(t, 1, b.HistoryLen())

	_, err := b.Drop("kill-ct", image.Pt(10, 10))
	require.NoError(t, err)
	assert.Empty(t, b.ToolState().PendingIcon)
	assert.Equal(t, ToolCircle, b.ToolState().Tool, "placement returns to the previous tool")

	require.NoError(t, b.BeginIconDrag("combo"))
	b.CancelIconDrag()
	assert.Equal(t, ToolCircle, b.ToolState().Tool)
	assert.Len(t, b.Icons(), 1)
}

func TestShapePreviewDoesNotPolluteHistory(t *testing.T) {
	for _, tool := range []Tool{ToolSquare, ToolCircle} {
		t.Run(tool.String(), func(t *testing.T) {
			b := newTestBoard(t)
			b.SelectTool(tool)
			baseline := b.Surface().Clone()

			origin := image.Pt(60, 60)
			b.Press(origin)
			require.NotNil(t, b.ToolState().PendingOrigin)
			assert.Equal(t, origin, *b.ToolState().PendingOrigin)
			for i := 0; i < 25; i++ {
				b.Move(image.Pt(60+i*3, 60+i*2))
			}
			end := image.Pt(100, 90)
			b.Release(end)

			assert.Equal(t, 2, b.HistoryLen())
			assert.Nil(t, b.ToolState().PendingOrigin)

			drawShape(baseline, tool, origin, end, red, 3)
			assert.Equal(t, baseline.Pix, b.Surface().Image().Pix)
		})
	}
}

func TestShapeWithoutMoveCommitsDegenerateShape(t *testing.T) {
	b := newTestBoard(t)
	b.SelectTool(ToolSquare)
	b.Press(image.Pt(40, 40))
	b.Release(image.Pt(40, 40))
	assert.Equal(t, 2, b.HistoryLen())
	assert.Equal(t, red, b.Surface().Image().RGBAAt(40, 40))
}

func TestNegativeDirectionRectangle(t *testing.T) {
	forward := newTestBoard(t)
	forward.SelectTool(ToolSquare)
	stroke(forward, image.Pt(50, 50), image.Pt(100, 100))

	backward := newTestBoard(t)
	backward.SelectTool(ToolSquare)
	stroke(backward, image.Pt(100, 100), image.Pt(50, 50))

	assert.Equal(t, forward.Surface().Snapshot(), backward.Surface().Snapshot())
	assert.Equal(t, RectFrom(image.Pt(100, 100), image.Pt(50, 50)), image.Rect(50, 50, 100, 100))
}

func TestLeaveCommitsAtLastPoint(t *testing.T) {
	b := newTestBoard(t)
	b.Press(image.Pt(10, 100))
	b.Move(image.Pt(90, 100))
	b.Leave()
	assert.False(t, b.Drawing())
	assert.Equal(t, 2, b.HistoryLen())
	assert.Equal(t, red, b.Surface().Image().RGBAAt(50, 100))
}

func TestUndoDuringGestureCommitsFirst(t *testing.T) {
	b := newTestBoard(t)
	pristine := b.Surface().Snapshot()
	b.SelectTool(ToolCircle)
	b.Press(image.Pt(100, 75))
	b.Move(image.Pt(120, 75))

	require.True(t, b.Undo())
	assert.False(t, b.Drawing())
	assert.Equal(t, pristine, b.Surface().Snapshot())
	assert.Equal(t, 1, b.HistoryLen())
}

func TestFrameDrawsIconsOverRaster(t *testing.T) {
	b := newTestBoard(t)
	_, err := b.Drop("ct", image.Pt(100, 75))
	require.NoError(t, err)

	frame := b.Frame()
	entry, _ := b.Catalog().Lookup("ct")
	// Sample inside the badge but away from the label.
	assert.Equal(t, entry.Color, frame.RGBAAt(100, 75-BadgeRadius+4))
	assert.Equal(t, badgeBorderColor, frame.RGBAAt(100+BadgeRadius, 75))
	assert.NotEqual(t, entry.Color, b.Surface().Image().RGBAAt(100, 75-BadgeRadius+4))
	assert.Equal(t, b.Surface().Image().RGBAAt(0, 0), frame.RGBAAt(0, 0))

	frame.SetRGBA(0, 0, entry.Color)
	assert.NotEqual(t, entry.Color, b.Surface().Image().RGBAAt(0, 0), "frame must be a copy")
}

func TestWithToolSetsInitialTool(t *testing.T) {
	assert.Equal(t, ToolCircle, New(WithTool(ToolCircle)).ToolState().Tool)
	assert.Equal(t, ToolPencil, New(WithTool(ToolIcon)).ToolState().Tool)
	assert.Equal(t, ToolPencil, New(WithTool(Tool(42))).ToolState().Tool)
}

func TestWithCatalogReplacesMarkers(t *testing.T) {
	c, err := ParseCatalog([]byte("icons:\n  - id: smoke\n    label: Smoke\n    color: '#808080'\n"))
	require.NoError(t, err)
	b := New(WithCatalog(c), sequentialIDs())

	_, err = b.Drop("smoke", image.Pt(10, 10))
	require.NoError(t, err)
	_, err = b.Drop("ct", image.Pt(10, 10))
	assert.True(t, errors.Is(err, ErrUnknownIcon))

	assert.Same(t, DefaultCatalog(), New(WithCatalog(nil)).Catalog())
}
