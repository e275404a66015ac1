package appstate

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/tacboard/assets"
	"github.com/example/tacboard/internal/board"
)

func TestNewFillsDefaults(t *testing.T) {
	a := New()
	assert.NotNil(t, a.Board)
	assert.NotNil(t, a.Theme)
	assert.NotNil(t, a.loader)
	assert.Equal(t, defaultColorIndex, a.ColorIdx)
	assert.Equal(t, defaultWidthIndex, a.WidthIdx)
}

func TestNewControllerUsesPreferredSize(t *testing.T) {
	a := New()
	c := a.newController()
	want := newLayout(0, 0, board.DefaultMaxSize(), board.DefaultCatalog().Entries()).preferredSize()
	assert.Equal(t, want, image.Pt(c.lay.width, c.lay.height))
	assert.Equal(t, 1.0, c.lay.zoom())
}

func TestNewControllerFitsScreen(t *testing.T) {
	a := New(WithScreenSize(image.Pt(1024, 600)))
	c := a.newController()
	assert.LessOrEqual(t, c.lay.width, 1024-2*screenMargin)
	assert.LessOrEqual(t, c.lay.height, 600-2*screenMargin)
	assert.Less(t, c.lay.zoom(), 1.0)
}

func TestSettingsAndBackgroundListeners(t *testing.T) {
	var color, width int
	var failed string
	a := New(
		WithSettingsListener(func(ci, wi int) { color, width = ci, wi }),
		WithBackgroundListener(func(ref string, err error) { failed = ref }),
	)
	c := a.newController()
	c.trigger("thicker")
	assert.Equal(t, defaultColorIndex, color)
	assert.Equal(t, defaultWidthIndex+1, width)
	assert.Equal(t, width, a.WidthIdx)

	c.backgroundLoaded(assets.Result{Ref: "gone.png", Err: errors.New("missing")})
	assert.Equal(t, "gone.png", failed)
}

func TestOnCloseRunsOnce(t *testing.T) {
	calls := 0
	a := New(WithOnClose(func() { calls++ }))
	a.notifyClose()
	a.notifyClose()
	assert.Equal(t, 1, calls)
}
