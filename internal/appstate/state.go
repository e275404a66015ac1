package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/tacboard/assets"
	"github.com/example/tacboard/internal/board"
	"github.com/example/tacboard/internal/display"
	"github.com/example/tacboard/internal/theme"
)

const (
	// defaultLoadTimeout bounds how long a background download may take.
	defaultLoadTimeout = 30 * time.Second
	// screenMargin is kept free on each side of the screen for panels and decorations.
	screenMargin = 40
)

// AppState holds application configuration for the UI.
type AppState struct {
	Board      *board.Board
	Background string
	ColorIdx   int
	WidthIdx   int
	Theme      *theme.Theme

	loader *assets.Loader

	settingsMu sync.Mutex
	settingsFn func(colorIdx, widthIdx int)

	onClose   func()
	closeOnce sync.Once

	backgroundFn func(ref string, err error)

	screen image.Point
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithBoard sets the board driven by the window.
func WithBoard(b *board.Board) Option { return func(a *AppState) { a.Board = b } }

// WithBackground sets the background reference loaded when the window opens.
// An empty reference loads the default embedded map.
func WithBackground(ref string) Option { return func(a *AppState) { a.Background = ref } }

// WithLoader sets the loader used to fetch the background.
func WithLoader(l *assets.Loader) Option { return func(a *AppState) { a.loader = l } }

// WithColorIndex sets the initial palette index for drawing tools.
func WithColorIndex(idx int) Option { return func(a *AppState) { a.ColorIdx = idx } }

// WithWidthIndex sets the initial brush size index for drawing tools.
func WithWidthIndex(idx int) Option { return func(a *AppState) { a.WidthIdx = idx } }

// WithTheme sets the colours of the window chrome.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithSettingsListener registers a callback for when drawing settings change.
func WithSettingsListener(fn func(colorIdx, widthIdx int)) Option {
	return func(a *AppState) { a.settingsFn = fn }
}

// WithBackgroundListener registers a callback for a background that could
// not be used. It runs on the event loop.
func WithBackgroundListener(fn func(ref string, err error)) Option {
	return func(a *AppState) { a.backgroundFn = fn }
}

// WithScreenSize limits the initial window to a screen of the given size.
func WithScreenSize(size image.Point) Option { return func(a *AppState) { a.screen = size } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		ColorIdx: defaultColorIndex,
		WidthIdx: defaultWidthIndex,
	}
	for _, o := range opts {
		o(a)
	}
	a.ColorIdx = clampColorIndex(a.ColorIdx)
	a.WidthIdx = clampWidthIndex(a.WidthIdx)
	if a.Board == nil {
		a.Board = board.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.loader == nil {
		a.loader = assets.NewLoader(defaultLoadTimeout)
	}
	return a
}

func (a *AppState) applySettingsFromUI(colorIdx, widthIdx int) {
	a.settingsMu.Lock()
	a.ColorIdx = colorIdx
	a.WidthIdx = widthIdx
	fn := a.settingsFn
	a.settingsMu.Unlock()

	if fn != nil {
		fn(colorIdx, widthIdx)
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// newController builds the input controller for the current settings.
func (a *AppState) newController() *controller {
	b := a.Board
	lay := newLayout(0, 0, b.Size(), b.Catalog().Entries())
	size := display.FitWindow(lay.preferredSize(), a.screen, screenMargin)
	lay.width, lay.height = size.X, size.Y
	c := newController(b, lay, a.ColorIdx, a.WidthIdx)
	c.onSettings = a.applySettingsFromUI
	c.onBackground = a.backgroundFn
	return c
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	c := a.newController()
	ch := newChrome(a.Theme, c.lay.icons)

	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  c.lay.width,
		Height: c.lay.height,
		Title:  programTitle,
	})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	loadCtx, cancelLoad := context.WithCancel(context.Background())
	defer cancelLoad()
	log.Printf("loading background %q", a.Background)
	a.loader.Load(loadCtx, a.Background, func(r assets.Result) { w.Send(r) })

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, ch, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	var expiryScheduled time.Time
	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case assets.Result:
			if e.Err != nil {
				log.Printf("background %q: %v", e.Ref, e.Err)
			}
			c.backgroundLoaded(e)
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			c.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			st := c.paintState()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
			if c.messageVisible() && !c.messageUntil.Equal(expiryScheduled) {
				expiryScheduled = c.messageUntil
				time.AfterFunc(time.Until(expiryScheduled), func() { w.Send(paint.Event{}) })
			}
		case mouse.Event:
			if c.handleMouse(e) {
				w.Send(paint.Event{})
			}
			if c.quit {
				return
			}
		case key.Event:
			if c.handleKey(e) {
				w.Send(paint.Event{})
			}
			if c.quit {
				return
			}
		case error:
			log.Print(e)
		}
	}
}
