package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"

	"github.com/example/tacboard/internal/board"
	"github.com/example/tacboard/internal/render"
	"github.com/example/tacboard/internal/theme"
)

const programTitle = "tacboard"

// iconLabelX is where icon palette labels start, right of the badge.
const iconLabelX = 2*board.BadgeRadius + 10

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

const (
	defaultColorIndex = 2
	defaultWidthIndex = 2
)

// ghostAlpha is the opacity of the sprite that follows the pointer during an
// icon drag.
const ghostAlpha = 0.75

type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var (
	paletteMu sync.RWMutex
	palette   = []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{255, 0, 0, 255},
		{255, 140, 0, 255},
		{255, 255, 0, 255},
		{0, 200, 0, 255},
		{0, 255, 255, 255},
		{0, 90, 255, 255},
		{160, 32, 240, 255},
		{255, 0, 255, 255},
		{128, 128, 128, 255},
		{139, 69, 19, 255},
	}
	paletteNames = []string{
		"Black",
		"White",
		"Red",
		"Orange",
		"Yellow",
		"Green",
		"Cyan",
		"Blue",
		"Purple",
		"Magenta",
		"Gray",
		"Brown",
	}
)

var (
	widthsMu sync.RWMutex
	widths   = []int{1, 2, 4, 6, 8, 12}
)

var (
	messageFaceOnce sync.Once
	messageFace     font.Face
)

func bannerFace() font.Face {
	messageFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err == nil {
			messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
		}
		if err != nil {
			log.Printf("message font: %v; using basic face", err)
			messageFace = basicfont.Face7x13
		}
	})
	return messageFace
}

// DefaultColorIndex returns the default palette index used for drawing tools.
func DefaultColorIndex() int { return defaultColorIndex }

// DefaultWidthIndex returns the default stroke width index used for drawing tools.
func DefaultWidthIndex() int { return defaultWidthIndex }

// Palette returns a copy of the available drawing colors.
func Palette() []color.RGBA {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]color.RGBA, len(palette))
	copy(out, palette)
	return out
}

// PaletteColors returns palette entries annotated with their display names.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	for i := range palette {
		out[i] = PaletteColor{Name: paletteNames[i], Color: palette[i]}
	}
	return out
}

// PaletteIndexByName finds a palette entry by its display name, ignoring case.
func PaletteIndexByName(name string) (int, bool) {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	for i, n := range paletteNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

// EnsurePaletteColor makes sure col is present in the palette and returns its index.
func EnsurePaletteColor(col color.RGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing == col {
			if name != "" && paletteNames[idx] == "" {
				paletteNames[idx] = name
			}
			return idx
		}
	}
	if name == "" {
		name = fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	palette = append(palette, col)
	paletteNames = append(paletteNames, name)
	return len(palette) - 1
}

// WidthOptions returns a copy of the available brush sizes.
func WidthOptions() []int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}

// EnsureWidth makes sure width is included in the options and returns its index.
func EnsureWidth(width int) int {
	if width < 1 {
		width = 1
	}
	widthsMu.Lock()
	defer widthsMu.Unlock()
	for idx, existing := range widths {
		if existing == width {
			return idx
		}
	}
	widths = append(widths, width)
	sort.Ints(widths)
	for idx, existing := range widths {
		if existing == width {
			return idx
		}
	}
	return 0
}

func paletteLen() int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return len(palette)
}

func paletteColorAt(idx int) color.RGBA {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if len(palette) == 0 {
		return color.RGBA{}
	}
	return palette[clampIndex(idx, len(palette))]
}

func paletteNameAt(idx int) string {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if len(paletteNames) == 0 {
		return ""
	}
	return paletteNames[clampIndex(idx, len(paletteNames))]
}

func clampColorIndex(idx int) int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return clampIndex(idx, len(palette))
}

func widthsLen() int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	return len(widths)
}

func widthAt(idx int) int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	if len(widths) == 0 {
		return 1
	}
	return widths[clampIndex(idx, len(widths))]
}

func clampWidthIndex(idx int) int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	return clampIndex(idx, len(widths))
}

func clampIndex(idx, n int) int {
	if n == 0 || idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is a rectangular toolbar element that can draw itself in each state.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// buttonColors picks background and text colours for a state.
func buttonColors(th *theme.Theme, state ButtonState) (bg, fg color.RGBA) {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover, th.ButtonTextHover
	case StatePressed:
		return th.ButtonBackgroundPress, th.ButtonTextPress
	}
	return th.ButtonBackground, th.ButtonText
}

// Shortcut is a clickable hint in the status bar.
type Shortcut struct {
	label string
	rect  image.Rectangle
	theme *theme.Theme
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(s.theme, state)
	draw.Draw(dst, s.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, s.rect, s.theme.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

// ToolButton represents a toolbar button that selects a drawing tool.
type ToolButton struct {
	label string
	tool  board.Tool
	rect  image.Rectangle
	theme *theme.Theme
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(tb.theme, state)
	if state == StatePressed {
		bg = tb.theme.ButtonSelected
	}
	draw.Draw(dst, tb.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

// IconButton is a palette entry that starts an icon drag. It shows the badge
// exactly as it will appear on the board.
type IconButton struct {
	entry board.CatalogEntry
	rect  image.Rectangle
	theme *theme.Theme
}

func (ib *IconButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(ib.theme, state)
	draw.Draw(dst, ib.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	center := image.Pt(ib.rect.Min.X+4+board.BadgeRadius, ib.rect.Min.Y+ib.rect.Dy()/2)
	board.DrawBadge(dst, center, ib.entry)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(ib.rect.Min.X+iconLabelX, center.Y+4)}
	d.DrawString(ib.entry.Label)
}

func (ib *IconButton) Rect() image.Rectangle { return ib.rect }

func (ib *IconButton) SetRect(r image.Rectangle) { ib.rect = r }

// chrome holds the cached toolbar buttons and drag sprites. It belongs to the
// paint goroutine.
type chrome struct {
	mu     sync.Mutex
	theme  *theme.Theme
	tools  []*CacheButton
	icons  []*CacheButton
	ghosts map[string]render.Ghost
}

func newChrome(th *theme.Theme, entries []board.CatalogEntry) *chrome {
	if th == nil {
		th = theme.Default()
	}
	c := &chrome{theme: th, ghosts: map[string]render.Ghost{}}
	for _, t := range toolOrder {
		c.tools = append(c.tools, &CacheButton{Button: &ToolButton{label: toolLabels[t], tool: t, theme: th}})
	}
	for _, e := range entries {
		c.icons = append(c.icons, &CacheButton{Button: &IconButton{entry: e, theme: th}})
	}
	return c
}

func (c *chrome) ghost(entry board.CatalogEntry) render.Ghost {
	g, ok := c.ghosts[entry.ID]
	if !ok {
		sprite := board.BadgeSprite(entry)
		center := image.Pt(board.BadgeRadius+1, board.BadgeRadius+1)
		g = render.DragGhost(sprite, center, ghostAlpha, render.DefaultShadowOptions())
		c.ghosts[entry.ID] = g
	}
	return g
}

func stateFor(selected, hovered bool) ButtonState {
	switch {
	case selected:
		return StatePressed
	case hovered:
		return StateHover
	}
	return StateDefault
}

// paintState is a copy of everything drawFrame needs, taken on the event
// loop so drawing can proceed without touching the board.
type paintState struct {
	lay          layout
	frame        *image.RGBA
	tool         board.Tool
	colorIdx     int
	widthIdx     int
	hover        hoverState
	drag         *iconDrag
	dragEntry    board.CatalogEntry
	status       string
	message      string
	messageUntil time.Time
}

func (c *controller) paintState() paintState {
	st := paintState{
		lay:          c.lay,
		frame:        c.board.Frame(),
		tool:         c.board.ToolState().Tool,
		colorIdx:     c.colorIdx,
		widthIdx:     c.widthIdx,
		hover:        c.hover,
		status:       c.status(),
		message:      c.message,
		messageUntil: c.messageUntil,
	}
	if c.drag != nil {
		d := *c.drag
		st.drag = &d
		st.dragEntry, _ = c.board.Catalog().Lookup(d.kind)
	}
	return st
}

func drawHeader(dst *image.RGBA, th *theme.Theme, st paintState) {
	draw.Draw(dst, image.Rect(0, 0, st.lay.width, headerHeight),
		&image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	d.DrawString(programTitle)
	size := st.lay.boardSize
	info := fmt.Sprintf("%dx%d", size.X, size.Y)
	if z := st.lay.zoom(); z < 1 {
		info += fmt.Sprintf(" (%.0f%%)", z*100)
	}
	d.Dot = fixed.P(st.lay.toolbar+4, 16)
	d.DrawString(info)
}

func drawCanvas(ctx context.Context, dst *image.RGBA, th *theme.Theme, st paintState) {
	draw.Draw(dst, st.lay.canvasArea(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	if st.frame == nil {
		return
	}
	r := st.lay.canvasRect()
	if r.Empty() {
		return
	}
	if r.Size() == st.frame.Bounds().Size() {
		draw.Draw(dst, r, st.frame, st.frame.Bounds().Min, draw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, r, st.frame, st.frame.Bounds(), draw.Src, nil)
	}
	if ctx.Err() != nil {
		return
	}
	border := r.Inset(-1)
	if st.drag != nil && st.drag.pos.In(r) {
		drawDashedRect(dst, border, 4, 2, th.DropTarget, th.Background)
	} else {
		drawRect(dst, border, th.BoardBorder)
	}
}

func drawToolbar(dst *image.RGBA, ch *chrome, st paintState) {
	th := ch.theme
	lay := st.lay
	draw.Draw(dst, image.Rect(0, headerHeight, lay.toolbar, lay.height-statusHeight),
		&image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	for i, cb := range ch.tools {
		cb.SetRect(lay.toolRect(i))
		hovered := st.hover.region == regionTool && st.hover.idx == i
		cb.Draw(dst, stateFor(toolOrder[i] == st.tool, hovered))
	}

	colorsY, widthsY, iconsY := lay.headingY()
	heading := &font.Drawer{Dst: dst, Src: image.NewUniform(th.SectionText), Face: basicfont.Face7x13}
	heading.Dot = fixed.P(4, colorsY)
	heading.DrawString("Color")
	heading.Dot = fixed.P(4, widthsY)
	heading.DrawString("Width")
	heading.Dot = fixed.P(4, iconsY)
	heading.DrawString("Icons")

	for i, p := range Palette() {
		rect := lay.swatchRect(i)
		draw.Draw(dst, rect, &image.Uniform{p}, image.Point{}, draw.Src)
		if st.hover.region == regionColor && st.hover.idx == i {
			draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if i == st.colorIdx {
			drawRect(dst, rect.Inset(-1), th.SwatchSelected)
			drawRect(dst, rect, th.SwatchBorder)
		} else {
			drawRect(dst, rect, th.SwatchBorder)
		}
	}

	col := paletteColorAt(st.colorIdx)
	for i, w := range WidthOptions() {
		rect := lay.widthRect(i)
		hovered := st.hover.region == regionWidth && st.hover.idx == i
		bg, fg := buttonColors(th, stateFor(i == st.widthIdx, hovered))
		draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
			Dot: fixed.P(4, rect.Min.Y+12)}
		d.DrawString(fmt.Sprintf("%d", w))
		lineY := rect.Min.Y + rect.Dy()/2
		half := min(w/2, rect.Dy()/2-1)
		draw.Draw(dst, image.Rect(30, lineY-half, lay.toolbar-4, lineY-half+max(2*half, 1)),
			&image.Uniform{col}, image.Point{}, draw.Src)
	}

	for i, cb := range ch.icons {
		cb.SetRect(lay.iconRect(i))
		hovered := st.hover.region == regionIcon && st.hover.idx == i
		dragging := st.drag != nil && st.drag.kind == lay.icons[i].ID
		cb.Draw(dst, stateFor(dragging, hovered))
	}
}

func drawStatus(dst *image.RGBA, th *theme.Theme, st paintState) {
	lay := st.lay
	draw.Draw(dst, image.Rect(0, lay.height-statusHeight, lay.width, lay.height),
		&image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	for i, s := range statusShortcuts {
		sc := &Shortcut{label: s.label, theme: th}
		sc.SetRect(lay.shortcutRect(i))
		state := StateDefault
		if st.hover.region == regionShortcut && st.hover.idx == i {
			state = StateHover
		}
		sc.Draw(dst, state)
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: basicfont.Face7x13,
		Dot: fixed.P(lay.statusTextX(), lay.height-statusHeight+16)}
	d.DrawString(st.status)
}

func drawMessage(dst *image.RGBA, th *theme.Theme, st paintState) {
	if st.message == "" || !time.Now().Before(st.messageUntil) {
		return
	}
	face := bannerFace()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: face}
	wmsg := d.MeasureString(st.message).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	px := (st.lay.width - wmsg) / 2
	py := (st.lay.height-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	bg := th.ToolbarBackground
	bg.A = 230
	draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
	drawRect(dst, rect, th.ButtonBorder)
	d.Dot = fixed.P(px, py)
	d.DrawString(st.message)
}

func drawGhost(dst *image.RGBA, ch *chrome, st paintState) {
	if st.drag == nil || st.dragEntry.ID == "" {
		return
	}
	g := ch.ghost(st.dragEntry)
	if g.Image == nil {
		return
	}
	at := g.At(st.drag.pos)
	draw.Draw(dst, g.Image.Bounds().Add(at), g.Image, g.Image.Bounds().Min, draw.Over)
}

// composeFrame renders the whole window into dst. It returns false if ctx was
// cancelled part way through.
func composeFrame(ctx context.Context, dst *image.RGBA, ch *chrome, st paintState) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	th := ch.theme

	drawCanvas(ctx, dst, th, st)
	if ctx.Err() != nil {
		return false
	}
	drawHeader(dst, th, st)
	drawToolbar(dst, ch, st)
	drawStatus(dst, th, st)
	if ctx.Err() != nil {
		return false
	}
	drawMessage(dst, th, st)
	drawGhost(dst, ch, st)
	return ctx.Err() == nil
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, ch *chrome, st paintState) {
	b, err := s.NewBuffer(image.Point{st.lay.width, st.lay.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !composeFrame(ctx, b.RGBA(), ch, st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
