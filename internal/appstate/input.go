package appstate

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/tacboard/assets"
	"github.com/example/tacboard/internal/board"
)

const messageDuration = 2 * time.Second

type hoverState struct {
	region region
	idx    int
}

// iconDrag is an icon being carried from the palette to the board.
type iconDrag struct {
	kind string
	pos  image.Point
}

// controller turns window input into board operations. It is owned by the
// event loop.
type controller struct {
	board *board.Board
	lay   layout

	colorIdx int
	widthIdx int

	hover hoverState
	drag  *iconDrag

	background   string
	message      string
	messageUntil time.Time
	confirmClear bool
	quit         bool

	actions        map[string]func()
	keyboardAction map[KeyShortcut]string
	onSettings     func(colorIdx, widthIdx int)
	onBackground   func(ref string, err error)
	now            func() time.Time
}

func newController(b *board.Board, lay layout, colorIdx, widthIdx int) *controller {
	c := &controller{
		board:      b,
		lay:        lay,
		background: "loading background",
		now:        time.Now,
	}
	c.registerActions()
	c.setColor(colorIdx)
	c.setWidth(widthIdx)
	return c
}

func (c *controller) registerActions() {
	c.actions = map[string]func(){}
	c.keyboardAction = map[KeyShortcut]string{}

	register := func(name string, keys KeyboardShortcuts, fn func()) {
		c.actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				c.keyboardAction[sc] = name
			}
		}
	}

	tool := func(t board.Tool) func() {
		return func() { c.board.SelectTool(t) }
	}
	register("pencil", shortcutList{{Rune: 'p'}, {Rune: 'b'}}, tool(board.ToolPencil))
	register("eraser", shortcutList{{Rune: 'e'}}, tool(board.ToolEraser))
	register("square", shortcutList{{Rune: 's'}, {Rune: 'x'}}, tool(board.ToolSquare))
	register("circle", shortcutList{{Rune: 'c'}, {Rune: 'o'}}, tool(board.ToolCircle))

	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, func() {
		if !c.board.Undo() {
			c.setMessage("nothing to undo")
		}
	})
	register("clear", shortcutList{{Rune: 'l', Modifiers: key.ModControl}}, func() {
		c.board.Clear()
		c.setMessage("board cleared")
	})
	register("thinner", shortcutList{{Rune: '['}}, func() { c.setWidth(c.widthIdx - 1) })
	register("thicker", shortcutList{{Rune: ']'}}, func() { c.setWidth(c.widthIdx + 1) })
	register("cancel", shortcutList{{Code: key.CodeEscape}}, func() {
		if c.drag != nil {
			c.drag = nil
			c.board.CancelIconDrag()
		}
	})
	register("quit", shortcutList{{Rune: 'q'}}, func() { c.quit = true })
}

func (c *controller) trigger(name string) {
	if name != "clear" {
		c.confirmClear = false
	}
	if fn, ok := c.actions[name]; ok {
		fn()
	}
	if c.drag != nil && c.board.ToolState().Tool != board.ToolIcon {
		c.drag = nil
	}
}

func (c *controller) setMessage(msg string) {
	c.message = msg
	c.messageUntil = c.now().Add(messageDuration)
	log.Print(msg)
}

func (c *controller) messageVisible() bool {
	return c.message != "" && c.now().Before(c.messageUntil)
}

func (c *controller) setColor(idx int) {
	c.colorIdx = clampColorIndex(idx)
	c.board.SetColor(paletteColorAt(c.colorIdx))
	c.notifySettings()
}

func (c *controller) setWidth(idx int) {
	c.widthIdx = clampWidthIndex(idx)
	c.board.SetBrushSize(widthAt(c.widthIdx))
	c.notifySettings()
}

func (c *controller) notifySettings() {
	if c.onSettings != nil {
		c.onSettings(c.colorIdx, c.widthIdx)
	}
}

func (c *controller) resize(width, height int) {
	c.lay.width = width
	c.lay.height = height
}

// backgroundLoaded applies the outcome of the asynchronous background load.
func (c *controller) backgroundLoaded(r assets.Result) {
	if c.drag != nil {
		c.drag = nil
		c.board.CancelIconDrag()
	}
	failure := r.Err
	if r.Err != nil {
		c.board.Fallback(r.Err)
		c.background = "blank canvas (background failed)"
	} else {
		c.board.Initialize(r.Image)
		if c.board.Loaded() {
			c.background = describeBackground(r.Ref)
		} else {
			c.background = "blank canvas (background empty)"
			failure = errEmptyBackground
		}
	}
	c.lay.boardSize = c.board.Size()
	if failure != nil && c.onBackground != nil {
		c.onBackground(r.Ref, failure)
	}
}

var errEmptyBackground = errors.New("image has no pixels")

func describeBackground(ref string) string {
	if ref == "" {
		return "map: " + assets.DefaultMap
	}
	return ref
}

// handleKey reports whether the window needs repainting.
func (c *controller) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	action, ok := c.lookupKey(e)
	if !ok {
		c.confirmClear = false
		return false
	}
	c.request(action, "press ^L again to clear")
	return true
}

// request runs action, except that clear only runs on the second request in
// a row; the first one shows prompt.
func (c *controller) request(action, prompt string) {
	if action == "clear" && !c.confirmClear {
		c.confirmClear = true
		c.setMessage(prompt)
		return
	}
	c.trigger(action)
}

// lookupKey matches an event against the registered shortcuts, first by
// character and then by key code. Shift is ignored.
func (c *controller) lookupKey(e key.Event) (string, bool) {
	mods := e.Modifiers & (key.ModControl | key.ModAlt | key.ModMeta)
	r := unicode.ToLower(e.Rune)
	if mods&key.ModControl != 0 && r > 0 && r < ' ' {
		r += 'a' - 1
	}
	if r > 0 {
		if action, ok := c.keyboardAction[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return action, true
		}
	}
	action, ok := c.keyboardAction[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return action, ok
}

// handleMouse reports whether the window needs repainting.
func (c *controller) handleMouse(e mouse.Event) bool {
	p := image.Point{int(e.X), int(e.Y)}

	if c.drag != nil {
		switch e.Direction {
		case mouse.DirNone:
			c.drag.pos = p
			return true
		case mouse.DirRelease:
			c.finishDrag(p)
			return true
		}
		return false
	}

	if c.board.Drawing() {
		switch e.Direction {
		case mouse.DirNone:
			if !p.In(c.lay.canvasRect()) {
				c.board.Leave()
				return true
			}
			c.board.Move(c.lay.toBoard(p))
			return true
		case mouse.DirRelease:
			if e.Button == mouse.ButtonLeft {
				c.board.Release(c.lay.toBoard(p))
				return true
			}
		}
		return false
	}

	reg, idx := c.lay.hit(p)
	if e.Direction == mouse.DirNone {
		h := hoverState{region: reg, idx: idx}
		if reg == regionCanvas || reg == regionHeader || reg == regionNone {
			h = hoverState{}
		}
		changed := h != c.hover
		c.hover = h
		return changed
	}
	if e.Button != mouse.ButtonLeft || e.Direction != mouse.DirPress {
		return false
	}
	if reg != regionShortcut {
		c.confirmClear = false
	}

	switch reg {
	case regionTool:
		c.trigger(toolOrder[idx].String())
	case regionColor:
		c.setColor(idx)
	case regionWidth:
		c.setWidth(idx)
	case regionIcon:
		kind := c.lay.icons[idx].ID
		if err := c.board.BeginIconDrag(kind); err != nil {
			log.Printf("icon drag: %v", err)
			return false
		}
		c.drag = &iconDrag{kind: kind, pos: p}
	case regionCanvas:
		c.board.Press(c.lay.toBoard(p))
	case regionShortcut:
		c.request(statusShortcuts[idx].action, "click ^L:clear again to clear")
		return true
	default:
		return false
	}
	return true
}

func (c *controller) finishDrag(p image.Point) {
	kind := c.drag.kind
	c.drag = nil
	if !p.In(c.lay.canvasRect()) {
		c.board.CancelIconDrag()
		return
	}
	ic, err := c.board.Drop(kind, c.lay.toBoard(p))
	if err != nil {
		log.Printf("drop: %v", err)
		return
	}
	log.Printf("placed %s at %d,%d", ic.Type, ic.X, ic.Y)
}

// status is the text shown at the right of the status bar.
func (c *controller) status() string {
	st := c.board.ToolState()
	tool := st.Tool.String()
	if st.Tool == board.ToolIcon && st.PendingIcon != "" {
		tool = "placing " + st.PendingIcon
	}
	return fmt.Sprintf("%s | %s | %dpx | history %d | %s",
		tool, paletteNameAt(c.colorIdx), st.BrushSize, c.board.HistoryLen(), c.background)
}
