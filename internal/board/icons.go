package board

import (
	"image"
	"image/color"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// BadgeRadius is the radius of a rendered icon badge in pixels.
const BadgeRadius = 15

const badgeBorder = 2

var badgeBorderColor = color.RGBA{255, 255, 255, 255}

// Icon is a marker placed on the board. Icons are kept apart from the raster
// and drawn over it whenever a frame is produced.
type Icon struct {
	ID   string
	X, Y int
	Type string
}

// Point returns the icon centre.
func (i Icon) Point() image.Point { return image.Pt(i.X, i.Y) }

func cloneIcons(icons []Icon) []Icon {
	if len(icons) == 0 {
		return nil
	}
	out := make([]Icon, len(icons))
	copy(out, icons)
	return out
}

// labelSizes are tried in order until a label fits inside the badge.
var labelSizes = []float64{9, 8, 7, 6}

// labelMaxWidth is the widest label that stays inside the badge border.
const labelMaxWidth = 2*BadgeRadius - 4

var (
	labelFaceOnce sync.Once
	labelFaces    []font.Face
)

func badgeFaces() []font.Face {
	labelFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err == nil {
			for _, size := range labelSizes {
				face, ferr := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
				if ferr != nil {
					err = ferr
					break
				}
				labelFaces = append(labelFaces, face)
			}
		}
		if err != nil || len(labelFaces) == 0 {
			log.Printf("badge font: %v; using basic face", err)
			labelFaces = []font.Face{basicfont.Face7x13}
		}
	})
	return labelFaces
}

// labelFace picks the largest face that fits label inside the badge, or the
// smallest one when none does.
func labelFace(label string) (font.Face, fixed.Int26_6) {
	faces := badgeFaces()
	var face font.Face
	var w fixed.Int26_6
	for _, face = range faces {
		w = font.MeasureString(face, label)
		if w <= fixed.I(labelMaxWidth) {
			break
		}
	}
	return face, w
}

// Overlay renders icons from a catalog.
type Overlay struct {
	catalog *Catalog
}

// NewOverlay returns an overlay that resolves icon types against c.
func NewOverlay(c *Catalog) *Overlay {
	if c == nil {
		c = DefaultCatalog()
	}
	return &Overlay{catalog: c}
}

// Render draws every icon onto dst in list order, so later icons sit on top.
// Icons with a type missing from the catalog are skipped.
func (o *Overlay) Render(dst *image.RGBA, icons []Icon) {
	for _, ic := range icons {
		entry, ok := o.catalog.Lookup(ic.Type)
		if !ok {
			continue
		}
		DrawBadge(dst, ic.Point(), entry)
	}
}

// DrawBadge paints a filled circle in the entry colour with a white border
// and the entry label centred inside.
func DrawBadge(dst *image.RGBA, center image.Point, entry CatalogEntry) {
	drawFilledCircle(dst, center.X, center.Y, BadgeRadius, entry.Color)
	drawRing(dst, center.X, center.Y, BadgeRadius, badgeBorderColor, badgeBorder)

	face, w := labelFace(entry.Label)
	// Labels that are still too wide are cut at the badge edge.
	clip := image.Rect(center.X-labelMaxWidth/2, center.Y-BadgeRadius/2, center.X+labelMaxWidth/2+1, center.Y+BadgeRadius/2+1)
	sub, ok := dst.SubImage(clip).(*image.RGBA)
	if !ok || sub.Bounds().Empty() {
		return
	}
	d := &font.Drawer{Dst: sub, Src: image.NewUniform(contrastText(entry.Color)), Face: face}
	m := face.Metrics()
	baseline := fixed.I(center.Y) + (m.Ascent-m.Descent)/2
	d.Dot = fixed.Point26_6{X: fixed.I(center.X) - w/2, Y: baseline}
	d.DrawString(entry.Label)
}

// BadgeSprite renders a single badge onto a transparent image just large
// enough to hold it, centred at (BadgeRadius+1, BadgeRadius+1).
func BadgeSprite(entry CatalogEntry) *image.RGBA {
	size := 2*BadgeRadius + 3
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	DrawBadge(img, image.Pt(BadgeRadius+1, BadgeRadius+1), entry)
	return img
}
