package app

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/smasonuk/shoeview/config"
	"github.com/smasonuk/shoeview/parts"
)

const (
	buttonSize   = 28
	buttonGap    = 6
	hudMargin    = 10
	labelHeight  = 16
	strokeNormal = 1
	strokeActive = 3
)

type HitKind int

const (
	HitNone HitKind = iota
	HitSwatch
	HitFabric
)

// Hit is what a click on the HUD landed on.
type Hit struct {
	Kind   HitKind
	Color  color.RGBA
	Fabric parts.TextureRef
}

type button struct {
	label  string
	rect   image.Rectangle
	color  color.RGBA
	fabric parts.TextureRef
}

// HUD is the row of colour swatches and the row of fabric buttons along the
// bottom edge of the window.
type HUD struct {
	swatches []button
	fabrics  []button
	thumbs   map[parts.TextureRef]*ebiten.Image
}

// NewHUD builds the buttons from the configured swatches and the fabric refs.
// An extra "none" fabric button removes the fabric.
func NewHUD(swatches []config.Swatch, fabrics []parts.TextureRef) *HUD {
	h := &HUD{thumbs: make(map[parts.TextureRef]*ebiten.Image)}
	for _, s := range swatches {
		c, err := config.ParseColor(s.Color)
		if err != nil {
			continue
		}
		h.swatches = append(h.swatches, button{label: s.Name, color: c})
	}
	for _, ref := range fabrics {
		h.fabrics = append(h.fabrics, button{label: string(ref), fabric: ref, color: parts.Gray})
	}
	h.fabrics = append(h.fabrics, button{label: "none", color: parts.Gray})
	return h
}

// Layout positions the buttons for a screen of the given size.
func (h *HUD) Layout(width, height int) {
	y := height - hudMargin - buttonSize
	placeRow(h.swatches, hudMargin, y)
	y -= buttonSize + buttonGap + labelHeight
	placeRow(h.fabrics, hudMargin, y)
}

func placeRow(row []button, x, y int) {
	for i := range row {
		row[i].rect = image.Rect(x, y, x+buttonSize, y+buttonSize)
		x += buttonSize + buttonGap
	}
}

// SetThumbnail shows img inside the button of the fabric ref.
func (h *HUD) SetThumbnail(ref parts.TextureRef, img *ebiten.Image) {
	h.thumbs[ref] = img
}

// HitTest reports the button under the screen point x, y.
func (h *HUD) HitTest(x, y int) (Hit, bool) {
	p := image.Pt(x, y)
	for _, b := range h.swatches {
		if p.In(b.rect) {
			return Hit{Kind: HitSwatch, Color: b.color}, true
		}
	}
	for _, b := range h.fabrics {
		if p.In(b.rect) {
			return Hit{Kind: HitFabric, Fabric: b.fabric}, true
		}
	}
	return Hit{}, false
}

// Draw paints the buttons. active is the fabric currently on the fabric
// parts; staged is the colour waiting for the next pick, if any.
func (h *HUD) Draw(screen *ebiten.Image, active parts.TextureRef, staged color.RGBA, hasStaged bool) {
	for _, b := range h.swatches {
		drawButton(screen, b, nil, hasStaged && b.color == staged)
	}
	for _, b := range h.fabrics {
		drawButton(screen, b, h.thumbs[b.fabric], b.fabric == active)
	}
	if len(h.fabrics) > 0 {
		r := h.fabrics[0].rect
		ebitenutil.DebugPrintAt(screen, "fabric", r.Min.X, r.Min.Y-labelHeight)
	}
	if len(h.swatches) > 0 {
		r := h.swatches[0].rect
		ebitenutil.DebugPrintAt(screen, "colour (shift: next pick)", r.Min.X, r.Min.Y-labelHeight)
	}
}

func drawButton(screen *ebiten.Image, b button, thumb *ebiten.Image, active bool) {
	x, y := float32(b.rect.Min.X), float32(b.rect.Min.Y)
	w, hgt := float32(b.rect.Dx()), float32(b.rect.Dy())

	if thumb != nil {
		op := &ebiten.DrawImageOptions{}
		tb := thumb.Bounds()
		op.GeoM.Scale(float64(w)/float64(tb.Dx()), float64(hgt)/float64(tb.Dy()))
		op.GeoM.Translate(float64(x), float64(y))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(thumb, op)
	} else {
		vector.DrawFilledRect(screen, x, y, w, hgt, b.color, false)
	}

	stroke := float32(strokeNormal)
	if active {
		stroke = strokeActive
	}
	vector.StrokeRect(screen, x, y, w, hgt, stroke, color.Black, false)
}
