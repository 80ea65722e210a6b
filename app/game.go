package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/shoeview"
	"github.com/smasonuk/shoeview/config"
	"github.com/smasonuk/shoeview/internal/logging"
)

const (
	dragSpeed = 1.0 / 200
	// A press and release closer than this many pixels is a click.
	clickSlop = 4
)

// Game is the ebiten front end of a Scene.
type Game struct {
	scene      *Scene
	batcher    *shoeview.PolygonBatcher
	hud        *HUD
	background color.RGBA

	width, height int

	pressed          bool
	dragged          bool
	pressX, pressY   int
	lastX, lastY     int
	cursorX, cursorY int
}

func NewGame(scene *Scene) *Game {
	cfg := scene.cfg
	g := &Game{
		scene:      scene,
		batcher:    shoeview.NewPolygonBatcher(),
		hud:        NewHUD(cfg.Swatches, scene.Fabrics().Refs()),
		background: config.MustColor(cfg.Scene.Background),
		width:      cfg.Window.Width,
		height:     cfg.Window.Height,
	}
	g.hud.Layout(g.width, g.height)
	return g
}

// uploadTextures copies library fabrics that the batcher has not seen yet to
// the GPU.
func (g *Game) uploadTextures() {
	for _, ref := range g.scene.Fabrics().Refs() {
		if g.batcher.HasTexture(ref) {
			continue
		}
		tex, ok := g.scene.Fabrics().Get(ref)
		if !ok {
			continue
		}
		img := ebiten.NewImageFromImage(tex.Image)
		g.batcher.SetTexture(ref, img, tex.Scale)
		g.hud.SetThumbnail(ref, img)
		logging.Debug("texture uploaded", "fabric", ref)
	}
}

func (g *Game) Update() error {
	g.scene.Drain()
	g.uploadTextures()

	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		if !g.pressed {
			g.scene.OnPointerMove(float64(x), float64(y))
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressed, g.dragged = true, false
		g.pressX, g.pressY = x, y
		g.lastX, g.lastY = x, y
	}
	if g.pressed {
		if abs(x-g.pressX) >= clickSlop || abs(y-g.pressY) >= clickSlop {
			g.dragged = true
		}
		if g.dragged {
			dx := float64(x-g.lastX) * dragSpeed
			dy := float64(y-g.lastY) * dragSpeed
			g.scene.World().Camera().Rotate(-dx, dy)
		}
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.pressed && !g.dragged {
			g.click(x, y)
		}
		g.pressed = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.scene.World().Camera().Zoom(wy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.scene.Deselect()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.scene.Reload(); err != nil {
			return err
		}
	}

	g.scene.World().Update()
	return nil
}

func (g *Game) click(x, y int) {
	hit, ok := g.hud.HitTest(x, y)
	if !ok {
		g.scene.OnPointerClick(float64(x), float64(y))
		return
	}
	switch hit.Kind {
	case HitSwatch:
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.scene.StageColor(hit.Color)
		} else {
			g.scene.SetColor(hit.Color)
		}
	case HitFabric:
		if err := g.scene.SetFabric(hit.Fabric); err != nil {
			logging.Warn("fabric not applied", "err", err)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	g.scene.World().PaintObjects(g.batcher, g.scene.Surface)
	g.batcher.Draw(screen)

	staged, hasStaged := g.scene.Selection().PendingColor()
	g.hud.Draw(screen, g.scene.Fabric(), staged, hasStaged)

	hover := "-"
	if id := g.scene.Hovered(); id != "" {
		hover = string(id)
	}
	highlight := "-"
	if id := g.scene.Selection().Highlighted(); id != "" {
		highlight = string(id)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nhover: %s\nselected: %s\nFPS: %0.2f",
		g.scene.Status(), hover, highlight, ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.hud.Layout(g.width, g.height)
	}
	g.scene.World().SetViewport(float64(g.width), float64(g.height))
	return g.width, g.height
}

func abs(v int) int {
	return int(math.Abs(float64(v)))
}
