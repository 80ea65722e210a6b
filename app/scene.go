// Package app hosts the configurator: it owns the scene, routes pointer and
// keyboard input to the selection controller and draws the HUD.
package app

import (
	"fmt"
	"image/color"

	"github.com/smasonuk/shoeview"
	"github.com/smasonuk/shoeview/assets"
	"github.com/smasonuk/shoeview/config"
	"github.com/smasonuk/shoeview/internal/events"
	"github.com/smasonuk/shoeview/internal/logging"
	"github.com/smasonuk/shoeview/parts"
	"github.com/smasonuk/shoeview/selection"
)

// autoRotateSpeed is the yaw added per tick when auto rotation is on.
const autoRotateSpeed = 0.004

// Scene ties the loaded model, its part materials and the selection state
// together. Every method must be called from the update goroutine.
type Scene struct {
	cfg       config.Config
	bus       *events.Bus
	world     *shoeview.World
	store     *parts.Store
	selection *selection.Controller
	fabrics   *assets.Library
	loader    *assets.Loader
	watcher   *assets.Watcher

	hovered parts.ID
	fabric  parts.TextureRef
	status  string
}

// NewScene builds the scene and starts loading the configured model. load
// may be nil to use assets.Load.
func NewScene(cfg config.Config, load assets.LoadFunc) (*Scene, error) {
	fabrics, err := assets.NewLibraryFromConfig(cfg.Fabrics)
	if err != nil {
		return nil, fmt.Errorf("build fabric library: %w", err)
	}
	highlight, err := config.ParseColor(cfg.Scene.Highlight)
	if err != nil {
		return nil, err
	}

	cam := shoeview.NewOrbitCamera(cfg.Camera.Distance, cfg.Camera.Yaw, cfg.Camera.Pitch)
	cam.SetDistanceLimits(cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	cam.Damping = cfg.Camera.Damping
	if cfg.Camera.AutoRotate {
		cam.AutoRotate = autoRotateSpeed
	}
	world := shoeview.NewWorld(cam)
	world.SetViewport(float64(cfg.Window.Width), float64(cfg.Window.Height))

	s := &Scene{
		cfg:     cfg,
		bus:     events.NewBus(),
		world:   world,
		store:   parts.NewStore(cfg.PartColors()),
		fabrics: fabrics,
		loader:  assets.NewLoader(load),
		status:  "loading",
	}
	s.selection = selection.NewController(s.store,
		selection.WithHighlight(highlight),
		selection.WithEvents(s.bus))

	for _, code := range []events.Code{
		events.HighlightChanged, events.Deselected, events.ColorApplied,
		events.FabricApplied, events.AssetLoaded, events.AssetLoadFailed,
	} {
		s.bus.Register(code, s, s.onEvent)
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Watch reloads the model whenever its file changes on disk. It is a no-op
// for the built-in demo model.
func (s *Scene) Watch() error {
	if s.cfg.Model.Path == "" || s.watcher != nil {
		return nil
	}
	w, err := assets.NewWatcher(assets.DefaultDebounce)
	if err != nil {
		return err
	}
	if err := w.Watch(s.cfg.Model.Path); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", s.cfg.Model.Path, err)
	}
	s.watcher = w
	return nil
}

// Reload starts loading the configured model again. The current model stays
// on screen until the new one arrives.
func (s *Scene) Reload() error {
	gen := s.loader.Begin(s.cfg.Model.Path)
	if gen == "" {
		return assets.ErrLoaderClosed
	}
	s.status = "loading " + s.modelName()
	return nil
}

func (s *Scene) modelName() string {
	if s.cfg.Model.Path == "" {
		return "demo shoe"
	}
	return s.cfg.Model.Path
}

// Drain applies finished loads and queued file changes. It never blocks.
func (s *Scene) Drain() {
	if s.watcher != nil {
		select {
		case path := <-s.watcher.Changes():
			logging.Info("model changed on disk", "path", path)
			if err := s.Reload(); err != nil {
				logging.Warn("model not reloaded", "path", path, "err", err)
			}
		default:
		}
	}
	if r, ok := s.loader.Poll(); ok {
		s.apply(r)
	}
}

func (s *Scene) apply(r assets.Result) {
	if r.Err != nil {
		s.bus.Fire(events.AssetLoadFailed, s, events.Context{Path: r.Path, Generation: r.Generation, Err: r.Err})
		return
	}

	store := parts.NewStore(s.cfg.PartColors())
	names := make([]string, 0, len(r.Model.Parts()))
	for _, id := range r.Model.Parts() {
		if store.Add(string(id)) == parts.NoPart {
			continue
		}
		names = append(names, string(id))
	}
	s.store = store
	s.selection.Reset(store)
	s.world.SetModel(r.Model)
	s.hovered = parts.NoPart
	if s.fabric != "" {
		s.selection.SetFabricTexture(s.fabric)
	}

	logging.Debug("model applied", "elapsed", r.Elapsed, "faces", r.Model.FaceCount())
	s.bus.Fire(events.AssetLoaded, s, events.Context{Path: r.Path, Generation: r.Generation, Parts: names})
}

func (s *Scene) onEvent(code events.Code, _ any, ctx events.Context) bool {
	switch code {
	case events.HighlightChanged:
		s.status = "selected " + ctx.Part
		logging.Debug("part highlighted", "part", ctx.Part)
	case events.Deselected:
		s.status = "nothing selected"
		logging.Debug("part deselected", "part", ctx.Part)
	case events.ColorApplied:
		s.status = fmt.Sprintf("coloured %s #%02x%02x%02x", ctx.Part, ctx.Color.R, ctx.Color.G, ctx.Color.B)
		logging.Info("colour applied", "part", ctx.Part, "color", ctx.Color)
	case events.FabricApplied:
		s.status = fmt.Sprintf("fabric %q on %d parts", ctx.Texture, len(ctx.Parts))
		logging.Info("fabric applied", "texture", ctx.Texture, "parts", ctx.Parts)
	case events.AssetLoaded:
		s.status = fmt.Sprintf("loaded %s (%d parts)", s.modelName(), len(ctx.Parts))
		logging.Info("model loaded", "path", ctx.Path, "parts", ctx.Parts)
	case events.AssetLoadFailed:
		s.status = "load failed: " + ctx.Err.Error()
		logging.Error("model load failed", "path", ctx.Path, "err", ctx.Err)
	}
	return false
}

// Surface reports how a part is painted this frame.
func (s *Scene) Surface(id parts.ID) shoeview.Surface {
	p, ok := s.store.Get(id)
	if !ok {
		return shoeview.Surface{Color: parts.Gray}
	}
	return shoeview.Surface{Color: p.BaseColor, Emissive: p.Emissive, Texture: p.Texture}
}

func (s *Scene) pick(px, py float64) (parts.ID, bool) {
	w, h := s.world.Viewport()
	x, y := Normalize(px, py, w, h)
	return s.world.Pick(x, y)
}

// OnPointerMove records the part under the pointer for the HUD.
func (s *Scene) OnPointerMove(px, py float64) {
	s.hovered, _ = s.pick(px, py)
}

// OnPointerClick picks the part at a pixel position and hands it to the
// selection controller. A click on empty space deselects.
func (s *Scene) OnPointerClick(px, py float64) {
	id, _ := s.pick(px, py)
	s.selection.OnPick(id)
}

// SetColor colours the highlighted part and ends the selection.
func (s *Scene) SetColor(c color.RGBA) {
	s.selection.SetPendingColor(c)
}

// StageColor keeps c for the next part to be highlighted.
func (s *Scene) StageColor(c color.RGBA) {
	s.selection.StageColor(c)
	s.status = fmt.Sprintf("next pick gets #%02x%02x%02x", c.R, c.G, c.B)
}

// SetFabric puts a library texture on the fabric parts. The empty ref removes
// the fabric.
func (s *Scene) SetFabric(ref parts.TextureRef) error {
	if ref != "" {
		if _, ok := s.fabrics.Get(ref); !ok {
			return fmt.Errorf("%w: %q", assets.ErrUnknownTexture, ref)
		}
	}
	s.selection.SetFabricTexture(ref)
	s.fabric = ref
	return nil
}

// Deselect drops the highlight and any colour staged for the next pick.
func (s *Scene) Deselect() {
	s.selection.ClearStaged()
	s.selection.OnPick(parts.NoPart)
}

func (s *Scene) Close() {
	s.loader.Close()
	if s.watcher != nil {
		s.watcher.Close()
	}
}

func (s *Scene) World() *shoeview.World           { return s.world }
func (s *Scene) Store() *parts.Store              { return s.store }
func (s *Scene) Selection() *selection.Controller { return s.selection }
func (s *Scene) Fabrics() *assets.Library         { return s.fabrics }
func (s *Scene) Bus() *events.Bus                 { return s.bus }
func (s *Scene) Hovered() parts.ID                { return s.hovered }
func (s *Scene) Status() string                   { return s.status }

// Fabric returns the texture last applied to the fabric parts.
func (s *Scene) Fabric() parts.TextureRef { return s.fabric }
