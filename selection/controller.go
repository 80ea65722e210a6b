// Package selection tracks which shoe part is highlighted and applies colour
// and fabric edits to the material store.
package selection

import (
	"image/color"

	"github.com/smasonuk/shoeview/internal/events"
	"github.com/smasonuk/shoeview/parts"
)

// MaterialStore is the part material state the controller mutates.
type MaterialStore interface {
	Has(id parts.ID) bool
	SetBaseColor(id parts.ID, c color.RGBA)
	SetEmissive(id parts.ID, c color.RGBA)
	SetTextureMap(id parts.ID, ref parts.TextureRef)
	ListByGroup(g parts.Group) []parts.ID
}

// PickProvider converts a pointer position, normalised to [-1, 1] on both
// axes of the render surface, into the nearest part under it.
type PickProvider interface {
	Pick(x, y float64) (parts.ID, bool)
}

type State int

const (
	Idle State = iota
	Highlighted
)

func (s State) String() string {
	if s == Highlighted {
		return "highlighted"
	}
	return "idle"
}

// DefaultHighlight is the emissive colour of the highlighted part.
var DefaultHighlight = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}

var none = color.RGBA{}

// Controller is the part selection state machine. It is not safe for
// concurrent use; the host calls it from its event loop.
type Controller struct {
	store     MaterialStore
	bus       *events.Bus
	highlight color.RGBA

	current    parts.ID
	pending    color.RGBA
	hasPending bool
}

type Option func(*Controller)

func WithHighlight(c color.RGBA) Option {
	return func(sc *Controller) {
		sc.highlight = c
	}
}

// WithEvents reports transitions on the bus.
func WithEvents(bus *events.Bus) Option {
	return func(sc *Controller) {
		sc.bus = bus
	}
}

func NewController(store MaterialStore, opts ...Option) *Controller {
	sc := &Controller{
		store:     store,
		highlight: DefaultHighlight,
	}
	for _, o := range opts {
		o(sc)
	}
	return sc
}

func (sc *Controller) State() State {
	if sc.current == parts.NoPart {
		return Idle
	}
	return Highlighted
}

// Highlighted returns the highlighted part, or NoPart when idle.
func (sc *Controller) Highlighted() parts.ID {
	return sc.current
}

func (sc *Controller) PendingColor() (color.RGBA, bool) {
	return sc.pending, sc.hasPending
}

// OnPick handles a pointer click that hit id, or nothing when id is NoPart.
// Re-picking the highlighted part and picking an unknown part are no-ops.
func (sc *Controller) OnPick(id parts.ID) {
	if id == parts.NoPart {
		if sc.current == parts.NoPart {
			return
		}
		prev := sc.current
		sc.store.SetEmissive(prev, none)
		sc.current = parts.NoPart
		sc.bus.Fire(events.Deselected, sc, events.Context{Part: string(prev)})
		return
	}

	if id == sc.current || !sc.store.Has(id) {
		return
	}

	if sc.current != parts.NoPart {
		sc.store.SetEmissive(sc.current, none)
	}
	sc.store.SetEmissive(id, sc.highlight)
	sc.current = id

	if sc.hasPending {
		c := sc.pending
		sc.store.SetBaseColor(id, c)
		sc.clearPending()
		sc.bus.Fire(events.ColorApplied, sc, events.Context{Part: string(id), Color: c})
	}
	sc.bus.Fire(events.HighlightChanged, sc, events.Context{Part: string(id)})
}

// SetPendingColor applies c to the highlighted part and consumes the
// selection. With nothing highlighted no part changes. The pending colour is
// absent after the call either way.
func (sc *Controller) SetPendingColor(c color.RGBA) {
	sc.pending, sc.hasPending = c, true
	if sc.current != parts.NoPart {
		id := sc.current
		sc.store.SetBaseColor(id, c)
		sc.store.SetEmissive(id, none)
		sc.current = parts.NoPart
		sc.bus.Fire(events.ColorApplied, sc, events.Context{Part: string(id), Color: c})
	}
	sc.clearPending()
}

// StageColor keeps c pending so the next newly highlighted part receives it.
func (sc *Controller) StageColor(c color.RGBA) {
	sc.pending, sc.hasPending = c, true
}

// ClearStaged drops a staged colour without touching any part.
func (sc *Controller) ClearStaged() {
	sc.clearPending()
}

// SetFabricTexture puts ref on every part of the fabric group. Selection is
// untouched.
func (sc *Controller) SetFabricTexture(ref parts.TextureRef) {
	ids := sc.store.ListByGroup(parts.GroupFabric)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		sc.store.SetTextureMap(id, ref)
		names = append(names, string(id))
	}
	sc.bus.Fire(events.FabricApplied, sc, events.Context{Texture: string(ref), Parts: names})
}

// Reset drops the selection without touching the store. Used when the store
// is replaced by a reload.
func (sc *Controller) Reset(store MaterialStore) {
	sc.store = store
	sc.current = parts.NoPart
	sc.clearPending()
}

func (sc *Controller) clearPending() {
	sc.pending, sc.hasPending = none, false
}
