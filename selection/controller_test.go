package selection

import (
	"image/color"
	"testing"

	"github.com/smasonuk/shoeview/internal/events"
	"github.com/smasonuk/shoeview/parts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

type recorder struct {
	codes []events.Code
	parts []string
}

func newFixture(t *testing.T) (*Controller, *parts.Store, *recorder) {
	t.Helper()
	store := parts.NewStore(nil)
	for _, n := range []string{"laces", "outside_1", "inside", "sole_top", "sole_bottom"} {
		store.Add(n)
	}

	rec := &recorder{}
	bus := events.NewBus()
	for _, code := range []events.Code{events.HighlightChanged, events.Deselected, events.ColorApplied, events.FabricApplied} {
		require.True(t, bus.Register(code, rec, func(code events.Code, _ any, ctx events.Context) bool {
			rec.codes = append(rec.codes, code)
			rec.parts = append(rec.parts, ctx.Part)
			return false
		}))
	}
	return NewController(store, WithEvents(bus)), store, rec
}

func part(t *testing.T, s *parts.Store, id parts.ID) parts.Part {
	t.Helper()
	p, ok := s.Get(id)
	require.True(t, ok, "part %q", id)
	return p
}

func TestDeselectFromIdleIsIdempotent(t *testing.T) {
	sc, _, rec := newFixture(t)

	sc.OnPick(parts.NoPart)
	sc.OnPick(parts.NoPart)

	assert.Equal(t, Idle, sc.State())
	assert.Empty(t, rec.codes)
}

func TestRepickSamePartDoesNotToggle(t *testing.T) {
	sc, store, rec := newFixture(t)

	sc.OnPick("laces")
	sc.OnPick("laces")

	assert.Equal(t, Highlighted, sc.State())
	assert.Equal(t, parts.ID("laces"), sc.Highlighted())
	assert.Equal(t, DefaultHighlight, part(t, store, "laces").Emissive)
	assert.Equal(t, []events.Code{events.HighlightChanged}, rec.codes)
}

func TestHighlightHandoff(t *testing.T) {
	sc, store, rec := newFixture(t)

	sc.OnPick("laces")
	assert.Equal(t, DefaultHighlight, part(t, store, "laces").Emissive)

	sc.OnPick("inside")
	assert.Equal(t, color.RGBA{}, part(t, store, "laces").Emissive)
	assert.Equal(t, DefaultHighlight, part(t, store, "inside").Emissive)

	sc.OnPick(parts.NoPart)
	assert.Equal(t, color.RGBA{}, part(t, store, "inside").Emissive)
	assert.Equal(t, Idle, sc.State())

	assert.Equal(t, []events.Code{events.HighlightChanged, events.HighlightChanged, events.Deselected}, rec.codes)
	assert.Equal(t, []string{"laces", "inside", "inside"}, rec.parts)
}

func TestAtMostOnePartHighlighted(t *testing.T) {
	sc, store, _ := newFixture(t)

	picks := []parts.ID{"laces", "inside", parts.NoPart, "sole_top", "sole_top", "ghost", "outside_1", "laces"}
	for _, id := range picks {
		sc.OnPick(id)
		assert.LessOrEqual(t, len(store.Highlighted()), 1, "after pick %q", id)
	}
	assert.Equal(t, []parts.ID{"laces"}, store.Highlighted())
}

func TestColorConsumesSelection(t *testing.T) {
	sc, store, rec := newFixture(t)

	sc.OnPick("outside_1")
	sc.SetPendingColor(red)

	p := part(t, store, "outside_1")
	assert.Equal(t, red, p.BaseColor)
	assert.Equal(t, color.RGBA{}, p.Emissive)
	assert.Equal(t, Idle, sc.State())
	_, pending := sc.PendingColor()
	assert.False(t, pending)
	assert.Equal(t, []events.Code{events.HighlightChanged, events.ColorApplied}, rec.codes)
}

func TestColorWithoutSelectionChangesNothing(t *testing.T) {
	sc, store, rec := newFixture(t)
	before := map[parts.ID]parts.Part{}
	for _, id := range store.IDs() {
		before[id] = part(t, store, id)
	}

	sc.SetPendingColor(red)

	for _, id := range store.IDs() {
		assert.Equal(t, before[id], part(t, store, id))
	}
	assert.Equal(t, Idle, sc.State())
	_, pending := sc.PendingColor()
	assert.False(t, pending)
	assert.Empty(t, rec.codes)
}

func TestStagedColorAppliedOnNextHighlight(t *testing.T) {
	sc, store, rec := newFixture(t)

	sc.StageColor(blue)
	c, pending := sc.PendingColor()
	require.True(t, pending)
	assert.Equal(t, blue, c)

	sc.OnPick("laces")
	assert.Equal(t, blue, part(t, store, "laces").BaseColor)
	assert.Equal(t, DefaultHighlight, part(t, store, "laces").Emissive)
	_, pending = sc.PendingColor()
	assert.False(t, pending)

	sc.OnPick("inside")
	assert.NotEqual(t, blue, part(t, store, "inside").BaseColor)
	assert.Equal(t, []events.Code{events.ColorApplied, events.HighlightChanged, events.HighlightChanged}, rec.codes)
}

func TestClearStagedDropsPendingColor(t *testing.T) {
	sc, store, rec := newFixture(t)

	sc.StageColor(blue)
	sc.ClearStaged()
	_, pending := sc.PendingColor()
	assert.False(t, pending)

	sc.OnPick("laces")
	assert.NotEqual(t, blue, part(t, store, "laces").BaseColor)
	assert.Equal(t, []events.Code{events.HighlightChanged}, rec.codes)
}

func TestFabricTextureGroup(t *testing.T) {
	sc, store, _ := newFixture(t)
	sc.OnPick("laces")

	sc.SetFabricTexture("denim")

	for _, id := range []parts.ID{"outside_1", "inside", "sole_top"} {
		assert.Equal(t, parts.TextureRef("denim"), part(t, store, id).Texture, "part %q", id)
	}
	for _, id := range []parts.ID{"laces", "sole_bottom"} {
		assert.Equal(t, parts.TextureRef(""), part(t, store, id).Texture, "part %q", id)
	}
	assert.Equal(t, parts.ID("laces"), sc.Highlighted())
}

func TestUnknownPickLeavesStateUnchanged(t *testing.T) {
	sc, store, rec := newFixture(t)

	sc.OnPick("ghost")
	assert.Equal(t, Idle, sc.State())

	sc.OnPick("inside")
	rec.codes = nil
	sc.OnPick("ghost")

	assert.Equal(t, parts.ID("inside"), sc.Highlighted())
	assert.Equal(t, DefaultHighlight, part(t, store, "inside").Emissive)
	assert.Empty(t, rec.codes)
}

func TestCustomHighlightAndNilBus(t *testing.T) {
	store := parts.NewStore(nil)
	store.Add("laces")
	sc := NewController(store, WithHighlight(red))

	sc.OnPick("laces")
	assert.Equal(t, red, part(t, store, "laces").Emissive)
	sc.OnPick(parts.NoPart)
	assert.Equal(t, Idle, sc.State())
}

func TestResetSwapsStore(t *testing.T) {
	sc, _, _ := newFixture(t)
	sc.OnPick("laces")
	sc.StageColor(red)

	fresh := parts.NewStore(nil)
	fresh.Add("tongue")
	sc.Reset(fresh)

	assert.Equal(t, Idle, sc.State())
	_, pending := sc.PendingColor()
	assert.False(t, pending)
	sc.OnPick("laces")
	assert.Equal(t, Idle, sc.State())
	sc.OnPick("tongue")
	assert.Equal(t, parts.ID("tongue"), sc.Highlighted())
}
