// Package events is a small synchronous publish/subscribe bus used to report
// selection changes and asset loading to the host.
package events

import "image/color"

// Code identifies an event kind.
type Code int

const (
	// A part became highlighted. Context: Part.
	HighlightChanged Code = iota + 1
	// The highlight was cleared by a pick that hit nothing.
	Deselected
	// A colour was applied to a part. Context: Part, Color.
	ColorApplied
	// A fabric texture was applied to the fabric group. Context: Texture, Parts.
	FabricApplied
	// An asset finished loading. Context: Path, Generation.
	AssetLoaded
	// An asset failed to load. Context: Path, Generation, Err.
	AssetLoadFailed

	maxCode
)

func (c Code) String() string {
	switch c {
	case HighlightChanged:
		return "highlight-changed"
	case Deselected:
		return "deselected"
	case ColorApplied:
		return "color-applied"
	case FabricApplied:
		return "fabric-applied"
	case AssetLoaded:
		return "asset-loaded"
	case AssetLoadFailed:
		return "asset-load-failed"
	}
	return "unknown"
}

// Context carries the payload of an event. Only the fields listed for the
// event code are set.
type Context struct {
	Part       string
	Parts      []string
	Color      color.RGBA
	Texture    string
	Path       string
	Generation string
	Err        error
}

// Handler should return true if it handled the event; later handlers for the
// same code are then skipped.
type Handler func(code Code, sender any, ctx Context) bool

type registered struct {
	listener any
	handler  Handler
}

// Bus dispatches events synchronously on the caller's goroutine.
type Bus struct {
	registered [maxCode][]registered
}

func NewBus() *Bus {
	return &Bus{}
}

// Register subscribes handler to code on behalf of listener. A listener may
// only be registered once per code; a duplicate returns false. Listeners are
// compared with == and must be comparable (pointers or strings).
func (b *Bus) Register(code Code, listener any, handler Handler) bool {
	if !valid(code) || handler == nil {
		return false
	}
	for _, r := range b.registered[code] {
		if r.listener == listener {
			return false
		}
	}
	b.registered[code] = append(b.registered[code], registered{listener: listener, handler: handler})
	return true
}

// Unregister removes the listener's handler for code.
func (b *Bus) Unregister(code Code, listener any) bool {
	if !valid(code) {
		return false
	}
	list := b.registered[code]
	for i, r := range list {
		if r.listener == listener {
			b.registered[code] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Fire delivers an event to the handlers of code in registration order and
// reports whether one of them handled it. A nil bus drops the event.
func (b *Bus) Fire(code Code, sender any, ctx Context) bool {
	if b == nil || !valid(code) {
		return false
	}
	for _, r := range b.registered[code] {
		if r.handler(code, sender, ctx) {
			return true
		}
	}
	return false
}

// Listeners returns the number of handlers registered for code.
func (b *Bus) Listeners(code Code) int {
	if !valid(code) {
		return 0
	}
	return len(b.registered[code])
}

func valid(code Code) bool {
	return code > 0 && code < maxCode
}
