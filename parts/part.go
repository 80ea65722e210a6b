package parts

import (
	"image/color"
	"sort"
	"strings"
)

// ID identifies a part. It is the lower-cased name of the mesh the part was
// created from.
type ID string

// NoPart is the ID reported when a pick hit nothing.
const NoPart ID = ""

// TextureRef names a texture held by the texture library. The empty ref means
// no texture map.
type TextureRef string

type Group int

const (
	GroupNone Group = iota
	GroupFabric
)

// Part is a named, independently colourable region of the loaded shoe.
type Part struct {
	ID        ID
	BaseColor color.RGBA
	Texture   TextureRef
	Emissive  color.RGBA
	Fabric    bool
}

// Gray is used for meshes that have no entry in the default colour table.
var Gray = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

var defaultColors = map[string]color.RGBA{
	"laces":       {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"mesh":        {R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff},
	"caps":        {R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff},
	"inner":       {R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
	"inside":      {R: 0xe0, G: 0xdc, B: 0xd2, A: 0xff},
	"outside":     {R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff},
	"sole":        {R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	"sole_top":    {R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff},
	"sole_bottom": {R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff},
	"stripes":     {R: 0x1f, G: 0x3a, B: 0x93, A: 0xff},
	"band":        {R: 0xc0, G: 0x39, B: 0x2b, A: 0xff},
	"patch":       {R: 0x1f, G: 0x1f, B: 0x1f, A: 0xff},
	"tongue":      {R: 0xee, G: 0xee, B: 0xee, A: 0xff},
}

var fabricNames = []string{"outside", "inside", "sole_top"}

// Normalize maps a raw mesh name to a part ID.
func Normalize(name string) ID {
	return ID(strings.ToLower(strings.TrimSpace(name)))
}

// DefaultColor returns the load-time colour for a part. An exact match wins,
// then the longest table key that prefixes the name, then Gray.
func DefaultColor(id ID, overrides map[string]color.RGBA) color.RGBA {
	table := defaultColors
	if len(overrides) > 0 {
		table = make(map[string]color.RGBA, len(defaultColors)+len(overrides))
		for k, v := range defaultColors {
			table[k] = v
		}
		for k, v := range overrides {
			table[strings.ToLower(k)] = v
		}
	}

	name := string(id)
	if c, ok := table[name]; ok {
		return c
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		if strings.HasPrefix(name, k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return Gray
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return table[keys[0]]
}

// IsFabric reports whether a part belongs to the fabric-swappable group.
func IsFabric(id ID) bool {
	for _, n := range fabricNames {
		if strings.Contains(string(id), n) {
			return true
		}
	}
	return false
}
