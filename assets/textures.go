package assets

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/aquilax/go-perlin"
	"github.com/smasonuk/shoeview/config"
	"github.com/smasonuk/shoeview/internal/logging"
	"github.com/smasonuk/shoeview/parts"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	patternSize     = 128
	maxTextureSize  = 512
	perlinAlpha     = 2.0
	perlinBeta      = 2.0
	perlinOctaves   = 3
	fiberNoiseScale = 0.08
)

// Texture is a decoded fabric image. Scale is how many times it repeats
// across the model.
type Texture struct {
	Ref   parts.TextureRef
	Image *image.RGBA
	Scale float64
}

// Library holds the fabrics the user can apply. It is safe for concurrent
// use so textures can be decoded off the UI goroutine.
type Library struct {
	mu       sync.RWMutex
	textures map[parts.TextureRef]*Texture
	order    []parts.TextureRef
}

func NewLibrary() *Library {
	return &Library{textures: make(map[parts.TextureRef]*Texture)}
}

// NewLibraryFromConfig builds every configured fabric. Seeds are taken from
// the fabric position so patterns are stable between runs.
func NewLibraryFromConfig(fabrics []config.Fabric) (*Library, error) {
	lib := NewLibrary()
	for i, f := range fabrics {
		tint := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		if f.Tint != "" {
			c, err := config.ParseColor(f.Tint)
			if err != nil {
				return nil, fmt.Errorf("fabric %q: %w", f.Name, err)
			}
			tint = c
		}
		var err error
		if f.Path != "" {
			_, err = lib.LoadFile(f.Name, f.Path, tint, f.Scale)
		} else {
			_, err = lib.Generate(f.Name, f.Pattern, tint, f.Scale, int64(i+1))
		}
		if err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// Add stores img under name, replacing any texture already there.
func (l *Library) Add(name string, img image.Image, scale float64) parts.TextureRef {
	if scale <= 0 {
		scale = 1
	}
	ref := parts.TextureRef(name)
	tex := &Texture{Ref: ref, Image: toRGBA(img), Scale: scale}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.textures[ref]; !ok {
		l.order = append(l.order, ref)
	}
	l.textures[ref] = tex
	return ref
}

func (l *Library) Get(ref parts.TextureRef) (*Texture, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.textures[ref]
	return t, ok
}

// Refs lists textures in the order they were first added.
func (l *Library) Refs() []parts.TextureRef {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]parts.TextureRef, len(l.order))
	copy(out, l.order)
	return out
}

// LoadFile decodes a png, jpeg, gif, bmp, tiff or webp image, shrinks it to
// at most maxTextureSize on a side and multiplies it by tint.
func (l *Library) LoadFile(name, path string, tint color.RGBA, scale float64) (parts.TextureRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("fabric %q: %w", name, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("fabric %q: decode %s: %w", name, path, err)
	}
	rgba := shrink(img, maxTextureSize)
	applyTint(rgba, tint)
	logging.Debug("fabric loaded", "name", name, "format", format, "size", rgba.Bounds().Size())
	return l.Add(name, rgba, scale), nil
}

// Generate renders a procedural fabric: weave, twill or knit.
func (l *Library) Generate(name, pattern string, tint color.RGBA, scale float64, seed int64) (parts.TextureRef, error) {
	shade, ok := patterns[pattern]
	if !ok {
		return "", fmt.Errorf("fabric %q: %w %q", name, ErrUnknownPattern, pattern)
	}
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)

	img := image.NewRGBA(image.Rect(0, 0, patternSize, patternSize))
	for y := 0; y < patternSize; y++ {
		for x := 0; x < patternSize; x++ {
			b := shade(x, y) + fiberNoiseScale*noise.Noise2D(float64(x)/6, float64(y)/6)
			img.SetRGBA(x, y, scaleColor(tint, b))
		}
	}
	return l.Add(name, img, scale), nil
}

// PatternNames lists the procedural patterns Generate accepts.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for n := range patterns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Each pattern returns a brightness around 1 for pixel x, y. Periods divide
// patternSize so the tile repeats without seams.
var patterns = map[string]func(x, y int) float64{
	"weave": func(x, y int) float64 {
		over := (x/8+y/8)%2 == 0
		var along int
		if over {
			along = y % 8
		} else {
			along = x % 8
		}
		// threads are brighter in the middle than at their edges
		return 0.82 + 0.18*math.Sin(math.Pi*(float64(along)+0.5)/8)
	},
	"twill": func(x, y int) float64 {
		d := (x + y) % 16
		if d < 10 {
			return 1.0 - 0.02*float64(d)
		}
		return 0.78
	},
	"knit": func(x, y int) float64 {
		col := x % 8
		row := y % 8
		// a V per stitch: left half leans one way, right half the other
		lean := col
		if col >= 4 {
			lean = 7 - col
		}
		if (row+lean)%8 < 5 {
			return 1.0 - 0.03*float64(lean)
		}
		return 0.8
	},
}

func scaleColor(c color.RGBA, b float64) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*b)))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: 0xff}
}

func applyTint(img *image.RGBA, tint color.RGBA) {
	if tint == (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		return
	}
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(uint16(img.Pix[i]) * uint16(tint.R) / 255)
		img.Pix[i+1] = uint8(uint16(img.Pix[i+1]) * uint16(tint.G) / 255)
		img.Pix[i+2] = uint8(uint16(img.Pix[i+2]) * uint16(tint.B) / 255)
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func shrink(img image.Image, max int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return toRGBA(img)
	}
	if w > h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}
