package shoeview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/shoeview/parts"
)

// Canvas receives projected polygons in paint order. uv is nil for untextured
// polygons and is otherwise in texture repeats, parallel to xp and yp.
type Canvas interface {
	AddPolygon(xp, yp []float32, uv [][2]float32, clr color.RGBA, texture parts.TextureRef)
}

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// ebiten indices are uint16
const maxBatchVertices = 1<<16 - 1

type texture struct {
	img    *ebiten.Image
	repeat float64
}

type batch struct {
	texture  parts.TextureRef
	vertices []ebiten.Vertex
	indices  []uint16
}

// PolygonBatcher turns polygons into as few DrawTriangles calls as paint
// order allows. Consecutive polygons with the same texture share a batch.
type PolygonBatcher struct {
	textures map[parts.TextureRef]texture
	batches  []*batch
	used     int
}

func NewPolygonBatcher() *PolygonBatcher {
	return &PolygonBatcher{textures: make(map[parts.TextureRef]texture)}
}

// SetTexture registers img under ref. repeat is how many times the image
// tiles across one unit of texture space.
func (b *PolygonBatcher) SetTexture(ref parts.TextureRef, img *ebiten.Image, repeat float64) {
	if repeat <= 0 {
		repeat = 1
	}
	b.textures[ref] = texture{img: img, repeat: repeat}
}

func (b *PolygonBatcher) HasTexture(ref parts.TextureRef) bool {
	_, ok := b.textures[ref]
	return ok
}

func (b *PolygonBatcher) current(ref parts.TextureRef, extra int) *batch {
	if b.used > 0 {
		last := b.batches[b.used-1]
		if last.texture == ref && len(last.vertices)+extra <= maxBatchVertices {
			return last
		}
	}
	if b.used == len(b.batches) {
		b.batches = append(b.batches, &batch{})
	}
	bt := b.batches[b.used]
	bt.texture = ref
	bt.vertices = bt.vertices[:0]
	bt.indices = bt.indices[:0]
	b.used++
	return bt
}

func (b *PolygonBatcher) AddPolygon(xp, yp []float32, uv [][2]float32, clr color.RGBA, ref parts.TextureRef) {
	if len(xp) < 3 {
		return
	}

	tex, textured := b.textures[ref]
	if !textured || len(uv) != len(xp) {
		ref = ""
		textured = false
	}

	bt := b.current(ref, len(xp))
	base := uint16(len(bt.vertices))
	for i := 2; i < len(xp); i++ {
		bt.indices = append(bt.indices, base, base+uint16(i-1), base+uint16(i))
	}

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	var w, h float32
	if textured {
		bounds := tex.img.Bounds()
		w = float32(float64(bounds.Dx()) * tex.repeat)
		h = float32(float64(bounds.Dy()) * tex.repeat)
	}

	for i := range xp {
		v := ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
		if textured {
			v.SrcX = uv[i][0] * w
			v.SrcY = uv[i][1] * h
		}
		bt.vertices = append(bt.vertices, v)
	}
}

// Draw paints every batch onto screen and empties the batcher.
func (b *PolygonBatcher) Draw(screen *ebiten.Image) {
	for _, bt := range b.batches[:b.used] {
		if len(bt.indices) == 0 {
			continue
		}
		op := &ebiten.DrawTrianglesOptions{}
		src := whiteSub
		if bt.texture != "" {
			src = b.textures[bt.texture].img
			op.Address = ebiten.AddressRepeat
			op.Filter = ebiten.FilterLinear
		} else {
			op.AntiAlias = true
		}
		screen.DrawTriangles(bt.vertices, bt.indices, src, op)
	}
	b.used = 0
}

// Batches reports how many draw calls the next Draw will make.
func (b *PolygonBatcher) Batches() int {
	return b.used
}
