package assets

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/smasonuk/shoeview/parts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeShoeGLB saves a two part document: a named node holding a textured
// quad and an unnamed node whose mesh carries the part name.
func writeShoeGLB(t *testing.T) string {
	t.Helper()
	doc := gltf.NewDocument()

	quad := &gltf.Primitive{
		Mode: gltf.PrimitiveTriangles,
		Attributes: gltf.Attribute{
			gltf.POSITION: uint32(modeler.WritePosition(doc, [][3]float32{
				{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			})),
			gltf.TEXCOORD_0: uint32(modeler.WriteTextureCoord(doc, [][2]float32{
				{0, 0}, {1, 0}, {1, 1}, {0, 1},
			})),
		},
		Indices:  gltf.Index(uint32(modeler.WriteIndices(doc, []uint32{0, 1, 2, 0, 2, 3}))),
		Material: gltf.Index(0),
	}
	tri := &gltf.Primitive{
		Mode: gltf.PrimitiveTriangles,
		Attributes: gltf.Attribute{
			gltf.POSITION: uint32(modeler.WritePosition(doc, [][3]float32{
				{0, 0, 0}, {2, 0, 0}, {0, 0, 2},
			})),
		},
	}

	doc.Materials = []*gltf.Material{{Name: "cloth", DoubleSided: true}}
	doc.Meshes = []*gltf.Mesh{
		{Name: "QuadMesh", Primitives: []*gltf.Primitive{quad}},
		{Name: "Sole_Top", Primitives: []*gltf.Primitive{tri}},
	}
	doc.Nodes = []*gltf.Node{
		{Name: "Shoe", Children: []uint32{1, 2}},
		{Name: "Laces", Mesh: gltf.Index(0), Translation: [3]float32{0, 5, 0}},
		{Mesh: gltf.Index(1), Scale: [3]float32{1, 1, 1}},
	}
	doc.Scenes = []*gltf.Scene{{Nodes: []uint32{0}}}
	doc.Scene = gltf.Index(0)

	path := filepath.Join(t.TempDir(), "shoe.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadGLTF(t *testing.T) {
	m, err := LoadGLTF(writeShoeGLB(t))
	require.NoError(t, err)

	assert.Equal(t, []parts.ID{"laces", "sole_top"}, m.Parts())
	assert.Equal(t, 3, m.FaceCount())

	// the translated quad sits above the triangle, so the model is taller
	// than either mesh alone
	x, y, z := m.GetExtents()
	longest := x
	if y > longest {
		longest = y
	}
	if z > longest {
		longest = z
	}
	assert.InDelta(t, 200, longest, 1e-6)
	assert.Greater(t, y, 0.0)
}

func TestLoadGLTFWithoutMeshes(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{{Name: "empty"}}
	doc.Scenes = []*gltf.Scene{{Nodes: []uint32{0}}}
	path := filepath.Join(t.TempDir(), "empty.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	_, err := LoadGLTF(path)
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestLoadGLTFMissingFile(t *testing.T) {
	_, err := LoadGLTF(filepath.Join(t.TempDir(), "nope.gltf"))
	assert.Error(t, err)
}

func TestPartNameFallbacks(t *testing.T) {
	assert.Equal(t, parts.ID("laces"), partName(&gltf.Node{Name: " Laces "}, &gltf.Mesh{Name: "x"}, 0))
	assert.Equal(t, parts.ID("sole_top"), partName(&gltf.Node{}, &gltf.Mesh{Name: "Sole_Top"}, 1))
	assert.Equal(t, parts.ID("part_7"), partName(&gltf.Node{}, &gltf.Mesh{}, 7))
	assert.Equal(t, parts.ID("sole_top"), partName(&gltf.Node{Name: "   "}, &gltf.Mesh{Name: "Sole_Top"}, 2))
	assert.Equal(t, parts.ID("part_3"), partName(&gltf.Node{Name: "   "}, &gltf.Mesh{Name: "\t"}, 3))
}

func TestLoadGLTFBlankNodeNameIsPickable(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
		Mode: gltf.PrimitiveTriangles,
		Attributes: gltf.Attribute{
			gltf.POSITION: uint32(modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})),
		},
	}}}}
	doc.Nodes = []*gltf.Node{{Name: "   ", Mesh: gltf.Index(0)}}
	doc.Scenes = []*gltf.Scene{{Nodes: []uint32{0}}}
	path := filepath.Join(t.TempDir(), "blank.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	m, err := LoadGLTF(path)
	require.NoError(t, err)
	assert.Equal(t, []parts.ID{"part_0"}, m.Parts())
}

func TestLoadGLTFRejectsBadAccessors(t *testing.T) {
	testCases := []struct {
		name string
		prim func(doc *gltf.Document) *gltf.Primitive
	}{
		{"position", func(doc *gltf.Document) *gltf.Primitive {
			return &gltf.Primitive{Attributes: gltf.Attribute{gltf.POSITION: 42}}
		}},
		{"texture coordinates", func(doc *gltf.Document) *gltf.Primitive {
			pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
			return &gltf.Primitive{Attributes: gltf.Attribute{gltf.POSITION: uint32(pos), gltf.TEXCOORD_0: 42}}
		}},
		{"indices", func(doc *gltf.Document) *gltf.Primitive {
			pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
			return &gltf.Primitive{Attributes: gltf.Attribute{gltf.POSITION: uint32(pos)}, Indices: gltf.Index(42)}
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := gltf.NewDocument()
			prim := tc.prim(doc)
			prim.Mode = gltf.PrimitiveTriangles
			doc.Meshes = []*gltf.Mesh{{Name: "laces", Primitives: []*gltf.Primitive{prim}}}
			doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
			doc.Scenes = []*gltf.Scene{{Nodes: []uint32{0}}}
			path := filepath.Join(t.TempDir(), "broken.gltf")
			require.NoError(t, gltf.Save(doc, path))

			var err error
			require.NotPanics(t, func() {
				_, err = LoadGLTF(path)
			})
			assert.ErrorContains(t, err, "accessor 42 out of range")
		})
	}
}
