package assets

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/smasonuk/shoeview"
	"github.com/smasonuk/shoeview/internal/logging"
	"github.com/smasonuk/shoeview/parts"
)

// LoadGLTF reads a .gltf or .glb file. Every mesh node becomes the part named
// after the node, or after its mesh when the node is unnamed.
func LoadGLTF(path string) (*shoeview.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	m, err := modelFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func modelFromDocument(doc *gltf.Document) (*shoeview.Model, error) {
	m := shoeview.NewModel()
	w := &gltfWalker{doc: doc, model: m}

	for _, root := range sceneRoots(doc) {
		if err := w.walk(root, mgl64.Ident4(), 0); err != nil {
			return nil, err
		}
	}
	if m.FaceCount() == 0 {
		return nil, ErrNoGeometry
	}
	m.Finished(true)
	m.FitToSize(shoeview.ModelSize)
	return m, nil
}

// sceneRoots returns the root nodes of the default scene, or of the first
// scene when none is marked default. Files without scenes list every node
// that is nobody's child.
func sceneRoots(doc *gltf.Document) []uint32 {
	if len(doc.Scenes) > 0 {
		s := uint32(0)
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			s = *doc.Scene
		}
		return doc.Scenes[s].Nodes
	}
	child := make(map[uint32]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !child[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

type gltfWalker struct {
	doc   *gltf.Document
	model *shoeview.Model
}

// maxNodeDepth guards against cyclic node graphs in malformed files.
const maxNodeDepth = 64

func (w *gltfWalker) walk(idx uint32, parent mgl64.Mat4, depth int) error {
	if int(idx) >= len(w.doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	if depth > maxNodeDepth {
		return fmt.Errorf("node %d nested deeper than %d", idx, maxNodeDepth)
	}
	node := w.doc.Nodes[idx]
	world := parent.Mul4(localTransform(node))

	if node.Mesh != nil {
		if err := w.addMesh(node, *node.Mesh, world); err != nil {
			return err
		}
	}
	for _, c := range node.Children {
		if err := w.walk(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

var identity32 = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func localTransform(n *gltf.Node) mgl64.Mat4 {
	if n.Matrix != [16]float32{} && n.Matrix != identity32 {
		// both glTF and mgl64 store matrices column major
		var m mgl64.Mat4
		for i, v := range n.MatrixOrDefault() {
			m[i] = float64(v)
		}
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	rot := mgl64.Quat{
		W: float64(r[3]),
		V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])},
	}.Normalize()
	return mgl64.Translate3D(float64(t[0]), float64(t[1]), float64(t[2])).
		Mul4(rot.Mat4()).
		Mul4(mgl64.Scale3D(float64(s[0]), float64(s[1]), float64(s[2])))
}

// partName prefers the node name, then the mesh name. Names that normalise
// to nothing would collide with NoPart, so they fall back to part_N.
func partName(node *gltf.Node, mesh *gltf.Mesh, meshIdx uint32) parts.ID {
	for _, name := range []string{node.Name, mesh.Name} {
		if id := parts.Normalize(name); id != parts.NoPart {
			return id
		}
	}
	return parts.ID(fmt.Sprintf("part_%d", meshIdx))
}

func (w *gltfWalker) addMesh(node *gltf.Node, meshIdx uint32, world mgl64.Mat4) error {
	if int(meshIdx) >= len(w.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", meshIdx)
	}
	mesh := w.doc.Meshes[meshIdx]
	id := partName(node, mesh, meshIdx)

	// a mirroring transform flips the winding
	winding := shoeview.FACE_NORMAL
	if world.Det() < 0 {
		winding = shoeview.FACE_REVERSE
	}

	for pi, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			logging.Debug("skipping non-triangle primitive", "part", id, "primitive", pi)
			continue
		}
		faces, err := w.readPrimitive(prim, id, world, winding)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, pi, err)
		}
		for _, f := range faces {
			w.model.AddFace(f)
		}
	}
	return nil
}

func (w *gltfWalker) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(w.doc.Accessors) || w.doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return w.doc.Accessors[idx], nil
}

func (w *gltfWalker) readPrimitive(prim *gltf.Primitive, id parts.ID, world mgl64.Mat4, winding int) ([]*shoeview.Face, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	posAcr, err := w.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(w.doc, posAcr, nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var uvs [][2]float32
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvAcr, err := w.accessor(uvIdx)
		if err != nil {
			return nil, err
		}
		uvs, err = modeler.ReadTextureCoord(w.doc, uvAcr, nil)
		if err != nil {
			return nil, fmt.Errorf("read texture coordinates: %w", err)
		}
		if len(uvs) != len(positions) {
			uvs = nil
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		idxAcr, err := w.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		indices, err = modeler.ReadIndices(w.doc, idxAcr, nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	doubleSided := false
	if prim.Material != nil && int(*prim.Material) < len(w.doc.Materials) {
		doubleSided = w.doc.Materials[*prim.Material].DoubleSided
	}

	faces := make([]*shoeview.Face, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		f := shoeview.NewFace(id)
		f.DoubleSided = doubleSided
		valid := true
		for _, vi := range indices[i : i+3] {
			if int(vi) >= len(positions) {
				valid = false
				break
			}
			p := positions[vi]
			v := mgl64.TransformCoordinate(mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}, world)
			if uvs != nil {
				f.AddPointUV(v[0], v[1], v[2], float64(uvs[vi][0]), float64(uvs[vi][1]))
			} else {
				f.AddPoint(v[0], v[1], v[2])
			}
		}
		if !valid {
			return nil, fmt.Errorf("index out of range at triangle %d", i/3)
		}
		f.Finished(winding)
		faces = append(faces, f)
	}
	return faces, nil
}
