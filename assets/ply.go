package assets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smasonuk/shoeview"
	"github.com/smasonuk/shoeview/parts"
)

// LoadPLYDir loads every .ply file in dir as one part, named after the file.
func LoadPLYDir(dir string) (*shoeview.Model, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read model directory %s: %w", dir, err)
	}

	m := shoeview.NewModel()
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".ply") {
			continue
		}
		id := plyPartID(e.Name(), n)
		n++
		faces, err := readPLYFile(filepath.Join(dir, e.Name()), id)
		if err != nil {
			return nil, err
		}
		m.AddFaces(faces)
	}
	if m.FaceCount() == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoGeometry)
	}
	m.Finished(true)
	m.FitToSize(shoeview.ModelSize)
	return m, nil
}

// LoadPLYFile loads a single .ply file as one part named after the file.
func LoadPLYFile(path string) (*shoeview.Model, error) {
	faces, err := readPLYFile(path, plyPartID(filepath.Base(path), 0))
	if err != nil {
		return nil, err
	}
	m := shoeview.NewModel()
	m.AddFaces(faces)
	if m.FaceCount() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoGeometry)
	}
	m.Finished(true)
	m.FitToSize(shoeview.ModelSize)
	return m, nil
}

// plyPartID names a part after its file. Files whose name is blank get
// part_n so the part stays pickable.
func plyPartID(base string, n int) parts.ID {
	id := parts.Normalize(strings.TrimSuffix(base, filepath.Ext(base)))
	if id == parts.NoPart {
		id = parts.ID(fmt.Sprintf("part_%d", n))
	}
	return id
}

func readPLYFile(path string, id parts.ID) ([]*shoeview.Face, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", path, err)
	}
	defer file.Close()

	faces, err := ReadPLY(file, id)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", path, err)
	}
	return faces, nil
}

// Element counts come from the file, so slices only trust them up to this
// size and grow past it as rows are actually read.
const maxPreallocate = 1 << 16

type plyVertex struct {
	x, y, z float64
	u, v    float64
}

// ReadPLY parses an ASCII PLY stream into faces of part id. Vertex columns are
// located by property name so files with normals, colours or texture
// coordinates in any order are accepted.
func ReadPLY(reader io.Reader, id parts.ID) ([]*shoeview.Face, error) {
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	var currentElement string
	vertexProps := map[string]int{}
	numVertexProps := 0
	sawFormat := false

header:
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, fmt.Errorf("%w: only ascii PLY is supported", ErrUnsupportedFormat)
			}
			sawFormat = true
		case "element":
			if len(fields) == 3 {
				currentElement = fields[1]
				n, err := strconv.Atoi(fields[2])
				if err != nil || n < 0 {
					return nil, fmt.Errorf("bad element count %q", fields[2])
				}
				switch currentElement {
				case "vertex":
					vertexCount = n
				case "face":
					faceCount = n
				}
			}
		case "property":
			if currentElement == "vertex" && len(fields) >= 3 {
				vertexProps[fields[len(fields)-1]] = numVertexProps
				numVertexProps++
			}
		case "end_header":
			break header
		}
	}
	if !sawFormat {
		return nil, fmt.Errorf("%w: missing PLY header", ErrUnsupportedFormat)
	}

	xi, okx := vertexProps["x"]
	yi, oky := vertexProps["y"]
	zi, okz := vertexProps["z"]
	if !okx || !oky || !okz {
		return nil, fmt.Errorf("vertex element lacks x, y or z")
	}
	ui, hasU := vertexProps["s"]
	vi, hasV := vertexProps["t"]
	if !hasU || !hasV {
		ui, hasU = vertexProps["u"]
		vi, hasV = vertexProps["v"]
	}
	hasUV := hasU && hasV

	vertices := make([]plyVertex, 0, min(vertexCount, maxPreallocate))
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < numVertexProps {
			return nil, fmt.Errorf("invalid vertex data on line %d", i)
		}
		var vert plyVertex
		var err error
		if vert.x, err = strconv.ParseFloat(fields[xi], 64); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if vert.y, err = strconv.ParseFloat(fields[yi], 64); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if vert.z, err = strconv.ParseFloat(fields[zi], 64); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if hasUV {
			vert.u, _ = strconv.ParseFloat(fields[ui], 64)
			vert.v, _ = strconv.ParseFloat(fields[vi], 64)
		}
		vertices = append(vertices, vert)
	}

	faces := make([]*shoeview.Face, 0, min(faceCount, maxPreallocate))
	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			return nil, fmt.Errorf("empty face on line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(fields[0])
		if err != nil || len(fields) < numFaceVerts+1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}

		aFace := shoeview.NewFace(id)
		for j := 1; j <= numFaceVerts; j++ {
			idx, err := strconv.Atoi(fields[j])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: bad vertex index %q", i, fields[j])
			}
			vert := vertices[idx]
			if hasUV {
				aFace.AddPointUV(vert.x, vert.y, vert.z, vert.u, vert.v)
			} else {
				aFace.AddPoint(vert.x, vert.y, vert.z)
			}
		}
		aFace.Finished(shoeview.FACE_NORMAL)
		faces = append(faces, aFace)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return faces, nil
}
