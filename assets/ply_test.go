package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smasonuk/shoeview/parts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squarePLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
property float s
property float t
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 0
10 0 0 1 0
10 10 0 1 1
0 10 0 0 1
4 0 1 2 3
`

const colouredTrianglePLY = `ply
format ascii 1.0
element vertex 3
property uchar red
property uchar green
property uchar blue
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
255 0 0 0 0 5
0 255 0 10 0 5
0 0 255 0 10 5
3 0 1 2
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadPLY(t *testing.T) {
	faces, err := ReadPLY(strings.NewReader(squarePLY), "laces")
	require.NoError(t, err)
	require.Len(t, faces, 1)

	f := faces[0]
	assert.Equal(t, parts.ID("laces"), f.Part)
	assert.Len(t, f.Points, 4)
	require.True(t, f.HasUV())
	assert.Equal(t, [2]float64{1, 1}, f.UV[2])
	assert.InDelta(t, 1, f.GetNormal().Z, 1e-9)
}

func TestReadPLYFindsColumnsByName(t *testing.T) {
	faces, err := ReadPLY(strings.NewReader(colouredTrianglePLY), "sole")
	require.NoError(t, err)
	require.Len(t, faces, 1)
	assert.Equal(t, []float64{10, 0, 5, 1}, faces[0].Points[1])
	assert.False(t, faces[0].HasUV())
}

func TestReadPLYErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"binary", "ply\nformat binary_little_endian 1.0\nend_header\n"},
		{"no header", "hello\n"},
		{"truncated vertices", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
		{"bad index", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nend_header\n0 0 0\n3 0 1 2\n"},
		{"missing z", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nend_header\n0 0\n"},
		{"negative vertex count", "ply\nformat ascii 1.0\nelement vertex -1\nproperty float x\nproperty float y\nproperty float z\nend_header\n"},
		{"negative face count", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nelement face -5\nend_header\n0 0 0\n"},
		{"huge vertex count", "ply\nformat ascii 1.0\nelement vertex 9223372036854775807\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
		{"huge face count", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nelement face 4000000000000\nend_header\n0 0 0\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = ReadPLY(strings.NewReader(tc.body), "x")
			})
			assert.Error(t, err)
		})
	}

	_, err := ReadPLY(strings.NewReader("ply\nformat binary_big_endian 1.0\nend_header\n"), "x")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadPLYDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Laces.ply", squarePLY)
	writeFile(t, dir, "sole_top.PLY", colouredTrianglePLY)
	writeFile(t, dir, "notes.txt", "ignored")

	m, err := LoadPLYDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []parts.ID{"laces", "sole_top"}, m.Parts())
	assert.Equal(t, 2, m.FaceCount())
}

func TestLoadPLYDirNamesBlankFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "laces.ply", squarePLY)
	writeFile(t, dir, "   .ply", colouredTrianglePLY)

	m, err := LoadPLYDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []parts.ID{"laces", "part_0"}, m.Parts())
	assert.NotContains(t, m.Parts(), parts.NoPart)
}

func TestLoadPLYDirWithoutModels(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "ignored")

	_, err := LoadPLYDir(dir)
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()
	ply := writeFile(t, dir, "inside.ply", squarePLY)
	obj := writeFile(t, dir, "shoe.obj", "o shoe\n")

	m, err := Load(ply)
	require.NoError(t, err)
	assert.Equal(t, []parts.ID{"inside"}, m.Parts())

	_, err = Load(obj)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.glb"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	demo, err := Load("")
	require.NoError(t, err)
	assert.Contains(t, demo.Parts(), parts.ID("laces"))
}
