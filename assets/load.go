package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smasonuk/shoeview"
)

// Load picks a loader from path: a directory of .ply parts, a .gltf/.glb
// file or a single .ply file. The empty path yields the built-in demo shoe.
func Load(path string) (*shoeview.Model, error) {
	if path == "" {
		return shoeview.NewDemoShoe(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return LoadPLYDir(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return LoadGLTF(path)
	case ".ply":
		return LoadPLYFile(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}
