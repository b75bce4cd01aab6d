package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/litho/mesh"
	"github.com/soypat/litho/render"
)

const (
	primitivePlane = "plane"
	primitiveCube  = "cube"
	// primitiveSize is the edge length of generated primitives.
	primitiveSize = 2
)

// objectName returns the file base name without extension, the name an
// object loaded from path gets.
func objectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// readMesh loads an STL or OBJ file as a polygon mesh. STL vertices are
// welded with tol.
func readMesh(path string, tol float64) (*mesh.Mesh, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		tris, err := render.ReadSTL(fp)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return render.MeshFromTriangles(tris, tol)
	case ".obj":
		m, err := render.ReadOBJ(fp)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported mesh format %q, want .stl or .obj", ext)
	}
}

// readTriangles loads an STL or OBJ file as triangles.
func readTriangles(path string) ([]render.Triangle3, error) {
	if strings.ToLower(filepath.Ext(path)) == ".stl" {
		fp, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fp.Close()
		return render.ReadSTL(fp)
	}
	m, err := readMesh(path, 0)
	if err != nil {
		return nil, err
	}
	idx := m.Triangulate()
	tris := make([]render.Triangle3, len(idx))
	for i, t := range idx {
		tris[i] = render.Triangle3{m.Verts[t[0]], m.Verts[t[1]], m.Verts[t[2]]}
	}
	return tris, nil
}

func primitive(name string) (*mesh.Mesh, string, error) {
	switch strings.ToLower(name) {
	case primitivePlane:
		return mesh.Plane(primitiveSize), "Plane", nil
	case primitiveCube:
		return mesh.Cube(primitiveSize), "Cube", nil
	}
	return nil, "", fmt.Errorf("unknown primitive %q, want %s or %s", name, primitivePlane, primitiveCube)
}

// writeModel writes tris to path as binary STL or as an OBJ of welded vertices.
func writeModel(path string, tris []render.Triangle3) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return render.CreateSTL(path, render.NewSliceRenderer(tris))
	case ".obj":
		m, err := render.MeshFromTriangles(tris, 0)
		if err != nil {
			return err
		}
		fp, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := render.WriteOBJ(fp, m); err != nil {
			fp.Close()
			return err
		}
		return fp.Close()
	default:
		return fmt.Errorf("unsupported output format %q, want .stl or .obj", ext)
	}
}
