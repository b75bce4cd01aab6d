package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/litho/mesh"
	"github.com/soypat/litho/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func cubeModel() []render.Triangle3 {
	m := mesh.Cube(2)
	var model []render.Triangle3
	for _, t := range m.Triangulate() {
		model = append(model, render.Triangle3{m.Verts[t[0]], m.Verts[t[1]], m.Verts[t[2]]})
	}
	return model
}

func TestSTLCreateWriteRead(t *testing.T) {
	model := cubeModel()
	path := filepath.Join(t.TempDir(), "cube.stl")
	if err := render.CreateSTL(path, render.NewSliceRenderer(model)); err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := render.WriteSTL(&b, model); err != nil {
		t.Fatal(err)
	}
	if b.String() != string(bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
	got, err := render.ReadSTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(model) {
		t.Fatalf("read %d triangles, wrote %d", len(got), len(model))
	}
	for i := range model {
		for j := range model[i] {
			if r3.Norm(r3.Sub(got[i][j], model[i][j])) > 1e-6 {
				t.Errorf("triangle %d vertex %d got %v, want %v", i, j, got[i][j], model[i][j])
			}
		}
	}
}

func TestReadSTLASCII(t *testing.T) {
	const ascii = `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid tri
`
	got, err := render.ReadSTL(strings.NewReader(ascii))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d triangles, want 1", len(got))
	}
	if n := got[0].Normal(); n.Z != 1 {
		t.Errorf("normal got %v, want +Z", n)
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	var b bytes.Buffer
	if err := render.WriteSTL(&b, nil); err == nil {
		t.Error("expected error writing empty model")
	}
}

func TestRenderAll(t *testing.T) {
	model := cubeModel()
	got, err := render.RenderAll(render.NewSliceRenderer(model))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(model) {
		t.Errorf("got %d triangles, want %d", len(got), len(model))
	}
}
