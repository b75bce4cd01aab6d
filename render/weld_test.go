package render_test

import (
	"testing"

	"github.com/soypat/litho/render"
)

func TestMeshFromTriangles(t *testing.T) {
	m, err := render.MeshFromTriangles(cubeModel(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumVerts() != 8 {
		t.Errorf("welded cube got %d vertices, want 8", m.NumVerts())
	}
	if m.NumFaces() != 12 {
		t.Errorf("welded cube got %d faces, want 12", m.NumFaces())
	}
	top, ok := m.TopFace()
	if !ok || m.FaceAverageZ(top) != 1 {
		t.Errorf("top face %d at z %g, want a +Z triangle", top, m.FaceAverageZ(top))
	}
}

func TestMeshFromTrianglesErrors(t *testing.T) {
	if _, err := render.MeshFromTriangles(nil, 0); err == nil {
		t.Error("expected error for empty model")
	}
	if _, err := render.MeshFromTriangles(cubeModel(), 100); err == nil {
		t.Error("expected error for oversized tolerance")
	}
}
