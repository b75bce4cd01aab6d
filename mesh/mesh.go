// Package mesh implements an editable polygon mesh with per-corner UV layers,
// selection state and per-vertex group weights. It carries just the edit
// operations needed to prepare and evaluate relief meshes: face selection,
// grid subdivision of a selection, shell thickening and simple subdivision.
package mesh

import (
	"errors"
	"fmt"

	"github.com/soypat/litho/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SelectMode is the element type selection operates on while editing.
type SelectMode uint8

const (
	SelectVert SelectMode = iota
	SelectEdge
	SelectFace
)

func (s SelectMode) String() string {
	switch s {
	case SelectVert:
		return "vertex"
	case SelectEdge:
		return "edge"
	case SelectFace:
		return "face"
	}
	return fmt.Sprintf("SelectMode(%d)", uint8(s))
}

// DefaultUVLayer is the name primitives give their first UV layer.
const DefaultUVLayer = "UVMap"

var (
	// ErrNoSelection is returned by operations on the selection when nothing is selected.
	ErrNoSelection = errors.New("mesh: no faces selected")
	errBadFace     = errors.New("mesh: face needs at least 3 distinct vertices")
)

// Face is a polygon referencing mesh vertices in winding order.
type Face struct {
	Verts []int
	// UV holds per-corner texture coordinates, indexed [layer][corner].
	UV     [][]r2.Vec
	Select bool
}

// Mesh is a polygon mesh. Vertex-indexed slices (Verts, Deform, VertSelect)
// always have the same length.
type Mesh struct {
	Verts    []r3.Vec
	Faces    []Face
	UVLayers []string
	// ActiveUV is the UV layer used when a named layer is not found.
	ActiveUV int
	// Deform maps vertex index to a set of group index/weight pairs.
	Deform     []map[int]float64
	VertSelect []bool
	SelectMode SelectMode
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

func (m *Mesh) NumVerts() int { return len(m.Verts) }
func (m *Mesh) NumFaces() int { return len(m.Faces) }

// AddVert appends an unselected vertex with no group weights and returns its index.
func (m *Mesh) AddVert(v r3.Vec) int {
	m.Verts = append(m.Verts, v)
	m.Deform = append(m.Deform, nil)
	m.VertSelect = append(m.VertSelect, false)
	return len(m.Verts) - 1
}

// AddFace appends a face over existing vertices. UV coordinates for every
// existing layer are initialized to zero.
func (m *Mesh) AddFace(verts ...int) (int, error) {
	if len(verts) < 3 {
		return -1, errBadFace
	}
	seen := make(map[int]bool, len(verts))
	for _, v := range verts {
		if v < 0 || v >= len(m.Verts) {
			return -1, fmt.Errorf("mesh: vertex index %d out of range [0,%d)", v, len(m.Verts))
		}
		if seen[v] {
			return -1, errBadFace
		}
		seen[v] = true
	}
	f := Face{Verts: append([]int(nil), verts...)}
	f.UV = make([][]r2.Vec, len(m.UVLayers))
	for i := range f.UV {
		f.UV[i] = make([]r2.Vec, len(verts))
	}
	m.Faces = append(m.Faces, f)
	return len(m.Faces) - 1, nil
}

// AddUVLayer adds a UV layer with all coordinates at the origin.
// The first layer added becomes the active one.
func (m *Mesh) AddUVLayer(name string) int {
	m.UVLayers = append(m.UVLayers, name)
	for i := range m.Faces {
		m.Faces[i].UV = append(m.Faces[i].UV, make([]r2.Vec, len(m.Faces[i].Verts)))
	}
	return len(m.UVLayers) - 1
}

// UVLayerIndex looks up a UV layer by exact name.
func (m *Mesh) UVLayerIndex(name string) (int, bool) {
	for i, n := range m.UVLayers {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// SetFaceUV sets the per-corner coordinates of a face on a layer.
func (m *Mesh) SetFaceUV(face, layer int, uv ...r2.Vec) error {
	if layer < 0 || layer >= len(m.UVLayers) {
		return fmt.Errorf("mesh: UV layer %d out of range", layer)
	}
	f := &m.Faces[face]
	if len(uv) != len(f.Verts) {
		return fmt.Errorf("mesh: face %d has %d corners, got %d UVs", face, len(f.Verts), len(uv))
	}
	copy(f.UV[layer], uv)
	return nil
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Verts:      append([]r3.Vec(nil), m.Verts...),
		Faces:      make([]Face, len(m.Faces)),
		UVLayers:   append([]string(nil), m.UVLayers...),
		ActiveUV:   m.ActiveUV,
		Deform:     make([]map[int]float64, len(m.Deform)),
		VertSelect: append([]bool(nil), m.VertSelect...),
		SelectMode: m.SelectMode,
	}
	for i, f := range m.Faces {
		c.Faces[i] = f.clone()
	}
	for i, dw := range m.Deform {
		c.Deform[i] = cloneWeights(dw)
	}
	return c
}

func (f Face) clone() Face {
	c := Face{Verts: append([]int(nil), f.Verts...), Select: f.Select}
	c.UV = make([][]r2.Vec, len(f.UV))
	for i := range f.UV {
		c.UV[i] = append([]r2.Vec(nil), f.UV[i]...)
	}
	return c
}

// FaceAverageZ returns the arithmetic mean of the z coordinate of the face's vertices.
func (m *Mesh) FaceAverageZ(face int) float64 {
	f := m.Faces[face]
	var sum float64
	for _, v := range f.Verts {
		sum += m.Verts[v].Z
	}
	return sum / float64(len(f.Verts))
}

// TopFace returns the index of the face with the greatest average vertex z.
// Among faces tied for the maximum the lowest index wins.
// ok is false if the mesh has no faces.
func (m *Mesh) TopFace() (face int, ok bool) {
	if len(m.Faces) == 0 {
		return -1, false
	}
	face = 0
	maxZ := m.FaceAverageZ(0)
	for i := 1; i < len(m.Faces); i++ {
		if z := m.FaceAverageZ(i); z > maxZ {
			maxZ = z
			face = i
		}
	}
	return face, true
}

// faceNormalArea returns the Newell normal of the face, whose length is
// twice the polygon area.
func (m *Mesh) faceNormalArea(face int) r3.Vec {
	f := m.Faces[face]
	var n r3.Vec
	for i, vi := range f.Verts {
		a := m.Verts[vi]
		b := m.Verts[f.Verts[(i+1)%len(f.Verts)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// FaceNormal returns the unit normal of a face following its winding.
// Degenerate faces return the zero vector.
func (m *Mesh) FaceNormal(face int) r3.Vec {
	n := m.faceNormalArea(face)
	if r3.Norm2(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// VertexNormals returns area weighted unit vertex normals. Vertices not
// used by any face get the zero vector.
func (m *Mesh) VertexNormals() []r3.Vec {
	normals := make([]r3.Vec, len(m.Verts))
	for i, f := range m.Faces {
		n := m.faceNormalArea(i)
		for _, v := range f.Verts {
			normals[v] = r3.Add(normals[v], n)
		}
	}
	for i, n := range normals {
		if r3.Norm2(n) != 0 {
			normals[i] = r3.Unit(n)
		}
	}
	return normals
}

// Bounds returns the bounding box of all vertices. The box of an empty mesh
// has Min > Max.
func (m *Mesh) Bounds() r3.Box {
	bb := d3.EmptyBox()
	for _, v := range m.Verts {
		bb = bb.Include(v)
	}
	return r3.Box(bb)
}

// Triangulate fan-triangulates every face and returns vertex index triples
// preserving face winding.
func (m *Mesh) Triangulate() [][3]int {
	var tris [][3]int
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f.Verts); i++ {
			tris = append(tris, [3]int{f.Verts[0], f.Verts[i], f.Verts[i+1]})
		}
	}
	return tris
}

// usedVerts reports which vertices are referenced by at least one face.
func (m *Mesh) usedVerts() []bool {
	used := make([]bool, len(m.Verts))
	for _, f := range m.Faces {
		for _, v := range f.Verts {
			used[v] = true
		}
	}
	return used
}
