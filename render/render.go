// Package render reads and writes triangle and polygon mesh files and draws
// quick previews of triangle models.
package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle. Vertices are in counter-clockwise order when
// seen from the side the normal points to.
type Triangle3 [3]r3.Vec

// Normal returns the unit normal of the triangle. Degenerate triangles
// return NaN components.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if two vertices of the triangle are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return equalWithin(t[0], t[1], tol) ||
		equalWithin(t[1], t[2], tol) ||
		equalWithin(t[2], t[0], tol)
}

// Renderer streams triangles. ReadTriangles returns io.EOF once exhausted.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// NewSliceRenderer returns a Renderer that streams tris.
func NewSliceRenderer(tris []Triangle3) Renderer {
	return &triangle3Buffer{buf: tris}
}

func (b *triangle3Buffer) ReadTriangles(t []Triangle3) (int, error) {
	if len(b.buf) == 0 {
		return 0, io.EOF
	}
	return b.Read(t), nil
}

func equalWithin(a, b r3.Vec, tol float64) bool {
	return r3.Norm2(r3.Sub(a, b)) <= tol*tol
}
