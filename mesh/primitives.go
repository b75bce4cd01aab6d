package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Plane returns a single quad of the given edge size centered at the origin
// in the XY plane, facing +Z, with a unit square "UVMap" layer.
func Plane(size float64) *Mesh {
	m, err := Grid(1, 1, size)
	if err != nil {
		panic(err) // unreachable for 1x1.
	}
	return m
}

// Grid returns a plane of nx by ny quads facing +Z with a "UVMap" layer
// spanning the unit square.
func Grid(nx, ny int, size float64) (*Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("mesh: grid needs at least one cell per axis, got %dx%d", nx, ny)
	}
	m := New()
	layer := m.AddUVLayer(DefaultUVLayer)
	h := size / 2
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.AddVert(r3.Vec{
				X: -h + size*float64(i)/float64(nx),
				Y: -h + size*float64(j)/float64(ny),
			})
		}
	}
	at := func(i, j int) int { return j*(nx+1) + i }
	uv := func(i, j int) r2.Vec { return r2.Vec{X: float64(i) / float64(nx), Y: float64(j) / float64(ny)} }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			f, err := m.AddFace(at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1))
			if err != nil {
				return nil, err
			}
			m.SetFaceUV(f, layer, uv(i, j), uv(i+1, j), uv(i+1, j+1), uv(i, j+1))
		}
	}
	return m, nil
}

// Cube returns an axis aligned cube of edge size centered at the origin with
// outward facing quads. Each face maps the whole unit square on "UVMap".
func Cube(size float64) *Mesh {
	m := New()
	layer := m.AddUVLayer(DefaultUVLayer)
	h := size / 2
	for i := 0; i < 8; i++ {
		m.AddVert(r3.Vec{
			X: h * float64(2*(i&1)-1),
			Y: h * float64(2*(i>>1&1)-1),
			Z: h * float64(2*(i>>2&1)-1),
		})
	}
	quads := [6][4]int{
		{0, 2, 3, 1}, // -Z
		{4, 5, 7, 6}, // +Z
		{0, 1, 5, 4}, // -Y
		{2, 6, 7, 3}, // +Y
		{0, 4, 6, 2}, // -X
		{1, 3, 7, 5}, // +X
	}
	unit := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for _, q := range quads {
		f, err := m.AddFace(q[:]...)
		if err != nil {
			panic(err)
		}
		m.SetFaceUV(f, layer, unit...)
	}
	return m
}
