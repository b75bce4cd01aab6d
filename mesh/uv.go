package mesh

import (
	"github.com/soypat/litho/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
)

// ProjectUV sets the coordinates of a UV layer by projecting every corner
// straight down onto the xy extent of the mesh, so the mesh's footprint maps
// onto the unit square. The layer is created if it does not exist. A mesh
// with zero extent along x or y gets 0 on that axis.
func (m *Mesh) ProjectUV(name string) int {
	layer, ok := m.UVLayerIndex(name)
	if !ok {
		layer = m.AddUVLayer(name)
	}
	bb := m.Bounds()
	size := d3.Box(bb).Size()
	for i := range m.Faces {
		f := &m.Faces[i]
		for c, v := range f.Verts {
			p := m.Verts[v]
			var uv r2.Vec
			if size.X > 0 {
				uv.X = (p.X - bb.Min.X) / size.X
			}
			if size.Y > 0 {
				uv.Y = (p.Y - bb.Min.Y) / size.Y
			}
			f.UV[layer][c] = uv
		}
	}
	return layer
}
