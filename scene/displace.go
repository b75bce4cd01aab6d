package scene

import (
	"fmt"

	"github.com/soypat/litho/mesh"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Axis is a displacement direction.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	// AxisNormal displaces along the vertex normal.
	AxisNormal
)

// TexCoords selects how vertices are mapped onto a texture.
type TexCoords uint8

const (
	// TexCoordsLocal maps local x and y in [-1, 1] onto the unit square.
	TexCoordsLocal TexCoords = iota
	// TexCoordsUV uses a UV layer of the mesh.
	TexCoordsUV
)

// Displace offsets vertices by texture intensity:
//
//	offset = (intensity - MidLevel) * Strength * weight
//
// where weight is the vertex's weight in VertexGroup, or 1 when no group is
// set. Vertices outside the group are left in place.
type Displace struct {
	modifierBase
	Texture   *Texture
	TexCoords TexCoords
	// UVLayer names the UV layer for TexCoordsUV. When the mesh has no such
	// layer the active layer is used instead.
	UVLayer     string
	Direction   Axis
	Strength    float64
	MidLevel    float64
	VertexGroup string
}

func (d *Displace) Kind() ModifierKind { return KindDisplace }

// Modify displaces m in place. Without a texture image it does nothing.
func (d *Displace) Modify(ctx *ModifyContext, m *mesh.Mesh) (*mesh.Mesh, error) {
	if d.Texture == nil || d.Texture.Image == nil {
		return m, nil
	}
	group := -1
	if d.VertexGroup != "" {
		var g *VertexGroup
		ok := false
		if ctx.Object != nil {
			g, ok = ctx.Object.VertexGroup(d.VertexGroup)
		}
		if ok {
			group = g.Index()
		} else {
			ctx.logger().Debug("displace vertex group not found, displacing all vertices", "modifier", d.name, "group", d.VertexGroup)
		}
	}
	coords, err := d.textureCoords(ctx, m)
	if err != nil {
		return nil, err
	}
	var normals []r3.Vec
	if d.Direction == AxisNormal {
		normals = m.VertexNormals()
	}
	for v := range m.Verts {
		weight := 1.0
		if group >= 0 {
			w, ok := m.Weight(v, group)
			if !ok || w == 0 {
				continue
			}
			weight = w
		}
		intensity, _ := d.Texture.Sample(coords[v])
		offset := (intensity - d.MidLevel) * d.Strength * weight
		switch d.Direction {
		case AxisX:
			m.Verts[v].X += offset
		case AxisY:
			m.Verts[v].Y += offset
		case AxisZ:
			m.Verts[v].Z += offset
		case AxisNormal:
			m.Verts[v] = r3.Add(m.Verts[v], r3.Scale(offset, normals[v]))
		default:
			return nil, fmt.Errorf("displace: unknown direction %d", d.Direction)
		}
	}
	return m, nil
}

// textureCoords returns one texture coordinate per vertex.
func (d *Displace) textureCoords(ctx *ModifyContext, m *mesh.Mesh) ([]r2.Vec, error) {
	coords := make([]r2.Vec, len(m.Verts))
	layer := -1
	if d.TexCoords == TexCoordsUV && len(m.UVLayers) > 0 {
		var ok bool
		layer, ok = m.UVLayerIndex(d.UVLayer)
		if !ok {
			layer = m.ActiveUV
			ctx.logger().Debug("displace UV layer not found, using active layer",
				"modifier", d.name, "layer", d.UVLayer, "active", m.UVLayers[layer])
		}
	} else if d.TexCoords == TexCoordsUV {
		ctx.logger().Debug("mesh has no UV layers, using local coordinates", "modifier", d.name)
	}
	// Local coordinates first, so vertices without a UV corner still get one.
	for v, p := range m.Verts {
		coords[v] = r2.Vec{X: (p.X + 1) / 2, Y: (p.Y + 1) / 2}
	}
	if layer < 0 {
		return coords, nil
	}
	if layer >= len(m.UVLayers) {
		return nil, fmt.Errorf("displace: active UV layer %d out of range", layer)
	}
	seen := make([]bool, len(m.Verts))
	for _, f := range m.Faces {
		for c, v := range f.Verts {
			if !seen[v] {
				seen[v] = true
				coords[v] = f.UV[layer][c]
			}
		}
	}
	return coords, nil
}
