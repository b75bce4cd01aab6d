package mesh

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SolidifyParams configures Solidify.
type SolidifyParams struct {
	// Thickness of the shell.
	Thickness float64
	// Offset in [-1, 1] places the shell relative to the surface: -1 grows
	// it behind the surface (against the normals), 1 in front, 0 centers it.
	Offset float64
	// FillRim closes open boundaries with quads joining both surfaces.
	FillRim bool
}

// DefaultSolidify returns the parameters a freshly added shell modifier has.
func DefaultSolidify() SolidifyParams {
	return SolidifyParams{Thickness: 0.01, Offset: -1, FillRim: true}
}

// Solidify returns a new mesh where every surface of m is thickened into a
// shell by offsetting a copy of it along the vertex normals. The copy has its
// winding reversed so the result faces outward. Vertices not used by any face
// are carried over unchanged. Selection is cleared in the result.
func (m *Mesh) Solidify(p SolidifyParams) *Mesh {
	out := &Mesh{
		UVLayers: append([]string(nil), m.UVLayers...),
		ActiveUV: m.ActiveUV,
	}
	if len(m.Faces) == 0 {
		for i, v := range m.Verts {
			nv := out.AddVert(v)
			out.Deform[nv] = cloneWeights(m.Deform[i])
		}
		return out
	}
	normals := m.VertexNormals()
	used := m.usedVerts()
	outerOff := p.Thickness * (p.Offset + 1) / 2
	innerOff := p.Thickness * (p.Offset - 1) / 2
	outer := make([]int, len(m.Verts))
	inner := make([]int, len(m.Verts))
	for i, v := range m.Verts {
		outer[i] = out.AddVert(r3.Add(v, r3.Scale(outerOff, normals[i])))
		out.Deform[outer[i]] = cloneWeights(m.Deform[i])
	}
	for i, v := range m.Verts {
		if !used[i] {
			inner[i] = -1
			continue
		}
		inner[i] = out.AddVert(r3.Add(v, r3.Scale(innerOff, normals[i])))
		out.Deform[inner[i]] = cloneWeights(m.Deform[i])
	}

	layers := len(m.UVLayers)
	for _, f := range m.Faces {
		k := len(f.Verts)
		verts := make([]int, k)
		uvs := make([][]r2.Vec, k)
		for c, v := range f.Verts {
			verts[c] = outer[v]
			uvs[c] = cornerLayers(f, c)
		}
		out.Faces = append(out.Faces, faceFrom(verts, uvs, layers, false))
	}
	for _, f := range m.Faces {
		k := len(f.Verts)
		verts := make([]int, k)
		uvs := make([][]r2.Vec, k)
		for c := range f.Verts {
			src := k - 1 - c
			verts[c] = inner[f.Verts[src]]
			uvs[c] = cornerLayers(f, src)
		}
		out.Faces = append(out.Faces, faceFrom(verts, uvs, layers, false))
	}
	if !p.FillRim {
		return out
	}

	edgeUse := make(map[edgeKey]int)
	for _, f := range m.Faces {
		for c, a := range f.Verts {
			edgeUse[newEdgeKey(a, f.Verts[(c+1)%len(f.Verts)])]++
		}
	}
	for _, f := range m.Faces {
		k := len(f.Verts)
		for c, a := range f.Verts {
			b := f.Verts[(c+1)%k]
			if edgeUse[newEdgeKey(a, b)] != 1 {
				continue
			}
			ua, ub := cornerLayers(f, c), cornerLayers(f, (c+1)%k)
			out.Faces = append(out.Faces, faceFrom(
				[]int{outer[b], outer[a], inner[a], inner[b]},
				[][]r2.Vec{ub, ua, ua, ub},
				layers, false,
			))
		}
	}
	return out
}

// cornerLayers returns the UVs of all layers at a face corner.
func cornerLayers(f Face, corner int) []r2.Vec {
	uvs := make([]r2.Vec, len(f.UV))
	for layer := range f.UV {
		uvs[layer] = f.UV[layer][corner]
	}
	return uvs
}
