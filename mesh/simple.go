package mesh

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SubdivideSimple returns a copy of m where, for each level, every n-gon is
// split into n quads joining its corners, edge midpoints and centroid.
// Vertex positions are not smoothed. UVs and group weights are interpolated.
func (m *Mesh) SubdivideSimple(levels int) *Mesh {
	out := m.Clone()
	for l := 0; l < levels; l++ {
		out, _, _ = out.splitFaces()
	}
	return out
}

// SubdivideCatmullClark subdivides like SubdivideSimple and positions the
// new and original vertices with the Catmull-Clark rules. Open boundaries
// use the cubic B-spline boundary rule.
func (m *Mesh) SubdivideCatmullClark(levels int) *Mesh {
	out := m.Clone()
	for l := 0; l < levels; l++ {
		out = out.catmullClarkOnce()
	}
	return out
}

func (m *Mesh) catmullClarkOnce() *Mesh {
	out, mid, centers := m.splitFaces()
	edgeFaces := make(map[edgeKey][]int)
	for fi, f := range m.Faces {
		for i, a := range f.Verts {
			key := newEdgeKey(a, f.Verts[(i+1)%len(f.Verts)])
			edgeFaces[key] = append(edgeFaces[key], fi)
		}
	}
	for key, faces := range edgeFaces {
		if len(faces) < 2 {
			continue // Boundary edge points stay at the midpoint.
		}
		sum := r3.Add(m.Verts[key[0]], m.Verts[key[1]])
		for _, fi := range faces {
			sum = r3.Add(sum, out.Verts[centers[fi]])
		}
		out.Verts[mid[key]] = r3.Scale(1/float64(2+len(faces)), sum)
	}

	type vertexSums struct {
		face, edge, boundary r3.Vec
		nf, ne, nb           int
	}
	sums := make([]vertexSums, len(m.Verts))
	for fi, f := range m.Faces {
		for _, v := range f.Verts {
			sums[v].face = r3.Add(sums[v].face, out.Verts[centers[fi]])
			sums[v].nf++
		}
	}
	for key, faces := range edgeFaces {
		midpoint := r3.Scale(0.5, r3.Add(m.Verts[key[0]], m.Verts[key[1]]))
		for _, v := range key {
			sums[v].edge = r3.Add(sums[v].edge, midpoint)
			sums[v].ne++
			if len(faces) == 1 {
				sums[v].boundary = r3.Add(sums[v].boundary, midpoint)
				sums[v].nb++
			}
		}
	}
	for v, s := range sums {
		p := m.Verts[v]
		switch {
		case s.ne == 0:
			// Loose vertex.
		case s.nb == 2:
			out.Verts[v] = r3.Add(r3.Scale(0.25, s.boundary), r3.Scale(0.5, p))
		case s.nb == 0:
			n := float64(s.ne)
			f := r3.Scale(1/float64(s.nf), s.face)
			r := r3.Scale(1/n, s.edge)
			sum := r3.Add(f, r3.Add(r3.Scale(2, r), r3.Scale(n-3, p)))
			out.Verts[v] = r3.Scale(1/n, sum)
		}
		// Non-manifold boundary vertices keep their position.
	}
	return out
}

// splitFaces performs one level of simple subdivision. It also returns the
// vertex created at each edge midpoint and at each face centroid.
func (m *Mesh) splitFaces() (out *Mesh, mid map[edgeKey]int, centers []int) {
	out = &Mesh{
		Verts:      append([]r3.Vec(nil), m.Verts...),
		UVLayers:   append([]string(nil), m.UVLayers...),
		ActiveUV:   m.ActiveUV,
		Deform:     make([]map[int]float64, len(m.Deform)),
		VertSelect: make([]bool, len(m.Verts)),
		SelectMode: m.SelectMode,
	}
	for i, dw := range m.Deform {
		out.Deform[i] = cloneWeights(dw)
	}
	out.Faces = make([]Face, 0, 4*len(m.Faces))
	mid = make(map[edgeKey]int)
	centers = make([]int, len(m.Faces))
	midpoint := func(a, b int) int {
		key := newEdgeKey(a, b)
		if v, ok := mid[key]; ok {
			return v
		}
		v := out.AddVert(r3.Scale(0.5, r3.Add(m.Verts[a], m.Verts[b])))
		out.Deform[v] = m.blendWeights(key[:], []float64{0.5, 0.5})
		mid[key] = v
		return v
	}
	layers := len(m.UVLayers)
	for fi, f := range m.Faces {
		k := len(f.Verts)
		coeffs := make([]float64, k)
		for i := range coeffs {
			coeffs[i] = 1 / float64(k)
		}
		var c r3.Vec
		for _, v := range f.Verts {
			c = r3.Add(c, m.Verts[v])
		}
		center := out.AddVert(r3.Scale(1/float64(k), c))
		centers[fi] = center
		out.Deform[center] = m.blendWeights(f.Verts, coeffs)
		centerUV := cornerUVs(f, coeffs)

		mids := make([]int, k)
		midUV := make([][]r2.Vec, k)
		for i, a := range f.Verts {
			j := (i + 1) % k
			mids[i] = midpoint(a, f.Verts[j])
			midUV[i] = make([]r2.Vec, layers)
			for layer := range midUV[i] {
				midUV[i][layer] = r2.Scale(0.5, r2.Add(f.UV[layer][i], f.UV[layer][j]))
			}
		}
		for i, a := range f.Verts {
			prev := (i + k - 1) % k
			out.Faces = append(out.Faces, faceFrom(
				[]int{a, mids[i], center, mids[prev]},
				[][]r2.Vec{cornerLayers(f, i), midUV[i], centerUV, midUV[prev]},
				layers, f.Select,
			))
		}
	}
	return out, mid, centers
}
