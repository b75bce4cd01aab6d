package mesh

import (
	"fmt"

	"github.com/soypat/litho/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

type edgeKey [2]int

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// SubdivideSelected cuts every edge of the selected faces into cuts segments
// and fills each selected face with a regular grid confined to its footprint:
// a quad becomes cuts*cuts quads over (cuts+1)^2 vertices, a triangle becomes
// cuts^2 triangles and larger polygons become a triangle fan around their
// centroid. Unselected faces sharing a cut edge receive the new edge vertices
// in their loop. The new faces are left selected and the selection is flushed.
func (m *Mesh) SubdivideSelected(cuts int) error {
	if cuts < 1 {
		return fmt.Errorf("mesh: subdivide needs at least one cut, got %d", cuts)
	}
	sel := m.SelectedFaces()
	if len(sel) == 0 {
		return ErrNoSelection
	}
	s := subdivider{m: m, n: cuts, split: make(map[edgeKey][]int)}
	for _, fi := range sel {
		f := m.Faces[fi]
		for i, a := range f.Verts {
			s.splitEdge(a, f.Verts[(i+1)%len(f.Verts)])
		}
	}
	old := m.Faces
	faces := make([]Face, 0, len(old)+len(sel)*cuts*cuts)
	for _, f := range old {
		switch {
		case f.Select && len(f.Verts) == 4:
			faces = append(faces, s.quadGrid(f)...)
		case f.Select && len(f.Verts) == 3:
			faces = append(faces, s.triGrid(f)...)
		case f.Select:
			faces = append(faces, s.fan(f)...)
		default:
			faces = append(faces, s.insertEdgeVerts(f))
		}
	}
	m.Faces = faces
	m.FlushSelection()
	return nil
}

type subdivider struct {
	m *Mesh
	n int
	// split holds the interior vertices of a cut edge ordered from key[0] to key[1].
	split map[edgeKey][]int
}

func (s *subdivider) splitEdge(a, b int) {
	key := newEdgeKey(a, b)
	if _, ok := s.split[key]; ok {
		return
	}
	interior := make([]int, 0, s.n-1)
	for k := 1; k < s.n; k++ {
		t := float64(k) / float64(s.n)
		v := s.m.AddVert(d3.Lerp(s.m.Verts[key[0]], s.m.Verts[key[1]], t))
		s.m.Deform[v] = s.m.blendWeights(key[:], []float64{1 - t, t})
		interior = append(interior, v)
	}
	s.split[key] = interior
}

// edgePoints returns the n+1 vertices along edge a->b including both ends.
func (s *subdivider) edgePoints(a, b int) []int {
	key := newEdgeKey(a, b)
	interior := s.split[key]
	pts := make([]int, 0, len(interior)+2)
	pts = append(pts, a)
	if a == key[0] {
		pts = append(pts, interior...)
	} else {
		for i := len(interior) - 1; i >= 0; i-- {
			pts = append(pts, interior[i])
		}
	}
	return append(pts, b)
}

// interpolated creates a vertex as a weighted combination of face corners.
func (s *subdivider) interpolated(f Face, coeffs []float64) int {
	var p r3.Vec
	for i, v := range f.Verts {
		p = r3.Add(p, r3.Scale(coeffs[i], s.m.Verts[v]))
	}
	v := s.m.AddVert(p)
	s.m.Deform[v] = s.m.blendWeights(f.Verts, coeffs)
	return v
}

func cornerUVs(f Face, coeffs []float64) []r2.Vec {
	uvs := make([]r2.Vec, len(f.UV))
	for layer, corner := range f.UV {
		for i, uv := range corner {
			uvs[layer] = r2.Add(uvs[layer], r2.Scale(coeffs[i], uv))
		}
	}
	return uvs
}

// faceFrom builds a face from vertex indices and per-corner UVs indexed [corner][layer].
func faceFrom(verts []int, uvs [][]r2.Vec, layers int, sel bool) Face {
	f := Face{Verts: verts, Select: sel, UV: make([][]r2.Vec, layers)}
	for layer := range f.UV {
		f.UV[layer] = make([]r2.Vec, len(verts))
		for c := range verts {
			f.UV[layer][c] = uvs[c][layer]
		}
	}
	return f
}

func (s *subdivider) quadGrid(f Face) []Face {
	n := s.n
	v := f.Verts
	grid := make([]int, (n+1)*(n+1))
	uv := make([][]r2.Vec, len(grid))
	idx := func(i, j int) int { return j*(n+1) + i }
	bottom := s.edgePoints(v[0], v[1])
	right := s.edgePoints(v[1], v[2])
	top := s.edgePoints(v[3], v[2])
	left := s.edgePoints(v[0], v[3])
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			u, w := float64(i)/float64(n), float64(j)/float64(n)
			coeffs := []float64{(1 - u) * (1 - w), u * (1 - w), u * w, (1 - u) * w}
			uv[idx(i, j)] = cornerUVs(f, coeffs)
			switch {
			case j == 0:
				grid[idx(i, j)] = bottom[i]
			case j == n:
				grid[idx(i, j)] = top[i]
			case i == 0:
				grid[idx(i, j)] = left[j]
			case i == n:
				grid[idx(i, j)] = right[j]
			default:
				grid[idx(i, j)] = s.interpolated(f, coeffs)
			}
		}
	}
	faces := make([]Face, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			corners := []int{idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)}
			faces = append(faces, s.gridFace(grid, uv, corners, len(f.UV)))
		}
	}
	return faces
}

func (s *subdivider) triGrid(f Face) []Face {
	n := s.n
	v := f.Verts
	grid := make([]int, (n+1)*(n+1))
	uv := make([][]r2.Vec, len(grid))
	idx := func(i, j int) int { return j*(n+1) + i }
	bottom := s.edgePoints(v[0], v[1])
	left := s.edgePoints(v[0], v[2])
	hyp := s.edgePoints(v[1], v[2])
	for j := 0; j <= n; j++ {
		for i := 0; i+j <= n; i++ {
			u, w := float64(i)/float64(n), float64(j)/float64(n)
			coeffs := []float64{1 - u - w, u, w}
			uv[idx(i, j)] = cornerUVs(f, coeffs)
			switch {
			case j == 0:
				grid[idx(i, j)] = bottom[i]
			case i == 0:
				grid[idx(i, j)] = left[j]
			case i+j == n:
				grid[idx(i, j)] = hyp[j]
			default:
				grid[idx(i, j)] = s.interpolated(f, coeffs)
			}
		}
	}
	faces := make([]Face, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i+j < n; i++ {
			faces = append(faces, s.gridFace(grid, uv, []int{idx(i, j), idx(i+1, j), idx(i, j+1)}, len(f.UV)))
			if i+j < n-1 {
				faces = append(faces, s.gridFace(grid, uv, []int{idx(i+1, j), idx(i+1, j+1), idx(i, j+1)}, len(f.UV)))
			}
		}
	}
	return faces
}

func (s *subdivider) gridFace(grid []int, uv [][]r2.Vec, corners []int, layers int) Face {
	verts := make([]int, len(corners))
	uvs := make([][]r2.Vec, len(corners))
	for c, g := range corners {
		verts[c] = grid[g]
		uvs[c] = uv[g]
	}
	return faceFrom(verts, uvs, layers, true)
}

// ring walks the face boundary through the cut vertices and returns the
// vertices with their interpolated UVs.
func (s *subdivider) ring(f Face) (verts []int, uvs [][]r2.Vec) {
	k := len(f.Verts)
	for c := 0; c < k; c++ {
		a, b := f.Verts[c], f.Verts[(c+1)%k]
		pts := []int{a}
		if _, ok := s.split[newEdgeKey(a, b)]; ok {
			pts = s.edgePoints(a, b)
			pts = pts[:len(pts)-1]
		}
		for m, p := range pts {
			t := float64(m) / float64(len(pts))
			coeffs := make([]float64, k)
			coeffs[c] = 1 - t
			coeffs[(c+1)%k] += t
			verts = append(verts, p)
			uvs = append(uvs, cornerUVs(f, coeffs))
		}
	}
	return verts, uvs
}

func (s *subdivider) fan(f Face) []Face {
	k := len(f.Verts)
	coeffs := make([]float64, k)
	for i := range coeffs {
		coeffs[i] = 1 / float64(k)
	}
	center := s.interpolated(f, coeffs)
	centerUV := cornerUVs(f, coeffs)
	ring, ringUV := s.ring(f)
	faces := make([]Face, 0, len(ring))
	for i := range ring {
		j := (i + 1) % len(ring)
		faces = append(faces, faceFrom(
			[]int{center, ring[i], ring[j]},
			[][]r2.Vec{centerUV, ringUV[i], ringUV[j]},
			len(f.UV), true,
		))
	}
	return faces
}

func (s *subdivider) insertEdgeVerts(f Face) Face {
	touched := false
	for i, a := range f.Verts {
		if _, ok := s.split[newEdgeKey(a, f.Verts[(i+1)%len(f.Verts)])]; ok {
			touched = true
			break
		}
	}
	if !touched {
		return f
	}
	verts, uvs := s.ring(f)
	return faceFrom(verts, uvs, len(f.UV), false)
}
