package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/litho/internal/d3"
	"github.com/soypat/litho/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// MeshFromTriangles builds an indexed mesh from a triangle soup, merging
// vertices closer than vertexTol. vertexTol should be of the order of
// 1/1000th of the size of the smallest triangle in the model. If set to 0
// it is inferred. Triangles that collapse after merging are dropped.
func MeshFromTriangles(model []Triangle3, vertexTolOrZero float64) (*mesh.Mesh, error) {
	if len(model) == 0 {
		return nil, errors.New("no triangles to weld")
	}
	bb := d3.EmptyBox()
	minDist2 := math.MaxFloat64
	maxDist2 := -math.MaxFloat64
	for i := range model {
		for j, vert := range model[i] {
			bb = bb.Include(vert)
			side2 := r3.Norm2(r3.Sub(model[i][(j+1)%3], vert))
			if side2 > 0 {
				minDist2 = math.Min(minDist2, side2)
			}
			maxDist2 = math.Max(maxDist2, side2)
		}
	}
	if maxDist2 <= 0 {
		return nil, errors.New("all triangles are degenerate")
	}
	tol := vertexTolOrZero
	suggested := math.Sqrt(minDist2) / 256
	if tol > math.Sqrt(maxDist2)/2 {
		return nil, fmt.Errorf("vertex tolerance is too large to generate appropriate mesh, suggested tolerance: %g", suggested)
	}
	if tol == 0 {
		tol = suggested
	}
	div := d3.Max(bb.Size())/tol + 1e-12
	if div > math.MaxInt64/2 {
		return nil, errors.New("tolerance too small. overflowed int64")
	}

	m := mesh.New()
	cache := make(map[[3]int64]int)
	ri := 1 / tol
	for _, tri := range model {
		var idx [3]int
		for j, vert := range tri {
			v := r3.Scale(ri, vert)
			key := [3]int64{int64(math.Round(v.X)), int64(math.Round(v.Y)), int64(math.Round(v.Z))}
			vertexIdx, ok := cache[key]
			if !ok {
				vertexIdx = m.AddVert(vert)
				cache[key] = vertexIdx
			}
			idx[j] = vertexIdx
		}
		if idx[0] == idx[1] || idx[1] == idx[2] || idx[2] == idx[0] {
			continue
		}
		if _, err := m.AddFace(idx[:]...); err != nil {
			return nil, err
		}
	}
	return m, nil
}
