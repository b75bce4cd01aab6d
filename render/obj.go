package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soypat/litho/mesh"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadOBJ reads the geometry of a Wavefront OBJ file into a polygon mesh.
// Faces keep their vertex count. Texture coordinates, when present, are
// stored in a UV layer named mesh.DefaultUVLayer. Groups, objects, normals
// and materials are ignored.
func ReadOBJ(r io.Reader) (*mesh.Mesh, error) {
	m := mesh.New()
	var (
		uvs    []r2.Vec
		faces  [][]int
		faceVT [][]int
		line   int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", line, err)
			}
			m.AddVert(r3.Vec{X: p[0], Y: p[1], Z: p[2]})
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", line, err)
			}
			uvs = append(uvs, r2.Vec{X: p[0], Y: p[1]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 vertices", line)
			}
			vi := make([]int, len(fields)-1)
			ti := make([]int, len(fields)-1)
			for c, ref := range fields[1:] {
				var err error
				vi[c], ti[c], err = parseFaceRef(ref, m.NumVerts(), len(uvs))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", line, err)
				}
			}
			faces = append(faces, vi)
			faceVT = append(faceVT, ti)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if m.NumVerts() == 0 {
		return nil, errors.New("obj: no vertices")
	}
	layer := -1
	if len(uvs) > 0 {
		layer = m.AddUVLayer(mesh.DefaultUVLayer)
	}
	for i, f := range faces {
		fi, err := m.AddFace(f...)
		if err != nil {
			return nil, fmt.Errorf("obj face %d: %w", i, err)
		}
		if layer < 0 {
			continue
		}
		corner := make([]r2.Vec, len(f))
		for c, t := range faceVT[i] {
			if t >= 0 {
				corner[c] = uvs[t]
			}
		}
		m.SetFaceUV(fi, layer, corner...)
	}
	return m, nil
}

// parseFaceRef parses "v", "v/vt", "v//vn" or "v/vt/vn" into zero based
// indices. Missing texture indices are returned as -1.
func parseFaceRef(ref string, nv, nvt int) (v, vt int, err error) {
	parts := strings.Split(ref, "/")
	v, err = resolveIndex(parts[0], nv)
	if err != nil {
		return 0, 0, err
	}
	vt = -1
	if len(parts) > 1 && parts[1] != "" {
		vt, err = resolveIndex(parts[1], nvt)
	}
	return v, vt, err
}

// resolveIndex converts a one based, possibly negative (relative) OBJ index.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	if i < 0 {
		i += n
	} else {
		i--
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, n)
	}
	return i, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// WriteOBJ writes m as a Wavefront OBJ file. Texture coordinates of the
// active UV layer are written per face corner.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Verts {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	withUV := len(m.UVLayers) > 0
	if withUV {
		for _, f := range m.Faces {
			for _, uv := range f.UV[m.ActiveUV] {
				fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
			}
		}
	}
	vt := 1
	for _, f := range m.Faces {
		bw.WriteString("f")
		for _, v := range f.Verts {
			if withUV {
				fmt.Fprintf(bw, " %d/%d", v+1, vt)
				vt++
			} else {
				fmt.Fprintf(bw, " %d", v+1)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
