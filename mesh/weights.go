package mesh

// SetWeight assigns vertex v to group at weight w, replacing any previous weight.
func (m *Mesh) SetWeight(v, group int, w float64) {
	if m.Deform[v] == nil {
		m.Deform[v] = make(map[int]float64)
	}
	m.Deform[v][group] = w
}

// Weight returns the weight of vertex v in group. ok is false when the
// vertex is not a member of the group.
func (m *Mesh) Weight(v, group int) (w float64, ok bool) {
	w, ok = m.Deform[v][group]
	return w, ok
}

// VertsInGroup returns the member vertices of group in ascending order.
func (m *Mesh) VertsInGroup(group int) []int {
	var members []int
	for v, dw := range m.Deform {
		if _, ok := dw[group]; ok {
			members = append(members, v)
		}
	}
	return members
}

func cloneWeights(dw map[int]float64) map[int]float64 {
	if dw == nil {
		return nil
	}
	c := make(map[int]float64, len(dw))
	for g, w := range dw {
		c[g] = w
	}
	return c
}

// blendWeights returns the weighted sum of vertex group weights. Groups that
// appear in any source vertex appear in the result. It returns nil when no
// source vertex belongs to a group.
func (m *Mesh) blendWeights(verts []int, coeffs []float64) map[int]float64 {
	var out map[int]float64
	for i, v := range verts {
		for g, w := range m.Deform[v] {
			if out == nil {
				out = make(map[int]float64)
			}
			out[g] += coeffs[i] * w
		}
	}
	return out
}
