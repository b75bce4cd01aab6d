package mesh

// DeselectAll clears selection on every vertex and face.
func (m *Mesh) DeselectAll() {
	for i := range m.VertSelect {
		m.VertSelect[i] = false
	}
	for i := range m.Faces {
		m.Faces[i].Select = false
	}
}

// SelectFace marks a face as selected. Vertex selection is not updated until
// FlushSelection is called.
func (m *Mesh) SelectFace(face int) {
	m.Faces[face].Select = true
}

// FlushSelection commits face selection to vertex selection: a vertex is
// selected if and only if a selected face uses it.
func (m *Mesh) FlushSelection() {
	for i := range m.VertSelect {
		m.VertSelect[i] = false
	}
	for _, f := range m.Faces {
		if !f.Select {
			continue
		}
		for _, v := range f.Verts {
			m.VertSelect[v] = true
		}
	}
}

// SelectedFaces returns the indices of selected faces in ascending order.
func (m *Mesh) SelectedFaces() []int {
	var sel []int
	for i, f := range m.Faces {
		if f.Select {
			sel = append(sel, i)
		}
	}
	return sel
}

// SelectedVerts returns the indices of selected vertices in ascending order.
func (m *Mesh) SelectedVerts() []int {
	var sel []int
	for i, s := range m.VertSelect {
		if s {
			sel = append(sel, i)
		}
	}
	return sel
}
