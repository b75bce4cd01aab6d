package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/soypat/litho/internal/d3"
	"github.com/soypat/litho/mesh"
	"github.com/soypat/litho/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// ObjectType identifies what data an object carries.
type ObjectType uint8

const (
	TypeMesh ObjectType = iota
	TypeEmpty
	TypeCurve
	TypeCamera
	TypeLight
)

func (t ObjectType) String() string {
	switch t {
	case TypeMesh:
		return "MESH"
	case TypeEmpty:
		return "EMPTY"
	case TypeCurve:
		return "CURVE"
	case TypeCamera:
		return "CAMERA"
	case TypeLight:
		return "LIGHT"
	}
	return fmt.Sprintf("ObjectType(%d)", uint8(t))
}

var r3One = r3.Vec{X: 1, Y: 1, Z: 1}

// Object is a named scene entity. Only TypeMesh objects carry a Mesh.
type Object struct {
	Name     string
	Type     ObjectType
	Mesh     *mesh.Mesh
	Location r3.Vec
	// Rotation is a unit quaternion. The zero value means no rotation.
	Rotation r3.Rotation
	Scale    r3.Vec

	modifiers []Modifier
	groups    []*VertexGroup
	doc       *Document
}

// Modifiers returns the modifier stack in evaluation order.
func (o *Object) Modifiers() []Modifier {
	return append([]Modifier(nil), o.modifiers...)
}

// Modifier looks up a modifier by name.
func (o *Object) Modifier(name string) (Modifier, bool) {
	for _, m := range o.modifiers {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

func (o *Object) hasModifier(name string) bool {
	_, ok := o.Modifier(name)
	return ok
}

// AddModifier appends a modifier of the given kind with default settings.
func (o *Object) AddModifier(kind ModifierKind) (Modifier, error) {
	var m Modifier
	switch kind {
	case KindSolidify:
		m = o.AddSolidify()
	case KindSubsurf:
		m = o.AddSubsurf()
	case KindDisplace:
		m = o.AddDisplace()
	default:
		return nil, fmt.Errorf("scene: unsupported modifier kind %v", kind)
	}
	return m, nil
}

// AddSolidify appends a shell modifier with default parameters.
func (o *Object) AddSolidify() *Solidify {
	s := &Solidify{SolidifyParams: mesh.DefaultSolidify()}
	s.name = uniqueName(KindSolidify.defaultName(), o.hasModifier)
	o.modifiers = append(o.modifiers, s)
	return s
}

// AddSubsurf appends a subdivision surface modifier with default parameters.
func (o *Object) AddSubsurf() *Subsurf {
	s := &Subsurf{Algorithm: CatmullClark, Levels: 1, RenderLevels: 2}
	s.name = uniqueName(KindSubsurf.defaultName(), o.hasModifier)
	o.modifiers = append(o.modifiers, s)
	return s
}

// AddDisplace appends a displacement modifier with default parameters.
func (o *Object) AddDisplace() *Displace {
	d := &Displace{
		TexCoords: TexCoordsLocal,
		Direction: AxisNormal,
		Strength:  1,
		MidLevel:  0.5,
	}
	d.name = uniqueName(KindDisplace.defaultName(), o.hasModifier)
	o.modifiers = append(o.modifiers, d)
	return d
}

// ApplyModifier evaluates the named modifier on the object's base mesh,
// replaces the base mesh with the result and removes the modifier from the
// stack. It fails in edit mode.
func (o *Object) ApplyModifier(name string, logger *log.Logger) error {
	if o.doc != nil && o.doc.editObj == o {
		return ErrEditMode
	}
	if o.Type != TypeMesh || o.Mesh == nil {
		return ErrNotMesh
	}
	idx := -1
	for i, m := range o.modifiers {
		if m.Name() == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q on %q", ErrModifierNotFound, name, o.Name)
	}
	mod := o.modifiers[idx]
	if idx != 0 {
		loggerOrDefault(logger).Warn("applied modifier was not first, result may not be as expected", "object", o.Name, "modifier", name)
	}
	ctx := &ModifyContext{Object: o, Mode: EvalViewport, Logger: logger}
	result, err := mod.Modify(ctx, o.Mesh.Clone())
	if err != nil {
		return fmt.Errorf("applying modifier %q: %w", name, err)
	}
	o.Mesh = result
	o.modifiers = append(o.modifiers[:idx], o.modifiers[idx+1:]...)
	return nil
}

// Evaluate runs the modifier stack over a copy of the base mesh.
func (o *Object) Evaluate(mode EvalMode, logger *log.Logger) (*mesh.Mesh, error) {
	if o.Type != TypeMesh || o.Mesh == nil {
		return nil, ErrNotMesh
	}
	ctx := &ModifyContext{Object: o, Mode: mode, Logger: logger}
	m := o.Mesh.Clone()
	for _, mod := range o.modifiers {
		var err error
		m, err = mod.Modify(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("evaluating modifier %q: %w", mod.Name(), err)
		}
	}
	return m, nil
}

// WorldTransform returns the object to world transform.
func (o *Object) WorldTransform() d3.Affine {
	return d3.ComposeAffine(o.Location, o.Scale, o.Rotation)
}

// WorldTriangles evaluates the object and returns its triangulated surface in
// world space. Winding is flipped when the transform mirrors geometry.
func (o *Object) WorldTriangles(mode EvalMode, logger *log.Logger) ([]render.Triangle3, error) {
	m, err := o.Evaluate(mode, logger)
	if err != nil {
		return nil, err
	}
	xf := o.WorldTransform()
	mirror := xf.Det() < 0
	idx := m.Triangulate()
	tris := make([]render.Triangle3, len(idx))
	for i, t := range idx {
		tri := render.Triangle3{xf.Apply(m.Verts[t[0]]), xf.Apply(m.Verts[t[1]]), xf.Apply(m.Verts[t[2]])}
		if mirror {
			tri[1], tri[2] = tri[2], tri[1]
		}
		tris[i] = tri
	}
	return tris, nil
}

// VertexGroup is a named set of weighted vertices of an object. Weights are
// stored in the object's mesh, keyed by the group's Index.
type VertexGroup struct {
	name  string
	index int
	obj   *Object
}

// DefaultVertexGroupName is the name new vertex groups get when none is given.
const DefaultVertexGroupName = "Group"

// NewVertexGroup adds a vertex group. An empty name means DefaultVertexGroupName.
func (o *Object) NewVertexGroup(name string) *VertexGroup {
	if name == "" {
		name = DefaultVertexGroupName
	}
	g := &VertexGroup{
		name:  uniqueName(name, o.hasVertexGroup),
		index: len(o.groups),
		obj:   o,
	}
	o.groups = append(o.groups, g)
	return g
}

// VertexGroups returns the object's vertex groups in creation order.
func (o *Object) VertexGroups() []*VertexGroup {
	return append([]*VertexGroup(nil), o.groups...)
}

// VertexGroup looks up a vertex group by exact name.
func (o *Object) VertexGroup(name string) (*VertexGroup, bool) {
	for _, g := range o.groups {
		if g.name == name {
			return g, true
		}
	}
	return nil, false
}

func (o *Object) hasVertexGroup(name string) bool {
	_, ok := o.VertexGroup(name)
	return ok
}

func (g *VertexGroup) Name() string { return g.name }
func (g *VertexGroup) Index() int   { return g.index }

// SetName renames the group, suffixing the name if another group of the
// object already uses it. It returns the name actually set.
func (g *VertexGroup) SetName(name string) string {
	if name == g.name {
		return name
	}
	g.name = uniqueName(name, g.obj.hasVertexGroup)
	return g.name
}

// Add assigns verts of m to the group at weight. m is the object's mesh or
// its edit mesh.
func (g *VertexGroup) Add(m *mesh.Mesh, verts []int, weight float64) {
	for _, v := range verts {
		m.SetWeight(v, g.index, weight)
	}
}

func loggerOrDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
