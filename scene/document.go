// Package scene is an explicit, in-process object graph standing in for a 3D
// content creation host: a Document owns objects, images and textures and
// tracks the interaction mode. Objects carry a mesh, a transform, vertex
// groups and an ordered modifier stack that can be evaluated or applied.
//
// A Document is not safe for concurrent use.
package scene

import (
	"errors"
	"fmt"

	"github.com/soypat/litho/mesh"
)

// Mode is the document's interaction mode.
type Mode uint8

const (
	ModeObject Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeObject:
		return "OBJECT"
	case ModeEdit:
		return "EDIT"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

var (
	ErrNoActiveObject   = errors.New("scene: no active object")
	ErrNotEditMode      = errors.New("scene: not in edit mode")
	ErrEditMode         = errors.New("scene: operation not allowed in edit mode")
	ErrModifierNotFound = errors.New("scene: modifier not found")
	ErrNotMesh          = errors.New("scene: object is not a mesh")
	errForeignObject    = errors.New("scene: object belongs to another document")
)

// Document owns every object, image and texture of a scene.
type Document struct {
	objects  []*Object
	active   *Object
	mode     Mode
	editObj  *Object
	editMesh *mesh.Mesh

	Images   *Images
	Textures *Textures
}

// NewDocument returns an empty document in object mode.
func NewDocument() *Document {
	return &Document{
		Images:   newImages(),
		Textures: newTextures(),
	}
}

// NewObject adds a mesh object to the document. A nil mesh is replaced by an
// empty one. The name is made unique by suffixing ".001", ".002" and so on.
func (d *Document) NewObject(name string, m *mesh.Mesh) *Object {
	if m == nil {
		m = mesh.New()
	}
	return d.addObject(name, TypeMesh, m)
}

// NewEmpty adds an object of a non-mesh type.
func (d *Document) NewEmpty(name string, typ ObjectType) *Object {
	return d.addObject(name, typ, nil)
}

func (d *Document) addObject(name string, typ ObjectType, m *mesh.Mesh) *Object {
	o := &Object{
		Name:  uniqueName(name, d.hasObject),
		Type:  typ,
		Mesh:  m,
		Scale: r3One,
		doc:   d,
	}
	d.objects = append(d.objects, o)
	return o
}

func (d *Document) hasObject(name string) bool {
	_, ok := d.Object(name)
	return ok
}

// Objects returns the document's objects in creation order.
func (d *Document) Objects() []*Object {
	return append([]*Object(nil), d.objects...)
}

// Object looks up an object by name.
func (d *Document) Object(name string) (*Object, bool) {
	for _, o := range d.objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// SetActive makes o the active object. Passing nil clears it.
func (d *Document) SetActive(o *Object) error {
	if o != nil && o.doc != d {
		return errForeignObject
	}
	d.active = o
	return nil
}

// Active returns the active object or nil.
func (d *Document) Active() *Object { return d.active }

// Mode returns the current interaction mode.
func (d *Document) Mode() Mode { return d.mode }

// CanSetMode reports whether a mode switch is possible, which requires an
// active object.
func (d *Document) CanSetMode() bool { return d.active != nil }

// SetMode switches the interaction mode of the active object.
func (d *Document) SetMode(mode Mode) error {
	if !d.CanSetMode() {
		return ErrNoActiveObject
	}
	switch mode {
	case ModeObject:
		return d.ExitEditMode()
	case ModeEdit:
		_, err := d.EnterEditMode(d.active)
		return err
	}
	return fmt.Errorf("scene: unknown mode %v", mode)
}

// EnterEditMode makes o active and starts editing a copy of its mesh, which
// is returned. Edits are written back to o by ExitEditMode. Entering edit
// mode on another object first leaves edit mode on the current one.
func (d *Document) EnterEditMode(o *Object) (*mesh.Mesh, error) {
	if o.doc != d {
		return nil, errForeignObject
	}
	if o.Type != TypeMesh || o.Mesh == nil {
		return nil, ErrNotMesh
	}
	if d.editObj == o {
		return d.editMesh, nil
	}
	if err := d.ExitEditMode(); err != nil {
		return nil, err
	}
	d.active = o
	d.editObj = o
	d.editMesh = o.Mesh.Clone()
	d.mode = ModeEdit
	return d.editMesh, nil
}

// EditMesh returns the mesh being edited.
func (d *Document) EditMesh() (*mesh.Mesh, error) {
	if d.mode != ModeEdit {
		return nil, ErrNotEditMode
	}
	return d.editMesh, nil
}

// ExitEditMode writes the edit mesh back to its object and returns to object
// mode. It is a no-op in object mode.
func (d *Document) ExitEditMode() error {
	if d.mode != ModeEdit {
		return nil
	}
	d.editObj.Mesh = d.editMesh
	d.editObj = nil
	d.editMesh = nil
	d.mode = ModeObject
	return nil
}

// uniqueName returns name, or name with the lowest free ".NNN" suffix if
// name is taken.
func uniqueName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", name, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
