package scene

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/soypat/litho/mesh"
)

// ModifierKind identifies a modifier implementation.
type ModifierKind uint8

const (
	KindSolidify ModifierKind = iota
	KindSubsurf
	KindDisplace
)

func (k ModifierKind) String() string {
	switch k {
	case KindSolidify:
		return "SOLIDIFY"
	case KindSubsurf:
		return "SUBSURF"
	case KindDisplace:
		return "DISPLACE"
	}
	return fmt.Sprintf("ModifierKind(%d)", uint8(k))
}

func (k ModifierKind) defaultName() string {
	switch k {
	case KindSolidify:
		return "Solidify"
	case KindSubsurf:
		return "Subdivision"
	case KindDisplace:
		return "Displace"
	}
	return k.String()
}

// EvalMode selects viewport or render settings during evaluation.
type EvalMode uint8

const (
	EvalViewport EvalMode = iota
	EvalRender
)

// ModifyContext is passed to modifiers during evaluation.
type ModifyContext struct {
	Object *Object
	Mode   EvalMode
	// Logger receives diagnostics. May be nil.
	Logger *log.Logger
}

func (c *ModifyContext) logger() *log.Logger { return loggerOrDefault(c.Logger) }

// Modifier is a non-destructive mesh operation in an object's stack.
// Modify may modify and return m, or return a new mesh.
type Modifier interface {
	Name() string
	Kind() ModifierKind
	Modify(ctx *ModifyContext, m *mesh.Mesh) (*mesh.Mesh, error)
}

type modifierBase struct {
	name string
}

func (b *modifierBase) Name() string { return b.name }

// Solidify thickens surfaces into a shell.
type Solidify struct {
	modifierBase
	mesh.SolidifyParams
}

func (s *Solidify) Kind() ModifierKind { return KindSolidify }

func (s *Solidify) Modify(_ *ModifyContext, m *mesh.Mesh) (*mesh.Mesh, error) {
	return m.Solidify(s.SolidifyParams), nil
}

// SubsurfAlgorithm selects how subdivided vertices are positioned.
type SubsurfAlgorithm uint8

const (
	// CatmullClark smooths the surface while subdividing.
	CatmullClark SubsurfAlgorithm = iota
	// Simple subdivides without moving vertices off the original faces.
	Simple
)

// Subsurf subdivides every face a number of times.
type Subsurf struct {
	modifierBase
	Algorithm    SubsurfAlgorithm
	Levels       int
	RenderLevels int
}

func (s *Subsurf) Kind() ModifierKind { return KindSubsurf }

func (s *Subsurf) Modify(ctx *ModifyContext, m *mesh.Mesh) (*mesh.Mesh, error) {
	levels := s.Levels
	if ctx.Mode == EvalRender {
		levels = s.RenderLevels
	}
	if levels < 0 {
		return nil, fmt.Errorf("subsurf: negative subdivision level %d", levels)
	}
	switch s.Algorithm {
	case Simple:
		return m.SubdivideSimple(levels), nil
	case CatmullClark:
		return m.SubdivideCatmullClark(levels), nil
	}
	return nil, fmt.Errorf("subsurf: unknown algorithm %d", s.Algorithm)
}
