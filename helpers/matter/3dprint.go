package matter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/soypat/litho/render"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{name: "pla", shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
	// PETG shrinks slightly more than PLA when cooling.
	PETG = ViscousMaterial{name: "petg", shrink: 0.4e-2, pullShrink: .3}
	// ABS contracts noticeably and is prone to warping on large flat parts.
	ABS = ViscousMaterial{name: "abs", shrink: 0.7e-2, pullShrink: .3}
)

var materials = map[string]ViscousMaterial{
	PLA.name:  PLA,
	PETG.name: PETG,
	ABS.name:  ABS,
}

// Lookup returns the material registered under name, case insensitive.
func Lookup(name string) (ViscousMaterial, error) {
	m, ok := materials[strings.ToLower(name)]
	if !ok {
		return ViscousMaterial{}, fmt.Errorf("unknown material %q, known materials: %s", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names returns the known material names in lexical order.
func Names() []string {
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type ViscousMaterial struct {
	name string
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

func (m ViscousMaterial) Name() string { return m.name }

// ScaleFactor is the uniform scale that compensates thermal shrinkage.
func (m ViscousMaterial) ScaleFactor() float64 {
	return 1 / (1 - m.shrink)
}

// Scale scales triangles in place about the origin so that the printed part
// cools down to the modelled size.
func (m ViscousMaterial) Scale(tris []render.Triangle3) {
	scale := m.ScaleFactor()
	for i := range tris {
		for j := range tris[i] {
			tris[i][j] = r3.Scale(scale, tris[i][j])
		}
	}
}

// InternalDimScale returns the modelled size of a hole or slot so that it
// prints at real size.
func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}
