package matter

import (
	"testing"

	"github.com/soypat/litho/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLookup(t *testing.T) {
	m, err := Lookup("PLA")
	if err != nil {
		t.Fatal(err)
	}
	if m != PLA {
		t.Errorf("got %v, want PLA", m.Name())
	}
	_, err = Lookup("wood")
	if err == nil {
		t.Error("expected error for unknown material")
	}
}

func TestScale(t *testing.T) {
	tris := []render.Triangle3{{{X: 1}, {Y: 1}, {Z: 1}}}
	PLA.Scale(tris)
	want := 1 / (1 - PLA.shrink)
	for i, v := range tris[0] {
		if r3.Norm(v) != want {
			t.Errorf("vertex %d: got norm %g, want %g", i, r3.Norm(v), want)
		}
	}
	if got := PLA.InternalDimScale(10); got != 10*(PLA.shrink+1)+PLA.pullShrink {
		t.Errorf("InternalDimScale(10) = %g", got)
	}
}
