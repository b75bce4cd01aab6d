package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestComposeAffineIdentity(t *testing.T) {
	a := ComposeAffine(r3.Vec{}, Elem(1), r3.Rotation{})
	v := r3.Vec{X: 1, Y: -2, Z: 3}
	if got := a.Apply(v); !EqualWithin(got, v, 1e-12) {
		t.Errorf("identity transform moved point. got %v, want %v", got, v)
	}
	if (Affine{}).Det() != 1 {
		t.Error("zero value Affine should have unit determinant")
	}
}

func TestComposeAffineScaleTranslate(t *testing.T) {
	a := ComposeAffine(r3.Vec{Z: 1}, r3.Vec{X: 1, Y: 1, Z: 0.016}, r3.Rotation{})
	got := a.Apply(r3.Vec{X: 2, Y: 3, Z: 10})
	want := r3.Vec{X: 2, Y: 3, Z: 1.16}
	if !EqualWithin(got, want, 1e-12) {
		t.Errorf("got %v, want %v", got, want)
	}
	if math.Abs(a.Det()-0.016) > 1e-15 {
		t.Errorf("determinant got %g, want 0.016", a.Det())
	}
}

func TestComposeAffineRotation(t *testing.T) {
	// 90 degrees about z.
	q := r3.Rotation{Real: math.Cos(math.Pi / 4), Kmag: math.Sin(math.Pi / 4)}
	a := ComposeAffine(r3.Vec{}, Elem(1), q)
	got := a.Apply(r3.Vec{X: 1})
	if !EqualWithin(got, r3.Vec{Y: 1}, 1e-12) {
		t.Errorf("got %v, want (0,1,0)", got)
	}
}

func TestBoxInclude(t *testing.T) {
	b := EmptyBox()
	if !b.Empty() {
		t.Fatal("EmptyBox should be empty")
	}
	b = b.Include(r3.Vec{X: -1, Y: 0, Z: 2}).Include(r3.Vec{X: 1, Y: 4, Z: 0})
	if b.Empty() {
		t.Fatal("box with points should not be empty")
	}
	if !EqualWithin(b.Size(), r3.Vec{X: 2, Y: 4, Z: 2}, 0) {
		t.Errorf("size got %v", b.Size())
	}
	if !b.Contains(b.Center()) {
		t.Error("box should contain its center")
	}
}
