package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Affine is a 3D affine transformation made of a linear part and a
// translation. The zero value of Affine is the identity transform.
type Affine struct {
	// Linear part is stored with the identity subtracted from the diagonal
	// so that Affine{} is the identity. See d00, d11, d22.
	d00, x01, x02 float64
	x10, d11, x12 float64
	x20, x21, d22 float64
	t             r3.Vec
}

// ComposeAffine creates the transform that scales, then rotates by quaternion q,
// then translates to position. Passing the zero r3.Rotation means no rotation.
func ComposeAffine(position, scale r3.Vec, q r3.Rotation) Affine {
	if q == (r3.Rotation{}) {
		q.Real = 1
	}
	x2 := q.Imag + q.Imag
	y2 := q.Jmag + q.Jmag
	z2 := q.Kmag + q.Kmag
	xx := q.Imag * x2
	yy := q.Jmag * y2
	zz := q.Kmag * z2
	xy := q.Imag * y2
	xz := q.Imag * z2
	yz := q.Jmag * z2
	wx := q.Real * x2
	wy := q.Real * y2
	wz := q.Real * z2

	var a Affine
	a.d00 = (1-(yy+zz))*scale.X - 1
	a.x10 = (xy + wz) * scale.X
	a.x20 = (xz - wy) * scale.X

	a.x01 = (xy - wz) * scale.Y
	a.d11 = (1-(xx+zz))*scale.Y - 1
	a.x21 = (yz + wx) * scale.Y

	a.x02 = (xz + wy) * scale.Z
	a.x12 = (yz - wx) * scale.Z
	a.d22 = (1-(xx+yy))*scale.Z - 1
	a.t = position
	return a
}

// Apply transforms point v.
func (a Affine) Apply(v r3.Vec) r3.Vec {
	if a == (Affine{}) {
		return v
	}
	return r3.Vec{
		X: (a.d00+1)*v.X + a.x01*v.Y + a.x02*v.Z + a.t.X,
		Y: a.x10*v.X + (a.d11+1)*v.Y + a.x12*v.Z + a.t.Y,
		Z: a.x20*v.X + a.x21*v.Y + (a.d22+1)*v.Z + a.t.Z,
	}
}

// Det returns the determinant of the linear part. A negative determinant
// mirrors geometry and flips triangle winding.
func (a Affine) Det() float64 {
	x00, x11, x22 := a.d00+1, a.d11+1, a.d22+1
	return x00*(x11*x22-a.x12*a.x21) -
		a.x01*(a.x10*x22-a.x12*a.x20) +
		a.x02*(a.x10*a.x21-x11*a.x20)
}
