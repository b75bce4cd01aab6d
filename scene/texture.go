package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// TextureType identifies what a texture samples.
type TextureType uint8

const (
	TextureImage TextureType = iota
)

// Extension decides how image textures are sampled outside the unit square.
type Extension uint8

const (
	ExtendRepeat Extension = iota
	ExtendClip
	ExtendEdge
)

// Texture maps texture coordinates to an intensity.
type Texture struct {
	Name      string
	Type      TextureType
	Image     *Image
	Extension Extension
}

// Sample returns the intensity in [0, 1] at uv using bilinear filtering.
// uv (0,0) is the bottom left corner of the image. The intensity of a pixel
// is the mean of its red, green and blue channels. ok is false when no
// image is bound.
func (t *Texture) Sample(uv r2.Vec) (intensity float64, ok bool) {
	if t.Image == nil || t.Image.Pixels == nil {
		return 0, false
	}
	if t.Extension == ExtendClip && (uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1) {
		return 0, true
	}
	w, h := t.Image.Size()
	px := uv.X*float64(w) - 0.5
	py := (1-uv.Y)*float64(h) - 0.5
	x0, y0 := math.Floor(px), math.Floor(py)
	fx, fy := px-x0, py-y0
	ix, iy := int(x0), int(y0)
	i00 := t.pixel(ix, iy, w, h)
	i10 := t.pixel(ix+1, iy, w, h)
	i01 := t.pixel(ix, iy+1, w, h)
	i11 := t.pixel(ix+1, iy+1, w, h)
	top := i00*(1-fx) + i10*fx
	bottom := i01*(1-fx) + i11*fx
	return top*(1-fy) + bottom*fy, true
}

func (t *Texture) pixel(x, y, w, h int) float64 {
	switch t.Extension {
	case ExtendRepeat:
		x, y = wrap(x, w), wrap(y, h)
	default:
		x, y = clampInt(x, 0, w-1), clampInt(y, 0, h-1)
	}
	origin := t.Image.Pixels.Bounds().Min
	r, g, b, _ := t.Image.Pixels.At(origin.X+x, origin.Y+y).RGBA()
	return float64(r+g+b) / (3 * math.MaxUint16)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clampInt(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// Textures is a registry of textures keyed by unique name.
type Textures struct {
	byName map[string]*Texture
}

func newTextures() *Textures {
	return &Textures{byName: make(map[string]*Texture)}
}

// New creates and registers an empty texture, suffixing name if taken.
func (r *Textures) New(name string, typ TextureType) *Texture {
	tex := &Texture{Name: uniqueName(name, r.has), Type: typ}
	r.byName[tex.Name] = tex
	return tex
}

// Lookup finds a texture by exact name.
func (r *Textures) Lookup(name string) (*Texture, bool) {
	tex, ok := r.byName[name]
	return tex, ok
}

func (r *Textures) has(name string) bool {
	_, ok := r.byName[name]
	return ok
}
