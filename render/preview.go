package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
)

// PreviewOptions configures Preview.
type PreviewOptions struct {
	Width, Height int
	// Supersample renders at this multiple of the output size and downsamples
	// for antialiasing. Values below 1 mean 1.
	Supersample int
	// Color and Background are hex colors such as "#468966".
	Color      string
	Background string
}

// DefaultPreviewOptions returns a 1024x768 preview with 4x supersampling.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		Width:       1024,
		Height:      768,
		Supersample: 4,
		Color:       "#E8E2D0",
		Background:  "#202020",
	}
}

// Preview rasterizes the model with Phong shading, viewed from above and in
// front. The model is fit into a bi-unit cube first.
func Preview(model []Triangle3, opts PreviewOptions) (image.Image, error) {
	if len(model) == 0 {
		return nil, errors.New("preview: empty model")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New("preview: width and height must be positive")
	}
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	tris := make([]*fauxgl.Triangle, 0, len(model))
	for _, t := range model {
		if t.Degenerate(0) {
			continue
		}
		tris = append(tris, fauxgl.NewTriangleForPoints(
			fauxgl.V(t[0].X, t[0].Y, t[0].Z),
			fauxgl.V(t[1].X, t[1].Y, t[1].Z),
			fauxgl.V(t[2].X, t[2].Y, t[2].Z),
		))
	}
	if len(tris) == 0 {
		return nil, errors.New("preview: all triangles are degenerate")
	}
	m := fauxgl.NewTriangleMesh(tris)
	m.BiUnitCube()

	const (
		fovy = 30
		near = 1
		far  = 20
	)
	eye := fauxgl.V(0, -3, 4)
	center := fauxgl.V(0, 0, 0)
	up := fauxgl.V(0, 0, 1)
	light := fauxgl.V(-0.5, -1, 2).Normalize()
	aspect := float64(opts.Width) / float64(opts.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)

	ctx := fauxgl.NewContext(opts.Width*ss, opts.Height*ss)
	ctx.ClearColorBufferWith(fauxgl.HexColor(opts.Background))
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(opts.Color)
	ctx.Shader = shader
	ctx.DrawMesh(m)

	img := ctx.Image()
	if ss > 1 {
		img = resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.Bilinear)
	}
	return img, nil
}

// SavePNG writes img as a PNG file at path.
func SavePNG(path string, img image.Image) error {
	return fauxgl.SavePNG(path, img)
}
