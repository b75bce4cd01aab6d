package scene

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a decoded picture registered in a document.
type Image struct {
	Name string
	// Filepath is the file the image was loaded from, empty for generated images.
	Filepath string
	Pixels   image.Image
}

// Size returns the pixel dimensions of the image.
func (img *Image) Size() (width, height int) {
	b := img.Pixels.Bounds()
	return b.Dx(), b.Dy()
}

// Images is a registry of images keyed by unique name.
type Images struct {
	byName map[string]*Image
	// MaxEdge, when positive, bounds the longest edge of loaded images.
	// Larger images are downscaled preserving aspect ratio.
	MaxEdge int
}

func newImages() *Images {
	return &Images{byName: make(map[string]*Image)}
}

// Add registers pixels under name, suffixing the name if it is taken.
func (r *Images) Add(name string, pixels image.Image) *Image {
	img := &Image{Name: uniqueName(name, r.has), Pixels: pixels}
	r.byName[img.Name] = img
	return img
}

// Load decodes the image file at path and registers it under the file's
// base name, e.g. "photos/Plane.png" is registered as "Plane.png".
// PNG, JPEG, GIF, BMP, TIFF and WebP files are supported.
func (r *Images) Load(path string) (*Image, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	pixels, format, err := image.Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("decoding image %q: %w", path, err)
	}
	b := pixels.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("image %q (%s) has no pixels", path, format)
	}
	if r.MaxEdge > 0 && (b.Dx() > r.MaxEdge || b.Dy() > r.MaxEdge) {
		pixels = resize.Thumbnail(uint(r.MaxEdge), uint(r.MaxEdge), pixels, resize.Bilinear)
	}
	img := r.Add(filepath.Base(path), pixels)
	img.Filepath = path
	return img, nil
}

// Lookup finds an image by exact name.
func (r *Images) Lookup(name string) (*Image, bool) {
	img, ok := r.byName[name]
	return img, ok
}

// Names returns the registered image names in lexical order.
func (r *Images) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Images) has(name string) bool {
	_, ok := r.byName[name]
	return ok
}
