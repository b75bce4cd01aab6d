package render_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/litho/render"
)

func TestPreview(t *testing.T) {
	opts := render.DefaultPreviewOptions()
	opts.Width, opts.Height, opts.Supersample = 64, 48, 2
	img, err := render.Preview(cubeModel(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("preview size got %v, want 64x48", b)
	}
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := render.SavePNG(path, img); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
	if _, err := render.Preview(nil, opts); err == nil {
		t.Error("expected error for empty model")
	}
}

func TestProfile(t *testing.T) {
	xys, err := render.Profile(cubeModel(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(xys) != 2 {
		t.Fatalf("got %d samples, want the 2 top edge corners", len(xys))
	}
	for _, xy := range xys {
		if xy.Y != 1 {
			t.Errorf("sample %v should lie on top of the cube", xy)
		}
	}
	if xys[0].X >= xys[1].X || math.Abs(xys[0].X+1) > 1e-12 {
		t.Errorf("samples not sorted along x: %v", xys)
	}
	path := filepath.Join(t.TempDir(), "profile.png")
	if err := render.PlotProfile(cubeModel(), 1, path); err != nil {
		t.Fatal(err)
	}
	if _, err := render.Profile(cubeModel(), 50); err == nil {
		t.Error("expected error far from the model")
	}
}
