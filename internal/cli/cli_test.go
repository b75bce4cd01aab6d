package cli

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soypat/litho/render"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	assert.Zero(t, buf.Len())
	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	assert.Same(t, custom, loggerFromContext(ctx))
	newProgress(custom).done("finished")
	assert.Contains(t, buf.String(), "finished (")
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "litho.toml")
	data := `
image_dirs = ["photos", "/tmp/more"]
max_image_edge = 512
render_levels = true
material = "petg"
weld_tolerance = 0.001

[preview]
width = 320
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"photos", "/tmp/more"}, cfg.ImageDirs)
	assert.Equal(t, 512, cfg.MaxImageEdge)
	assert.True(t, cfg.RenderLevels)
	assert.Equal(t, "petg", cfg.Material)
	assert.Equal(t, 0.001, cfg.WeldTolerance)
	assert.Equal(t, 320, cfg.Preview.Width)
	assert.Equal(t, 768, cfg.Preview.Height, "unset keys keep their default")

	require.NoError(t, os.WriteFile(path, []byte("max_image_edge = -1\n"), 0o644))
	_, err = loadConfig(path)
	assert.Error(t, err)
	require.NoError(t, os.WriteFile(path, []byte("max_image_edge = \"big\"\n"), 0o644))
	_, err = loadConfig(path)
	assert.Error(t, err)
	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs bytes.Buffer
	root := newRootCmd(&logs)
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	err := root.ExecuteContext(context.Background())
	return logs.String(), err
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	fp, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(fp, img))
	require.NoError(t, fp.Close())
}

func readSTLFile(t *testing.T, path string) []render.Triangle3 {
	t.Helper()
	fp, err := os.Open(path)
	require.NoError(t, err)
	defer fp.Close()
	tris, err := render.ReadSTL(fp)
	require.NoError(t, err)
	return tris
}

func TestSetupCommandPrimitive(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "Plane.png")
	writePNG(t, img)
	out := filepath.Join(dir, "plane.stl")

	logs, err := execute(t, "setup", "--primitive", "plane", "--image", img, "--levels", "0", "-o", out)
	require.NoError(t, err, logs)
	assert.NotContains(t, logs, "no displacement image")
	tris := readSTLFile(t, out)
	require.NotEmpty(t, tris)
	for _, tri := range tris {
		for _, v := range tri {
			// Thickness 0.01 and displacement of at most 1.1 are scaled by 0.016.
			assert.LessOrEqual(t, v.Z, 1.1*0.016+1e-6)
			assert.GreaterOrEqual(t, v.Z, -0.01*0.016-1e-6)
		}
	}
}

func TestSetupCommandMeshFileAndImageDir(t *testing.T) {
	dir := t.TempDir()
	photos := filepath.Join(dir, "photos")
	require.NoError(t, os.Mkdir(photos, 0o755))
	writePNG(t, filepath.Join(photos, "tile.png"))

	// A cube exported to STL has no UV layer, setup projects one.
	in := filepath.Join(dir, "tile.stl")
	logs, err := execute(t, "setup", "--primitive", "cube", "--levels", "0", "-o", in)
	require.NoError(t, err, logs)
	assert.Contains(t, logs, "no displacement image")

	cfgPath := filepath.Join(dir, "litho.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`image_dirs = ["`+filepath.ToSlash(photos)+`"]`+"\nmaterial = \"pla\"\n"), 0o644))
	out := filepath.Join(dir, "tile.obj")
	logs, err = execute(t, "setup", in, "-c", cfgPath, "--levels", "0", "-v", "-o", out)
	require.NoError(t, err, logs)
	assert.NotContains(t, logs, "no displacement image")
	assert.Contains(t, logs, "compensated shrinkage")

	fp, err := os.Open(out)
	require.NoError(t, err)
	defer fp.Close()
	m, err := render.ReadOBJ(fp)
	require.NoError(t, err)
	assert.NotZero(t, m.NumFaces())
}

func TestSetupCommandErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "setup")
	assert.Error(t, err)
	_, err = execute(t, "setup", "a.stl", "--primitive", "plane")
	assert.Error(t, err)
	_, err = execute(t, "setup", "--primitive", "torus")
	assert.Error(t, err)
	_, err = execute(t, "setup", "--primitive", "plane", "--material", "wood")
	assert.Error(t, err)
	_, err = execute(t, "setup", filepath.Join(dir, "missing.stl"))
	assert.Error(t, err)
	_, err = execute(t, "setup", "--primitive", "plane", "--levels", "0", "-o", filepath.Join(dir, "out.3mf"))
	assert.Error(t, err)
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "Plane.png")
	writePNG(t, img)
	model := filepath.Join(dir, "plane.stl")
	logs, err := execute(t, "setup", "--primitive", "plane", "--image", img, "--levels", "0", "-o", model)
	require.NoError(t, err, logs)

	preview := filepath.Join(dir, "preview.png")
	profile := filepath.Join(dir, "profile.png")
	logs, err = execute(t, "preview", model, "-o", preview, "--profile", profile, "--width", "64", "--height", "48")
	require.NoError(t, err, logs)

	fp, err := os.Open(preview)
	require.NoError(t, err)
	defer fp.Close()
	cfg, err := png.DecodeConfig(fp)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
	_, err = os.Stat(profile)
	assert.NoError(t, err)

	_, err = execute(t, "preview", model)
	assert.Error(t, err, "no output requested")
}
