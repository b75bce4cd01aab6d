package litho

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/soypat/litho/mesh"
	"github.com/soypat/litho/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel}), &buf
}

func lines(buf *bytes.Buffer) []string {
	s := strings.TrimRight(buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func whiteImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func modifierNames(obj *scene.Object) []string {
	var names []string
	for _, m := range obj.Modifiers() {
		names = append(names, m.Name())
	}
	return names
}

func TestSetupInvalidObject(t *testing.T) {
	for _, typ := range []scene.ObjectType{scene.TypeEmpty, scene.TypeCamera, scene.TypeCurve, scene.TypeLight} {
		t.Run(typ.String(), func(t *testing.T) {
			doc := scene.NewDocument()
			obj := doc.NewEmpty("Thing", typ)
			require.NoError(t, doc.SetActive(obj))
			logger, buf := newTestLogger()
			res, err := Setup(doc, obj, logger)
			require.NoError(t, err)
			assert.Equal(t, StatusInvalidObject, res.Status)
			assert.Len(t, lines(buf), 1)
			assert.Empty(t, obj.Modifiers())
			assert.Empty(t, obj.VertexGroups())
			assert.Equal(t, 1.0, obj.Scale.Z)
		})
	}

	t.Run("nil", func(t *testing.T) {
		doc := scene.NewDocument()
		logger, buf := newTestLogger()
		res, err := Setup(doc, nil, logger)
		require.NoError(t, err)
		assert.Equal(t, StatusInvalidObject, res.Status)
		assert.Len(t, lines(buf), 1)
	})
}

func TestSetupLeavesEditMode(t *testing.T) {
	doc := scene.NewDocument()
	other := doc.NewObject("Other", mesh.Plane(2))
	_, err := doc.EnterEditMode(other)
	require.NoError(t, err)
	logger, _ := newTestLogger()
	res, err := Setup(doc, doc.NewEmpty("Empty", scene.TypeEmpty), logger)
	require.NoError(t, err)
	assert.Equal(t, StatusInvalidObject, res.Status)
	assert.Equal(t, scene.ModeObject, doc.Mode())
}

func TestSetupNoFaces(t *testing.T) {
	doc := scene.NewDocument()
	m := mesh.New()
	m.AddVert(r3.Vec{})
	m.AddVert(r3.Vec{X: 1})
	obj := doc.NewObject("Loose", m)
	logger, buf := newTestLogger()
	res, err := Setup(doc, obj, logger)
	require.NoError(t, err)
	assert.Equal(t, StatusNoFaces, res.Status)
	assert.Len(t, lines(buf), 1)
	assert.Empty(t, obj.VertexGroups())
	assert.Empty(t, obj.Modifiers(), "solidify is applied, nothing else is added")
	assert.Equal(t, scene.ModeObject, doc.Mode())
	assert.Equal(t, 1.0, obj.Scale.Z)
}

func TestSetupPlane(t *testing.T) {
	doc := scene.NewDocument()
	obj := doc.NewObject("Plane", mesh.Plane(2))
	obj.Scale = r3.Vec{X: 3, Y: 3, Z: 7}
	want := doc.Images.Add("Plane.png", whiteImage())
	doc.Images.Add("Plane.jpg", whiteImage())
	logger, buf := newTestLogger()

	res, err := Setup(doc, obj, logger)
	require.NoError(t, err)
	assert.Empty(t, lines(buf))
	assert.Equal(t, StatusConfigured, res.Status)
	assert.Same(t, want, res.Image, "png wins over jpg")
	assert.Equal(t, 0, res.TopFace)

	groups := obj.VertexGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, TopFaceGroup, groups[0].Name())
	members := obj.Mesh.VertsInGroup(groups[0].Index())
	assert.Len(t, members, (TopFaceCuts+1)*(TopFaceCuts+1))
	assert.Equal(t, len(members), res.GroupSize)
	for _, v := range members {
		w, _ := obj.Mesh.Weight(v, groups[0].Index())
		assert.Equal(t, 1.0, w)
		assert.Zero(t, obj.Mesh.Verts[v].Z, "top grid must stay on the original face")
	}

	assert.Equal(t, ZScale, obj.Scale.Z)
	assert.Equal(t, 3.0, obj.Scale.X)
	assert.Equal(t, []string{"Subdivision", "Displace"}, modifierNames(obj))

	sub := res.Subsurf
	assert.Equal(t, scene.Simple, sub.Algorithm)
	assert.Equal(t, SubsurfLevels, sub.Levels)
	assert.Equal(t, SubsurfLevels, sub.RenderLevels)

	d := res.Displace
	require.NotNil(t, d.Texture)
	assert.Equal(t, "Plane_DispTex", d.Texture.Name)
	assert.Same(t, want, d.Texture.Image)
	assert.Equal(t, scene.TexCoordsUV, d.TexCoords)
	assert.Equal(t, "UVMap", d.UVLayer)
	assert.Equal(t, scene.AxisZ, d.Direction)
	assert.Equal(t, TopFaceGroup, d.VertexGroup)
	assert.Equal(t, -0.1, d.MidLevel)
	last := obj.Modifiers()[len(obj.Modifiers())-1]
	assert.Same(t, d, last)
}

func TestSetupJPGFallbackAndMissingImage(t *testing.T) {
	doc := scene.NewDocument()
	obj := doc.NewObject("Plane", mesh.Plane(2))
	jpg := doc.Images.Add("Plane.jpg", whiteImage())
	logger, _ := newTestLogger()
	res, err := Setup(doc, obj, logger)
	require.NoError(t, err)
	assert.Same(t, jpg, res.Image)

	doc = scene.NewDocument()
	obj = doc.NewObject("Plane", mesh.Plane(2))
	doc.Images.Add("Other.png", whiteImage())
	logger, buf := newTestLogger()
	res, err = Setup(doc, obj, logger)
	require.NoError(t, err)
	assert.Equal(t, StatusConfigured, res.Status)
	assert.Nil(t, res.Image)
	assert.Nil(t, res.Displace.Texture.Image)
	out := lines(buf)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "Plane.png")
	assert.Contains(t, out[0], "Plane.jpg")
}

func TestSetupCube(t *testing.T) {
	doc := scene.NewDocument()
	obj := doc.NewObject("Cube", mesh.Cube(2))
	require.NoError(t, doc.SetActive(obj))
	logger, _ := newTestLogger()
	res, err := Setup(doc, obj, logger)
	require.NoError(t, err)
	require.Equal(t, StatusConfigured, res.Status)

	// Face 1 of the cube primitive is the +Z face.
	assert.Equal(t, 1, res.TopFace)
	g, ok := obj.VertexGroup(TopFaceGroup)
	require.True(t, ok)
	members := obj.Mesh.VertsInGroup(g.Index())
	assert.Len(t, members, 441)
	for _, v := range members {
		assert.Equal(t, 1.0, obj.Mesh.Verts[v].Z)
	}
}

func TestSetupTwice(t *testing.T) {
	doc := scene.NewDocument()
	obj := doc.NewObject("Plane", mesh.Plane(2))
	logger, _ := newTestLogger()
	_, err := Setup(doc, obj, logger)
	require.NoError(t, err)
	// The second run applies a Solidify that is not first in the stack.
	res, err := Setup(doc, obj, logger)
	require.NoError(t, err)
	assert.Equal(t, StatusConfigured, res.Status)
	assert.Equal(t, "TopFaceGroup.001", res.Displace.VertexGroup)
	assert.Equal(t, "Plane_DispTex.001", res.Displace.Texture.Name)
	assert.Equal(t, ZScale, obj.Scale.Z)
}

func TestSetupDisplacesTopFace(t *testing.T) {
	doc := scene.NewDocument()
	obj := doc.NewObject("Plane", mesh.Plane(2))
	img := doc.Images.Add("Plane.png", whiteImage())
	logger, _ := newTestLogger()
	res, err := Setup(doc, obj, logger)
	require.NoError(t, err)
	g, ok := obj.VertexGroup(TopFaceGroup)
	require.True(t, ok)

	// Full levels make a very dense mesh; one level is enough here.
	res.Subsurf.Levels = 1
	res.Displace.Texture.Image = nil
	base, err := obj.Evaluate(scene.EvalViewport, logger)
	require.NoError(t, err)
	res.Displace.Texture.Image = img
	m, err := obj.Evaluate(scene.EvalViewport, logger)
	require.NoError(t, err)
	require.Equal(t, base.NumVerts(), m.NumVerts())

	var raised int
	for v := range m.Verts {
		w, ok := m.Weight(v, g.Index())
		if !ok {
			assert.Equal(t, base.Verts[v], m.Verts[v])
			continue
		}
		assert.InDelta(t, base.Verts[v].Z+(1-MidLevel)*w, m.Verts[v].Z, 1e-9)
		if w == 1 {
			raised++
		}
	}
	assert.GreaterOrEqual(t, raised, 441)
}
