package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soypat/litho"
	"github.com/soypat/litho/helpers/matter"
	"github.com/soypat/litho/mesh"
	"github.com/soypat/litho/scene"
)

// setupOpts holds the command-line flags for the setup command.
type setupOpts struct {
	config    string   // path to a litho.toml file
	primitive string   // "plane" or "cube" instead of a mesh file
	name      string   // object name, defaults to the mesh file base name
	images    []string // image files loaded into the document
	output    string   // .stl or .obj export path, empty skips export
	render    bool     // evaluate with render levels
	material  string   // shrink compensation material
	levels    int      // subdivision level override, negative keeps the default
}

func newSetupCmd() *cobra.Command {
	opts := setupOpts{levels: -1}

	cmd := &cobra.Command{
		Use:   "setup [mesh.stl|mesh.obj]",
		Short: "Configure a mesh for lithophane printing and export it",
		Long: `Loads a mesh (or a primitive) as an object, loads images into the document and
configures the object: shell, densified top face, subdivision and displacement.
The image used for displacement must be named after the object, e.g. Plane.png
or Plane.jpg for an object named Plane.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			if (input == "") == (opts.primitive == "") {
				return errors.New("need exactly one of a mesh file or --primitive")
			}
			return runSetup(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&opts.primitive, "primitive", "", "use a primitive instead of a mesh file: plane, cube")
	cmd.Flags().StringVar(&opts.name, "name", "", "object name (default: mesh file name or primitive name)")
	cmd.Flags().StringSliceVarP(&opts.images, "image", "i", nil, "image file(s) to load, registered under their file name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.stl or .obj)")
	cmd.Flags().BoolVar(&opts.render, "render", false, "evaluate with render subdivision levels")
	cmd.Flags().StringVar(&opts.material, "material", "", "compensate printing shrinkage of material: pla, petg, abs")
	cmd.Flags().IntVar(&opts.levels, "levels", opts.levels, "override subdivision levels (lower is faster)")
	return cmd
}

func runSetup(ctx context.Context, input string, opts *setupOpts) error {
	logger := loggerFromContext(ctx)
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.render {
		cfg.RenderLevels = true
	}
	if opts.material != "" {
		cfg.Material = opts.material
	}
	var material *matter.ViscousMaterial
	if cfg.Material != "" {
		mat, err := matter.Lookup(cfg.Material)
		if err != nil {
			return err
		}
		material = &mat
	}

	var (
		m    *mesh.Mesh
		name string
	)
	if opts.primitive != "" {
		m, name, err = primitive(opts.primitive)
	} else {
		name = objectName(input)
		m, err = readMesh(input, cfg.WeldTolerance)
	}
	if err != nil {
		return err
	}
	if opts.name != "" {
		name = opts.name
	}
	if _, ok := m.UVLayerIndex(litho.UVLayer); !ok {
		logger.Debug("mesh has no UV layer, projecting from above", "layer", litho.UVLayer)
		m.ProjectUV(litho.UVLayer)
	}

	doc := scene.NewDocument()
	doc.Images.MaxEdge = cfg.MaxImageEdge
	obj := doc.NewObject(name, m)
	if err := doc.SetActive(obj); err != nil {
		return err
	}
	if err := loadImages(doc, obj.Name, opts.images, cfg.ImageDirs); err != nil {
		return err
	}
	logger.Debug("loaded document", "object", obj.Name, "verts", m.NumVerts(), "faces", m.NumFaces(), "images", doc.Images.Names())

	prog := newProgress(logger)
	res, err := litho.Setup(doc, obj, logger)
	if err != nil {
		return fmt.Errorf("setting up %s: %w", obj.Name, err)
	}
	if res.Status != litho.StatusConfigured {
		return fmt.Errorf("setting up %s: %v", obj.Name, res.Status)
	}
	prog.done("Configured " + obj.Name)
	if opts.levels >= 0 {
		res.Subsurf.Levels = opts.levels
		res.Subsurf.RenderLevels = opts.levels
	}

	if opts.output == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := scene.EvalViewport
	if cfg.RenderLevels {
		mode = scene.EvalRender
	}
	prog = newProgress(logger)
	tris, err := obj.WorldTriangles(mode, logger)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Evaluated %s into %d triangles", obj.Name, len(tris)))
	if err := ctx.Err(); err != nil {
		return err
	}
	if material != nil {
		material.Scale(tris)
		logger.Debug("compensated shrinkage", "material", material.Name(), "scale", material.ScaleFactor())
	}
	if err := writeModel(opts.output, tris); err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}
	logger.Info("Wrote " + opts.output)
	return nil
}

// loadImages loads the image files given on the command line and any image
// in dirs named after the object.
func loadImages(doc *scene.Document, objName string, files, dirs []string) error {
	for _, path := range files {
		if _, err := doc.Images.Load(path); err != nil {
			return err
		}
	}
	for _, dir := range dirs {
		for _, candidate := range litho.ImageCandidates(objName) {
			if _, ok := doc.Images.Lookup(candidate); ok {
				continue
			}
			path := filepath.Join(dir, candidate)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if _, err := doc.Images.Load(path); err != nil {
				return err
			}
		}
	}
	return nil
}
