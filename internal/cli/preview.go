package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/soypat/litho/internal/d3"
	"github.com/soypat/litho/render"
)

type previewOpts struct {
	config  string
	output  string
	profile string
	width   int
	height  int
}

func newPreviewCmd() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [model.stl|model.obj]",
		Short: "Render a PNG preview of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" && opts.profile == "" {
				return errors.New("nothing to do: set --output and/or --profile")
			}
			return runPreview(cmd.Context(), args[0], &opts)
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "preview PNG file")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "relief profile plot file (.png, .svg or .pdf)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "preview width in pixels (default from config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "preview height in pixels (default from config)")
	return cmd
}

func runPreview(ctx context.Context, input string, opts *previewOpts) error {
	logger := loggerFromContext(ctx)
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	tris, err := readTriangles(input)
	if err != nil {
		return err
	}
	if len(tris) == 0 {
		return errors.New("model has no triangles")
	}
	if opts.output != "" {
		popts := render.DefaultPreviewOptions()
		popts.Width, popts.Height = cfg.Preview.Width, cfg.Preview.Height
		if opts.width > 0 {
			popts.Width = opts.width
		}
		if opts.height > 0 {
			popts.Height = opts.height
		}
		prog := newProgress(logger)
		img, err := render.Preview(tris, popts)
		if err != nil {
			return err
		}
		if err := render.SavePNG(opts.output, img); err != nil {
			return err
		}
		prog.done("Wrote " + opts.output)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.profile != "" {
		bb := d3.EmptyBox()
		for _, t := range tris {
			for _, v := range t {
				bb = bb.Include(v)
			}
		}
		y := bb.Center().Y
		if err := render.PlotProfile(tris, y, opts.profile); err != nil {
			return err
		}
		logger.Info("Wrote "+opts.profile, "y", y)
	}
	return nil
}
