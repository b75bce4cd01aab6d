package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the litho CLI with os.Args and logs to stderr.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Log output goes to logw.
func newRootCmd(logw io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "litho",
		Short:        "litho prepares meshes for lithophane printing",
		Long:         `litho thickens a mesh, densifies its top face and displaces it with an image so the result prints as a lithophane.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logw, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSetupCmd())
	root.AddCommand(newPreviewCmd())
	return root
}
