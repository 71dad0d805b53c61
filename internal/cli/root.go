// Package cli implements the pcaplot command line.
package cli

import (
	"image"

	"github.com/spf13/cobra"

	"github.com/ezoic/pcaplot/dataset"
	"github.com/ezoic/pcaplot/pkg/log"
)

// Options holds the command line flags.
type Options struct {
	Input       string
	Output      string
	ModelOut    string
	Standardize bool
	LogLevel    string
}

// Display shows a rendered plot and returns once the user dismisses it.
type Display func(title string, img image.Image) error

// NewRootCommand creates the pcaplot command. display is called when no
// --output file is given.
func NewRootCommand(display Display) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "pcaplot",
		Short: "Plot a labelled 4-feature dataset in two principal components",
		Long: `pcaplot reads a headerless CSV of four numeric features and an integer
class label (0, 1 or 2), projects the features onto their first two
principal components and shows a scatter plot colored by label
(0 blue, 1 green, 2 red).

Use "pcaplot classify" to produce the labelled input with a neural network.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetupLogger(opts.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts, display)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", dataset.DefaultPath, "input CSV file (no header, 5 columns)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the plot to a .png, .svg, .pdf or .html file instead of opening a window")
	cmd.Flags().StringVar(&opts.ModelOut, "model-out", "", "export the fitted PCA as scikit-learn compatible JSON")
	cmd.Flags().BoolVar(&opts.Standardize, "standardize", false, "scale features to unit variance before PCA")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	cmd.AddCommand(newClassifyCommand())
	return cmd
}
