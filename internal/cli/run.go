package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/dataset"
	"github.com/ezoic/pcaplot/decomposition"
	"github.com/ezoic/pcaplot/metrics"
	"github.com/ezoic/pcaplot/pipeline"
	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
	"github.com/ezoic/pcaplot/preprocessing"
	"github.com/ezoic/pcaplot/render"
)

// nComponents is the dimensionality of the plotted projection.
const nComponents = 2

// Run loads opts.Input, reduces it to two principal components and renders
// the scatter plot to opts.Output, or through display when no output is set.
func Run(opts *Options, display Display) error {
	logger := log.GetLoggerWithName("cli")
	start := time.Now()

	ds, err := dataset.Load(opts.Input)
	if err != nil {
		return err
	}
	X, labels := ds.Split()
	// Every label needs a color before anything is fitted or written.
	if _, err := render.DefaultPalette.Colors(labels); err != nil {
		return err
	}

	pca := decomposition.NewPCA(nComponents)
	var steps []pipeline.Step
	if opts.Standardize {
		steps = append(steps, pipeline.Step{Name: "scaler", Transformer: preprocessing.NewStandardScalerDefault()})
	}
	steps = append(steps, pipeline.Step{Name: "pca", Transformer: pca})

	reducer := pipeline.New(steps...)
	projected, err := reducer.FitTransform(X)
	if err != nil {
		return errors.Wrap(err, "failed to reduce features")
	}
	if err := logReconstruction(logger, reducer, X, projected); err != nil {
		return err
	}

	if opts.ModelOut != "" {
		if err := exportModel(pca, opts.ModelOut); err != nil {
			return err
		}
	}

	if err := renderPlot(opts.Output, projected, labels, display); err != nil {
		return err
	}

	logger.Debug("Done",
		log.SamplesKey, ds.Len(),
		log.ClassesKey, len(ds.Classes()),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func renderPlot(output string, projected mat.Matrix, labels []int, display Display) error {
	if isHTML(output) {
		var buf bytes.Buffer
		if err := render.WriteHTML(&buf, projected, labels); err != nil {
			return err
		}
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", output)
		}
		log.GetLoggerWithName("cli").Info("Chart saved", log.PathKey, output, log.FormatKey, "html")
		return nil
	}

	p, err := render.NewScatter(projected, labels)
	if err != nil {
		return err
	}
	if output != "" {
		return render.Save(p, output)
	}
	if display == nil {
		return errors.NewValueError("cli.Run", "no output file and no display available")
	}
	return display(render.Title, render.Image(p))
}

// logReconstruction reports how much of X the projection loses, in the
// units of the input features.
func logReconstruction(logger log.Logger, reducer *pipeline.Pipeline, X, projected mat.Matrix) error {
	restored, err := reducer.InverseTransform(projected)
	if err != nil {
		return errors.Wrap(err, "failed to reconstruct features")
	}
	mse, err := metrics.MSEMatrix(X, restored)
	if err != nil {
		return err
	}
	logger.Info("Features reduced",
		log.ComponentsKey, nComponents,
		log.ReconstructionKey, mse,
	)
	return nil
}

func exportModel(pca *decomposition.PCA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := pca.ExportToSKLearn(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to export model to %s", path)
	}
	return errors.Wrapf(f.Close(), "failed to close %s", path)
}

func isHTML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".html")
}
