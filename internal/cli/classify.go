package cli

import (
	"bytes"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezoic/pcaplot/classifier"
	"github.com/ezoic/pcaplot/dataset"
	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
)

// DefaultTrainingPath is the labelled dataset read by classify.
const DefaultTrainingPath = "./dogs.csv"

// ClassifyOptions holds the classify flags.
type ClassifyOptions struct {
	Input  string
	Output string
	classifier.Config
}

func newClassifyCommand() *cobra.Command {
	opts := &ClassifyOptions{Config: classifier.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Label a dataset with a neural network and write the file pcaplot plots",
		Long: `classify trains a multi-class neural network on a headerless CSV of four
numeric features and an integer class label, predicts the class of every
row and writes the rows with their predicted labels to --output, in the
format pcaplot reads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Classify(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", DefaultTrainingPath, "labelled CSV file (no header, 5 columns)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", dataset.DefaultPath, "file to write the predicted dataset to")
	cmd.Flags().IntSliceVar(&opts.Hidden, "hidden", opts.Hidden, "hidden layer widths")
	cmd.Flags().IntVar(&opts.Epochs, "epochs", opts.Epochs, "training epochs")
	cmd.Flags().Float64Var(&opts.LearningRate, "learning-rate", opts.LearningRate, "Adam learning rate")
	cmd.Flags().Float64Var(&opts.TrainRatio, "train-ratio", opts.TrainRatio, "fraction of rows used for training, the rest is held out")
	cmd.Flags().IntVar(&opts.Verbosity, "verbosity", opts.Verbosity, "print training stats every N epochs (0 disables)")

	return cmd
}

// Classify trains a classifier on opts.Input and writes every input row with
// its predicted label to opts.Output, in input order.
func Classify(opts *ClassifyOptions) error {
	logger := log.GetLoggerWithName("cli")
	start := time.Now()

	ds, err := dataset.Load(opts.Input)
	if err != nil {
		return err
	}
	X, labels := ds.Split()

	clf := classifier.New(opts.Config)
	if err := clf.Fit(X, labels); err != nil {
		return errors.Wrap(err, "failed to train classifier")
	}
	predicted, err := clf.Predict(X)
	if err != nil {
		return errors.Wrap(err, "failed to predict labels")
	}
	acc, err := clf.Score(X, labels)
	if err != nil {
		return err
	}

	result, err := dataset.New(X, predicted)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := result.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", opts.Output)
	}

	logger.Info("Dataset classified",
		log.OperationKey, log.OperationPredict,
		log.PathKey, opts.Output,
		log.SamplesKey, result.Len(),
		log.AccuracyKey, acc,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}
