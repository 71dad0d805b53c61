// Package classifier labels feature rows with a multi-class neural network.
//
// It produces the labelled input that pcaplot draws: an MLP is trained on a
// labelled dataset, then every row is written back with its predicted class.
//
//	clf := classifier.New(classifier.DefaultConfig())
//	if err := clf.Fit(X, labels); err != nil {
//		return err
//	}
//	predicted, err := clf.Predict(X)
//
// Training uses github.com/patrikeh/go-deep: ReLU hidden layers, a softmax
// output of Classes units, cross-entropy loss and the Adam optimizer. Rows
// are shuffled and split into training and held-out sets by TrainRatio.
// Weight initialization and shuffling are random, so two fits of the same
// data can differ.
package classifier

import (
	"fmt"
	"math"
	"time"

	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/core/model"
	"github.com/ezoic/pcaplot/metrics"
	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
)

// Config holds the network shape and training parameters.
type Config struct {
	// Hidden lists the hidden layer widths.
	Hidden []int
	// Classes is the number of output classes; labels are 0..Classes-1.
	Classes int
	// LearningRate of the Adam optimizer.
	LearningRate float64
	// Epochs is the number of passes over the training set.
	Epochs int
	// TrainRatio is the fraction of rows used for training; the rest is
	// held out for evaluation.
	TrainRatio float64
	// Verbosity prints training stats to stdout every Verbosity epochs. 0
	// disables it.
	Verbosity int
}

// DefaultConfig returns the network used to label the dogs dataset.
func DefaultConfig() Config {
	return Config{
		Hidden:       []int{16, 64, 64},
		Classes:      3,
		LearningRate: 0.01,
		Epochs:       100,
		TrainRatio:   0.75,
	}
}

// MLP is a multi-layer perceptron classifier.
type MLP struct {
	model.BaseEstimator
	Config

	// NFeatures is the input width seen during Fit.
	NFeatures int
	// HeldOutAccuracy is the accuracy on the held-out rows, or NaN when
	// every row was used for training.
	HeldOutAccuracy float64

	net    *deep.Neural
	logger log.Logger
}

// New creates an untrained MLP.
func New(cfg Config) *MLP {
	return &MLP{Config: cfg, HeldOutAccuracy: math.NaN()}
}

func (m *MLP) getLogger() log.Logger {
	if m.logger == nil {
		m.logger = log.GetLoggerWithName("classifier").With(log.ModelNameKey, "MLP")
	}
	return m.logger
}

// Fit trains the network on X (n_samples × n_features) and labels.
//
// Errors:
//   - ErrEmptyData: X has no rows or columns
//   - DimensionError: len(labels) differs from the row count
//   - ValueError: invalid Config, non-finite features, or an empty
//     training split
//   - ErrUnknownLabel: a label outside 0..Classes-1
func (m *MLP) Fit(X mat.Matrix, labels []int) (err error) {
	defer errors.Recover(&err, "MLP.Fit")
	start := time.Now()

	n, d := X.Dims()
	if n == 0 || d == 0 {
		return errors.NewModelError("MLP.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(labels) != n {
		return errors.NewDimensionError("MLP.Fit", n, len(labels), 0)
	}
	if err := m.validateConfig(); err != nil {
		return err
	}
	for i, l := range labels {
		if l < 0 || l >= m.Classes {
			return errors.NewModelError("MLP.Fit",
				fmt.Sprintf("row %d: label %d outside 0..%d", i, l, m.Classes-1),
				errors.ErrUnknownLabel)
		}
	}

	examples := make(training.Examples, n)
	for i := range examples {
		input := mat.Row(nil, i, X)
		if !isFinite(input) {
			return errors.NewValueError("MLP.Fit", fmt.Sprintf("row %d has non-finite values", i))
		}
		examples[i] = training.Example{Input: input, Response: oneHot(m.Classes, labels[i])}
	}
	examples.Shuffle()
	train, heldout := examples.Split(m.TrainRatio)
	if len(train) == 0 {
		return errors.NewValueError("MLP.Fit",
			fmt.Sprintf("train_ratio=%v left no rows for training", m.TrainRatio))
	}

	m.getLogger().Debug("Fit started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, len(train),
		log.FeaturesKey, d,
		log.EpochsKey, m.Epochs,
	)

	layout := append(append([]int(nil), m.Hidden...), m.Classes)
	net := deep.NewNeural(&deep.Config{
		Inputs:     d,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeMultiClass,
		Weight:     deep.NewNormal(1.0, 0.0),
		Loss:       deep.LossCrossEntropy,
		Bias:       true,
	})
	trainer := training.NewTrainer(training.NewAdam(m.LearningRate, 0, 0, 0), m.Verbosity)
	trainer.Train(net, train, heldout, m.Epochs)

	m.net = net
	m.NFeatures = d
	m.HeldOutAccuracy = math.NaN()
	m.SetFitted()

	if len(heldout) > 0 {
		acc, err := m.score(heldout)
		if err != nil {
			return err
		}
		m.HeldOutAccuracy = acc
	}

	m.getLogger().Info("Fit completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, n,
		log.EpochsKey, m.Epochs,
		log.AccuracyKey, m.HeldOutAccuracy,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns the most probable class of each row of X, in row order.
func (m *MLP) Predict(X mat.Matrix) (_ []int, err error) {
	defer errors.Recover(&err, "MLP.Predict")
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MLP", "Predict")
	}
	n, d := X.Dims()
	if d != m.NFeatures {
		return nil, errors.NewDimensionError("MLP.Predict", m.NFeatures, d, 1)
	}

	predicted := make([]int, n)
	for i := range predicted {
		input := mat.Row(nil, i, X)
		if !isFinite(input) {
			return nil, errors.NewValueError("MLP.Predict", fmt.Sprintf("row %d has non-finite values", i))
		}
		predicted[i] = ArgMax(m.net.Predict(input))
	}
	return predicted, nil
}

// Score returns the accuracy of Predict(X) against labels.
func (m *MLP) Score(X mat.Matrix, labels []int) (float64, error) {
	predicted, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(metrics.LabelVector(labels), metrics.LabelVector(predicted))
}

func (m *MLP) score(examples training.Examples) (float64, error) {
	want := make([]int, len(examples))
	got := make([]int, len(examples))
	for i, ex := range examples {
		want[i] = ArgMax(ex.Response)
		got[i] = ArgMax(m.net.Predict(ex.Input))
	}
	return metrics.Accuracy(metrics.LabelVector(want), metrics.LabelVector(got))
}

func (m *MLP) String() string {
	return fmt.Sprintf("MLP(hidden=%v, classes=%d, epochs=%d)", m.Hidden, m.Classes, m.Epochs)
}

func (m *MLP) validateConfig() error {
	if m.Classes < 2 {
		return errors.NewValueError("MLP.Fit", fmt.Sprintf("classes must be at least 2, got %d", m.Classes))
	}
	for _, w := range m.Hidden {
		if w <= 0 {
			return errors.NewValueError("MLP.Fit", fmt.Sprintf("hidden layer widths must be positive, got %v", m.Hidden))
		}
	}
	if m.Epochs <= 0 {
		return errors.NewValueError("MLP.Fit", fmt.Sprintf("epochs must be positive, got %d", m.Epochs))
	}
	if !(m.LearningRate > 0) {
		return errors.NewValueError("MLP.Fit", fmt.Sprintf("learning rate must be positive, got %v", m.LearningRate))
	}
	if !(m.TrainRatio > 0 && m.TrainRatio <= 1) {
		return errors.NewValueError("MLP.Fit", fmt.Sprintf("train_ratio must be in (0, 1], got %v", m.TrainRatio))
	}
	return nil
}

// ArgMax returns the index of the largest output. Ties resolve to the
// lowest index.
func ArgMax(out []float64) int {
	return floats.MaxIdx(out)
}

func oneHot(classes, label int) []float64 {
	v := make([]float64, classes)
	v[label] = 1
	return v
}

func isFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
