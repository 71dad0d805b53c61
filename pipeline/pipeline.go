// Package pipeline chains transformers, like sklearn.pipeline.Pipeline
// restricted to transform-only steps.
//
// The reduction stage of pcaplot is a pipeline of an optional
// StandardScaler followed by a PCA:
//
//	p := pipeline.New(
//		pipeline.Step{Name: "scaler", Transformer: preprocessing.NewStandardScalerDefault()},
//		pipeline.Step{Name: "pca", Transformer: decomposition.NewPCA(2)},
//	)
//	projected, err := p.FitTransform(X)
package pipeline

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/core/model"
	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
)

// Step is a named transformer.
type Step struct {
	Name        string
	Transformer model.Transformer
}

// Pipeline applies its steps in order. Each step is fitted on the output of
// the previous one.
type Pipeline struct {
	model.BaseEstimator

	steps  []Step
	byName map[string]model.Transformer
	logger log.Logger
}

// New creates a Pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	byName := make(map[string]model.Transformer, len(steps))
	for _, s := range steps {
		byName[s.Name] = s.Transformer
	}
	return &Pipeline{
		steps:  steps,
		byName: byName,
		logger: log.GetLoggerWithName("pipeline"),
	}
}

// Make builds a Pipeline naming the steps step1, step2, ...
func Make(transformers ...model.Transformer) *Pipeline {
	steps := make([]Step, len(transformers))
	for i, t := range transformers {
		steps[i] = Step{Name: fmt.Sprintf("step%d", i+1), Transformer: t}
	}
	return New(steps...)
}

// Steps returns the pipeline steps in order.
func (p *Pipeline) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Step returns the transformer registered under name.
func (p *Pipeline) Step(name string) (model.Transformer, bool) {
	t, ok := p.byName[name]
	return t, ok
}

// Fit fits every step in turn.
func (p *Pipeline) Fit(X mat.Matrix) error {
	_, err := p.FitTransform(X)
	return err
}

// FitTransform fits every step on the output of the previous one and
// returns the output of the last step.
func (p *Pipeline) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if len(p.steps) == 0 {
		return nil, errors.NewValueError("Pipeline.FitTransform", "pipeline has no steps")
	}
	p.Reset()

	Xt := X
	for _, step := range p.steps {
		start := time.Now()
		var err error
		Xt, err = step.Transformer.FitTransform(Xt)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fit step '%s'", step.Name)
		}
		p.logger.Debug("Step fitted",
			log.StepKey, step.Name,
			log.OperationKey, log.OperationFit,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}

	p.SetFitted()
	return Xt, nil
}

// Transform passes X through every fitted step.
func (p *Pipeline) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Transform")
	}

	Xt := X
	for _, step := range p.steps {
		var err error
		Xt, err = step.Transformer.Transform(Xt)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to transform at step '%s'", step.Name)
		}
	}
	return Xt, nil
}

// InverseTransform maps X back through the steps in reverse order. Every
// step must implement model.InverseTransformer.
func (p *Pipeline) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "InverseTransform")
	}

	Xt := X
	for i := len(p.steps) - 1; i >= 0; i-- {
		step := p.steps[i]
		inv, ok := step.Transformer.(model.InverseTransformer)
		if !ok {
			return nil, errors.NewValueError("Pipeline.InverseTransform",
				fmt.Sprintf("step '%s' does not support InverseTransform", step.Name))
		}
		var err error
		Xt, err = inv.InverseTransform(Xt)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to inverse transform at step '%s'", step.Name)
		}
	}
	return Xt, nil
}
