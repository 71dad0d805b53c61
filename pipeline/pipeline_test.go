package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/core/model"
	"github.com/ezoic/pcaplot/decomposition"
	"github.com/ezoic/pcaplot/pipeline"
	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/preprocessing"
)

func features() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		5.1, 3.5, 1.4, 0.2,
		4.9, 3.0, 1.4, 0.2,
		7.0, 3.2, 4.7, 1.4,
		6.3, 3.3, 6.0, 2.5,
	})
}

func TestPipeline_ScalerThenPCA(t *testing.T) {
	p := pipeline.New(
		pipeline.Step{Name: "scaler", Transformer: preprocessing.NewStandardScalerDefault()},
		pipeline.Step{Name: "pca", Transformer: decomposition.NewPCA(2)},
	)

	got, err := p.FitTransform(features())
	require.NoError(t, err)
	assert.True(t, p.IsFitted())

	// Same result as running the steps by hand.
	scaled, err := preprocessing.NewStandardScalerDefault().FitTransform(features())
	require.NoError(t, err)
	want, err := decomposition.NewPCA(2).FitTransform(scaled)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(want, got, 1e-9))

	again, err := p.Transform(features())
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(got, again, 1e-9))

	step, ok := p.Step("pca")
	require.True(t, ok)
	pca, ok := step.(*decomposition.PCA)
	require.True(t, ok)
	assert.True(t, pca.IsFitted())

	_, ok = p.Step("missing")
	assert.False(t, ok)
}

func TestPipeline_Make(t *testing.T) {
	p := pipeline.Make(decomposition.NewPCA(2))
	steps := p.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, "step1", steps[0].Name)

	require.NoError(t, p.Fit(features()))
	out, err := p.Transform(features())
	require.NoError(t, err)
	r, c := out.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 2, c)
}

func TestPipeline_Errors(t *testing.T) {
	_, err := pipeline.New().FitTransform(features())
	assert.Error(t, err)

	p := pipeline.Make(decomposition.NewPCA(2))
	_, err = p.Transform(features())
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	failing := pipeline.New(pipeline.Step{Name: "pca", Transformer: decomposition.NewPCA(2)})
	err = failing.Fit(mat.NewDense(1, 4, []float64{1, 2, 3, 4}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fit step 'pca'")
	assert.False(t, failing.IsFitted())
}

// identity is a Transformer without InverseTransform.
type identity struct{}

func (identity) Fit(mat.Matrix) error { return nil }
func (identity) Transform(X mat.Matrix) (mat.Matrix, error) { return X, nil }
func (identity) FitTransform(X mat.Matrix) (mat.Matrix, error) { return X, nil }

func TestPipeline_InverseTransform(t *testing.T) {
	// Four points span three centered dimensions, so three components
	// reconstruct them exactly.
	p := pipeline.New(
		pipeline.Step{Name: "scaler", Transformer: preprocessing.NewStandardScalerDefault()},
		pipeline.Step{Name: "pca", Transformer: decomposition.NewPCA(3)},
	)
	projected, err := p.FitTransform(features())
	require.NoError(t, err)

	restored, err := p.InverseTransform(projected)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(features(), restored, 1e-9))
}

func TestPipeline_InverseTransformErrors(t *testing.T) {
	p := pipeline.Make(decomposition.NewPCA(2))
	_, err := p.InverseTransform(mat.NewDense(1, 2, nil))
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	p = pipeline.Make(identity{}, decomposition.NewPCA(2))
	projected, err := p.FitTransform(features())
	require.NoError(t, err)
	_, err = p.InverseTransform(projected)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 'step1' does not support InverseTransform")
}

var (
	_ model.Transformer        = (*pipeline.Pipeline)(nil)
	_ model.InverseTransformer = (*pipeline.Pipeline)(nil)
)
