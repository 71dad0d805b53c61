// Package decomposition implements principal component analysis with a
// scikit-learn compatible Fit/Transform API.
//
// PCA centers the input on its column means and projects it onto the
// directions of maximum variance, found from the singular value
// decomposition computed by gonum's stat.PC:
//
//	pca := decomposition.NewPCA(2)
//	projected, err := pca.FitTransform(X) // n×4 -> n×2
//
// Eigenvector signs are arbitrary, so each fitted component is flipped to
// make its largest-magnitude loading positive. Projections of the same
// input are therefore identical across runs.
package decomposition

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ezoic/pcaplot/core/model"
	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
)

// varianceTol is the relative variance below which a component is treated
// as empty.
const varianceTol = 1e-12

// PCA is a linear dimensionality reduction onto NComponents principal axes.
type PCA struct {
	model.BaseEstimator

	// NComponents is the number of components kept.
	NComponents int

	// Components holds the principal axes, one per row (NComponents × NFeatures).
	Components *mat.Dense

	// Mean is the per-feature mean removed before projection.
	Mean []float64

	// ExplainedVariance is the variance captured by each component.
	ExplainedVariance []float64

	// ExplainedVarianceRatio is ExplainedVariance divided by the total variance.
	ExplainedVarianceRatio []float64

	// SingularValues of the centered input for each kept component.
	SingularValues []float64

	NFeatures int
	NSamples  int

	logger log.Logger
}

// NewPCA creates an unfitted PCA keeping nComponents components.
func NewPCA(nComponents int) *PCA {
	return &PCA{NComponents: nComponents}
}

func (p *PCA) getLogger() log.Logger {
	if p.logger == nil {
		p.logger = log.GetLoggerWithName("decomposition").With(log.ModelNameKey, "PCA")
	}
	return p.logger
}

// Fit computes the principal axes of X (n_samples × n_features).
//
// Errors:
//   - ErrEmptyData: X has no rows or columns
//   - ValueError: fewer than 2 rows, fewer features than components, or
//     non-finite values
//   - ErrDegenerateData: X has fewer than NComponents dimensions of variance
func (p *PCA) Fit(X mat.Matrix) (err error) {
	defer errors.Recover(&err, "PCA.Fit")
	start := time.Now()

	n, d := X.Dims()
	if n == 0 || d == 0 {
		return errors.NewModelError("PCA.Fit", "empty data", errors.ErrEmptyData)
	}
	if p.NComponents < 1 {
		return errors.NewValueError("PCA.Fit",
			fmt.Sprintf("n_components must be positive, got %d", p.NComponents))
	}
	if n < 2 {
		return errors.NewValueError("PCA.Fit", "at least 2 samples are required")
	}
	if d < p.NComponents {
		return errors.NewValueError("PCA.Fit",
			fmt.Sprintf("n_components=%d exceeds n_features=%d", p.NComponents, d))
	}
	if err := checkFinite("PCA.Fit", X); err != nil {
		return err
	}

	p.getLogger().Debug("Fit started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseReduction,
		log.SamplesKey, n,
		log.FeaturesKey, d,
	)

	var pc stat.PC
	if ok := pc.PrincipalComponents(X, nil); !ok {
		return errors.NewModelError("PCA.Fit", "singular value decomposition failed", nil)
	}
	vars := pc.VarsTo(nil)
	if len(vars) < p.NComponents {
		return errors.NewModelError("PCA.Fit",
			fmt.Sprintf("%d components requested, only %d available", p.NComponents, len(vars)),
			errors.ErrDegenerateData)
	}
	total := floats.Sum(vars)
	if total <= 0 || vars[p.NComponents-1] <= varianceTol*vars[0] {
		return errors.NewModelError("PCA.Fit",
			fmt.Sprintf("%d components requested, data has fewer dimensions of variance", p.NComponents),
			errors.ErrDegenerateData)
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	k := p.NComponents
	components := mat.NewDense(k, d, nil)
	row := make([]float64, d)
	for i := 0; i < k; i++ {
		mat.Col(row, i, &vecs)
		flipSign(row)
		components.SetRow(i, row)
	}

	mean := make([]float64, d)
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, X)
		mean[j] = stat.Mean(col, nil)
	}

	p.Components = components
	p.Mean = mean
	p.ExplainedVariance = append([]float64(nil), vars[:k]...)
	p.ExplainedVarianceRatio = make([]float64, k)
	floats.ScaleTo(p.ExplainedVarianceRatio, 1/total, p.ExplainedVariance)
	p.SingularValues = make([]float64, k)
	for i, v := range p.ExplainedVariance {
		p.SingularValues[i] = math.Sqrt(v * float64(n-1))
	}
	p.NFeatures = d
	p.NSamples = n
	p.SetFitted()

	p.getLogger().Info("Fit completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseReduction,
		log.SamplesKey, n,
		log.FeaturesKey, d,
		log.ComponentsKey, k,
		log.VarianceKey, p.ExplainedVarianceRatio,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Transform projects X onto the fitted components. Row i of the result is
// the projection of row i of X.
func (p *PCA) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "PCA.Transform")
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "Transform")
	}
	n, d := X.Dims()
	if d != p.NFeatures {
		return nil, errors.NewDimensionError("PCA.Transform", p.NFeatures, d, 1)
	}
	if err := checkFinite("PCA.Transform", X); err != nil {
		return nil, err
	}

	centered := mat.NewDense(n, d, nil)
	centered.Apply(func(i, j int, v float64) float64 {
		return v - p.Mean[j]
	}, X)

	projected := mat.NewDense(n, p.NComponents, nil)
	projected.Mul(centered, p.Components.T())
	return projected, nil
}

// FitTransform fits on X and returns its projection.
func (p *PCA) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// InverseTransform maps projected data back to the feature space. The
// result is exact only when NComponents captures all of the variance.
func (p *PCA) InverseTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "PCA.InverseTransform")
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "InverseTransform")
	}
	n, k := X.Dims()
	if k != p.NComponents {
		return nil, errors.NewDimensionError("PCA.InverseTransform", p.NComponents, k, 1)
	}

	restored := mat.NewDense(n, p.NFeatures, nil)
	restored.Mul(X, p.Components)
	restored.Apply(func(i, j int, v float64) float64 {
		return v + p.Mean[j]
	}, restored)
	return restored, nil
}

func (p *PCA) String() string {
	if !p.IsFitted() {
		return fmt.Sprintf("PCA(n_components=%d)", p.NComponents)
	}
	return fmt.Sprintf("PCA(n_components=%d, n_features=%d)", p.NComponents, p.NFeatures)
}

// flipSign negates v in place when its largest-magnitude entry is negative.
func flipSign(v []float64) {
	abs := make([]float64, len(v))
	for i, x := range v {
		abs[i] = math.Abs(x)
	}
	if v[floats.MaxIdx(abs)] < 0 {
		floats.Scale(-1, v)
	}
}

func checkFinite(op string, X mat.Matrix) error {
	n, d := X.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.NewValueError(op,
					fmt.Sprintf("non-finite value %v at row %d, column %d", v, i, j))
			}
		}
	}
	return nil
}
