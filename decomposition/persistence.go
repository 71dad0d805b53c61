package decomposition

import (
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/core/model"
	"github.com/ezoic/pcaplot/pkg/errors"
	"github.com/ezoic/pcaplot/pkg/log"
)

// ExportToSKLearn writes the fitted PCA as scikit-learn compatible JSON.
func (p *PCA) ExportToSKLearn(w io.Writer) error {
	if !p.IsFitted() {
		return errors.NewNotFittedError("PCA", "ExportToSKLearn")
	}

	components := make([][]float64, p.NComponents)
	for i := range components {
		components[i] = mat.Row(nil, i, p.Components)
	}
	params := model.SKLearnPCAParams{
		Components:             components,
		Mean:                   p.Mean,
		ExplainedVariance:      p.ExplainedVariance,
		ExplainedVarianceRatio: p.ExplainedVarianceRatio,
		SingularValues:         p.SingularValues,
		NComponents:            p.NComponents,
		NFeatures:              p.NFeatures,
		NSamples:               p.NSamples,
	}
	if err := model.ExportSKLearnModel("PCA", params, w); err != nil {
		return err
	}

	p.getLogger().Debug("Model exported", log.OperationKey, log.OperationExport)
	return nil
}

// LoadFromSKLearn replaces the fitted state with a PCA read from r.
func (p *PCA) LoadFromSKLearn(r io.Reader) (err error) {
	defer errors.Recover(&err, "PCA.LoadFromSKLearn")
	m, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return err
	}
	params, err := model.LoadPCAParams(m)
	if err != nil {
		return err
	}

	components := mat.NewDense(params.NComponents, params.NFeatures, nil)
	for i, row := range params.Components {
		components.SetRow(i, row)
	}

	p.Reset()
	p.NComponents = params.NComponents
	p.NFeatures = params.NFeatures
	p.NSamples = params.NSamples
	p.Components = components
	p.Mean = params.Mean
	p.ExplainedVariance = params.ExplainedVariance
	p.ExplainedVarianceRatio = params.ExplainedVarianceRatio
	p.SingularValues = params.SingularValues
	p.SetFitted()
	return nil
}
