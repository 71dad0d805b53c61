package model

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ezoic/pcaplot/pkg/errors"
)

// FormatVersion is the only envelope version this package reads and writes.
const FormatVersion = "1.0"

// SKLearnModelSpec is the metadata block of an exported model.
type SKLearnModelSpec struct {
	Name           string `json:"name"`                      // e.g. "PCA"
	FormatVersion  string `json:"format_version"`            // envelope version
	SKLearnVersion string `json:"sklearn_version,omitempty"` // producer version, when exported from Python
}

// SKLearnModel is a model exchanged with scikit-learn as JSON.
type SKLearnModel struct {
	ModelSpec SKLearnModelSpec `json:"model_spec"`
	Params    json.RawMessage  `json:"params"`
}

// SKLearnPCAParams holds the fitted attributes of a PCA, named after
// sklearn.decomposition.PCA.
type SKLearnPCAParams struct {
	Components             [][]float64 `json:"components"`
	Mean                   []float64   `json:"mean"`
	ExplainedVariance      []float64   `json:"explained_variance"`
	ExplainedVarianceRatio []float64   `json:"explained_variance_ratio"`
	SingularValues         []float64   `json:"singular_values"`
	NComponents            int         `json:"n_components"`
	NFeatures              int         `json:"n_features"`
	NSamples               int         `json:"n_samples"`
}

// LoadSKLearnModelFromReader decodes and validates a model envelope.
func LoadSKLearnModelFromReader(r io.Reader) (*SKLearnModel, error) {
	var m SKLearnModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode model JSON")
	}

	if m.ModelSpec.FormatVersion == "" {
		return nil, errors.NewValueError("LoadSKLearnModel", "format_version is required")
	}
	if m.ModelSpec.FormatVersion != FormatVersion {
		return nil, errors.NewValueError("LoadSKLearnModel",
			fmt.Sprintf("unsupported format version: %s", m.ModelSpec.FormatVersion))
	}
	if m.ModelSpec.Name == "" {
		return nil, errors.NewValueError("LoadSKLearnModel", "model name is required")
	}

	return &m, nil
}

// LoadPCAParams extracts and validates PCA parameters from an envelope.
func LoadPCAParams(m *SKLearnModel) (*SKLearnPCAParams, error) {
	if m.ModelSpec.Name != "PCA" {
		return nil, errors.NewValueError("LoadPCAParams",
			fmt.Sprintf("expected PCA, got %s", m.ModelSpec.Name))
	}

	var params SKLearnPCAParams
	if err := json.Unmarshal(m.Params, &params); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal PCA params")
	}

	if params.NFeatures <= 0 {
		return nil, errors.NewValueError("LoadPCAParams",
			fmt.Sprintf("n_features must be positive, got %d", params.NFeatures))
	}
	if params.NComponents <= 0 || len(params.Components) != params.NComponents {
		return nil, errors.NewValueError("LoadPCAParams",
			fmt.Sprintf("n_components (%d) does not match components rows (%d)",
				params.NComponents, len(params.Components)))
	}
	if len(params.Mean) != params.NFeatures {
		return nil, errors.NewDimensionError("LoadPCAParams", params.NFeatures, len(params.Mean), 1)
	}
	for i, row := range params.Components {
		if len(row) != params.NFeatures {
			return nil, errors.NewValueError("LoadPCAParams",
				fmt.Sprintf("component %d has %d loadings, want %d", i, len(row), params.NFeatures))
		}
	}

	return &params, nil
}

// ExportSKLearnModel writes params under the given model name as indented JSON.
func ExportSKLearnModel(modelName string, params interface{}, w io.Writer) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal params")
	}

	m := SKLearnModel{
		ModelSpec: SKLearnModelSpec{
			Name:          modelName,
			FormatVersion: FormatVersion,
		},
		Params: paramsJSON,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&m); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}
