package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/pkg/errors"
)

// ClassificationError calculates the fraction of incorrect predictions.
//
// Errors:
//   - ValueError: if the vectors are nil or empty
//   - DimensionError: if the lengths differ
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("ClassificationError", "input vectors cannot be nil")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("ClassificationError", "input vectors cannot be empty")
	}
	if n != yPred.Len() {
		return 0, errors.NewDimensionError("ClassificationError", n, yPred.Len(), 0)
	}

	wrong := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != yPred.AtVec(i) {
			wrong++
		}
	}
	return float64(wrong) / float64(n), nil
}

// Accuracy calculates the fraction of correct predictions.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	errorRate, err := ClassificationError(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1.0 - errorRate, nil
}

// LabelVector converts class labels to a vector for Accuracy.
func LabelVector(labels []int) *mat.VecDense {
	if len(labels) == 0 {
		return &mat.VecDense{}
	}
	data := make([]float64, len(labels))
	for i, l := range labels {
		data[i] = float64(l)
	}
	return mat.NewVecDense(len(data), data)
}
