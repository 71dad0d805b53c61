// Package metrics provides error measures between a matrix and its
// reconstruction, and accuracy scores for predicted class labels.
//
// The CLI uses them to report how much of the input a 2-component
// projection loses:
//
//	restored, _ := reducer.InverseTransform(projected)
//	mse, _ := metrics.MSEMatrix(X, restored)
//
// Vector and matrix inputs use gonum/mat.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/pkg/errors"
)

// MSE calculates the Mean Squared Error between two vectors.
//
// Errors:
//   - ValueError: if the vectors are empty
//   - DimensionError: if the lengths differ
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var diff mat.VecDense
	diff.SubVec(yTrue, yPred)
	return mat.Dot(&diff, &diff) / float64(n), nil
}

// RMSE is the square root of MSE, in the units of the input.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MSEMatrix calculates the mean of the squared element-wise differences
// between two matrices of the same shape.
//
// Errors:
//   - ValueError: if the matrices are empty
//   - DimensionError: if the shapes differ (Axis 0 for rows, 1 for columns)
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("MSEMatrix", "empty matrix")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	}
	if cTrue != cPred {
		return 0, errors.NewDimensionError("MSEMatrix", cTrue, cPred, 1)
	}

	var diff mat.Dense
	diff.Sub(yTrue, yPred)
	norm := mat.Norm(&diff, 2) // Frobenius
	return norm * norm / float64(rTrue*cTrue), nil
}

// RMSEMatrix is the square root of MSEMatrix.
func RMSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSEMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}
