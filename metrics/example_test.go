package metrics_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/metrics"
)

// ExampleMSE demonstrates Mean Squared Error calculation
func ExampleMSE() {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})
	yPred := mat.NewVecDense(4, []float64{1.1, 1.9, 3.2, 3.8})

	mse, err := metrics.MSE(yTrue, yPred)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("MSE: %.3f\n", mse)

	// Output: MSE: 0.025
}

// ExampleRMSE demonstrates Root Mean Squared Error calculation
func ExampleRMSE() {
	yTrue := mat.NewVecDense(3, []float64{10.0, 20.0, 30.0})
	yPred := mat.NewVecDense(3, []float64{12.0, 18.0, 32.0})

	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("RMSE: %.2f\n", rmse)

	// Output: RMSE: 2.00
}

// ExampleMSEMatrix compares a feature matrix with its reconstruction.
func ExampleMSEMatrix() {
	X := mat.NewDense(2, 2, []float64{
		1, 2,
		3, 4,
	})
	restored := mat.NewDense(2, 2, []float64{
		1, 2,
		3, 6,
	})

	mse, err := metrics.MSEMatrix(X, restored)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Reconstruction MSE: %.3f\n", mse)

	// Output: Reconstruction MSE: 1.000
}

// ExampleAccuracy scores predicted class labels.
func ExampleAccuracy() {
	yTrue := metrics.LabelVector([]int{0, 1, 2, 1, 0})
	yPred := metrics.LabelVector([]int{0, 1, 1, 1, 0})

	acc, err := metrics.Accuracy(yTrue, yPred)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Accuracy: %.1f\n", acc)

	// Output: Accuracy: 0.8
}
