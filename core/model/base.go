// Package model provides the estimator building blocks shared by the
// reduction stage: fitted-state tracking, the Transformer contract and the
// scikit-learn compatible JSON envelope used to persist fitted transformers.
//
// Transformers embed BaseEstimator:
//
//	type PCA struct {
//		model.BaseEstimator
//		// fitted attributes
//	}
//
//	func (p *PCA) Fit(X mat.Matrix) error {
//		// ...
//		p.SetFitted()
//		return nil
//	}
package model

// EstimatorState represents the learning state of a transformer.
type EstimatorState int

const (
	// NotFitted indicates Fit has not completed yet.
	NotFitted EstimatorState = iota
	// Fitted indicates Fit completed successfully.
	Fitted
)

func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// BaseEstimator tracks whether a transformer has been fitted.
type BaseEstimator struct {
	// State is exported so the fitted flag survives encoding.
	State EstimatorState
}

// IsFitted returns whether Fit completed successfully.
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted marks the estimator as fitted. Called by Fit implementations
// once all fitted attributes are in place.
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset returns the estimator to its unfitted state.
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
}
