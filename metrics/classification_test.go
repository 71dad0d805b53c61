package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/pcaplot/metrics"
	"github.com/ezoic/pcaplot/pkg/errors"
)

func TestAccuracy(t *testing.T) {
	acc, err := metrics.Accuracy(metrics.LabelVector([]int{0, 1, 2, 2}), metrics.LabelVector([]int{0, 1, 2, 0}))
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-12)

	rate, err := metrics.ClassificationError(metrics.LabelVector([]int{1, 1}), metrics.LabelVector([]int{1, 1}))
	require.NoError(t, err)
	assert.Zero(t, rate)
}

func TestAccuracy_Errors(t *testing.T) {
	_, err := metrics.Accuracy(nil, metrics.LabelVector([]int{0}))
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))

	_, err = metrics.Accuracy(metrics.LabelVector([]int{0, 1}), metrics.LabelVector([]int{0}))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestAccuracy_EmptyLabels(t *testing.T) {
	_, err := metrics.Accuracy(metrics.LabelVector(nil), metrics.LabelVector(nil))
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))
}
