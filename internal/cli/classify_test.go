package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/pcaplot/classifier"
	"github.com/ezoic/pcaplot/dataset"
	"github.com/ezoic/pcaplot/pkg/errors"
)

func quickConfig() classifier.Config {
	cfg := classifier.DefaultConfig()
	cfg.Hidden = []int{8}
	cfg.Epochs = 5
	return cfg
}

func TestClassify_OutputFeedsPlot(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "result_dogs")
	require.NoError(t, Classify(&ClassifyOptions{Input: irisPath, Output: out, Config: quickConfig()}))

	in, err := dataset.Load(irisPath)
	require.NoError(t, err)
	got, err := dataset.Load(out)
	require.NoError(t, err)
	require.Equal(t, in.Len(), got.Len())

	wantX, _ := in.Split()
	gotX, labels := got.Split()
	assert.True(t, mat.EqualApprox(wantX, gotX, 1e-6), "rows keep their input order and features")
	for i, l := range labels {
		assert.True(t, l >= 0 && l < 3, "row %d predicted %d", i, l)
	}

	// The written file is a valid plot input.
	png := filepath.Join(dir, "plot.png")
	require.NoError(t, Run(&Options{Input: out, Output: png}, nil))
	_, err = os.Stat(png)
	assert.NoError(t, err)
}

func TestClassify_Failures(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "result_dogs")

	err := Classify(&ClassifyOptions{Input: filepath.Join(dir, "missing.csv"), Output: out, Config: quickConfig()})
	assert.ErrorIs(t, err, os.ErrNotExist)

	input := writeInput(t, "5.1,3.5,1.4,0.2,0\n4.9,3.0,1.4,0.2,1\n7.0,3.2,4.7,1.4,7\n")
	err = Classify(&ClassifyOptions{Input: input, Output: out, Config: quickConfig()})
	assert.True(t, errors.Is(err, errors.ErrUnknownLabel))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCommand_Classify(t *testing.T) {
	cmd := NewRootCommand(nil)
	sub, _, err := cmd.Find([]string{"classify"})
	require.NoError(t, err)
	assert.Equal(t, "classify", sub.Name())
	assert.Equal(t, DefaultTrainingPath, sub.Flags().Lookup("input").DefValue)
	assert.Equal(t, dataset.DefaultPath, sub.Flags().Lookup("output").DefValue)
	assert.Equal(t, "100", sub.Flags().Lookup("epochs").DefValue)
	assert.Equal(t, "[16,64,64]", sub.Flags().Lookup("hidden").DefValue)

	out := filepath.Join(t.TempDir(), "result_dogs")
	cmd.SetArgs([]string{
		"classify", "--input", irisPath, "--output", out,
		"--hidden", "8", "--epochs", "5", "--train-ratio", "1", "--log-level", "error",
	})
	require.NoError(t, cmd.Execute())

	ds, err := dataset.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 15, ds.Len())
}
