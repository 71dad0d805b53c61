package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/pcaplot/pkg/log"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestToLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, log.ToLogLevel(in), in)
	}
}

func TestNamedLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log.SetupLoggerWithWriter(&buf, "debug")
	defer log.SetupLogger("info")

	logger := log.GetLoggerWithName("decomposition").With(log.ModelNameKey, "PCA")
	logger.Info("Fit completed", log.SamplesKey, 3, log.FeaturesKey, 4)
	logger.Debug("details")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "decomposition", lines[0][log.ComponentKey])
	assert.Equal(t, "PCA", lines[0][log.ModelNameKey])
	assert.Equal(t, float64(3), lines[0][log.SamplesKey])
	assert.Equal(t, "Fit completed", lines[0]["message"])
	assert.Equal(t, "debug", lines[1]["level"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log.SetupLoggerWithWriter(&buf, "warn")
	defer log.SetupLogger("info")

	logger := log.GetLoggerWithName("render")
	logger.Info("hidden")
	logger.Warn("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestErrorWithLeadingErr(t *testing.T) {
	var buf bytes.Buffer
	log.SetupLoggerWithWriter(&buf, "info")
	defer log.SetupLogger("info")

	log.GetLoggerWithName("cli").Error("load failed", errors.New("boom"), log.PathKey, "x.csv")
	log.LogError(errors.New("bang"), "render failed")
	log.LogError(nil, "never logged")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "boom", lines[0][log.ErrorKey])
	assert.Equal(t, "x.csv", lines[0][log.PathKey])
	assert.Equal(t, "bang", lines[1][log.ErrorKey])
}

func TestProviderSetLevel(t *testing.T) {
	p := log.NewZerologProvider(zerolog.InfoLevel)
	p.SetLevel(zerolog.Disabled)
	assert.NotPanics(t, func() {
		p.GetLogger().Error("silent")
		p.GetLoggerWithName("x").With(log.StepKey, "pca").Info("silent")
	})
}
