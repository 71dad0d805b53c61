// Package log provides structured logging for pcaplot on top of zerolog.
//
// Components obtain a named Logger and attach key/value pairs:
//
//	logger := log.GetLoggerWithName("decomposition").With(log.ModelNameKey, "PCA")
//	logger.Info("Fit completed", log.SamplesKey, n, log.FeaturesKey, d)
//
// The process-wide level and output are configured once with SetupLogger.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Standard field keys.
const (
	ComponentKey      = "component"
	ModelNameKey      = "model_name"
	OperationKey      = "operation"
	PhaseKey          = "phase"
	SamplesKey        = "samples"
	FeaturesKey       = "features"
	ComponentsKey     = "components"
	DurationMsKey     = "duration_ms"
	PathKey           = "path"
	FormatKey         = "format"
	ErrorKey          = "error"
	ClassesKey        = "classes"
	VarianceKey       = "explained_variance_ratio"
	StepKey           = "step"
	ReconstructionKey = "reconstruction_mse"
	AccuracyKey       = "accuracy"
	EpochsKey         = "epochs"
)

// Operation values.
const (
	OperationLoad      = "load"
	OperationFit       = "fit"
	OperationTransform = "transform"
	OperationPredict   = "predict"
	OperationRender    = "render"
	OperationExport    = "export"
)

// Phase values.
const (
	PhaseLoading   = "loading"
	PhaseTraining  = "training"
	PhaseReduction = "reduction"
	PhaseRendering = "rendering"
)

// Logger is the structured logger used throughout pcaplot. Fields are
// alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// LoggerProvider hands out Loggers bound to a shared output and level.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level zerolog.Level)
}

var (
	mu             sync.RWMutex
	globalLogger   = newConsoleLogger(os.Stderr, zerolog.InfoLevel)
	globalProvider LoggerProvider
)

func newConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ToLogLevel parses a level name. Unknown names map to info.
func ToLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// SetupLogger configures the global console logger on stderr.
func SetupLogger(level string) {
	SetupLoggerWithWriter(os.Stderr, level)
}

// SetupLoggerWithWriter configures the global logger on w. os.Stderr and
// os.Stdout get the console writer, anything else receives JSON lines.
func SetupLoggerWithWriter(w io.Writer, level string) {
	lvl := ToLogLevel(level)
	var zl zerolog.Logger
	if w == os.Stderr || w == os.Stdout {
		zl = newConsoleLogger(w, lvl)
	} else {
		zl = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	}

	mu.Lock()
	defer mu.Unlock()
	globalLogger = zl
	globalProvider = &zerologProvider{base: zl}
}

// GetLogger returns the underlying global zerolog logger for callers that
// want the chained API.
func GetLogger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := globalLogger
	return &l
}

// GetLoggerWithName returns a Logger tagged with component=name.
func GetLoggerWithName(name string) Logger {
	return provider().GetLoggerWithName(name)
}

// LogError logs err at error level, including its cause chain.
func LogError(err error, msg string, fields ...interface{}) {
	if err == nil {
		return
	}
	l := GetLogger()
	l.Error().Err(err).Fields(fields).Msg(msg)
}

func provider() LoggerProvider {
	mu.Lock()
	defer mu.Unlock()
	if globalProvider == nil {
		globalProvider = &zerologProvider{base: globalLogger}
	}
	return globalProvider
}
