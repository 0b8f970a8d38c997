package logger

import (
	"strings"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultLevel = "info"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a logger which writes at the given level to stderr. The
// development logger is human readable, the production logger writes JSON.
func New(level string, debug bool) (*zap.Logger, error) {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.Sampling = nil
	}

	// Set the level
	if lvl, err := ParseLevel(level); err != nil {
		return nil, err
	} else {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	// Build the logger
	return config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLevel returns the level from its name, or the default level
// for an empty string
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = DefaultLevel
	}
	var result zapcore.Level
	if err := result.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return result, llm.ErrConfiguration.Withf("invalid log level %q", level)
	}
	return result, nil
}
