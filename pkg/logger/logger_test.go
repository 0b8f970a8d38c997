package logger_test

import (
	"testing"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	logger "github.com/mutablelogic/go-llmquery/pkg/logger"
	assert "github.com/stretchr/testify/assert"
	zapcore "go.uber.org/zap/zapcore"
)

func Test_logger_001(t *testing.T) {
	assert := assert.New(t)
	for name, expect := range map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
	} {
		level, err := logger.ParseLevel(name)
		assert.NoError(err, name)
		assert.Equal(expect, level, name)
	}

	_, err := logger.ParseLevel("loud")
	assert.ErrorIs(err, llm.ErrConfiguration)
}

func Test_logger_002(t *testing.T) {
	assert := assert.New(t)
	log, err := logger.New("warn", false)
	if assert.NoError(err) {
		assert.False(log.Core().Enabled(zapcore.InfoLevel))
		assert.True(log.Core().Enabled(zapcore.WarnLevel))
	}

	log, err = logger.New("debug", true)
	if assert.NoError(err) {
		assert.True(log.Core().Enabled(zapcore.DebugLevel))
	}

	_, err = logger.New("loud", true)
	assert.Error(err)
}
