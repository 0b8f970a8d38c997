package provider_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	assert "github.com/stretchr/testify/assert"
)

func Test_provider_001(t *testing.T) {
	// Status codes map to kinds
	assert := assert.New(t)
	tests := []struct {
		status int
		kind   llm.Err
	}{
		{http.StatusUnauthorized, llm.ErrAuthentication},
		{http.StatusForbidden, llm.ErrAuthentication},
		{http.StatusTooManyRequests, llm.ErrAPI},
		{http.StatusBadRequest, llm.ErrAPI},
		{http.StatusBadGateway, llm.ErrAPI},
		{http.StatusNotFound, llm.ErrAPI},
	}
	for _, test := range tests {
		err := provider.Translate("test", fmt.Errorf("wrapped: %w", httpresponse.Err(test.status)))
		assert.ErrorIs(err, test.kind, test.status)
		assert.Contains(err.Error(), fmt.Sprint(test.status))

		status, ok := provider.StatusCode(err)
		assert.True(ok)
		assert.Equal(test.status, status)
	}
}

func Test_provider_002(t *testing.T) {
	// Errors which already have a kind pass through
	assert := assert.New(t)
	err := llm.ErrValidation.With("bad")
	assert.Equal(err, provider.Translate("test", err))
	assert.NoError(provider.Translate("test", nil))
}

func Test_provider_003(t *testing.T) {
	// Timeouts and other failures are api errors
	assert := assert.New(t)
	err := provider.Translate("ollama", fmt.Errorf("post: %w", context.DeadlineExceeded))
	assert.ErrorIs(err, llm.ErrAPI)
	assert.ErrorIs(err, context.DeadlineExceeded)
	assert.Contains(err.Error(), "timed out")

	err = provider.Translate("ollama", errors.New("boom"))
	assert.ErrorIs(err, llm.ErrAPI)
	assert.Equal("api error: ollama: boom", err.Error())
}
