/*
google implements a query client for the Google Gemini API. Each query runs
in a freshly spawned worker process which makes the call with the genai SDK
and reports a structured result on its standard output.
https://ai.google.dev/gemini-api/docs
*/
package google

import (
	"context"
	"encoding/json"
	"strings"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	apiKey  string
	baseURL string
	runner  Runner
	log     *zap.Logger
}

// Opt sets an option on the client
type Opt func(*Client) error

// WorkerError is an error reported by the worker process. Its message is
// the worker's message, unchanged.
type WorkerError struct {
	Message string
}

var _ provider.Querier = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a Gemini client with the given API key. Unless a runner is
// set, queries re-execute the current binary with the worker command.
func New(apiKey string, opts ...Opt) (*Client, error) {
	if apiKey == "" {
		return nil, provider.MissingCredential(schema.GoogleKey)
	}
	self := &Client{apiKey: apiKey, log: zap.NewNop()}
	for _, opt := range opts {
		if err := opt(self); err != nil {
			return nil, err
		}
	}
	if self.runner == nil {
		runner, err := NewExecRunner()
		if err != nil {
			return nil, err
		}
		self.runner = runner
	}
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// OptRunner sets how the worker is run
func OptRunner(runner Runner) Opt {
	return func(c *Client) error {
		c.runner = runner
		return nil
	}
}

// OptLogger sets the logger
func OptLogger(log *zap.Logger) Opt {
	return func(c *Client) error {
		if log != nil {
			c.log = log
		}
		return nil
	}
}

// OptBaseURL replaces the Gemini API endpoint used by the worker
func OptBaseURL(url string) Opt {
	return func(c *Client) error {
		c.baseURL = url
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the provider name
func (*Client) Name() string {
	return schema.Google.String()
}

// Query runs one worker process for the query and returns its reply
func (c *Client) Query(ctx context.Context, req schema.Request) (string, error) {
	input, err := json.Marshal(WorkerRequest{
		APIKey:       c.apiKey,
		BaseURL:      c.baseURL,
		Model:        req.Model,
		Text:         req.Text,
		SystemPrompt: req.SystemPrompt,
		Temperature:  req.Temperature,
		MaxTokens:    req.MaxTokens,
		History:      req.History,
	})
	if err != nil {
		return "", llm.ErrAPI.Wrap(err, c.Name())
	}

	c.log.Debug("starting worker", zap.String("model", req.Model))
	output, err := c.runner.Run(ctx, input)
	if err != nil {
		return "", llm.ErrAPI.Wrapf(err, "google: worker failed for %s", req.Model)
	}

	var result WorkerResult
	if err := json.Unmarshal(output, &result); err != nil {
		return "", llm.ErrAPI.Wrapf(err, "google: invalid worker result for %s", req.Model)
	}
	if result.Error != "" {
		return "", translate(req.Model, &WorkerError{Message: result.Error})
	}
	return result.Text, nil
}

func (e *WorkerError) Error() string {
	return e.Message
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// translate maps a worker error to a domain error by its message
func translate(model string, err error) error {
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "authentication"), strings.Contains(message, "api_key"), strings.Contains(message, "api key"):
		return llm.ErrAuthentication.Wrapf(err, "google: authentication failed for %s", model)
	case strings.Contains(message, "quota"), strings.Contains(message, "rate limit"):
		return llm.ErrAPI.Wrapf(err, "google: rate limit or quota exceeded for %s", model)
	default:
		return llm.ErrAPI.Wrapf(err, "google: %s", model)
	}
}
