/*
openai implements a query client for the OpenAI Responses API, using the
official SDK for transport and authentication.
https://platform.openai.com/docs/api-reference/responses
*/
package openai

import (
	// Packages
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	sdk "github.com/openai/openai-go/v3"
	option "github.com/openai/openai-go/v3/option"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	client sdk.Client
}

var _ provider.Querier = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new OpenAI client with the given API key. SDK retries are
// disabled; a failed request is reported to the caller.
func New(apiKey string, opts ...option.RequestOption) (*Client, error) {
	if apiKey == "" {
		return nil, provider.MissingCredential(schema.OpenAIKey)
	}
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	return &Client{client: sdk.NewClient(opts...)}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the provider name
func (*Client) Name() string {
	return schema.OpenAI.String()
}
