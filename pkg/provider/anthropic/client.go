/*
anthropic implements a query client for the Anthropic Messages API.
https://docs.anthropic.com/en/api/messages
*/
package anthropic

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

var _ provider.Querier = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint   = "https://api.anthropic.com/v1"
	apiVersion = "2023-06-01"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new Anthropic API client with the given API key. The
// endpoint can be replaced with client.OptEndpoint.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptHeader("x-api-key", apiKey),
		client.OptHeader("anthropic-version", apiVersion),
	}, opts...)
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{c}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the provider name
func (*Client) Name() string {
	return schema.Anthropic.String()
}
