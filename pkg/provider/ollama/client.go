/*
ollama implements a query client for the ollama chat API, either on the
local server or on a remote server which requires a bearer token.
https://github.com/ollama/ollama/blob/main/docs/api.md
*/
package ollama

import (
	"net"
	"net/url"
	"strings"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	chat   string
	remote bool
	log    *zap.Logger
}

var _ provider.Querier = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultName = "ollama"

	// LocalEndpoint is the API endpoint of the local ollama server
	LocalEndpoint = "http://localhost:11434/api"

	// Token sent to the local server
	localToken = "ollama"

	// Requests which take longer than this fail
	DefaultTimeout = 60 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewLocal creates a client for a local server. The endpoint should be
// something like "http://localhost:11434/api", or empty for LocalEndpoint.
func NewLocal(endPoint string, opts ...client.ClientOpt) (*Client, error) {
	if endPoint == "" {
		endPoint = LocalEndpoint
	}
	return newClient(strings.TrimSuffix(endPoint, "/")+"/chat", false, localToken, opts...)
}

// NewRemote creates a client for a remote server which authenticates with
// apiKey. Any "/v1" is removed from the endpoint and "/chat" is appended.
func NewRemote(endPoint, apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		apiKey = schema.DefaultOllamaKey
	}
	return newClient(RemoteChatURL(endPoint), true, apiKey, opts...)
}

func newClient(chat string, remote bool, token string, opts ...client.ClientOpt) (*Client, error) {
	opts = append([]client.ClientOpt{
		client.OptEndpoint(chat),
		client.OptTimeout(DefaultTimeout),
		client.OptHeader("Authorization", "Bearer "+token),
	}, opts...)
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{Client: c, chat: chat, remote: remote, log: zap.NewNop()}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Return the name of the provider
func (*Client) Name() string {
	return defaultName
}

// SetLogger sets the logger for response warnings and metadata
func (c *Client) SetLogger(log *zap.Logger) {
	if log != nil {
		c.log = log
	}
}

// IsRemote returns true if the client targets a remote server
func (c *Client) IsRemote() bool {
	return c.remote
}

// ChatURL returns the URL requests are sent to
func (c *Client) ChatURL() string {
	return c.chat
}

// IsRemote returns true if a model URL refers to a remote server: one with
// an https scheme or a host which is not a loopback address
func IsRemote(modelURL string) bool {
	modelURL = strings.TrimSpace(modelURL)
	if modelURL == "" {
		return false
	}
	u, err := url.Parse(modelURL)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Scheme, "https") {
		return true
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return false
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return false
	}
	return true
}

// RemoteChatURL returns the chat endpoint for a remote base URL
func RemoteChatURL(base string) string {
	chat := strings.TrimSuffix(strings.ReplaceAll(base, "/v1", ""), "/")
	if !strings.HasSuffix(chat, "/chat") {
		chat += "/chat"
	}
	return chat
}
