/*
clients builds one query client per provider family from a set of
credentials. A family whose client cannot be built is left unavailable, and
the remaining families are still usable.
*/
package clients

import (
	"sort"

	// Packages
	client "github.com/mutablelogic/go-client"
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	anthropic "github.com/mutablelogic/go-llmquery/pkg/provider/anthropic"
	google "github.com/mutablelogic/go-llmquery/pkg/provider/google"
	ollama "github.com/mutablelogic/go-llmquery/pkg/provider/ollama"
	openai "github.com/mutablelogic/go-llmquery/pkg/provider/openai"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ClientSet holds the client for each family, and the local and remote
// Ollama clients. It is not modified after construction.
type ClientSet struct {
	opts
	clients      map[schema.Family]provider.Querier
	ollamaLocal  *ollama.Client
	ollamaRemote *ollama.Client
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New builds the clients for the given credentials. It never fails; clients
// which cannot be built are logged and left unavailable.
func New(credentials schema.Credentials, opt ...Opt) *ClientSet {
	self := new(ClientSet)
	self.log = zap.NewNop()
	for _, fn := range opt {
		fn(&self.opts)
	}
	self.clients = make(map[schema.Family]provider.Querier, len(schema.Families))

	// Cloud providers need a credential
	if key := credentials[schema.OpenAIKey]; key == "" {
		self.unavailable(schema.OpenAI, provider.MissingCredential(schema.OpenAIKey))
	} else if c, err := openai.New(key, self.openaiOpts...); err != nil {
		self.unavailable(schema.OpenAI, err)
	} else {
		self.clients[schema.OpenAI] = c
	}

	if key := credentials[schema.AnthropicKey]; key == "" {
		self.unavailable(schema.Anthropic, provider.MissingCredential(schema.AnthropicKey))
	} else if c, err := anthropic.New(key, self.httpOpts(self.anthropicOpts)...); err != nil {
		self.unavailable(schema.Anthropic, err)
	} else {
		self.clients[schema.Anthropic] = c
	}

	if key := credentials[schema.GoogleKey]; key == "" {
		self.unavailable(schema.Google, provider.MissingCredential(schema.GoogleKey))
	} else if c, err := google.New(key, append([]google.Opt{google.OptLogger(self.log)}, self.googleOpts...)...); err != nil {
		self.unavailable(schema.Google, err)
	} else {
		self.clients[schema.Google] = c
	}

	// Ollama always has a local client, and a remote client when a remote
	// URL is configured
	if c, err := ollama.NewLocal(self.localOllama, self.httpOpts(self.ollamaOpts)...); err != nil {
		self.unavailable(schema.Ollama, err)
	} else {
		c.SetLogger(self.log)
		self.ollamaLocal = c
	}
	if url := credentials[schema.OllamaRemoteURL]; url != "" {
		if c, err := ollama.NewRemote(url, credentials.Get(schema.OllamaKey), self.httpOpts(self.ollamaOpts)...); err != nil {
			self.log.Error("remote ollama client unavailable, using local", zap.String("url", url), zap.Error(err))
		} else {
			c.SetLogger(self.log)
			self.ollamaRemote = c
		}
	}
	if self.ollamaRemote == nil {
		self.ollamaRemote = self.ollamaLocal
	}
	if self.ollamaLocal != nil {
		self.clients[schema.Ollama] = self.ollamaLocal
	}

	// Return the client set
	self.log.Debug("clients ready", zap.Stringers("families", self.Available()))
	return self
}

// Rebuild returns a new client set for the credentials, with the same options
func (s *ClientSet) Rebuild(credentials schema.Credentials) *ClientSet {
	return New(credentials, func(o *opts) {
		*o = s.opts
	})
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get returns the client for a family, or nil if it is unavailable
func (s *ClientSet) Get(family schema.Family) provider.Querier {
	if c, exists := s.clients[family]; exists {
		return c
	}
	return nil
}

// Ollama returns the remote or local Ollama client, or nil if unavailable.
// Without a remote URL the remote client is the local client.
func (s *ClientSet) Ollama(remote bool) provider.Querier {
	c := s.ollamaLocal
	if remote {
		c = s.ollamaRemote
	}
	if c == nil {
		return nil
	}
	return c
}

// HasRemoteOllama returns true if a separate remote Ollama client exists
func (s *ClientSet) HasRemoteOllama() bool {
	return s.ollamaRemote != nil && s.ollamaRemote != s.ollamaLocal
}

// Available returns the families which have a client, sorted by name
func (s *ClientSet) Available() []schema.Family {
	result := make([]schema.Family, 0, len(s.clients))
	for family := range s.clients {
		result = append(result, family)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *ClientSet) unavailable(family schema.Family, err error) {
	s.log.Warn("client unavailable", zap.Stringer("family", family), zap.Error(err))
}

func (s *ClientSet) httpOpts(v []client.ClientOpt) []client.ClientOpt {
	if s.tracer == nil {
		return v
	}
	return append([]client.ClientOpt{client.OptTracer(s.tracer)}, v...)
}
