package clients

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	google "github.com/mutablelogic/go-llmquery/pkg/provider/google"
	option "github.com/openai/openai-go/v3/option"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt sets an option on client construction
type Opt func(*opts)

type opts struct {
	log           *zap.Logger
	tracer        trace.Tracer
	localOllama   string
	openaiOpts    []option.RequestOption
	anthropicOpts []client.ClientOpt
	ollamaOpts    []client.ClientOpt
	googleOpts    []google.Opt
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger passed to each client
func WithLogger(log *zap.Logger) Opt {
	return func(o *opts) {
		if log != nil {
			o.log = log
		}
	}
}

// WithTracer traces the HTTP requests of the Anthropic and Ollama clients
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) {
		o.tracer = tracer
	}
}

// WithLocalOllama replaces the endpoint of the local Ollama server, which
// otherwise is ollama.LocalEndpoint
func WithLocalOllama(endpoint string) Opt {
	return func(o *opts) {
		o.localOllama = endpoint
	}
}

// WithOpenAIOptions appends SDK options for the OpenAI client
func WithOpenAIOptions(v ...option.RequestOption) Opt {
	return func(o *opts) {
		o.openaiOpts = append(o.openaiOpts, v...)
	}
}

// WithAnthropicOptions appends client options for the Anthropic client
func WithAnthropicOptions(v ...client.ClientOpt) Opt {
	return func(o *opts) {
		o.anthropicOpts = append(o.anthropicOpts, v...)
	}
}

// WithOllamaOptions appends client options for both Ollama clients
func WithOllamaOptions(v ...client.ClientOpt) Opt {
	return func(o *opts) {
		o.ollamaOpts = append(o.ollamaOpts, v...)
	}
}

// WithGoogleOptions appends options for the Gemini client
func WithGoogleOptions(v ...google.Opt) Opt {
	return func(o *opts) {
		o.googleOpts = append(o.googleOpts, v...)
	}
}
