package router

import (
	"context"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	llm "github.com/mutablelogic/go-llmquery"
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	ollama "github.com/mutablelogic/go-llmquery/pkg/provider/ollama"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Clients returns the provider client for a family, or nil when the
// client could not be constructed
type Clients interface {
	Get(family schema.Family) provider.Querier
	Ollama(remote bool) provider.Querier
}

// Router dispatches a resolved request to the adapter for its family
type Router struct {
	clients Clients
	log     *zap.Logger
	tracer  trace.Tracer
	metrics *Metrics
	now     func() time.Time
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Used when the definition does not state a maximum
	DefaultMaxTokens = 4000
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a router which dispatches queries to the clients
func New(clients Clients, opt ...Opt) (*Router, error) {
	if clients == nil {
		return nil, llm.ErrConfiguration.With("missing clients")
	}
	r := &Router{
		clients: clients,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, fn := range opt {
		fn(r)
	}
	return r, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query validates the request, expands the date and time placeholders in
// the system prompt, selects the adapter for the model and returns the
// reply text
func (r *Router) Query(ctx context.Context, req schema.Request) (_ string, err error) {
	id := uuid.NewString()
	log := r.log.With(zap.String("request_id", id), zap.String("model", req.Model))

	ctx, endSpan := otel.StartSpan(r.tracer, ctx, "Query",
		attribute.String("request_id", id),
		attribute.String("model", req.Model),
	)
	defer func() { endSpan(err) }()

	// Validate and clamp
	if err := Validate(req); err != nil {
		return "", err
	}
	req = req.WithPlaceholders(r.now())
	family, ok := Route(req.Definition.Family, req.Model)
	if !ok {
		return "", llm.ErrConfiguration.Withf("unknown model family %q for model %q", req.Definition.Family, req.Model)
	}
	if limit, clamped := ClampMaxTokens(&req); clamped {
		log.Warn("max tokens exceeds model limit", zap.Int("limit", limit))
		if r.metrics != nil {
			r.metrics.Clamped.WithLabelValues(family.String()).Inc()
		}
	}
	if family == schema.OpenAI && FixedTemperature(req.Model) {
		req.Temperature = 1
	}

	// Select the client
	var querier provider.Querier
	if family == schema.Ollama {
		querier = r.clients.Ollama(ollama.IsRemote(req.Definition.URL))
	} else {
		querier = r.clients.Get(family)
	}
	if querier == nil {
		return "", llm.ErrAuthentication.Withf("%s client is not available, check %s", family, schema.CredentialFor(family))
	}

	// Call the provider
	log.Debug("query", zap.Stringer("family", family), zap.Int("max_tokens", req.MaxTokens), zap.Float64("temperature", req.Temperature))
	start := time.Now()
	reply, err := querier.Query(ctx, req)
	r.observe(family, time.Since(start), err)
	if err != nil {
		if _, ok := llm.KindOf(err); !ok {
			err = llm.ErrAPI.Wrap(err, family.String())
		}
		log.Error("query failed", zap.Stringer("family", family), zap.Error(err))
		return "", err
	}

	// Return success
	return reply, nil
}

// Validate returns an error if the request text is empty or the temperature
// is negative
func Validate(req schema.Request) error {
	if req.Text == "" {
		return llm.ErrValidation.With("empty query text")
	}
	if req.Temperature < 0 {
		return llm.ErrValidation.Withf("negative temperature %v", req.Temperature)
	}
	return nil
}

// ClampMaxTokens limits the request max tokens to the maximum for the model,
// and returns the limit and true if a larger value was requested. A request
// without max tokens is given the limit.
func ClampMaxTokens(req *schema.Request) (int, bool) {
	limit := req.Definition.MaxOutputTokens
	if limit <= 0 {
		limit = DefaultMaxTokens
	}
	switch {
	case req.MaxTokens <= 0:
		req.MaxTokens = limit
	case req.MaxTokens > limit:
		req.MaxTokens = limit
		return limit, true
	}
	return limit, false
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *Router) observe(family schema.Family, duration time.Duration, err error) {
	if r.metrics == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}
	r.metrics.Queries.WithLabelValues(family.String(), outcome).Inc()
	r.metrics.Duration.WithLabelValues(family.String()).Observe(duration.Seconds())
}
