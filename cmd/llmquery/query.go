package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	registry "github.com/mutablelogic/go-llmquery/pkg/registry"
	router "github.com/mutablelogic/go-llmquery/pkg/router"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	prometheus "github.com/prometheus/client_golang/prometheus"
	term "golang.org/x/term"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type QueryCmd struct {
	Model       string   `arg:"" help:"Model name or alias"`
	Text        []string `arg:"" optional:"" help:"Query text, read from stdin when omitted"`
	System      string   `name:"system" short:"s" help:"System prompt"`
	Temperature float64  `name:"temperature" short:"t" default:"0" help:"Sampling temperature"`
	MaxTokens   int      `name:"max-tokens" help:"Maximum tokens in the reply, limited by the model"`
	History     string   `name:"history" type:"existingfile" help:"JSON file of prior messages"`
	Markdown    bool     `name:"markdown" negatable:"" default:"true" help:"Render the reply as markdown on a terminal"`
	Reload      bool     `name:"reload" help:"Reload the registry file"`
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *QueryCmd) Run(globals *Globals) error {
	reg, err := globals.registry()
	if err != nil {
		return err
	}

	// Resolve the model
	var opts []registry.ResolveOpt
	if cmd.Reload {
		opts = append(opts, registry.WithForceReload())
	}
	name, def, err := reg.Resolve(cmd.Model, opts...)
	if err != nil {
		return err
	} else if name == "" {
		return llm.ErrModel.Withf("model %q is not available", cmd.Model)
	}

	// Read the query and history
	text, err := cmd.text()
	if err != nil {
		return err
	}
	history, err := cmd.history()
	if err != nil {
		return err
	}

	// Make the clients and the router
	clients, credentials, err := globals.clients()
	if err != nil {
		return err
	}
	metrics := prometheus.NewRegistry()
	r, err := router.New(clients,
		router.WithLogger(globals.log),
		router.WithTracer(globals.tracer()),
		router.WithMetrics(router.NewMetrics(metrics)),
	)
	if err != nil {
		return err
	}
	defer logMetrics(globals.log, metrics)

	// Run the query
	reply, err := r.Query(globals.ctx, schema.Request{
		Text:         text,
		SystemPrompt: cmd.System,
		Temperature:  cmd.Temperature,
		MaxTokens:    cmd.MaxTokens,
		History:      history,
		Model:        name,
		Definition:   def,
		Credentials:  credentials,
	})
	if err != nil {
		return err
	}

	// Output the reply
	if cmd.Markdown {
		reply = renderMarkdown(os.Stdout, reply)
	}
	_, err = fmt.Fprintln(os.Stdout, reply)
	return err
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *QueryCmd) text() (string, error) {
	if text := strings.TrimSpace(strings.Join(cmd.Text, " ")); text != "" {
		return text, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", llm.ErrValidation.With("missing query text")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (cmd *QueryCmd) history() (schema.Conversation, error) {
	if cmd.History == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cmd.History)
	if err != nil {
		return nil, err
	}
	var messages []schema.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, llm.ErrValidation.Wrapf(err, "history %s", cmd.History)
	}
	result := make(schema.Conversation, 0, len(messages))
	for _, message := range messages {
		result = append(result, schema.NewMessage(message.Role, message.Content))
	}
	return result, nil
}

// logMetrics writes the query metrics to the debug log
func logMetrics(log *zap.Logger, gatherer prometheus.Gatherer) {
	families, err := gatherer.Gather()
	if err != nil {
		log.Debug("metrics unavailable", zap.Error(err))
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			fields := []zap.Field{zap.String("metric", family.GetName())}
			for _, label := range metric.GetLabel() {
				fields = append(fields, zap.String(label.GetName(), label.GetValue()))
			}
			switch {
			case metric.GetCounter() != nil:
				fields = append(fields, zap.Float64("value", metric.GetCounter().GetValue()))
			case metric.GetHistogram() != nil:
				fields = append(fields, zap.Float64("sum", metric.GetHistogram().GetSampleSum()))
			}
			log.Debug("metric", fields...)
		}
	}
}
