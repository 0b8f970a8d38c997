package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	clients "github.com/mutablelogic/go-llmquery/pkg/clients"
	config "github.com/mutablelogic/go-llmquery/pkg/config"
	logger "github.com/mutablelogic/go-llmquery/pkg/logger"
	registry "github.com/mutablelogic/go-llmquery/pkg/registry"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool   `name:"debug" help:"Enable debug output"`
	Verbose bool   `name:"verbose" help:"Trace HTTP requests and responses"`
	Log     string `name:"log-level" env:"LLMQUERY_LOG_LEVEL" default:"warn" help:"Log level (debug, info, warn, error)"`

	// Configuration
	Registry string   `name:"registry" env:"LLMQUERY_REGISTRY" default:"models.json" help:"Model registry file (JSON or YAML)"`
	EnvFile  []string `name:"env-file" default:".env" help:"Files to load into the environment"`
	Ollama   string   `name:"ollama-url" env:"OLLAMA_URL" help:"Local Ollama endpoint"`

	// Context
	ctx context.Context
	log *zap.Logger
}

type CLI struct {
	Globals

	// Commands
	Query        QueryCmd        `cmd:"" default:"withargs" help:"Query a model"`
	Models       ListModelsCmd   `cmd:"" help:"List available models"`
	Model        GetModelCmd     `cmd:"" help:"Show a model definition"`
	Version      VersionCmd      `cmd:"" help:"Print version information"`
	GeminiWorker GeminiWorkerCmd `cmd:"" name:"gemini-worker" hidden:"" help:"Run a single Gemini request from stdin"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Query large language models from a model registry"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Create a logger
	log, err := logger.New(cli.Log, cli.Debug)
	cmd.FatalIfErrorf(err)
	defer log.Sync()
	cli.Globals.log = log

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// registry returns the model registry
func (g *Globals) registry() (*registry.Registry, error) {
	return registry.New(g.Registry, registry.WithLogger(g.log))
}

// clients returns a client for each provider with a credential
func (g *Globals) clients() (*clients.ClientSet, schema.Credentials, error) {
	credentials, err := config.Load(g.EnvFile...)
	if err != nil {
		return nil, nil, err
	}

	opts := []clients.Opt{clients.WithLogger(g.log), clients.WithTracer(g.tracer())}
	if g.Ollama != "" {
		opts = append(opts, clients.WithLocalOllama(g.Ollama))
	}

	// Trace HTTP requests
	if g.Verbose {
		optTrace := client.OptTrace(os.Stderr, g.Debug)
		opts = append(opts,
			clients.WithAnthropicOptions(optTrace),
			clients.WithOllamaOptions(optTrace),
		)
	}

	return clients.New(credentials.Schema(), opts...), credentials.Schema(), nil
}

// tracer returns a tracer from the global provider, which records nothing
// unless a provider has been registered
func (g *Globals) tracer() trace.Tracer {
	return otel.Tracer(execName())
}

func execName() string {
	name, err := os.Executable()
	if err != nil {
		panic(err)
	}
	return filepath.Base(name)
}
