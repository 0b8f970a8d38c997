package main

import (
	"os"

	// Packages
	google "github.com/mutablelogic/go-llmquery/pkg/provider/google"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// GeminiWorkerCmd reads one request from stdin and writes the result to
// stdout. The Google client runs it in a child process for each query.
type GeminiWorkerCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *GeminiWorkerCmd) Run(globals *Globals) error {
	return google.RunWorker(globals.ctx, os.Stdin, os.Stdout)
}
