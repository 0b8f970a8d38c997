package google

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Runner runs one worker with the given standard input, and returns its
// standard output
type Runner interface {
	Run(ctx context.Context, stdin []byte) ([]byte, error)
}

// ExecRunner runs the worker as a child process. Standard error is
// discarded. The process is killed if the context is cancelled.
type ExecRunner struct {
	Path string
	Args []string
	Env  []string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// WorkerCommand is the hidden command which runs the worker
	WorkerCommand = "gemini-worker"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewExecRunner returns a runner which re-executes the current binary with
// the worker command
func NewExecRunner() (*ExecRunner, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, err
	}
	return &ExecRunner{Path: path, Args: []string{WorkerCommand}}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (r *ExecRunner) Run(ctx context.Context, stdin []byte) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Path, r.Args...)
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}
