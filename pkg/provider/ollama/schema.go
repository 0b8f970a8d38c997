package ollama

import (
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// chatRequest is the request body for POST /api/chat
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is one response object, or one line of a streamed response.
// Generate-style responses carry Response rather than Message.
type chatResponse struct {
	Model     string       `json:"model"`
	CreatedAt time.Time    `json:"created_at"`
	Message   *chatMessage `json:"message,omitempty"`
	Response  *string      `json:"response,omitempty"`
	Done      bool         `json:"done"`
	Reason    string       `json:"done_reason,omitempty"`
	Metrics
}

// Metrics are reported on the final response. Durations are in nanoseconds.
type Metrics struct {
	TotalDuration      time.Duration `json:"total_duration,omitempty"`
	LoadDuration       time.Duration `json:"load_duration,omitempty"`
	PromptEvalCount    int           `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration time.Duration `json:"prompt_eval_duration,omitempty"`
	EvalCount          int           `json:"eval_count,omitempty"`
	EvalDuration       time.Duration `json:"eval_duration,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	reasonUnload = "unload"
)
