package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	genai "google.golang.org/genai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// WorkerRequest is read by the worker from standard input
type WorkerRequest struct {
	APIKey       string              `json:"api_key"`
	BaseURL      string              `json:"base_url,omitempty"`
	Model        string              `json:"model"`
	Text         string              `json:"text"`
	SystemPrompt string              `json:"system,omitempty"`
	Temperature  float64             `json:"temperature"`
	MaxTokens    int                 `json:"max_tokens"`
	History      schema.Conversation `json:"history,omitempty"`
}

// WorkerResult is written by the worker to standard output. Exactly one
// of Text and Error is set.
type WorkerResult struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// GenerateFunc makes the provider call for a worker request
type GenerateFunc func(context.Context, WorkerRequest) (string, error)

// Worker answers one request
type Worker struct {
	generate GenerateFunc
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	systemAck = "I understand and will follow these instructions."
	topP      = 0.95
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewWorker returns a worker which calls fn, or Generate if fn is nil
func NewWorker(fn GenerateFunc) *Worker {
	if fn == nil {
		fn = Generate
	}
	return &Worker{generate: fn}
}

// RunWorker answers the request on r with the Gemini API, and writes the
// result to w
func RunWorker(ctx context.Context, r io.Reader, w io.Writer) error {
	return NewWorker(nil).Run(ctx, r, w)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run reads one request and writes one result. An error is returned only
// when the result cannot be written.
func (worker *Worker) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	var req WorkerRequest
	var result WorkerResult
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		result.Error = fmt.Sprint("invalid worker request: ", err)
	} else if text, err := worker.generate(ctx, req); err != nil {
		result.Error = err.Error()
	} else if text == "" {
		result.Error = fmt.Sprintf("model %s did not return a result", req.Model)
	} else {
		result.Text = text
	}
	return json.NewEncoder(w).Encode(result)
}

// Generate calls the Gemini API for the request and returns the reply text
func Generate(ctx context.Context, req WorkerRequest) (string, error) {
	config := &genai.ClientConfig{
		APIKey:  req.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if req.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: req.BaseURL}
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return "", err
	}
	response, err := client.Models.GenerateContent(ctx, req.Model, Contents(req), GenerateConfig(req))
	if err != nil {
		return "", err
	}
	return Extract(response), nil
}

// Contents returns the conversation sent to the model. With history, the
// system prompt is sent as a leading user turn which the model acknowledges.
// Without history, the system prompt and query form a single prompt.
func Contents(req WorkerRequest) []*genai.Content {
	history := req.History.WithoutSystem()
	if len(history) == 0 {
		prompt := req.Text
		if req.SystemPrompt != "" {
			prompt = systemBlock(req.SystemPrompt) + "\n\n" + req.Text
		}
		return []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	}

	contents := make([]*genai.Content, 0, len(history)+3)
	contents = append(contents,
		genai.NewContentFromText(systemBlock(req.SystemPrompt), genai.RoleUser),
		genai.NewContentFromText(systemAck, genai.RoleModel),
	)
	for _, message := range history {
		var role genai.Role = genai.RoleUser
		if message.Role == schema.RoleAssistant || message.Role == schema.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(message.Content, role))
	}
	return append(contents, genai.NewContentFromText(req.Text, genai.RoleUser))
}

// GenerateConfig returns the generation parameters. top_p is set only when
// sampling with a positive temperature.
func GenerateConfig(req WorkerRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.Temperature > 0 {
		config.TopP = genai.Ptr(float32(topP))
	}
	return config
}

// Extract returns the reply text, falling back to the text of the first
// candidate's parts and then to the response as json
func Extract(response *genai.GenerateContentResponse) string {
	if response == nil {
		return ""
	}
	if text := response.Text(); text != "" {
		return text
	}
	for _, candidate := range response.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		var text strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil {
				text.WriteString(part.Text)
			}
		}
		if text.Len() > 0 {
			return text.String()
		}
	}
	if data, err := json.Marshal(response); err == nil {
		return string(data)
	}
	return ""
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func systemBlock(system string) string {
	return "<s>\n" + system + "\n</s>"
}
