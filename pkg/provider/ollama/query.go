package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-client"
	llm "github.com/mutablelogic/go-llmquery"
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// rawResponse keeps the response body for parsing, as the server may reply
// with a single object or with newline-delimited objects
type rawResponse struct {
	data []byte
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query sends the system prompt, the conversation history and the query
// text, and returns the reply
func (c *Client) Query(ctx context.Context, req schema.Request) (string, error) {
	payload, err := client.NewJSONRequest(chatRequestFrom(req))
	if err != nil {
		return "", llm.ErrAPI.Wrap(err, c.Name())
	}

	c.log.Debug("sending request", zap.String("url", c.chat), zap.String("model", req.Model), zap.Bool("remote", c.remote))
	var response rawResponse
	if err := c.DoWithContext(ctx, payload, &response); err != nil {
		return "", provider.Translate(c.Name(), err)
	}

	return c.parse(req.Model, response.data)
}

///////////////////////////////////////////////////////////////////////////////
// UNMARSHALER

func (r *rawResponse) Unmarshal(_ http.Header, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	r.data = data
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func chatRequestFrom(req schema.Request) chatRequest {
	messages := make([]chatMessage, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: schema.RoleSystem, Content: req.SystemPrompt})
	}
	for _, message := range req.History.WithoutSystem() {
		messages = append(messages, chatMessage{Role: message.Role, Content: message.Content})
	}
	messages = append(messages, chatMessage{Role: schema.RoleUser, Content: req.Text})

	// Temperature is left to the server default unless positive
	request := chatRequest{
		Model:     req.Model,
		Messages:  messages,
		Stream:    false,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature > 0 {
		request.Temperature = req.Temperature
	}
	return request
}

// parse returns the reply text from a response body
func (c *Client) parse(model string, data []byte) (string, error) {
	text := bytes.TrimSpace(data)

	// Newline-delimited chunks
	if bytes.IndexByte(text, '\n') >= 0 && bytes.HasPrefix(text, []byte("{")) {
		return c.parseStream(model, text), nil
	}

	// Single object
	var response chatResponse
	if err := json.Unmarshal(text, &response); err != nil {
		if !bytes.HasPrefix(text, []byte("{")) && !bytes.HasPrefix(text, []byte("[")) {
			c.log.Warn("response is not json, returning it unparsed", zap.String("model", model))
			return string(data), nil
		}
		return "", llm.ErrAPI.Wrapf(err, "%s: failed to parse response", c.Name())
	}

	switch {
	case response.Message != nil:
		if response.Done {
			c.logMetrics(model, response.Metrics)
		}
		if response.Reason == reasonUnload {
			c.log.Warn("model was unloaded during processing", zap.String("model", model))
		}
		return response.Message.Content, nil
	case response.Response != nil:
		c.log.Warn("received a generate response instead of a chat response", zap.String("model", model))
		return *response.Response, nil
	default:
		return "", llm.ErrAPI.Withf("%s: failed to extract content from response", c.Name())
	}
}

// parseStream concatenates the message content of each chunk up to the
// final chunk. Lines which are not valid json are skipped.
func (c *Client) parseStream(model string, text []byte) string {
	var content bytes.Buffer
	for _, line := range bytes.Split(text, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var chunk chatResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			continue
		}
		if chunk.Message != nil {
			content.WriteString(chunk.Message.Content)
		}
		if chunk.Done {
			c.logMetrics(model, chunk.Metrics)
			if chunk.Reason == reasonUnload {
				c.log.Warn("model was unloaded during processing", zap.String("model", model))
			}
			break
		}
	}
	return content.String()
}

func (c *Client) logMetrics(model string, metrics Metrics) {
	c.log.Debug("response metadata",
		zap.String("model", model),
		zap.Duration("total_duration", metrics.TotalDuration),
		zap.Duration("load_duration", metrics.LoadDuration),
		zap.Int("prompt_eval_count", metrics.PromptEvalCount),
		zap.Duration("prompt_eval_duration", metrics.PromptEvalDuration),
		zap.Int("eval_count", metrics.EvalCount),
		zap.Duration("eval_duration", metrics.EvalDuration),
	)
}
