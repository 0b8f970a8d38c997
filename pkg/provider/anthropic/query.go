package anthropic

import (
	"context"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	llm "github.com/mutablelogic/go-llmquery"
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query sends the conversation history followed by the query text, and
// returns the text of the first content block of the reply
func (c *Client) Query(ctx context.Context, req schema.Request) (string, error) {
	payload, err := client.NewJSONRequest(messagesRequestFrom(req))
	if err != nil {
		return "", llm.ErrAPI.Wrap(err, c.Name())
	}

	// Set the beta header for the model
	opts := []client.RequestOpt{client.OptPath("messages")}
	if beta := BetaHeader(req.Model); beta != "" {
		opts = append(opts, client.OptReqHeader(headerBeta, beta))
	}

	var response messagesResponse
	if err := c.DoWithContext(ctx, payload, &response, opts...); err != nil {
		return "", provider.Translate(c.Name(), err)
	}

	return replyFrom(&response)
}

// BetaHeader returns the value of the anthropic-beta header for a model,
// or an empty string if no beta features apply
func BetaHeader(model string) string {
	model = strings.ToLower(model)
	sonnet := strings.Contains(model, "sonnet")
	v37 := strings.Contains(model, "3-7")
	switch {
	case sonnet && v37:
		return betaSonnet37
	case sonnet:
		return betaSonnet
	case v37:
		return beta37
	default:
		return ""
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func messagesRequestFrom(req schema.Request) messagesRequest {
	messages := make([]anthropicMessage, 0, len(req.History)+1)
	for _, message := range req.History.WithoutSystem() {
		role := roleUser
		if message.Role == schema.RoleAssistant || message.Role == schema.RoleModel {
			role = roleAssistant
		}
		messages = append(messages, anthropicMessage{Role: role, Content: message.Content})
	}
	messages = append(messages, anthropicMessage{Role: roleUser, Content: req.Text})

	temperature := req.Temperature
	return messagesRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		System:      req.SystemPrompt,
		Messages:    messages,
		Temperature: &temperature,
	}
}

func replyFrom(response *messagesResponse) (string, error) {
	if len(response.Content) == 0 {
		return "", llm.ErrAPI.With("anthropic: response has no content")
	}
	for _, block := range response.Content {
		if block.Type == blockTypeText {
			return block.Text, nil
		}
	}
	return "", llm.ErrAPI.Withf("anthropic: response has no text content (first block is %q)", response.Content[0].Type)
}
