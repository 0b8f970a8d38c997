package openai

import (
	"context"
	"errors"
	"strings"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	provider "github.com/mutablelogic/go-llmquery/pkg/provider"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	sdk "github.com/openai/openai-go/v3"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query sends the system prompt, the conversation history and the query
// text as one Responses API request, and returns the reply text
func (c *Client) Query(ctx context.Context, req schema.Request) (string, error) {
	var response responsesResponse
	if err := c.client.Post(ctx, pathResponses, responsesRequestFrom(req), &response); err != nil {
		return "", translate(req.Model, err)
	}
	return replyFrom(req.Model, &response)
}

// IsReasoning returns true for models which accept a reasoning effort and
// no temperature
func IsReasoning(model string) bool {
	model = strings.ToLower(model)
	if strings.HasPrefix(model, "gpt-5-chat") {
		return false
	}
	for _, prefix := range []string{"gpt-5", "o1", "o3", "o4"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

// ReasoningEffort returns the effort requested for a reasoning model
func ReasoningEffort(model string) string {
	model = strings.ToLower(model)
	if strings.HasPrefix(model, "o4") || strings.Contains(model, "chat") {
		return effortMedium
	}
	return effortMinimal
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func responsesRequestFrom(req schema.Request) responsesRequest {
	input := make([]inputMessage, 0, len(req.History)+2)
	if req.SystemPrompt != "" {
		input = append(input, newInputMessage(schema.RoleSystem, req.SystemPrompt))
	}
	for _, message := range req.History {
		input = append(input, newInputMessage(message.Role, message.Content))
	}
	input = append(input, newInputMessage(schema.RoleUser, req.Text))

	request := responsesRequest{
		Model:           req.Model,
		Input:           input,
		MaxOutputTokens: req.MaxTokens,
	}
	switch {
	case IsReasoning(req.Model):
		request.Reasoning = &reasoning{Effort: ReasoningEffort(req.Model)}
	case strings.Contains(strings.ToLower(req.Model), "codex"):
		// Code-completion variants reject temperature
	default:
		temperature := req.Temperature
		request.Temperature = &temperature
	}
	return request
}

// newInputMessage maps system turns to developer turns, and uses output
// blocks for assistant turns and input blocks for everything else
func newInputMessage(role, text string) inputMessage {
	blockType := typeInputText
	switch role {
	case schema.RoleSystem:
		role = roleDeveloper
	case schema.RoleAssistant, schema.RoleModel:
		role = roleAssistant
		blockType = typeOutputText
	}
	return inputMessage{
		Role:    role,
		Content: []contentBlock{{Type: blockType, Text: text}},
	}
}

func replyFrom(model string, response *responsesResponse) (string, error) {
	// Message output items
	for _, item := range response.Output {
		if item.Type != typeMessage {
			continue
		}
		for _, block := range item.Content {
			if block.Type == typeOutputText {
				return block.Text, nil
			}
		}
	}

	// Top-level output text
	if response.OutputText != "" {
		return response.OutputText, nil
	}

	// Any content with text
	for _, item := range response.Output {
		for _, block := range item.Content {
			if block.Text != "" {
				return block.Text, nil
			}
		}
	}

	// Chat completions shape
	if len(response.Choices) > 0 {
		return response.Choices[0].Message.Content, nil
	}

	return "", llm.ErrAPI.Withf("openai: no reply text in response for %s", model)
}

func translate(model string, err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return provider.FromStatus("openai", apiErr.StatusCode, err)
	}

	// Errors without a status code
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "invalid_api_key"), strings.Contains(message, "authentication"):
		return llm.ErrAuthentication.Wrapf(err, "openai: authentication failed for %s", model)
	case strings.Contains(message, "rate limit"):
		return llm.ErrAPI.Wrapf(err, "openai: rate limit exceeded for %s", model)
	}
	return provider.Translate("openai", err)
}
