package anthropic

///////////////////////////////////////////////////////////////////////////////
// TYPES - Anthropic REST API wire format
//
// Reference: https://docs.anthropic.com/en/api/messages

// messagesRequest is the request body for POST /v1/messages
type messagesRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature *float64           `json:"temperature,omitempty"`
}

// anthropicMessage represents a single turn in a conversation
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the response body from POST /v1/messages
type messagesResponse struct {
	Id         string                  `json:"id"`
	Model      string                  `json:"model"`
	Type       string                  `json:"type"`
	Role       string                  `json:"role"`
	Content    []anthropicContentBlock `json:"content"`
	StopReason string                  `json:"stop_reason"`
	Usage      messagesUsage           `json:"usage"`
}

// anthropicContentBlock is one block of response content
type anthropicContentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Thinking string `json:"thinking,omitempty"`
}

// messagesUsage reports token counts for a messages request
type messagesUsage struct {
	InputTokens  uint `json:"input_tokens"`
	OutputTokens uint `json:"output_tokens"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	roleUser      = "user"
	roleAssistant = "assistant"
	blockTypeText = "text"
)

const (
	headerBeta   = "anthropic-beta"
	betaSonnet37 = "interleaved-thinking-2025-05-14,token-efficient-tools-2025-02-19"
	betaSonnet   = "max-tokens-3-5-sonnet-2024-07-15,token-efficient-tools-2025-02-19"
	beta37       = "interleaved-thinking-2025-05-14"
)
