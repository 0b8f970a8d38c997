package openai

///////////////////////////////////////////////////////////////////////////////
// TYPES - Responses API wire format
//
// Reference: https://platform.openai.com/docs/api-reference/responses/create

// responsesRequest is the request body for POST /responses
type responsesRequest struct {
	Model           string         `json:"model"`
	Input           []inputMessage `json:"input"`
	MaxOutputTokens int            `json:"max_output_tokens,omitempty"`
	Temperature     *float64       `json:"temperature,omitempty"`
	Reasoning       *reasoning     `json:"reasoning,omitempty"`
}

type inputMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type reasoning struct {
	Effort string `json:"effort"`
}

// responsesResponse is the response body from POST /responses. The chat
// completions shape is accepted as a fallback.
type responsesResponse struct {
	Id         string       `json:"id"`
	Object     string       `json:"object"`
	Status     string       `json:"status"`
	Output     []outputItem `json:"output"`
	OutputText string       `json:"output_text,omitempty"`
	Choices    []choice     `json:"choices,omitempty"`
}

type outputItem struct {
	Type    string         `json:"type"`
	Role    string         `json:"role,omitempty"`
	Content []contentBlock `json:"content,omitempty"`
}

type choice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	pathResponses = "responses"

	roleDeveloper = "developer"
	roleAssistant = "assistant"

	typeMessage    = "message"
	typeInputText  = "input_text"
	typeOutputText = "output_text"

	effortMinimal = "minimal"
	effortMedium  = "medium"
)
