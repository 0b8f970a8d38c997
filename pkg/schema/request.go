package schema

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Request carries everything needed for one query. It is created per call
// and discarded once the adapter returns.
type Request struct {
	Text         string          `json:"text"`
	SystemPrompt string          `json:"system,omitempty"`
	Temperature  float64         `json:"temperature"`
	MaxTokens    int             `json:"max_tokens"`
	History      Conversation    `json:"history,omitempty"`
	Model        string          `json:"model"`
	Definition   ModelDefinition `json:"definition"`
	Credentials  Credentials     `json:"-"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Request) String() string {
	return Stringify(r)
}
