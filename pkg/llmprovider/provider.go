package llmprovider

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "gemini", "qwen")
	Name() string

	// Model returns the default model being used
	Model() string
}

// Message roles shared by every provider adapter.
const (
	RoleUser     = "user"
	RoleModel    = "model"
	RoleFunction = "function"
)

// Request represents a normalized LLM generation request
type Request struct {
	// Model overrides the provider default on providers that serve it (gemini).
	Model             string
	SystemInstruction *Message
	Messages          []Message
	Tools             []Tool
	// GoogleSearch asks the provider to ground the answer with web search.
	// Providers without built-in search ignore it.
	GoogleSearch bool
	Temperature  float64
	MaxTokens    int
}

// Message represents a conversation message
type Message struct {
	Role  string // "user", "model", "function"
	Parts []Part
}

// Text returns the first text part, or "".
func (m Message) Text() string {
	for _, p := range m.Parts {
		if p.Text != "" {
			return p.Text
		}
	}
	return ""
}

// FunctionCall returns the first function call part, or nil.
func (m Message) FunctionCall() *FunctionCall {
	for _, p := range m.Parts {
		if p.FunctionCall != nil {
			return p.FunctionCall
		}
	}
	return nil
}

// Part represents a message part (text or function call)
type Part struct {
	Text             string
	FunctionCall     *FunctionCall
	FunctionResponse *FunctionResponse
}

// Tool represents a function declaration
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON Schema
}

// FunctionCall represents a model's function call request
type FunctionCall struct {
	Name string
	Args map[string]interface{}
}

// FunctionResponse represents a function execution result
type FunctionResponse struct {
	Name     string
	Response interface{}
}

// Response represents a normalized LLM generation response
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
