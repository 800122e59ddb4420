package llmprovider

import (
	"context"
	"fmt"

	"risk-advisor/pkg/gemini"
	"risk-advisor/pkg/oaicompat"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		Model:             req.Model,
		SystemInstruction: convertToGeminiContent(req.SystemInstruction),
		Messages:          convertToGeminiContents(req.Messages),
		Tools:             convertToGeminiTools(req.Tools),
		GoogleSearch:      req.GoogleSearch,
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}

	model := resp.Model
	if model == "" {
		model = a.client.Model()
	}

	return &Response{
		Content:      convertFromGeminiContent(resp.Content),
		ProviderName: a.Name(),
		ModelName:    model,
		Usage:        geminiUsage(resp.Usage),
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// OpenAICompatAdapter adapts pkg/oaicompat (qwen, deepseek) to llmprovider.Provider.
// Request.Model and Request.GoogleSearch are Gemini-specific and ignored here.
type OpenAICompatAdapter struct {
	client oaicompat.IClient
}

// NewOpenAICompatAdapter creates a new OpenAI-compatible adapter
func NewOpenAICompatAdapter(client oaicompat.IClient) *OpenAICompatAdapter {
	return &OpenAICompatAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAICompatAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	compatReq := &oaicompat.Request{
		SystemInstruction: convertToCompatContent(req.SystemInstruction),
		Messages:          convertToCompatContents(req.Messages),
		Tools:             convertToCompatTools(req.Tools),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, compatReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Name(), err)
	}

	model := resp.Model
	if model == "" {
		model = a.client.Model()
	}

	return &Response{
		Content:      convertFromCompatContent(resp.Content),
		ProviderName: a.Name(),
		ModelName:    model,
		Usage:        compatUsage(resp.Usage),
	}, nil
}

// Name returns the vendor name
func (a *OpenAICompatAdapter) Name() string {
	return a.client.Vendor()
}

// Model returns model name
func (a *OpenAICompatAdapter) Model() string {
	return a.client.Model()
}

func geminiUsage(u *gemini.Usage) *Usage {
	if u == nil {
		return &Usage{}
	}
	return &Usage{InputTokens: u.InputTokens, OutputTokens: u.OutputTokens, TotalTokens: u.TotalTokens}
}

func compatUsage(u *oaicompat.Usage) *Usage {
	if u == nil {
		return &Usage{}
	}
	return &Usage{InputTokens: u.InputTokens, OutputTokens: u.OutputTokens, TotalTokens: u.TotalTokens}
}

// Conversion helpers for Gemini
func convertToGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &gemini.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &gemini.FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return &gemini.Content{Role: msg.Role, Parts: parts}
}

func convertToGeminiContents(msgs []Message) []gemini.Content {
	contents := make([]gemini.Content, len(msgs))
	for i := range msgs {
		contents[i] = *convertToGeminiContent(&msgs[i])
	}
	return contents
}

func convertToGeminiTools(tools []Tool) []gemini.Tool {
	geminiTools := make([]gemini.Tool, len(tools))
	for i, t := range tools {
		geminiTools[i] = gemini.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return geminiTools
}

func convertFromGeminiContent(content gemini.Content) Message {
	parts := make([]Part, len(content.Parts))
	for i, p := range content.Parts {
		parts[i] = Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return Message{Role: RoleModel, Parts: parts}
}

// Conversion helpers for OpenAI-compatible vendors
func convertToCompatContent(msg *Message) *oaicompat.Content {
	if msg == nil {
		return nil
	}
	parts := make([]oaicompat.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = oaicompat.Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &oaicompat.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &oaicompat.FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return &oaicompat.Content{Role: msg.Role, Parts: parts}
}

func convertToCompatContents(msgs []Message) []oaicompat.Content {
	contents := make([]oaicompat.Content, len(msgs))
	for i := range msgs {
		contents[i] = *convertToCompatContent(&msgs[i])
	}
	return contents
}

func convertToCompatTools(tools []Tool) []oaicompat.Tool {
	compatTools := make([]oaicompat.Tool, len(tools))
	for i, t := range tools {
		compatTools[i] = oaicompat.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return compatTools
}

func convertFromCompatContent(content oaicompat.Content) Message {
	parts := make([]Part, len(content.Parts))
	for i, p := range content.Parts {
		parts[i] = Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
	}
	return Message{Role: RoleModel, Parts: parts}
}
