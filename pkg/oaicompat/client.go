package oaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func newClientImpl(cfg Config) *clientImpl {
	return &clientImpl{
		vendor:     cfg.Vendor,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a chat completion request
func (c *clientImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(c.transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal request: %w", c.vendor, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", c.vendor, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: API call failed: %w", c.vendor, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", c.vendor, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("%s: API error %d: %s", c.vendor, resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("%s: API error %d: %s", c.vendor, resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", c.vendor, err)
	}

	return c.transformResponse(&chatResp), nil
}

// Vendor returns the vendor preset name
func (c *clientImpl) Vendor() string {
	return c.vendor
}

// Model returns the model being used
func (c *clientImpl) Model() string {
	return c.model
}

func (c *clientImpl) transformRequest(req *Request) *chatRequest {
	chatReq := &chatRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]chatMessage, 0, len(req.Messages)+1),
	}

	if req.SystemInstruction != nil {
		systemMsg := transformMessage(req.SystemInstruction)
		systemMsg.Role = "system"
		chatReq.Messages = append(chatReq.Messages, systemMsg)
	}

	for i := range req.Messages {
		chatReq.Messages = append(chatReq.Messages, transformMessage(&req.Messages[i]))
	}

	if len(req.Tools) > 0 {
		chatReq.Tools = make([]chatTool, len(req.Tools))
		for i, tool := range req.Tools {
			chatReq.Tools[i] = chatTool{
				Type: "function",
				Function: chatFunctionDecl{
					Name:        tool.Name,
					Description: tool.Description,
					Parameters:  tool.Parameters,
				},
			}
		}
	}

	return chatReq
}

func transformMessage(msg *Content) chatMessage {
	chatMsg := chatMessage{Role: normalizeRole(msg.Role)}

	for _, part := range msg.Parts {
		if part.Text != "" {
			if chatMsg.Content != "" {
				chatMsg.Content += "\n"
			}
			chatMsg.Content += part.Text
		}

		if part.FunctionCall != nil {
			argsJSON, _ := json.Marshal(part.FunctionCall.Args)
			chatMsg.ToolCalls = append(chatMsg.ToolCalls, chatToolCall{
				ID:   "call_" + part.FunctionCall.Name,
				Type: "function",
				Function: chatFunctionCall{
					Name:      part.FunctionCall.Name,
					Arguments: string(argsJSON),
				},
			})
		}

		if part.FunctionResponse != nil {
			chatMsg.Role = "tool"
			chatMsg.Name = part.FunctionResponse.Name
			chatMsg.ToolCallID = "call_" + part.FunctionResponse.Name
			responseJSON, _ := json.Marshal(part.FunctionResponse.Response)
			chatMsg.Content = string(responseJSON)
		}
	}

	return chatMsg
}

// normalizeRole maps Gemini-style roles onto chat completion roles.
func normalizeRole(role string) string {
	switch role {
	case "model", "assistant":
		return "assistant"
	case "system":
		return "system"
	default:
		return "user"
	}
}

func (c *clientImpl) transformResponse(resp *chatResponse) *Response {
	usage := &Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}

	if len(resp.Choices) == 0 {
		return &Response{Content: Content{Role: "assistant"}, Model: resp.Model, Usage: usage}
	}

	choice := resp.Choices[0]
	message := Content{
		Role:  "assistant",
		Parts: make([]Part, 0, 1+len(choice.Message.ToolCalls)),
	}

	if choice.Message.Content != "" {
		message.Parts = append(message.Parts, Part{Text: choice.Message.Content})
	}

	for _, toolCall := range choice.Message.ToolCalls {
		if toolCall.Type != "function" {
			continue
		}
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
			args = make(map[string]interface{})
		}
		message.Parts = append(message.Parts, Part{
			FunctionCall: &FunctionCall{
				Name: toolCall.Function.Name,
				Args: args,
			},
		})
	}

	return &Response{
		Content: message,
		Model:   resp.Model,
		Usage:   usage,
	}
}
