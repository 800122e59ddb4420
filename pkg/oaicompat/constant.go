package oaicompat

import "time"

// DefaultTimeout is the default HTTP client timeout
const DefaultTimeout = 60 * time.Second

// Vendor presets for OpenAI-compatible chat completion APIs.
const (
	VendorQwen     = "qwen"
	VendorDeepSeek = "deepseek"

	QwenBaseURL      = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	QwenDefaultModel = "qwen-plus"

	DeepSeekBaseURL      = "https://api.deepseek.com/v1"
	DeepSeekDefaultModel = "deepseek-chat"
)
