package advisory

import "risk-advisor/internal/model"

// --- UseCase Inputs ---

type ChatInput struct {
	SessionID string
	Message   string
}

// --- UseCase Outputs ---

type ChatOutput struct {
	Response   string
	IsComplete bool
}

type SummaryOutput struct {
	Record model.SummaryRecord
}
