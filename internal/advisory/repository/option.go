package repository

import "risk-advisor/internal/model"

// SetSummaryOptions holds parameters for writing one summary field.
type SetSummaryOptions struct {
	SessionID string
	Field     model.SummaryField
	Text      string
}
