package http

import (
	"time"

	"risk-advisor/internal/advisory"
	"risk-advisor/internal/model"
	"risk-advisor/pkg/response"
)

// --- Request DTOs ---

type chatReq struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id" binding:"required"`
}

func (r chatReq) toInput() advisory.ChatInput {
	return advisory.ChatInput{
		SessionID: r.SessionID,
		Message:   r.Message,
	}
}

// --- Response DTOs ---

// chatResp is returned bare, without the response envelope, so chat pages
// can read it directly.
type chatResp struct {
	Response   string `json:"response"`
	IsComplete bool   `json:"is_complete"`
}

func (h *handler) newChatResp(out advisory.ChatOutput) chatResp {
	return chatResp{
		Response:   out.Response,
		IsComplete: out.IsComplete,
	}
}

type summaryResp struct {
	SessionID        string             `json:"session_id"`
	RiskSummary      *string            `json:"risk_summary"`
	SentimentSummary *string            `json:"sentiment_summary"`
	UpdatedAt        *response.DateTime `json:"updated_at,omitempty"`
}

func (h *handler) newSummaryResp(out advisory.SummaryOutput) summaryResp {
	resp := summaryResp{SessionID: out.Record.SessionID}
	if v, ok := out.Record.Get(model.SummaryRisk); ok {
		resp.RiskSummary = &v
	}
	if v, ok := out.Record.Get(model.SummarySentiment); ok {
		resp.SentimentSummary = &v
	}
	if !out.Record.UpdatedAt.IsZero() {
		at := response.DateTime(out.Record.UpdatedAt.In(time.UTC))
		resp.UpdatedAt = &at
	}
	return resp
}

// --- Page data ---

type chatPage struct {
	Title       string
	Heading     string
	Intro       string
	Endpoint    string
	Placeholder string
	AutoStart   string
}

var (
	riskPage = chatPage{
		Title:       "Risk Assessment",
		Heading:     "Risk Profile",
		Intro:       "Answer five short questions to find your investment risk profile.",
		Endpoint:    "/risk",
		Placeholder: "Type Ready, or your answer (A, B, C or D)",
	}
	sentimentPage = chatPage{
		Title:       "Market Sentiment",
		Heading:     "Market Sentiment",
		Intro:       "Name an asset, for example gold, bitcoin or the S&P 500.",
		Endpoint:    "/sentiment",
		Placeholder: "Asset name",
	}
	advisorPage = chatPage{
		Title:       "Advisor",
		Heading:     "Final Insight",
		Intro:       "Combines your risk profile and the market sentiment into one recommendation.",
		Endpoint:    "/advisor",
		Placeholder: "Press send to generate the insight",
		AutoStart:   "Generate",
	}
)
