package agent

import (
	"time"

	"risk-advisor/config"
	"risk-advisor/internal/model"
)

// Definition describes one hosted agent.
type Definition struct {
	Name        string
	Description string
	Instruction string
	// Model overrides the provider default model.
	Model string
	// Tools lists function tools by registry name.
	Tools []string
	// GoogleSearch enables provider-side search grounding.
	GoogleSearch bool
	// Context is appended to Instruction on every turn when set.
	Context func(now time.Time) string
}

// SystemInstruction renders the instruction for a turn starting at now.
func (d Definition) SystemInstruction(now time.Time) string {
	if d.Context == nil {
		return d.Instruction
	}
	return d.Instruction + d.Context(now)
}

const ToolLoadMemory = "load_memory"

// RiskAssessor asks a short behavioral questionnaire.
func RiskAssessor(modelName string) Definition {
	return Definition{
		Name:        "risk_assessor",
		Description: "Asks up to 15 questions to measure the user's investing risk understanding and appetite.",
		Instruction: RiskAssessorInstruction,
		Model:       modelName,
		Tools:       []string{ToolLoadMemory},
	}
}

// SentimentAssessor summarizes recent news sentiment for one asset.
func SentimentAssessor(modelName string) Definition {
	return Definition{
		Name:         "market_state_sentiment_assessor",
		Description:  "Analyzes recent market sentiment for a specific asset using reputable news sources.",
		Instruction:  SentimentAssessorInstruction,
		Model:        modelName,
		GoogleSearch: true,
		Context:      dateContext,
	}
}

// Advisor combines the risk profile and market sentiment.
func Advisor(modelName string) Definition {
	return Definition{
		Name:        "advisor_agent",
		Description: "Combines behavioral risk profile and market sentiment into a structured, non-financial psychological insight.",
		Instruction: AdvisorInstruction,
		Model:       modelName,
		Tools:       []string{ToolLoadMemory},
	}
}

// Definitions returns the agent of every lane.
func Definitions(cfg config.AgentConfig) map[model.Lane]Definition {
	return map[model.Lane]Definition{
		model.LaneRisk:      RiskAssessor(cfg.RiskModel),
		model.LaneSentiment: SentimentAssessor(cfg.SentimentModel),
		model.LaneAdvisor:   Advisor(cfg.AdvisorModel),
	}
}
