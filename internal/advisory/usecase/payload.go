package usecase

import (
	"fmt"

	"risk-advisor/internal/model"
)

const (
	PlaceholderRisk      = "Not Available (User skipped risk section)"
	PlaceholderSentiment = "Not Available (User skipped sentiment section)"

	advisorPayloadFormat = "Generate a coherent final insight combining the user's risk profile and market sentiment. " +
		"You may call load_memory() if earlier data is needed.\n\n" +
		"--- PROVIDED DATA ---\n" +
		"RISK PROFILE:\n%s\n\n" +
		"MARKET SENTIMENT:\n%s\n"
)

// BuildAdvisorPayload renders the synthetic advisor message. Missing fields
// become placeholders; present ones are embedded verbatim.
func BuildAdvisorPayload(rec model.SummaryRecord) string {
	risk, ok := rec.Get(model.SummaryRisk)
	if !ok {
		risk = PlaceholderRisk
	}
	sentiment, ok := rec.Get(model.SummarySentiment)
	if !ok {
		sentiment = PlaceholderSentiment
	}
	return fmt.Sprintf(advisorPayloadFormat, risk, sentiment)
}
