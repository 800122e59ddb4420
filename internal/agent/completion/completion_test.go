package completion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"risk-advisor/internal/model"
)

func TestIsComplete(t *testing.T) {
	texts := []string{
		"",
		"Please type 'Ready' when you want to begin.",
		"1) The market suddenly drops 8% in a day.",
		"<b>Risk Assessment Summary</b>\n<b>Your Stated Style:</b> Moderate",
		"risk assessment summary",
		"<b>ADVISOR_SUMMARY</b>:\n<b>Your Behavioral Tendencies</b>",
		"ADVISOR_SUMMARY and Risk Assessment Summary",
		"None",
	}

	for _, text := range texts {
		assert.Equal(t, strings.Contains(text, "Risk Assessment Summary"), IsComplete(model.LaneRisk, text), "risk %q", text)
		assert.Equal(t, strings.Contains(text, "ADVISOR_SUMMARY"), IsComplete(model.LaneAdvisor, text), "advisor %q", text)
		assert.True(t, IsComplete(model.LaneSentiment, text), "sentiment %q", text)
		assert.False(t, IsComplete(model.Lane("other"), text))
	}
}

func TestDetect_CarriesText(t *testing.T) {
	res := ForLane(model.LaneRisk).Detect("Question 2")
	assert.Equal(t, Pending, res.Status)
	assert.Equal(t, "Question 2", res.Text)
	assert.Equal(t, "pending", res.Status.String())

	res = MarkerDetector{Marker: "DONE"}.Detect("all DONE")
	assert.True(t, res.IsComplete())
	assert.Equal(t, "complete", res.Status.String())
}
