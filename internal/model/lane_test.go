package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaneKey(t *testing.T) {
	assert.Equal(t, "s1", LaneRisk.Key("s1"))
	assert.Equal(t, "s1_sentiment", LaneSentiment.Key("s1"))
	assert.Equal(t, "s1_advisor", LaneAdvisor.Key("s1"))

	keys := map[string]bool{}
	for _, l := range Lanes {
		keys[l.Key("s1")] = true
	}
	assert.Len(t, keys, len(Lanes))

	assert.Panics(t, func() { Lane("other").Key("s1") })
	assert.False(t, Lane("other").Valid())
}

func TestSummaryRecordClone(t *testing.T) {
	r := SummaryRecord{SessionID: "s1", Fields: map[SummaryField]string{SummaryRisk: "low"}}
	c := r.Clone()
	c.Fields[SummaryRisk] = "high"

	text, ok := r.Get(SummaryRisk)
	assert.True(t, ok)
	assert.Equal(t, "low", text)

	_, ok = r.Get(SummarySentiment)
	assert.False(t, ok)
}
