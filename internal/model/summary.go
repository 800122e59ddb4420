package model

import "time"

// SummaryField names a completed lane output cached per base session.
type SummaryField string

const (
	SummaryRisk      SummaryField = "risk_summary"
	SummarySentiment SummaryField = "sentiment_summary"
)

// SummaryRecord holds the completed outputs of one base session.
type SummaryRecord struct {
	SessionID string
	Fields    map[SummaryField]string
	UpdatedAt time.Time
}

// Get returns the field text and whether it was ever written.
func (r SummaryRecord) Get(field SummaryField) (string, bool) {
	text, ok := r.Fields[field]
	return text, ok
}

// Clone returns a copy that shares no map with r.
func (r SummaryRecord) Clone() SummaryRecord {
	out := r
	out.Fields = make(map[SummaryField]string, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}
