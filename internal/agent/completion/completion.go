// Package completion decides whether an agent reply ends its lane's conversation.
package completion

import (
	"strings"

	"risk-advisor/internal/model"
)

// Markers the agents emit only in their final structured answer.
const (
	MarkerRiskSummary    = "Risk Assessment Summary"
	MarkerAdvisorSummary = "ADVISOR_SUMMARY"
)

type Status int

const (
	Pending Status = iota
	Complete
)

func (s Status) String() string {
	if s == Complete {
		return "complete"
	}
	return "pending"
}

// Result is the typed outcome of one reply.
type Result struct {
	Status Status
	Text   string
}

func (r Result) IsComplete() bool {
	return r.Status == Complete
}

// Detector turns a raw reply into a Result.
type Detector interface {
	Detect(text string) Result
}

// MarkerDetector completes when the text contains Marker.
type MarkerDetector struct {
	Marker string
}

func (d MarkerDetector) Detect(text string) Result {
	if strings.Contains(text, d.Marker) {
		return Result{Status: Complete, Text: text}
	}
	return Result{Status: Pending, Text: text}
}

// AlwaysComplete treats every reply as terminal.
type AlwaysComplete struct{}

func (AlwaysComplete) Detect(text string) Result {
	return Result{Status: Complete, Text: text}
}

// ForLane returns the detector of lane. Unknown lanes never complete.
func ForLane(lane model.Lane) Detector {
	switch lane {
	case model.LaneRisk:
		return MarkerDetector{Marker: MarkerRiskSummary}
	case model.LaneSentiment:
		return AlwaysComplete{}
	case model.LaneAdvisor:
		return MarkerDetector{Marker: MarkerAdvisorSummary}
	default:
		return never{}
	}
}

// IsComplete reports whether text ends the lane's conversation.
func IsComplete(lane model.Lane, text string) bool {
	return ForLane(lane).Detect(text).IsComplete()
}

type never struct{}

func (never) Detect(text string) Result {
	return Result{Status: Pending, Text: text}
}
