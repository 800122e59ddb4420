package model

import "fmt"

// Lane is one isolated conversation thread of a base session.
type Lane string

const (
	LaneRisk      Lane = "risk"
	LaneSentiment Lane = "sentiment"
	LaneAdvisor   Lane = "advisor"
)

// Lanes lists every lane in flow order.
var Lanes = []Lane{LaneRisk, LaneSentiment, LaneAdvisor}

// Key derives the session key of the lane for baseID.
// The risk lane uses the base id unchanged.
func (l Lane) Key(baseID string) string {
	switch l {
	case LaneRisk:
		return baseID
	case LaneSentiment:
		return baseID + "_sentiment"
	case LaneAdvisor:
		return baseID + "_advisor"
	default:
		panic(fmt.Sprintf("model: unknown lane %q", string(l)))
	}
}

func (l Lane) Valid() bool {
	switch l {
	case LaneRisk, LaneSentiment, LaneAdvisor:
		return true
	}
	return false
}
