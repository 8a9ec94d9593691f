package domain

import "strings"

// VisitType classifies how a ship (or a whole campaign) engaged with the station.
type VisitType int

const (
	VisitUntyped VisitType = iota
	VisitDirected
	VisitOpportunistic
	// VisitMixed only exists at campaign level, when directed and
	// opportunistic ships share the same month.
	VisitMixed
)

func (t VisitType) String() string {
	switch t {
	case VisitDirected:
		return "directed"
	case VisitOpportunistic:
		return "opportunistic"
	case VisitMixed:
		return "mixed"
	default:
		return "untyped"
	}
}

// ClassifyVisitType maps a free-text visit type to its classification.
// "propia"/"dirigida" win over "oportunista" when both appear.
func ClassifyVisitType(s string) VisitType {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "propia"), strings.Contains(lower, "dirigida"):
		return VisitDirected
	case strings.Contains(lower, "oportunista"):
		return VisitOpportunistic
	default:
		return VisitUntyped
	}
}

// ClassifyAggregate classifies a campaign-level type, which may be an
// underscore-joined composite of per-ship types.
func ClassifyAggregate(s string) VisitType {
	var directed, opportunistic bool
	for _, part := range strings.Split(s, "_") {
		switch ClassifyVisitType(part) {
		case VisitDirected:
			directed = true
		case VisitOpportunistic:
			opportunistic = true
		}
	}
	switch {
	case directed && opportunistic:
		return VisitMixed
	case directed:
		return VisitDirected
	case opportunistic:
		return VisitOpportunistic
	default:
		return VisitUntyped
	}
}
