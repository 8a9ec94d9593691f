package domain

import "fmt"

// MaxShipSlots is the number of eye slots on the icon glyph.
const MaxShipSlots = 3

// ShipParticipation is one vessel taking part in a campaign, typed on its own.
type ShipParticipation struct {
	ShipCode string
	RawType  string
	Type     VisitType
}

// NewShipParticipation classifies rawType once at construction.
func NewShipParticipation(code, rawType string) ShipParticipation {
	return ShipParticipation{ShipCode: code, RawType: rawType, Type: ClassifyVisitType(rawType)}
}

// Directed reports whether the ship came to the station on purpose.
func (s ShipParticipation) Directed() bool { return s.Type == VisitDirected }

// Visit is one physically distinct ship visit within a month.
type Visit struct {
	Ship      *ShipParticipation // nil only for "NA" visits
	Variables VariableSet
}

// VisitCount is the number of visits in a campaign. The zero value is unknown.
type VisitCount struct {
	n     int
	known bool
}

// KnownVisitCount returns a count of n visits.
func KnownVisitCount(n int) VisitCount { return VisitCount{n: n, known: true} }

// Known reports whether the count was recorded.
func (c VisitCount) Known() bool { return c.known }

// Value returns the count, or 0 when unknown.
func (c VisitCount) Value() int { return c.n }

// Campaign is one year+month slot. Instances are immutable after construction.
type Campaign struct {
	Year       int
	Month      Month
	VisitCount VisitCount
	RawType    string
	Type       VisitType
	Ships      []ShipParticipation
	Variables  VariableSet
	Visits     []Visit
}

// NewCampaign builds a campaign. When visits are given, the active variables
// are the union of the visit variables and the variables argument is ignored.
func NewCampaign(year int, month Month, rawType string, count VisitCount, ships []ShipParticipation, variables []string, visits []Visit) Campaign {
	c := Campaign{
		Year:       year,
		Month:      month,
		VisitCount: count,
		RawType:    rawType,
		Ships:      ships,
		Visits:     visits,
	}

	if len(visits) > 0 {
		for _, v := range visits {
			c.Variables = c.Variables.Union(v.Variables)
		}
	} else {
		c.Variables = NewVariableSet(variables...)
	}

	c.Type = ClassifyAggregate(rawType)
	if c.Type == VisitUntyped {
		c.Type = aggregateShipTypes(ships)
	}
	return c
}

func aggregateShipTypes(ships []ShipParticipation) VisitType {
	var directed, opportunistic bool
	for _, s := range ships {
		switch s.Type {
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

// Key identifies the campaign slot, e.g. "2020-ene".
func (c Campaign) Key() string { return CampaignKey(c.Year, c.Month) }

// CampaignKey formats a year+month slot identifier.
func CampaignKey(year int, month Month) string { return fmt.Sprintf("%d-%s", year, month) }

// HasData reports whether any variable was collected.
func (c Campaign) HasData() bool { return c.Variables.Len() > 0 }

// SlotShips returns the ships drawn on the glyph, at most MaxShipSlots.
func (c Campaign) SlotShips() []ShipParticipation {
	if len(c.Ships) > MaxShipSlots {
		return c.Ships[:MaxShipSlots]
	}
	return c.Ships
}

// VisitCampaigns derives one single-ship campaign per visit, used when a
// month with several visits is displayed visit by visit.
func (c Campaign) VisitCampaigns() []Campaign {
	out := make([]Campaign, 0, len(c.Visits))
	for _, v := range c.Visits {
		rawType := "NA"
		var ships []ShipParticipation
		if v.Ship != nil {
			rawType = v.Ship.RawType
			ships = []ShipParticipation{*v.Ship}
		}
		out = append(out, NewCampaign(c.Year, c.Month, rawType, KnownVisitCount(1), ships, v.Variables.Keys(), nil))
	}
	return out
}
