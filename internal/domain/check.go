package domain

import "fmt"

// IssueKind names a class of dataset integrity problem.
type IssueKind string

const (
	IssueUnknownMonth    IssueKind = "unknown_month"
	IssueUnionMismatch   IssueKind = "union_mismatch"
	IssueLegacyShip      IssueKind = "legacy_ship"
	IssueShipOverflow    IssueKind = "ship_overflow"
	IssueUnknownShip     IssueKind = "unknown_ship"
	IssueUnknownVariable IssueKind = "unknown_variable"
	IssueDuplicateSlot   IssueKind = "duplicate_slot"
	IssueOutOfRange      IssueKind = "out_of_range"
)

// Issue is one integrity problem. None of them stop the viewer from
// rendering; they degrade the affected campaign.
type Issue struct {
	Kind   IssueKind
	Year   int
	Month  Month
	Detail string
}

func (i Issue) String() string {
	if i.Month == "" {
		return fmt.Sprintf("%s %d: %s", i.Kind, i.Year, i.Detail)
	}
	return fmt.Sprintf("%s %s: %s", i.Kind, CampaignKey(i.Year, i.Month), i.Detail)
}

// Issues returns the problems found while decoding followed by the
// cross-checks against the registry and metadata.
func (d *Dataset) Issues() []Issue {
	issues := append([]Issue(nil), d.decodeIssues...)
	seen := make(map[string]bool, len(d.Campaigns))
	lo, hi := d.Metadata.YearRange[0], d.Metadata.YearRange[1]

	for _, c := range d.Campaigns {
		if seen[c.Key()] {
			issues = append(issues, Issue{Kind: IssueDuplicateSlot, Year: c.Year, Month: c.Month, Detail: "slot appears more than once"})
		}
		seen[c.Key()] = true

		if c.Year < lo || c.Year > hi {
			issues = append(issues, Issue{Kind: IssueOutOfRange, Year: c.Year, Month: c.Month, Detail: fmt.Sprintf("outside %d-%d", lo, hi)})
		}

		if len(c.Ships) > MaxShipSlots {
			issues = append(issues, Issue{
				Kind:   IssueShipOverflow,
				Year:   c.Year,
				Month:  c.Month,
				Detail: fmt.Sprintf("%d ships, only %d drawn", len(c.Ships), MaxShipSlots),
			})
		}

		for _, code := range shipCodes(c) {
			if _, ok := d.Registry.Vessel(code); !ok {
				issues = append(issues, Issue{Kind: IssueUnknownShip, Year: c.Year, Month: c.Month, Detail: code})
			}
		}

		for _, key := range c.Variables.Keys() {
			if _, ok := d.Registry.ParameterByKey(key); !ok {
				issues = append(issues, Issue{Kind: IssueUnknownVariable, Year: c.Year, Month: c.Month, Detail: key})
			}
		}
	}
	return issues
}

func shipCodes(c Campaign) []string {
	seen := make(map[string]bool)
	var codes []string
	add := func(code string) {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	for _, s := range c.Ships {
		add(s.ShipCode)
	}
	for _, v := range c.Visits {
		if v.Ship != nil {
			add(v.Ship.ShipCode)
		}
	}
	return codes
}
