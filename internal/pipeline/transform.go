package pipeline

import (
	"slices"
	"strings"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
)

const emptyType = "NA"

// Transform groups rows into one campaign per month of every year between
// the first and last year seen, in calendar order. Months without a visit
// become empty campaigns.
func Transform(rows []Row) ([]domain.Campaign, [2]int) {
	if len(rows) == 0 {
		return nil, [2]int{}
	}

	years := [2]int{rows[0].Year, rows[0].Year}
	visits := make(map[string][]domain.Visit)
	for _, r := range rows {
		years[0] = min(years[0], r.Year)
		years[1] = max(years[1], r.Year)
		if !r.IsVisit() {
			continue
		}
		key := domain.CampaignKey(r.Year, r.Month)
		visits[key] = append(visits[key], rowVisits(r)...)
	}

	campaigns := make([]domain.Campaign, 0, (years[1]-years[0]+1)*len(domain.Months))
	for y := years[0]; y <= years[1]; y++ {
		for _, m := range domain.Months {
			campaigns = append(campaigns, buildCampaign(y, m, visits[domain.CampaignKey(y, m)]))
		}
	}
	return campaigns, years
}

// rowVisits splits a row into one visit per ship. Ships are joined by "-"
// and typed by position from the "_"-joined visit type: a single type
// applies to every ship and extra ships take the last type.
func rowVisits(r Row) []domain.Visit {
	types := splitTrim(r.Type, "_")
	var out []domain.Visit
	for i, code := range splitTrim(r.Ships, "-") {
		t := ""
		switch {
		case len(types) == 0:
		case i < len(types):
			t = types[i]
		default:
			t = types[len(types)-1]
		}
		ship := domain.NewShipParticipation(code, t)
		out = append(out, domain.Visit{Ship: &ship, Variables: domain.NewVariableSet(r.Variables...)})
	}
	return out
}

func buildCampaign(year int, month domain.Month, visits []domain.Visit) domain.Campaign {
	if len(visits) == 0 {
		return domain.NewCampaign(year, month, emptyType, domain.VisitCount{}, nil, nil, nil)
	}

	ships := make([]domain.ShipParticipation, 0, len(visits))
	var types []string
	for _, v := range visits {
		ships = append(ships, *v.Ship)
		if !slices.Contains(types, v.Ship.RawType) {
			types = append(types, v.Ship.RawType)
		}
	}

	c := domain.NewCampaign(year, month, strings.Join(types, "_"), domain.KnownVisitCount(len(visits)), ships, nil, visits)
	// Same set as the visit union, listed in column order.
	c.Variables = domain.NewVariableSet(columnOrder(c.Variables)...)
	return c
}

func columnOrder(s domain.VariableSet) []string {
	out := make([]string, 0, s.Len())
	for _, v := range VariableColumns {
		if s.Has(v) {
			out = append(out, v)
		}
	}
	for _, v := range s.Keys() {
		if !slices.Contains(VariableColumns, v) {
			out = append(out, v)
		}
	}
	return out
}

func splitTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
