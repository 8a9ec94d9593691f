// Package legend builds the grouped parameter labels and the vessel list
// shown beside a campaign icon.
package legend

import (
	"regexp"
	"strings"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/i18n"
)

// Side is the legend column. The vessel list goes on the right, the
// description readout on the left.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// ProductionParamID is drawn with the production pattern instead of a brush.
const ProductionParamID = "parametro-pp"

// Swatch is the color marker style of a label.
type Swatch int

const (
	SwatchBrush Swatch = iota
	SwatchProduction
)

// LabelHighlight is the highlight level of one label.
type LabelHighlight int

const (
	LabelNone LabelHighlight = iota
	LabelFamily
	LabelFull
)

// Class returns the label class for the level, empty for none.
func (h LabelHighlight) Class() string {
	switch h {
	case LabelFamily:
		return "family-highlighted"
	case LabelFull:
		return "highlighted"
	default:
		return ""
	}
}

// FamilyGroup is one family and the ordered parameter ids to list under it.
type FamilyGroup struct {
	FamilyID string
	ParamIDs []string
}

// Label is one parameter entry.
type Label struct {
	ParamID   string
	FamilyID  string
	Name      string
	Color     string
	Active    bool
	Swatch    Swatch
	Highlight LabelHighlight
}

// Production reports whether the label uses the production marker.
func (l Label) Production() bool { return l.Swatch == SwatchProduction }

// Classes returns the class attribute of the label.
func (l Label) Classes() string {
	classes := []string{"param-label"}
	if !l.Active {
		classes = append(classes, "inactive")
	}
	if c := l.Highlight.Class(); c != "" {
		classes = append(classes, c)
	}
	return strings.Join(classes, " ")
}

// Family is one rendered family block.
type Family struct {
	ID     string
	Name   string
	Labels []Label
}

// Ship is one vessel entry with its own visit-type badge.
type Ship struct {
	Code     string
	Name     string
	Color    string
	Badge    string
	Directed bool
}

// VesselSection lists the ships of a campaign.
type VesselSection struct {
	Title string
	Ships []Ship
}

// Legend is the content of one legend column.
type Legend struct {
	Side           Side
	Families       []Family
	Vessels        *VesselSection
	HasDescription bool
	// Description is the readout text, set by the interaction layer.
	Description string
}

// Build assembles the legend for one side. Families are emitted in the
// given order; parameter ids unknown to the registry are dropped and a
// family left with none is omitted entirely.
func Build(groups []FamilyGroup, c domain.Campaign, side Side, reg *domain.Registry, lang domain.Lang, tr *i18n.Translations) *Legend {
	l := &Legend{Side: side}

	for _, g := range groups {
		fam, ok := reg.Family(g.FamilyID)
		if !ok {
			continue
		}
		var labels []Label
		for _, id := range g.ParamIDs {
			p, ok := reg.Parameter(id)
			if !ok {
				continue
			}
			labels = append(labels, newLabel(p, c, lang))
		}
		if len(labels) == 0 {
			continue
		}
		l.Families = append(l.Families, Family{
			ID:     fam.ID,
			Name:   NormalizeFamilyName(fam.Name.In(lang), lang),
			Labels: labels,
		})
	}

	if side == SideRight && len(c.Ships) > 0 {
		l.Vessels = buildVessels(c, reg, tr)
	}
	if side == SideLeft {
		l.HasDescription = true
	}
	return l
}

func newLabel(p domain.ParameterConfig, c domain.Campaign, lang domain.Lang) Label {
	swatch := SwatchBrush
	if p.ID == ProductionParamID {
		swatch = SwatchProduction
	}
	return Label{
		ParamID:  p.ID,
		FamilyID: p.FamilyID,
		Name:     p.Name.In(lang),
		Color:    p.Color,
		Active:   c.Variables.Has(p.Key),
		Swatch:   swatch,
	}
}

func buildVessels(c domain.Campaign, reg *domain.Registry, tr *i18n.Translations) *VesselSection {
	sec := &VesselSection{Title: tr.ShipsTitle}
	for _, s := range c.Ships {
		v, ok := reg.Vessel(s.ShipCode)
		if !ok {
			continue
		}
		sec.Ships = append(sec.Ships, Ship{
			Code:     s.ShipCode,
			Name:     v.Name,
			Color:    v.Color,
			Badge:    tr.VisitTypeLabel(s.Type),
			Directed: s.Directed(),
		})
	}
	return sec
}

var (
	spanishPrefix = regexp.MustCompile(`(?i)^PROPIEDADES\s+`)
	englishWord   = regexp.MustCompile(`(?i)Properties`)
)

// NormalizeFamilyName strips the "properties" wording from a localized
// family name: the leading "PROPIEDADES " in Spanish, the first
// "Properties" in English.
func NormalizeFamilyName(name string, lang domain.Lang) string {
	if lang == domain.LangEN {
		if loc := englishWord.FindStringIndex(name); loc != nil {
			name = name[:loc[0]] + name[loc[1]:]
		}
		return strings.TrimSpace(name)
	}
	return spanishPrefix.ReplaceAllString(name, "")
}

// Label returns the label for paramID.
func (l *Legend) Label(paramID string) (*Label, bool) {
	for i := range l.Families {
		for j := range l.Families[i].Labels {
			if l.Families[i].Labels[j].ParamID == paramID {
				return &l.Families[i].Labels[j], true
			}
		}
	}
	return nil, false
}

// SetLabelHighlight sets the level of a label. It reports false when the
// legend has no such label.
func (l *Legend) SetLabelHighlight(paramID string, h LabelHighlight) bool {
	lb, ok := l.Label(paramID)
	if !ok {
		return false
	}
	lb.Highlight = h
	return true
}

// ClearHighlights resets every label.
func (l *Legend) ClearHighlights() {
	for i := range l.Families {
		for j := range l.Families[i].Labels {
			l.Families[i].Labels[j].Highlight = LabelNone
		}
	}
}

// HighlightState returns the class of every highlighted label.
func (l *Legend) HighlightState() map[string]string {
	out := make(map[string]string)
	for _, f := range l.Families {
		for _, lb := range f.Labels {
			if c := lb.Highlight.Class(); c != "" {
				out[lb.ParamID] = c
			}
		}
	}
	return out
}
