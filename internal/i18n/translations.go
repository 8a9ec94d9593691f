// Package i18n holds the static display strings of the viewer and resolves
// the display language of a request.
package i18n

import (
	"fmt"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
)

// Translations is the string table for one display language.
type Translations struct {
	Lang              domain.Lang
	HeaderTitle       string
	HeaderSubtitle    string
	Coordinates       string
	ShipsTitle        string
	StudiedProperties string
	NotVisited        string
	LoadError         string

	Directed      string
	Opportunistic string
	Mixed         string

	TooltipYear      string
	TooltipCampaigns string
	TooltipType      string

	subtitle   string
	months     [12]string
	monthNames [12]string
}

var spanish = &Translations{
	Lang:              domain.LangES,
	HeaderTitle:       "Estación Permanente de Estudios Ambientales",
	HeaderSubtitle:    "Estación Permanente de Estudios Ambientales",
	Coordinates:       "(EPEA, 38°28′ S - 57°41′ O)",
	ShipsTitle:        "BUQUES DE INVESTIGACIÓN",
	StudiedProperties: "PROPIEDADES ESTUDIADAS",
	NotVisited:        "No visitado",
	LoadError:         "Error cargando datos.",
	Directed:          "Dirigida",
	Opportunistic:     "Oportunista",
	Mixed:             "Dirigida + Oportunista",
	TooltipYear:       "Año",
	TooltipCampaigns:  "Campaña(s)",
	TooltipType:       "Tipo",
	subtitle:          "Este recorrido brinda contexto sobre las visitas y la información recolectada durante %d años a una de las series temporales ecológicas marinas más longevas del Atlántico Sudoccidental.",
	months:            [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
	monthNames:        [12]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"},
}

var english = &Translations{
	Lang:              domain.LangEN,
	HeaderTitle:       "Estación Permanente de Estudios Ambientales",
	HeaderSubtitle:    "Permanent Environmental Studies Station",
	Coordinates:       "(EPEA, 38°28′ S - 57°41′ W)",
	ShipsTitle:        "RESEARCH VESSELS",
	StudiedProperties: "STUDIED PROPERTIES",
	NotVisited:        "Not visited",
	LoadError:         "Error loading data.",
	Directed:          "Directed",
	Opportunistic:     "Opportunistic",
	Mixed:             "Directed + Opportunistic",
	TooltipYear:       "Year",
	TooltipCampaigns:  "Campaign(s)",
	TooltipType:       "Type",
	subtitle:          "This visualization provides insight into the visits and information gathered over %d years to one of the longest-running marine ecological time series in the Southwestern Atlantic.",
	months:            [12]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"},
	monthNames:        [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
}

// For returns the table for lang. Unsupported languages get Spanish.
func For(lang domain.Lang) *Translations {
	if lang == domain.LangEN {
		return english
	}
	return spanish
}

// Subtitle returns the page subtitle for a time series spanning years.
func (t *Translations) Subtitle(years int) string {
	return fmt.Sprintf(t.subtitle, years)
}

// MonthLabels returns the short grid header labels in calendar order.
func (t *Translations) MonthLabels() []string {
	return t.months[:]
}

// MonthLabel returns the short label of a canonical month key, or the key
// itself when it is not one.
func (t *Translations) MonthLabel(m domain.Month) string {
	if i := m.Index(); i >= 0 {
		return t.months[i]
	}
	return string(m)
}

// MonthName returns the full name of a canonical month key.
func (t *Translations) MonthName(m domain.Month) string {
	if i := m.Index(); i >= 0 {
		return t.monthNames[i]
	}
	return string(m)
}

// VisitTypeLabel returns the badge text for a classification. Untyped
// visits have no badge.
func (t *Translations) VisitTypeLabel(v domain.VisitType) string {
	switch v {
	case domain.VisitDirected:
		return t.Directed
	case domain.VisitOpportunistic:
		return t.Opportunistic
	case domain.VisitMixed:
		return t.Mixed
	default:
		return ""
	}
}
