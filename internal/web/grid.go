package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/i18n"
	"github.com/couchcryptid/epea-campaigns/internal/loader"
)

// gridIconClass marks icons drawn in grid cells.
const gridIconClass = "epea-circle"

type pageView struct {
	Lang        domain.Lang
	T           *i18n.Translations
	Subtitle    string
	Error       string
	Languages   []languageLink
	MonthLabels []string
	Rows        []gridRow
	LastUpdated string
}

type languageLink struct {
	Code   domain.Lang
	URL    string
	Active bool
}

type gridRow struct {
	Year  int
	Cells []gridCell
}

type gridCell struct {
	Year     int
	Month    domain.Month
	HasData  bool
	Icon     template.HTML
	Tooltip  string
	ModalURL string
}

func (h *Handler) handleGrid(w http.ResponseWriter, r *http.Request, req request) {
	ds := req.state.Dataset
	view := pageView{
		Lang:        req.lang,
		T:           req.tr,
		Languages:   languageLinks(r, req.lang),
		MonthLabels: req.tr.MonthLabels(),
		LastUpdated: ds.Metadata.LastUpdated,
	}

	years := ds.Years()
	if len(years) > 0 {
		view.Subtitle = req.tr.Subtitle(len(years))
	}
	for _, year := range years {
		row := gridRow{Year: year, Cells: make([]gridCell, 0, len(domain.Months))}
		for _, month := range domain.Months {
			row.Cells = append(row.Cells, h.gridCell(req, year, month))
		}
		view.Rows = append(view.Rows, row)
	}

	h.renderPage(w, http.StatusOK, view)
}

func (h *Handler) gridCell(req request, year int, month domain.Month) gridCell {
	cell := gridCell{Year: year, Month: month}
	c, ok := req.state.Dataset.Campaign(year, month)
	if !ok || !c.HasData() {
		return cell
	}

	cell.HasData = true
	cell.ModalURL = fmt.Sprintf("/campaigns/%d/%s", year, month)
	cell.Tooltip = tooltip(req.tr, c)
	cell.Icon = template.HTML(h.gridIcon(req.state, c)) //nolint:gosec // markup is produced by the icon renderer, not user input
	return cell
}

// gridIcon returns the cached grid markup of c.
func (h *Handler) gridIcon(st *loader.State, c domain.Campaign) string {
	return h.icons.getOrRender(c, func() string {
		ic := h.renderIcon(st, c, "grid")
		ic.AddRootClass(gridIconClass)
		return ic.String()
	})
}

// tooltip summarizes a campaign as "Año: 2020 · Campaña(s): 2 · Tipo: Dirigida".
// The type part is left out for untyped campaigns.
func tooltip(tr *i18n.Translations, c domain.Campaign) string {
	parts := []string{
		fmt.Sprintf("%s: %d", tr.TooltipYear, c.Year),
		fmt.Sprintf("%s: %d", tr.TooltipCampaigns, campaignCount(c)),
	}
	if label := tr.VisitTypeLabel(c.Type); label != "" {
		parts = append(parts, fmt.Sprintf("%s: %s", tr.TooltipType, label))
	}
	return strings.Join(parts, " · ")
}

// campaignCount prefers the recorded visit count, then the visit list, then
// the ship list.
func campaignCount(c domain.Campaign) int {
	switch {
	case c.VisitCount.Known():
		return c.VisitCount.Value()
	case len(c.Visits) > 0:
		return len(c.Visits)
	default:
		return max(1, len(c.Ships))
	}
}

func languageLinks(r *http.Request, current domain.Lang) []languageLink {
	langs := i18n.Supported()
	links := make([]languageLink, 0, len(langs))
	for _, lang := range langs {
		links = append(links, languageLink{
			Code:   lang,
			URL:    i18n.LanguageURL(r.URL.Path, r.URL.RawQuery, lang),
			Active: lang == current,
		})
	}
	return links
}

func (h *Handler) errorPage(r *http.Request, lang domain.Lang, tr *i18n.Translations) pageView {
	return pageView{
		Lang:      lang,
		T:         tr,
		Error:     tr.LoadError,
		Languages: languageLinks(r, lang),
	}
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, view pageView) {
	var b strings.Builder
	if err := pageTemplate.Execute(&b, view); err != nil {
		h.logger.Error("render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(b.String()))
}
