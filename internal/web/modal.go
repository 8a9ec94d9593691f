package web

import (
	"fmt"
	"html/template"
	"net/url"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/i18n"
	"github.com/couchcryptid/epea-campaigns/internal/icon"
	"github.com/couchcryptid/epea-campaigns/internal/interaction"
	"github.com/couchcryptid/epea-campaigns/internal/legend"
	"github.com/couchcryptid/epea-campaigns/internal/loader"
)

const (
	modalIconID     = "modal-epea-svg"
	modalVisitClass = "modal-visit-svg"
)

// modal is the detail view of one campaign with its controller mounted.
type modal struct {
	req      request
	campaign domain.Campaign
	multi    bool
	icons    []*icon.Icon
	left     *legend.Legend
	right    *legend.Legend
	ctrl     *interaction.Controller
}

type modalView struct {
	Title string
	Year  int
	Month domain.Month
	Lang  domain.Lang
	T     *i18n.Translations
	Multi bool
	Icons []template.HTML
	Left  template.HTML
	Right template.HTML
}

// newModal renders the icons and legends of c. A month with several
// visits is shown visit by visit, one single-ship icon each.
func (h *Handler) newModal(req request, c domain.Campaign) *modal {
	st := req.state
	m := &modal{req: req, campaign: c, multi: len(c.Visits) > 1}

	if m.multi {
		for i, vc := range c.VisitCampaigns() {
			ic := h.renderIcon(st, vc, "modal")
			ic.SetID(fmt.Sprintf("%s-%d", modalIconID, i))
			ic.AddRootClass(modalVisitClass)
			m.icons = append(m.icons, ic)
		}
	} else {
		ic := h.renderIcon(st, c, "modal")
		ic.SetID(modalIconID)
		m.icons = append(m.icons, ic)
	}

	reg := st.Dataset.Registry
	m.left = legend.Build(st.Layout.Groups(legend.SideLeft), c, legend.SideLeft, reg, req.lang, req.tr)
	m.right = legend.Build(st.Layout.Groups(legend.SideRight), c, legend.SideRight, reg, req.lang, req.tr)

	m.ctrl = interaction.NewController(reg, req.lang, interaction.WithObserver(func(k interaction.Kind) {
		h.metrics.HighlightTransitions.WithLabelValues(string(k)).Inc()
	}))
	m.ctrl.Mount(m.icons, m.left, m.right)
	return m
}

// applyHover replays a hover given as query parameters: param and family
// for a legend label, ship for a vessel entry.
func (m *modal) applyHover(q url.Values) {
	if param := q.Get("param"); param != "" {
		m.ctrl.EnterParameter(param, q.Get("family"))
	}
	if ship := q.Get("ship"); ship != "" {
		m.ctrl.EnterVessel(ship)
	}
}

func (m *modal) view() (modalView, error) {
	tr := m.req.tr
	v := modalView{
		Title: fmt.Sprintf("%s %d", tr.MonthName(m.campaign.Month), m.campaign.Year),
		Year:  m.campaign.Year,
		Month: m.campaign.Month,
		Lang:  m.req.lang,
		T:     tr,
		Multi: m.multi,
	}
	for _, ic := range m.icons {
		v.Icons = append(v.Icons, template.HTML(ic.String())) //nolint:gosec // markup is produced by the icon renderer, not user input
	}

	var err error
	if v.Left, err = legend.Markup(m.left); err != nil {
		return modalView{}, fmt.Errorf("left legend: %w", err)
	}
	if v.Right, err = legend.Markup(m.right); err != nil {
		return modalView{}, fmt.Errorf("right legend: %w", err)
	}
	return v, nil
}

// renderIcon draws c and counts it under mode.
func (h *Handler) renderIcon(st *loader.State, c domain.Campaign, mode string) *icon.Icon {
	h.metrics.IconsRendered.WithLabelValues(mode).Inc()
	return icon.Render(st.Template, c, st.Dataset.Registry)
}
