// Package web serves the campaign grid, the campaign modal, standalone
// icons and the highlight endpoint used by the page script.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/i18n"
	"github.com/couchcryptid/epea-campaigns/internal/loader"
	"github.com/couchcryptid/epea-campaigns/internal/observability"
)

var (
	//go:embed templates/*.html
	templateFS embed.FS

	//go:embed static
	staticFS embed.FS

	pageTemplate  = template.Must(template.ParseFS(templateFS, "templates/page.html"))
	modalTemplate = template.Must(template.ParseFS(templateFS, "templates/modal.html"))
)

var errBadSlot = errors.New("bad campaign slot")

// StateSource provides the loaded application state. loader.Holder
// satisfies it.
type StateSource interface {
	State() (*loader.State, error)
}

// Handler serves the viewer pages.
type Handler struct {
	states      StateSource
	icons       *iconCache
	metrics     *observability.Metrics
	logger      *slog.Logger
	defaultLang domain.Lang
	mux         *http.ServeMux

	mu        sync.Mutex
	cachedFor *loader.State
}

// request carries what every page handler needs after the common checks.
type request struct {
	state *loader.State
	lang  domain.Lang
	tr    *i18n.Translations
}

type pageFunc func(w http.ResponseWriter, r *http.Request, req request)

// NewHandler builds the page router.
func NewHandler(states StateSource, cacheSize int, defaultLang domain.Lang, metrics *observability.Metrics, logger *slog.Logger) *Handler {
	h := &Handler{
		states:      states,
		icons:       newIconCache(cacheSize, metrics),
		metrics:     metrics,
		logger:      logger,
		defaultLang: defaultLang,
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded directory is always present
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", h.route("grid", h.handleGrid))
	mux.Handle("GET /campaigns/{year}/{month}", h.route("campaign", h.handleCampaign))
	mux.Handle("GET /campaigns/{year}/{month}/highlight", h.route("highlight", h.handleHighlight))
	mux.Handle("GET /icons/{year}/{month}", h.route("icon", h.handleIcon))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	h.mux = mux
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// route wraps a page handler with request counting, language resolution
// and the load-error state.
func (h *Handler) route(name string, fn pageFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			h.metrics.HTTPRequests.WithLabelValues(name, strconv.Itoa(rec.status)).Inc()
		}()

		lang, persist := i18n.Resolve(r, h.defaultLang)
		if persist {
			i18n.SetLanguageCookie(rec, lang)
		}
		tr := i18n.For(lang)

		st, err := h.states.State()
		if err != nil || st == nil {
			h.logger.Debug("page requested without loaded state", "route", name, "error", err)
			if name == "grid" {
				h.renderPage(rec, http.StatusServiceUnavailable, h.errorPage(r, lang, tr))
				return
			}
			http.Error(rec, tr.LoadError, http.StatusServiceUnavailable)
			return
		}
		h.syncCache(st)

		fn(rec, r, request{state: st, lang: lang, tr: tr})
	})
}

// syncCache drops cached icons rendered from a previous state.
func (h *Handler) syncCache(st *loader.State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cachedFor != st {
		h.icons.reset()
		h.cachedFor = st
	}
}

func (h *Handler) handleCampaign(w http.ResponseWriter, r *http.Request, req request) {
	c, ok := h.campaign(w, r, req)
	if !ok {
		return
	}

	m := h.newModal(req, c)
	m.applyHover(r.URL.Query())

	view, err := m.view()
	if err != nil {
		h.logger.Error("build modal", "campaign", c.Key(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var b strings.Builder
	if err := modalTemplate.Execute(&b, view); err != nil {
		h.logger.Error("render modal", "campaign", c.Key(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

func (h *Handler) handleHighlight(w http.ResponseWriter, r *http.Request, req request) {
	c, ok := h.campaign(w, r, req)
	if !ok {
		return
	}

	m := h.newModal(req, c)
	m.applyHover(r.URL.Query())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m.ctrl.Snapshot()); err != nil {
		h.logger.Error("encode highlight snapshot", "campaign", c.Key(), "error", err)
	}
}

func (h *Handler) handleIcon(w http.ResponseWriter, r *http.Request, req request) {
	r.SetPathValue("month", strings.TrimSuffix(r.PathValue("month"), ".svg"))
	c, ok := h.campaign(w, r, req)
	if !ok {
		return
	}

	ic := h.renderIcon(req.state, c, "standalone")
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := ic.Render(w); err != nil {
		h.logger.Error("render icon", "campaign", c.Key(), "error", err)
	}
}

// campaign resolves the {year}/{month} path values. It writes a 404 and
// returns false when the slot is malformed or absent from the dataset.
func (h *Handler) campaign(w http.ResponseWriter, r *http.Request, req request) (domain.Campaign, bool) {
	year, month, err := parseSlot(r.PathValue("year"), r.PathValue("month"))
	if err != nil {
		http.NotFound(w, r)
		return domain.Campaign{}, false
	}
	c, ok := req.state.Dataset.Campaign(year, month)
	if !ok {
		http.NotFound(w, r)
		return domain.Campaign{}, false
	}
	return c, true
}

func parseSlot(rawYear, rawMonth string) (int, domain.Month, error) {
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return 0, "", errBadSlot
	}
	month, err := domain.ParseMonth(rawMonth)
	if err != nil {
		return 0, "", errBadSlot
	}
	return year, month, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
