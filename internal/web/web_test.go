package web_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/i18n"
	"github.com/couchcryptid/epea-campaigns/internal/icon"
	"github.com/couchcryptid/epea-campaigns/internal/interaction"
	"github.com/couchcryptid/epea-campaigns/internal/layout"
	"github.com/couchcryptid/epea-campaigns/internal/loader"
	"github.com/couchcryptid/epea-campaigns/internal/observability"
	"github.com/couchcryptid/epea-campaigns/internal/web"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type stubStates struct {
	state *loader.State
	err   error
}

func (s *stubStates) State() (*loader.State, error) { return s.state, s.err }

// --- fixtures ---

const dataset = `{
  "metadata": {"lastUpdated": "2025-01-10", "yearRange": [2020, 2021]},
  "config": {
    "parametros": {
      "param-temperatura": {"key": "Temp", "familia": "fisicas", "nombre": "Temperatura", "nombre_en": "Temperature", "color": "#e63946", "descripcion": "Temperatura del agua", "descripcion_en": "Water temperature"},
      "param-salinidad": {"key": "Sal", "familia": "fisicas", "nombre": "Salinidad", "color": "#457b9d"},
      "param-fitoplancton": {"key": "FITO", "familia": "biologicas", "nombre": "Fitoplancton", "color": "#2a9d8f"},
      "parametro-pp": {"key": "PP", "familia": "biologicas", "nombre": "Producción primaria", "color": "#f4a261"}
    },
    "familias": {
      "fisicas": {"nombre": "PROPIEDADES FÍSICAS", "nombre_en": "Physical Properties"},
      "biologicas": {"nombre": "PROPIEDADES BIOLÓGICAS", "nombre_en": "Biological Properties"}
    },
    "barcos": {
      "BO": {"nombre": "B/O Austral", "color": "#1d3557", "descripcion": "Buque oceanográfico"},
      "PD": {"nombre": "Lancha Prefectura", "color": "#8d99ae"}
    }
  },
  "campañas": [
    {"year": 2020, "month": "ene", "nro_visitas": "unica", "tipo": "Propia",
     "barcos": [{"code": "BO", "tipo": "Propia"}], "variables": ["Temp", "FITO"]},
    {"year": 2020, "month": "feb", "nro_visitas": "multiple", "tipo": "Propia_Oportunista",
     "barcos": [{"code": "BO", "tipo": "Propia"}, {"code": "PD", "tipo": "Oportunista"}],
     "variables": ["Temp", "Sal", "PP"],
     "visitas": [
       {"barco": {"code": "BO", "tipo": "Propia"}, "variables": ["Temp"]},
       {"barco": {"code": "PD", "tipo": "Oportunista"}, "variables": ["Sal", "PP"]}
     ]},
    {"year": 2020, "month": "mar", "nro_visitas": null, "tipo": "NA", "barcos": [], "variables": []}
  ]
}`

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
  <g id="param-temperatura"><path d="M0 0"/></g>
  <g id="param-salinidad"><path d="M1 1"/></g>
  <g id="param-fitoplancton"><path d="M2 2"/></g>
  <path id="parametro-pp" d="M3 3"/>
  <g id="ojo-1"><ellipse rx="1" ry="1"/></g>
  <circle id="pupila-1" r="1"/>
</svg>`

const layoutYAML = `
left:
  - family: fisicas
    parameters: [param-temperatura, param-salinidad]
right:
  - family: biologicas
    parameters: [param-fitoplancton, parametro-pp]
`

func testState(t *testing.T) *loader.State {
	t.Helper()
	ds, err := domain.DecodeDataset(strings.NewReader(dataset))
	require.NoError(t, err)
	tmpl, err := icon.ParseTemplate(strings.NewReader(svgTemplate))
	require.NoError(t, err)
	lay, err := layout.Parse([]byte(layoutYAML))
	require.NoError(t, err)
	return &loader.State{Dataset: ds, Template: tmpl, Layout: lay}
}

func newHandler(t *testing.T, states web.StateSource) (*web.Handler, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return web.NewHandler(states, 16, domain.LangES, metrics, logger), metrics
}

func get(t *testing.T, h http.Handler, target string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// --- grid ---

func TestGrid(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	rec := get(t, h, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()

	assert.Contains(t, body, `<html lang="es">`)
	assert.Contains(t, body, "(EPEA, 38°28′ S - 57°41′ O)")
	assert.Contains(t, body, "2 años")
	assert.Equal(t, 2, strings.Count(body, `<div class="grid-row"><div class="cell year-cell">`))
	assert.Equal(t, 2, strings.Count(body, "has-data"))
	assert.Equal(t, 22, strings.Count(body, "no-data"))
	assert.Contains(t, body, `data-href="/campaigns/2020/ene"`)
	assert.Contains(t, body, `title="Año: 2020 · Campaña(s): 1 · Tipo: Dirigida"`)
	assert.Contains(t, body, `title="No visitado"`)
	assert.Contains(t, body, `class="epea-circle"`)
	assert.Contains(t, body, `<circle cx="32" cy="32" r="30" fill="none" stroke="#000000" stroke-width="0.8">`)
}

func TestGrid_LanguageQueryPersists(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	rec := get(t, h, "/?lang=en")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "57°41′ W")
	assert.Contains(t, body, `title="Not visited"`)
	assert.Contains(t, body, "Year: 2020")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, i18n.LangCookieName, cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)
}

func TestGrid_LanguageCookie(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	rec := get(t, h, "/", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: "en"})
	})

	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	assert.Empty(t, rec.Result().Cookies())
}

func TestGrid_IconsAreCached(t *testing.T) {
	h, metrics := newHandler(t, &stubStates{state: testState(t)})

	get(t, h, "/")
	get(t, h, "/")

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.IconsRendered.WithLabelValues("grid")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.IconCache.WithLabelValues("miss")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.IconCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("grid", "200")), 0)
}

func TestGrid_NewStateResetsCache(t *testing.T) {
	states := &stubStates{state: testState(t)}
	h, metrics := newHandler(t, states)

	get(t, h, "/")
	states.state = testState(t)
	get(t, h, "/")

	assert.InDelta(t, 4, testutil.ToFloat64(metrics.IconCache.WithLabelValues("miss")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.IconCache.WithLabelValues("hit")), 0)
}

// --- load error state ---

func TestLoadErrorState(t *testing.T) {
	h, metrics := newHandler(t, &stubStates{err: loader.ErrNotLoaded})

	tests := []struct {
		name   string
		target string
	}{
		{"grid", "/"},
		{"campaign", "/campaigns/2020/ene"},
		{"highlight", "/campaigns/2020/ene/highlight?param=param-temperatura&family=fisicas"},
		{"icon", "/icons/2020/ene.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Contains(t, rec.Body.String(), "Error cargando datos.")
			assert.NotContains(t, rec.Body.String(), "<svg")
		})
	}

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("grid", "503")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.IconsRendered.WithLabelValues("modal")), 0)
}

func TestLoadErrorState_English(t *testing.T) {
	h, _ := newHandler(t, &stubStates{err: errors.New("boom")})

	rec := get(t, h, "/", func(r *http.Request) {
		r.Header.Set("Accept-Language", "en-US,en;q=0.9")
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error loading data.")
}

// --- campaign modal ---

func TestCampaign_Single(t *testing.T) {
	h, metrics := newHandler(t, &stubStates{state: testState(t)})

	rec := get(t, h, "/campaigns/2020/ene")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<h2 id="modal-title">Enero 2020</h2>`)
	assert.Contains(t, body, "PROPIEDADES ESTUDIADAS")
	assert.Contains(t, body, `id="modal-epea-svg"`)
	assert.NotContains(t, body, "multi-disc")
	assert.Contains(t, body, `data-param-id="param-temperatura"`)
	assert.Contains(t, body, `data-param-id="parametro-pp"`)
	assert.Contains(t, body, `data-ship-id="BO"`)
	assert.Contains(t, body, "B/O Austral")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.IconsRendered.WithLabelValues("modal")), 0)
}

func TestCampaign_MultiVisit(t *testing.T) {
	h, metrics := newHandler(t, &stubStates{state: testState(t)})

	rec := get(t, h, "/campaigns/2020/2?lang=en")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "February 2020")
	assert.Contains(t, body, "STUDIED PROPERTIES")
	assert.Contains(t, body, "multi-disc")
	assert.Contains(t, body, `id="modal-epea-svg-0"`)
	assert.Contains(t, body, `id="modal-epea-svg-1"`)
	assert.NotContains(t, body, `id="modal-epea-svg"`)
	assert.Equal(t, 2, strings.Count(body, "modal-visit-svg"))
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.IconsRendered.WithLabelValues("modal")), 0)
}

func TestCampaign_PreappliedHover(t *testing.T) {
	h, metrics := newHandler(t, &stubStates{state: testState(t)})

	rec := get(t, h, "/campaigns/2020/ene?param=param-temperatura&family=fisicas")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "highlighting-active")
	assert.Contains(t, body, "svg-highlighted")
	assert.Contains(t, body, "Temperatura del agua")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.HighlightTransitions.WithLabelValues("parameter")), 0)
}

// Highlight classes live on path elements only, so the server markup and
// the page script agree on where they go.
func TestCampaign_HighlightClassesOnPathsOnly(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	rec := get(t, h, "/campaigns/2020/ene?param=param-temperatura&family=fisicas")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	onGroup := regexp.MustCompile(`<g[^>]*class="[^"]*svg-(dimmed|family-highlight|highlighted)`)
	assert.False(t, onGroup.MatchString(body), "group element carries a highlight class")
	assert.Regexp(t, `<path[^>]*class="[^"]*svg-highlighted`, body)
	assert.Regexp(t, `<path[^>]*id="parametro-pp"[^>]*class="[^"]*svg-dimmed|<path[^>]*class="[^"]*svg-dimmed[^>]*id="parametro-pp"`, body)
}

func TestCampaign_NotFound(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	tests := []struct {
		name   string
		target string
	}{
		{"bad year", "/campaigns/abc/ene"},
		{"bad month", "/campaigns/2020/xyz"},
		{"missing slot", "/campaigns/2020/dic"},
		{"out of range", "/campaigns/1999/ene"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, get(t, h, tt.target).Code)
		})
	}
}

// --- highlight endpoint ---

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) interaction.Snapshot {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var snap interaction.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	return snap
}

func TestHighlight_Parameter(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	snap := decodeSnapshot(t, get(t, h, "/campaigns/2020/ene/highlight?param=param-temperatura&family=fisicas&lang=en"))

	assert.Equal(t, "highlighted", snap.State)
	assert.Equal(t, "param-temperatura", snap.ParamID)
	assert.Equal(t, "fisicas", snap.FamilyID)
	assert.Equal(t, "Water temperature", snap.Readout)
	require.Len(t, snap.Icons, 1)
	assert.Equal(t, "modal-epea-svg", snap.Icons[0].ID)
	assert.True(t, snap.Icons[0].Active)
	assert.Equal(t, "svg-highlighted", snap.Icons[0].Classes["param-temperatura"])
	assert.Equal(t, "svg-family-highlight", snap.Icons[0].Classes["param-salinidad"])
	assert.Equal(t, "svg-dimmed", snap.Icons[0].Classes["param-fitoplancton"])
	assert.Equal(t, "highlighted", snap.Labels["param-temperatura"])
}

func TestHighlight_MultiVisitCoversEveryIcon(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	snap := decodeSnapshot(t, get(t, h, "/campaigns/2020/feb/highlight?param=param-salinidad&family=fisicas"))

	require.Len(t, snap.Icons, 2)
	for _, ic := range snap.Icons {
		assert.True(t, ic.Active, ic.ID)
		assert.Equal(t, "svg-highlighted", ic.Classes["param-salinidad"], ic.ID)
	}
}

func TestHighlight_InactiveLabelIgnored(t *testing.T) {
	h, metrics := newHandler(t, &stubStates{state: testState(t)})

	snap := decodeSnapshot(t, get(t, h, "/campaigns/2020/ene/highlight?param=param-salinidad&family=fisicas"))

	assert.Equal(t, "idle", snap.State)
	assert.False(t, snap.Icons[0].Active)
	assert.Empty(t, snap.Icons[0].Classes)
	assert.Empty(t, snap.Readout)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.HighlightTransitions.WithLabelValues("ignored")), 0)
}

func TestHighlight_Vessel(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	snap := decodeSnapshot(t, get(t, h, "/campaigns/2020/ene/highlight?ship=BO"))

	assert.Equal(t, "idle", snap.State)
	assert.Equal(t, "BO", snap.Vessel)
	assert.Equal(t, "Buque oceanográfico", snap.Readout)
	assert.Empty(t, snap.Icons[0].Classes)
}

func TestHighlight_NoQueryIsIdle(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	snap := decodeSnapshot(t, get(t, h, "/campaigns/2020/ene/highlight"))

	assert.Equal(t, "idle", snap.State)
	assert.Empty(t, snap.Labels)
}

// --- standalone icon ---

func TestIcon(t *testing.T) {
	h, metrics := newHandler(t, &stubStates{state: testState(t)})

	rec := get(t, h, "/icons/2020/ene.svg")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<svg"), body)
	assert.Contains(t, body, "--ver-param-temperatura: 1")
	assert.Contains(t, body, "--ver-param-salinidad: 0")
	assert.Contains(t, body, `data-color="#1d3557"`)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.IconsRendered.WithLabelValues("standalone")), 0)
}

func TestIcon_EmptyCampaign(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})

	rec := get(t, h, "/icons/2020/mar.svg")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "--ver-param-temperatura: 0")
	assert.Contains(t, body, "--ver-ojo-1: 0")
}

func TestIcon_NotFound(t *testing.T) {
	h, _ := newHandler(t, &stubStates{state: testState(t)})
	assert.Equal(t, http.StatusNotFound, get(t, h, "/icons/2021/ene.svg").Code)
}

// --- static ---

func TestStatic(t *testing.T) {
	h, _ := newHandler(t, &stubStates{err: loader.ErrNotLoaded})

	for _, name := range []string{"/static/epea.css", "/static/epea.js"} {
		rec := get(t, h, name)
		assert.Equal(t, http.StatusOK, rec.Code, name)
		assert.NotEmpty(t, rec.Body.String(), name)
	}
}

func TestStatic_ScriptPaintsLatestHighlightOnly(t *testing.T) {
	h, _ := newHandler(t, &stubStates{err: loader.ErrNotLoaded})

	script := get(t, h, "/static/epea.js").Body.String()

	tests := []struct {
		name string
		want string
	}{
		{name: "transition numbered", want: "var mine = ++seq;"},
		{name: "stale reply dropped", want: "if (mine === seq && href === current) paint(snap);"},
		{name: "previous request aborted", want: "if (pending) pending.abort();"},
		{name: "classes on paths", want: `el.querySelectorAll("path")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, script, tt.want)
		})
	}
	assert.NotContains(t, script, "[el].concat(", "highlight class must not go on the group element")
}
