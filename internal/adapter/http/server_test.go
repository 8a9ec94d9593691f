package http_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/couchcryptid/epea-campaigns/internal/adapter/http"
	"github.com/stretchr/testify/assert"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockApp struct {
	paths []string
}

func (m *mockApp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.paths = append(m.paths, r.URL.Path)
	w.WriteHeader(http.StatusTeapot)
}

func newTestServer(readyErr error) (*httpadapter.Server, *mockApp) {
	app := &mockApp{}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, app, slog.Default()), app
}

func serve(srv *httpadapter.Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, app := newTestServer(nil)

	rec := serve(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, app.paths)
}

func TestHealthzIgnoresReadiness(t *testing.T) {
	srv, _ := newTestServer(fmt.Errorf("dataset not loaded"))

	assert.Equal(t, http.StatusOK, serve(srv, "/healthz").Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(nil)

	assert.Equal(t, http.StatusOK, serve(srv, "/readyz").Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(fmt.Errorf("dataset not loaded"))

	assert.Equal(t, http.StatusServiceUnavailable, serve(srv, "/readyz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(nil)

	rec := serve(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestOtherPathsReachApp(t *testing.T) {
	srv, app := newTestServer(nil)

	for _, target := range []string{"/", "/campaigns/2020/ene", "/static/epea.css"} {
		assert.Equal(t, http.StatusTeapot, serve(srv, target).Code, target)
	}
	assert.Equal(t, []string{"/", "/campaigns/2020/ene", "/static/epea.css"}, app.paths)
}
