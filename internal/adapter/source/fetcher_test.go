package source

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher(timeout time.Duration) *Fetcher {
	return NewFetcher(timeout, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetcher_LocalPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epea_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok":true}`), 0o600))

	f := testFetcher(time.Second)

	data, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	data, err = f.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))
}

func TestFetcher_LocalPathMissing(t *testing.T) {
	_, err := testFetcher(time.Second).Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetcher_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets/epea.svg", r.URL.Path)
		_, _ = w.Write([]byte("<svg></svg>"))
	}))
	defer srv.Close()

	data, err := testFetcher(time.Second).Fetch(context.Background(), srv.URL+"/assets/epea.svg")
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", string(data))
}

func TestFetcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	}))
	defer srv.Close()

	_, err := testFetcher(time.Second).Fetch(context.Background(), srv.URL+"/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetcher_HTTPBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"campañas": []}`))
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		maxBody int64
		wantErr bool
	}{
		{name: "over limit", maxBody: 8, wantErr: true},
		{name: "exactly at limit", maxBody: int64(len(`{"campañas": []}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFetcher(time.Second)
			f.maxBody = tt.maxBody

			data, err := f.Fetch(context.Background(), srv.URL)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrTooLarge)
				assert.Nil(t, data)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, `{"campañas": []}`, string(data))
		})
	}
}

func TestFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	_, err := testFetcher(20*time.Millisecond).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetcher_UnsupportedScheme(t *testing.T) {
	_, err := testFetcher(time.Second).Fetch(context.Background(), "s3://bucket/epea_data.json")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestFetcher_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testFetcher(time.Second).Fetch(ctx, "whatever.json")
	assert.ErrorIs(t, err, context.Canceled)
}
