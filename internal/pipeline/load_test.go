package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const existingDataset = `{
  "metadata": {"lastUpdated": "2019-01-01", "yearRange": [1999, 1999]},
  "config": {
    "parametros": {"param-temperatura": {"key": "Temp", "familia": "fisicas", "nombre": "Temperatura", "color": "#e63946"}},
    "familias": {"fisicas": {"nombre": "PROPIEDADES FÍSICAS"}},
    "barcos": {"BO": {"nombre": "B/O Austral", "color": "#1d3557"}}
  },
  "campañas": [{"year": 1999, "month": "ene", "nro_visitas": null, "tipo": "NA", "barcos": [], "variables": []}]
}`

func freezeClock(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func TestJSONLoader_Load(t *testing.T) {
	freezeClock(t)
	path := filepath.Join(t.TempDir(), "epea_data.json")
	require.NoError(t, os.WriteFile(path, []byte(existingDataset), 0o644))

	campaigns, years := pipeline.Transform([]pipeline.Row{
		{Number: "1", Year: 2000, Month: "feb", Type: "Propia", Ships: "BO", Variables: []string{"Temp"}},
	})
	require.NoError(t, pipeline.NewJSONLoader(path, discardLogger()).Load(context.Background(), campaigns, years))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])
	assert.Contains(t, string(data), "  \"metadata\"")
	assert.Contains(t, string(data), "PROPIEDADES FÍSICAS", "unescaped UTF-8")

	var doc struct {
		Metadata struct {
			LastUpdated string   `json:"lastUpdated"`
			YearRange   [2]int   `json:"yearRange"`
			Months      []string `json:"months"`
		} `json:"metadata"`
		Config    map[string]json.RawMessage   `json:"config"`
		Campaigns []map[string]json.RawMessage `json:"campañas"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "2025-03-04", doc.Metadata.LastUpdated)
	assert.Equal(t, [2]int{2000, 2000}, doc.Metadata.YearRange)
	assert.Len(t, doc.Metadata.Months, 12)
	assert.Contains(t, doc.Config, "parametros")
	require.Len(t, doc.Campaigns, 12)

	assert.JSONEq(t, `null`, string(doc.Campaigns[0]["nro_visitas"]))
	assert.JSONEq(t, `"NA"`, string(doc.Campaigns[0]["tipo"]))
	assert.JSONEq(t, `[]`, string(doc.Campaigns[0]["barcos"]))
	assert.JSONEq(t, `"unica"`, string(doc.Campaigns[1]["nro_visitas"]))
	assert.JSONEq(t, `[{"code": "BO", "tipo": "Propia"}]`, string(doc.Campaigns[1]["barcos"]))
	assert.JSONEq(t, `[{"barco": {"code": "BO", "tipo": "Propia"}, "variables": ["Temp"]}]`, string(doc.Campaigns[1]["visitas"]))

	ds, err := domain.DecodeDataset(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, ds.Issues())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestJSONLoader_MissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epea_data.json")
	err := pipeline.NewJSONLoader(path, discardLogger()).Load(context.Background(), nil, [2]int{2000, 2000})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestJSONLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pipeline.NewJSONLoader("unused.json", discardLogger()).Load(ctx, nil, [2]int{})
	require.ErrorIs(t, err, context.Canceled)
}
