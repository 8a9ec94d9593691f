package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	ships := []domain.ShipParticipation{domain.NewShipParticipation("BO", "Propia")}
	c := domain.NewCampaign(2020, "ene", "Propia", domain.KnownVisitCount(1), ships, []string{"Temp", "Sal"}, nil)

	msg, err := serializeToMessage(c)
	require.NoError(t, err)

	assert.Equal(t, []byte("2020-ene"), msg.Key)
	assert.Contains(t, string(msg.Value), `"variables":["Temp","Sal"]`)
	assert.Contains(t, string(msg.Value), `"year":2020`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "year", msg.Headers[0].Key)
	assert.Equal(t, []byte("2020"), msg.Headers[0].Value)
	assert.Equal(t, "month", msg.Headers[1].Key)
	assert.Equal(t, []byte("ene"), msg.Headers[1].Value)
	assert.Equal(t, "tipo", msg.Headers[2].Key)
	assert.Equal(t, []byte("Propia"), msg.Headers[2].Value)
}

func TestPublish_EmptyIsNoop(t *testing.T) {
	w := NewWriter([]string{"localhost:1"}, "epea-campaigns", slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer w.Close()

	assert.NoError(t, w.Publish(context.Background(), nil))
}
