package web

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/observability"
)

// iconCache keeps rendered grid markup per campaign slot ("2020-ene").
// Grid icons only depend on the campaign and the loaded state, so entries
// stay valid until the state is swapped and the cache is reset.
type iconCache struct {
	slots   *lru.Cache[string, string]
	metrics *observability.Metrics
}

func newIconCache(maxSlots int, metrics *observability.Metrics) *iconCache {
	slots, err := lru.New[string, string](max(maxSlots, 1))
	if err != nil {
		panic(err) // only fails on a non-positive size
	}
	return &iconCache{slots: slots, metrics: metrics}
}

// getOrRender returns the grid markup of c, rendering it on a miss.
func (c *iconCache) getOrRender(campaign domain.Campaign, render func() string) string {
	slot := campaign.Key()
	if markup, ok := c.slots.Get(slot); ok {
		c.metrics.IconCache.WithLabelValues("hit").Inc()
		return markup
	}
	c.metrics.IconCache.WithLabelValues("miss").Inc()
	markup := render()
	c.slots.Add(slot, markup)
	return markup
}

// reset drops every slot, used when a new state is loaded.
func (c *iconCache) reset() {
	c.slots.Purge()
}

func (c *iconCache) len() int {
	return c.slots.Len()
}
