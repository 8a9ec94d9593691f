// Package loader performs the viewer's startup load and holds the
// resulting application state.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/icon"
	"github.com/couchcryptid/epea-campaigns/internal/layout"
	"golang.org/x/sync/errgroup"
)

// ErrNotLoaded is returned while the state is missing, either because the
// load is still running or because it failed.
var ErrNotLoaded = errors.New("dataset not loaded")

// Fetcher reads a resource by location.
type Fetcher interface {
	Fetch(ctx context.Context, loc string) ([]byte, error)
}

// State is the application state every page handler works from. It is
// read-only once built.
type State struct {
	Dataset  *domain.Dataset
	Template *icon.Template
	Layout   *layout.Layout
}

// Load fetches the dataset and the icon template concurrently and decodes
// both. Either failure aborts the whole load; there is no partial state.
// An empty templateLoc selects the embedded template.
func Load(ctx context.Context, f Fetcher, dataLoc, templateLoc string, lay *layout.Layout, logger *slog.Logger) (*State, error) {
	var (
		ds   *domain.Dataset
		tmpl *icon.Template
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := f.Fetch(gctx, dataLoc)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		ds, err = domain.DecodeDataset(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if templateLoc == "" {
			tmpl, err = icon.DefaultTemplate()
		} else {
			var data []byte
			data, err = f.Fetch(gctx, templateLoc)
			if err == nil {
				tmpl, err = icon.ParseTemplate(bytes.NewReader(data))
			}
		}
		if err != nil {
			return fmt.Errorf("load icon template: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, issue := range ds.Issues() {
		logger.Warn("dataset issue",
			"kind", string(issue.Kind),
			"year", issue.Year,
			"month", string(issue.Month),
			"detail", issue.Detail,
		)
	}
	for _, id := range lay.Unplaced(ds.Registry) {
		logger.Warn("parameter has no legend placement", "param", id)
	}

	logger.Info("dataset loaded",
		"campaigns", len(ds.Campaigns),
		"year_from", ds.Metadata.YearRange[0],
		"year_to", ds.Metadata.YearRange[1],
	)
	return &State{Dataset: ds, Template: tmpl, Layout: lay}, nil
}

// Holder publishes the state once the load finishes. It implements the
// readiness check of the HTTP server.
type Holder struct {
	mu    sync.RWMutex
	state *State
	err   error
}

// NewHolder returns an empty holder that is not ready.
func NewHolder() *Holder {
	return &Holder{err: ErrNotLoaded}
}

// Set records the outcome of a load.
func (h *Holder) Set(s *State, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.state, h.err = nil, fmt.Errorf("%w: %w", ErrNotLoaded, err)
		return
	}
	h.state, h.err = s, nil
}

// State returns the loaded state, or an error wrapping ErrNotLoaded.
func (h *Holder) State() (*State, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state, h.err
}

// CheckReadiness returns nil once a load has succeeded.
func (h *Holder) CheckReadiness(_ context.Context) error {
	_, err := h.State()
	return err
}
