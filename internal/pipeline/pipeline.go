// Package pipeline converts the campaign spreadsheet export into the
// dataset document: extract CSV rows, group them into campaigns, load the
// JSON file and optionally publish every campaign.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
)

// ErrNoRows is returned when the source holds no usable row.
var ErrNoRows = errors.New("no usable rows")

// Extractor reads the source rows.
type Extractor interface {
	Extract(ctx context.Context) (Extraction, error)
}

// Loader writes the converted campaigns to the destination document.
type Loader interface {
	Load(ctx context.Context, campaigns []domain.Campaign, years [2]int) error
}

// Publisher sends converted campaigns downstream.
type Publisher interface {
	Publish(ctx context.Context, campaigns []domain.Campaign) error
}

// Summary reports what a run produced.
type Summary struct {
	YearFrom    int
	YearTo      int
	Total       int
	WithData    int
	WithoutData int
	Skipped     int
	Published   int
}

// Write prints the summary in the converter's console format.
func (s Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "   Years: %d-%d\n", s.YearFrom, s.YearTo)
	fmt.Fprintf(w, "   Total campaigns: %d\n", s.Total)
	fmt.Fprintf(w, "   With data: %d\n", s.WithData)
	fmt.Fprintf(w, "   Without data: %d\n", s.WithoutData)
	fmt.Fprintf(w, "   Skipped rows: %d\n", s.Skipped)
	if s.Published > 0 {
		fmt.Fprintf(w, "   Published: %d\n", s.Published)
	}
}

// Pipeline runs one conversion.
type Pipeline struct {
	extractor Extractor
	loader    Loader
	publisher Publisher
	logger    *slog.Logger
}

// New creates a Pipeline. A nil publisher disables publication.
func New(e Extractor, l Loader, p Publisher, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		extractor: e,
		loader:    l,
		publisher: p,
		logger:    logger,
	}
}

// Run extracts, transforms and loads once. The summary is valid whenever
// the load succeeded, even if publication failed afterwards.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	ext, err := p.extractor.Extract(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("extract: %w", err)
	}
	if len(ext.Rows) == 0 {
		return Summary{Skipped: ext.Skipped}, ErrNoRows
	}

	campaigns, years := Transform(ext.Rows)
	p.logger.Debug("rows grouped", "rows", len(ext.Rows), "campaigns", len(campaigns))

	if err := p.loader.Load(ctx, campaigns, years); err != nil {
		return Summary{}, fmt.Errorf("load: %w", err)
	}
	s := summarize(campaigns, years, ext.Skipped)

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, campaigns); err != nil {
			return s, fmt.Errorf("publish: %w", err)
		}
		s.Published = len(campaigns)
	}

	p.logger.Info("conversion finished",
		"year_from", s.YearFrom,
		"year_to", s.YearTo,
		"campaigns", s.Total,
		"with_data", s.WithData,
		"skipped_rows", s.Skipped,
		"published", s.Published,
	)
	return s, nil
}

func summarize(campaigns []domain.Campaign, years [2]int, skipped int) Summary {
	s := Summary{YearFrom: years[0], YearTo: years[1], Total: len(campaigns), Skipped: skipped}
	for _, c := range campaigns {
		if c.HasData() {
			s.WithData++
		} else {
			s.WithoutData++
		}
	}
	return s
}
