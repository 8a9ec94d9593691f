package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
)

// JSONLoader rewrites the dataset document in place, keeping its registry.
type JSONLoader struct {
	path   string
	logger *slog.Logger
}

// NewJSONLoader creates a loader for the document at path. The document
// must already exist: its "config" object is the only source of the
// registry.
func NewJSONLoader(path string, logger *slog.Logger) *JSONLoader {
	return &JSONLoader{path: path, logger: logger}
}

// Load replaces metadata and campaigns and writes the document through a
// temporary file in the same directory.
func (l *JSONLoader) Load(ctx context.Context, campaigns []domain.Campaign, years [2]int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	existing, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("read existing dataset: %w", err)
	}
	prev, err := domain.DecodeDataset(bytes.NewReader(existing))
	if err != nil {
		return fmt.Errorf("read existing dataset: %w", err)
	}

	meta := domain.Metadata{
		YearRange:   years,
		LastUpdated: domain.Today(),
		Months:      domain.Months,
	}
	ds := domain.NewDataset(meta, prev.Config, prev.Registry, campaigns)

	var buf bytes.Buffer
	if err := domain.EncodeDataset(&buf, ds); err != nil {
		return err
	}
	if err := writeFile(l.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	l.logger.Debug("dataset written", "path", l.path, "bytes", buf.Len())
	return nil
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".epea-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if info, err := os.Stat(path); err == nil {
		_ = tmp.Chmod(info.Mode().Perm())
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
