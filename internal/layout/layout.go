// Package layout decides which families are listed on each side of the
// campaign detail view.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/legend"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultLayout []byte

// Group is one family entry of the layout file.
type Group struct {
	Family     string   `yaml:"family"`
	Parameters []string `yaml:"parameters"`
}

// Layout is the left/right split of families.
type Layout struct {
	Left  []Group `yaml:"left"`
	Right []Group `yaml:"right"`
}

// Default returns the embedded layout.
func Default() (*Layout, error) {
	return Parse(defaultLayout)
}

// Load reads a layout file. An empty path returns the embedded layout.
func Load(path string) (*Layout, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing layout file %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a layout document.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) validate() error {
	if len(l.Left) == 0 && len(l.Right) == 0 {
		return errors.New("layout lists no families")
	}
	seen := make(map[string]bool)
	for _, g := range append(append([]Group(nil), l.Left...), l.Right...) {
		if g.Family == "" {
			return errors.New("layout group without family")
		}
		if seen[g.Family] {
			return fmt.Errorf("family %q listed twice", g.Family)
		}
		seen[g.Family] = true
	}
	return nil
}

// Groups returns the family groups of one side, ready for the legend builder.
func (l *Layout) Groups(side legend.Side) []legend.FamilyGroup {
	src := l.Left
	if side == legend.SideRight {
		src = l.Right
	}
	out := make([]legend.FamilyGroup, 0, len(src))
	for _, g := range src {
		out = append(out, legend.FamilyGroup{FamilyID: g.Family, ParamIDs: append([]string(nil), g.Parameters...)})
	}
	return out
}

// Unplaced returns the registry parameters the layout never lists. They
// still render on the icon but get no legend label.
func (l *Layout) Unplaced(reg *domain.Registry) []string {
	placed := make(map[string]bool)
	for _, g := range append(append([]Group(nil), l.Left...), l.Right...) {
		for _, id := range g.Parameters {
			placed[id] = true
		}
	}
	var out []string
	for _, p := range reg.Parameters() {
		if !placed[p.ID] {
			out = append(out, p.ID)
		}
	}
	return out
}
