// Command validate checks the integrity of a campaign dataset document:
// schema, the visit union invariant, eye slot capacity, references into the
// registry, slot uniqueness and year range, and legend placement.
//
// Usage:
//
//	go run ./cmd/validate -data data/epea_data.json [-layout layout.yaml]
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/layout"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	kinds  []domain.IssueKind
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newPhases() []*phase {
	return []*phase{
		{name: "Phase 1: Schema (month keys)", kinds: []domain.IssueKind{domain.IssueUnknownMonth}},
		{name: "Phase 2: Union invariant (visits)", kinds: []domain.IssueKind{domain.IssueUnionMismatch}},
		{name: "Phase 3: Eye slots (max 3 ships)", kinds: []domain.IssueKind{domain.IssueShipOverflow}},
		{name: "Phase 4: Registry references", kinds: []domain.IssueKind{domain.IssueUnknownShip, domain.IssueUnknownVariable}},
		{name: "Phase 5: Slots (duplicates, year range)", kinds: []domain.IssueKind{domain.IssueDuplicateSlot, domain.IssueOutOfRange}},
		{name: "Phase 6: Legend layout"},
	}
}

func main() {
	dataPath := flag.String("data", "data/epea_data.json", "path to the dataset JSON document")
	layoutPath := flag.String("layout", "", "path to a legend layout YAML file (default: embedded)")
	flag.Parse()

	if code := run(os.Stdout, *dataPath, *layoutPath); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, dataPath, layoutPath string) int {
	fmt.Fprintln(w, "=== EPEA Dataset Integrity Validation ===")
	fmt.Fprintln(w)

	data, err := os.ReadFile(dataPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: read dataset: %v\n", err)
		return 1
	}
	ds, err := domain.DecodeDataset(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	lay, err := layout.Load(layoutPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	phases, notes := check(ds, lay)
	return report(w, ds, phases, notes)
}

// check sorts the dataset issues into phases. Legacy ship encodings are
// normalized on read and only reported as notes.
func check(ds *domain.Dataset, lay *layout.Layout) ([]*phase, []string) {
	phases := newPhases()
	byKind := make(map[domain.IssueKind]*phase)
	for _, p := range phases {
		for _, k := range p.kinds {
			byKind[k] = p
		}
	}

	var notes []string
	for _, issue := range ds.Issues() {
		if p, ok := byKind[issue.Kind]; ok {
			p.errorf("%s", issue)
			continue
		}
		notes = append(notes, issue.String())
	}

	placement := phases[len(phases)-1]
	for _, id := range lay.Unplaced(ds.Registry) {
		placement.errorf("parameter %s has no legend placement", id)
	}
	return phases, notes
}

func report(w io.Writer, ds *domain.Dataset, phases []*phase, notes []string) int {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	withData := 0
	for _, c := range ds.Campaigns {
		if c.HasData() {
			withData++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Campaigns: %d (%d with data), years %d-%d, %d parameters, %d vessels\n",
		len(ds.Campaigns), withData, ds.Metadata.YearRange[0], ds.Metadata.YearRange[1],
		len(ds.Registry.Parameters()), len(ds.Registry.Vessels()))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}
	if len(notes) > 0 {
		fmt.Fprintln(w, "\n--- Notes ---")
		for _, n := range notes {
			fmt.Fprintf(w, "  %s\n", n)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}
