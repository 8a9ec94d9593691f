package interaction

import "github.com/couchcryptid/epea-campaigns/internal/icon"

// Snapshot is the presentation state after a transition, serialized for
// the page script that paints it.
type Snapshot struct {
	State    string            `json:"state"`
	ParamID  string            `json:"paramId,omitempty"`
	FamilyID string            `json:"familyId,omitempty"`
	Vessel   string            `json:"vessel,omitempty"`
	Icons    []IconState       `json:"icons"`
	Labels   map[string]string `json:"labels"`
	Readout  string            `json:"readout"`
}

// IconState is the highlight state of one mounted icon.
type IconState struct {
	ID      string            `json:"id"`
	Active  bool              `json:"active"`
	Classes map[string]string `json:"classes"`
}

// Snapshot captures the current state of every mounted icon and label.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:    "idle",
		ParamID:  c.state.ParamID,
		FamilyID: c.state.FamilyID,
		Vessel:   c.state.Vessel,
		Icons:    make([]IconState, 0, len(c.icons)),
		Labels:   make(map[string]string),
		Readout:  c.readout,
	}
	if c.state.Highlighted {
		s.State = "highlighted"
	}

	for _, ic := range c.icons {
		classes := make(map[string]string)
		for id, level := range ic.ClassState() {
			classes[id] = level.Class()
		}
		s.Icons = append(s.Icons, IconState{
			ID:      ic.ID(),
			Active:  ic.HasRootClass(icon.ClassHighlightActive),
			Classes: classes,
		})
	}
	for _, l := range c.legends {
		for id, class := range l.HighlightState() {
			s.Labels[id] = class
		}
	}
	return s
}
