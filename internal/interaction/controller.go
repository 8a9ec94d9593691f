// Package interaction implements the two-level hover highlight of the
// campaign detail view.
//
// A Controller holds explicit handles to the icons and legends it drives.
// It is either Idle or Highlighted(param, family):
//
//	Idle --EnterParameter(active label)--> Highlighted
//	Highlighted --EnterParameter(other)--> Highlighted (replaced directly)
//	Highlighted --Leave--> Idle
//
// Vessel hover only drives the description readout and never touches icons.
// A Controller is not safe for concurrent use; transitions are expected to
// arrive serialized, one pointer at a time.
package interaction

import (
	"github.com/couchcryptid/epea-campaigns/internal/domain"
	"github.com/couchcryptid/epea-campaigns/internal/icon"
	"github.com/couchcryptid/epea-campaigns/internal/legend"
)

// Kind names a transition for observers.
type Kind string

const (
	KindParameter Kind = "parameter"
	KindVessel    Kind = "vessel"
	KindLeave     Kind = "leave"
	KindIgnored   Kind = "ignored"
)

// Observer is notified after every transition attempt.
type Observer func(Kind)

// State is the current hover state.
type State struct {
	Highlighted bool
	ParamID     string
	FamilyID    string
	Vessel      string
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver sets the transition observer.
func WithObserver(fn Observer) Option {
	return func(c *Controller) { c.observe = fn }
}

// Controller drives highlight classes and the description readout.
type Controller struct {
	reg     *domain.Registry
	lang    domain.Lang
	icons   []*icon.Icon
	legends []*legend.Legend
	state   State
	readout string
	observe Observer
}

// NewController returns an idle controller with nothing mounted.
func NewController(reg *domain.Registry, lang domain.Lang, opts ...Option) *Controller {
	c := &Controller{reg: reg, lang: lang}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount replaces the driven icons and legends and resets to Idle.
func (c *Controller) Mount(icons []*icon.Icon, legends ...*legend.Legend) {
	c.clear()
	c.icons = append([]*icon.Icon(nil), icons...)
	c.legends = append([]*legend.Legend(nil), legends...)
	c.clear()
}

// EnterParameter highlights paramID and its family on every mounted icon
// and legend. Labels that are not mounted, inactive, or do not belong to
// familyID are ignored and leave the state unchanged.
func (c *Controller) EnterParameter(paramID, familyID string) bool {
	lb, ok := c.label(paramID)
	if !ok || !lb.Active || lb.FamilyID != familyID {
		c.notify(KindIgnored)
		return false
	}

	params := c.reg.Parameters()
	family := c.reg.ParametersInFamily(familyID)

	for _, ic := range c.icons {
		ic.AddRootClass(icon.ClassHighlightActive)
		ic.ClearHighlights()
		for _, p := range params {
			ic.SetHighlight(p.ID, icon.HighlightDimmed)
		}
		for _, p := range family {
			ic.SetHighlight(p.ID, icon.HighlightFamily)
		}
		ic.SetHighlight(paramID, icon.HighlightFull)
	}

	for _, l := range c.legends {
		l.ClearHighlights()
		for _, p := range family {
			if fl, ok := l.Label(p.ID); ok && fl.Active {
				fl.Highlight = legend.LabelFamily
			}
		}
		l.SetLabelHighlight(paramID, legend.LabelFull)
	}

	desc := ""
	if p, ok := c.reg.Parameter(paramID); ok {
		desc = p.Description.In(c.lang)
	}
	c.setReadout(desc)

	c.state = State{Highlighted: true, ParamID: paramID, FamilyID: familyID}
	c.notify(KindParameter)
	return true
}

// Leave returns to Idle, clearing every icon, label and the readout.
func (c *Controller) Leave() {
	c.clear()
	c.notify(KindLeave)
}

// EnterVessel shows the description of a vessel listed in a mounted legend.
func (c *Controller) EnterVessel(code string) bool {
	v, ok := c.reg.Vessel(code)
	if !ok || !c.listsVessel(code) {
		c.notify(KindIgnored)
		return false
	}
	c.setReadout(v.Description.In(c.lang))
	c.state.Vessel = code
	c.notify(KindVessel)
	return true
}

// LeaveVessel clears the readout.
func (c *Controller) LeaveVessel() {
	c.state.Vessel = ""
	c.setReadout("")
	c.notify(KindLeave)
}

// State returns the current hover state.
func (c *Controller) State() State { return c.state }

// Readout returns the description readout text.
func (c *Controller) Readout() string { return c.readout }

func (c *Controller) clear() {
	for _, ic := range c.icons {
		ic.RemoveRootClass(icon.ClassHighlightActive)
		ic.ClearHighlights()
	}
	for _, l := range c.legends {
		l.ClearHighlights()
	}
	c.setReadout("")
	c.state = State{}
}

func (c *Controller) setReadout(text string) {
	c.readout = text
	for _, l := range c.legends {
		if l.HasDescription {
			l.Description = text
		}
	}
}

func (c *Controller) label(paramID string) (*legend.Label, bool) {
	for _, l := range c.legends {
		if lb, ok := l.Label(paramID); ok {
			return lb, true
		}
	}
	return nil, false
}

func (c *Controller) listsVessel(code string) bool {
	for _, l := range c.legends {
		if l.Vessels == nil {
			continue
		}
		for _, s := range l.Vessels.Ships {
			if s.Code == code {
				return true
			}
		}
	}
	return false
}

func (c *Controller) notify(k Kind) {
	if c.observe != nil {
		c.observe(k)
	}
}
