package icon

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Highlight is the presentation level of one parameter sub-shape.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightDimmed
	HighlightFamily
	HighlightFull
)

// Presentation classes, shared with the page stylesheet.
const (
	ClassDimmed          = "svg-dimmed"
	ClassFamily          = "svg-family-highlight"
	ClassFull            = "svg-highlighted"
	ClassHighlightActive = "highlighting-active"
)

// Class returns the presentation class for the level, empty for none.
func (h Highlight) Class() string {
	switch h {
	case HighlightDimmed:
		return ClassDimmed
	case HighlightFamily:
		return ClassFamily
	case HighlightFull:
		return ClassFull
	default:
		return ""
	}
}

// EyeID returns the id of the eye group for a 1-based ship slot.
func EyeID(slot int) string { return fmt.Sprintf("ojo-%d", slot) }

// PupilID returns the id of the pupil for a 1-based ship slot.
func PupilID(slot int) string { return fmt.Sprintf("pupila-%d", slot) }

type styleProp struct {
	name  string
	value string
}

// Icon is one rendered copy of the template. It is owned by whoever mounted
// it; the interaction layer only touches its highlight classes.
type Icon struct {
	root      *html.Node
	byID      map[string]*html.Node
	baseStyle string
	props     []styleProp
	levels    map[string]Highlight
}

// SetID sets the root element id.
func (ic *Icon) SetID(id string) { setAttr(ic.root, "id", id) }

// ID returns the root element id.
func (ic *Icon) ID() string { return attr(ic.root, "id") }

// AddRootClass adds a class to the root element.
func (ic *Icon) AddRootClass(class string) { addClass(ic.root, class) }

// RemoveRootClass removes a class from the root element.
func (ic *Icon) RemoveRootClass(class string) { removeClasses(ic.root, class) }

// HasRootClass reports whether the root element carries class.
func (ic *Icon) HasRootClass(class string) bool { return hasClass(ic.root, class) }

// Has reports whether the template defines an element with this id.
func (ic *Icon) Has(id string) bool {
	_, ok := ic.byID[id]
	return ok
}

// SetVisible sets the --ver-<id> flag. Unknown ids are still recorded; the
// template stylesheet simply has nothing to apply them to.
func (ic *Icon) SetVisible(id string, visible bool) {
	v := "0"
	if visible {
		v = "1"
	}
	name := "--ver-" + id
	for i, p := range ic.props {
		if p.name == name {
			ic.props[i].value = v
			ic.syncStyle()
			return
		}
	}
	ic.props = append(ic.props, styleProp{name: name, value: v})
	ic.syncStyle()
}

// Visible reports whether id was set visible. Ids never set report false.
func (ic *Icon) Visible(id string) bool {
	name := "--ver-" + id
	for _, p := range ic.props {
		if p.name == name {
			return p.value == "1"
		}
	}
	return false
}

func (ic *Icon) syncStyle() {
	parts := make([]string, 0, len(ic.props)+1)
	if base := strings.TrimSuffix(strings.TrimSpace(ic.baseStyle), ";"); base != "" {
		parts = append(parts, base)
	}
	for _, p := range ic.props {
		parts = append(parts, p.name+": "+p.value)
	}
	setAttr(ic.root, "style", strings.Join(parts, "; "))
}

// SetEyeColor fills the ellipse of the eye in slot. It reports false when
// the template has no such eye or the eye has no ellipse.
func (ic *Icon) SetEyeColor(slot int, color string) bool {
	eye, ok := ic.byID[EyeID(slot)]
	if !ok {
		return false
	}
	ellipse := findElement(eye, "ellipse")
	if ellipse == nil {
		return false
	}
	setStyleProperty(ellipse, "fill", color)
	setAttr(ellipse, "data-color", color)
	return true
}

// EyeColor returns the color applied to slot, empty when none was applied.
func (ic *Icon) EyeColor(slot int) string {
	eye, ok := ic.byID[EyeID(slot)]
	if !ok {
		return ""
	}
	ellipse := findElement(eye, "ellipse")
	if ellipse == nil {
		return ""
	}
	return attr(ellipse, "data-color")
}

// SetHighlight puts a parameter sub-shape at level, replacing any previous
// level. Classes go on the element itself when it is a path and on every
// path below it.
func (ic *Icon) SetHighlight(paramID string, level Highlight) {
	if level == HighlightNone {
		delete(ic.levels, paramID)
	} else {
		ic.levels[paramID] = level
	}

	n, ok := ic.byID[paramID]
	if !ok {
		return
	}
	walk(n, func(m *html.Node) {
		if m.Type != html.ElementNode || m.Data != "path" {
			return
		}
		removeClasses(m, ClassDimmed, ClassFamily, ClassFull)
		if c := level.Class(); c != "" {
			addClass(m, c)
		}
	})
}

// Highlight returns the current level of a parameter sub-shape.
func (ic *Icon) Highlight(paramID string) Highlight {
	return ic.levels[paramID]
}

// ClearHighlights removes every highlight class from the document.
func (ic *Icon) ClearHighlights() {
	clear(ic.levels)
	walk(ic.root, func(n *html.Node) {
		if n.Type == html.ElementNode {
			removeClasses(n, ClassDimmed, ClassFamily, ClassFull)
		}
	})
}

// ClassState returns the highlight level of every highlighted parameter.
func (ic *Icon) ClassState() map[string]Highlight {
	out := make(map[string]Highlight, len(ic.levels))
	for id, level := range ic.levels {
		out[id] = level
	}
	return out
}

// Render writes the icon document.
func (ic *Icon) Render(w io.Writer) error {
	if err := html.Render(w, ic.root); err != nil {
		return fmt.Errorf("render icon: %w", err)
	}
	return nil
}

// String renders the icon, returning an empty string on failure.
func (ic *Icon) String() string {
	var b strings.Builder
	if err := ic.Render(&b); err != nil {
		return ""
	}
	return b.String()
}
