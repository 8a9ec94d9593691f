package icon

import (
	"strings"

	"golang.org/x/net/html"
)

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// addClass appends class when absent, keeping the existing order.
func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	classes := strings.Fields(attr(n, "class"))
	setAttr(n, "class", strings.Join(append(classes, class), " "))
}

// removeClasses drops the given classes and removes the attribute when it
// ends up empty, so clearing restores the template's original markup.
func removeClasses(n *html.Node, remove ...string) {
	current := strings.Fields(attr(n, "class"))
	if len(current) == 0 {
		return
	}
	kept := current[:0]
	for _, c := range current {
		drop := false
		for _, r := range remove {
			if c == r {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(kept, " "))
}

// setStyleProperty sets one declaration in an inline style attribute.
func setStyleProperty(n *html.Node, prop, val string) {
	var decls []string
	replaced := false
	for _, d := range strings.Split(attr(n, "style"), ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, _, _ := strings.Cut(d, ":")
		if strings.TrimSpace(name) == prop {
			d = prop + ": " + val
			replaced = true
		}
		decls = append(decls, d)
	}
	if !replaced {
		decls = append(decls, prop+": "+val)
	}
	setAttr(n, "style", strings.Join(decls, "; "))
}
