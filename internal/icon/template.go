package icon

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoSVG is returned when a template document has no svg element.
var ErrNoSVG = errors.New("icon template has no svg element")

//go:embed assets/epea.svg
var defaultTemplate []byte

// Template is a parsed, immutable icon document. Instances are deep copies.
type Template struct {
	root *html.Node
}

// ParseTemplate parses a vector document. XML prologs and doctypes are ignored.
func ParseTemplate(r io.Reader) (*Template, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse icon template: %w", err)
	}
	for _, n := range nodes {
		if svg := findElement(n, "svg"); svg != nil {
			return &Template{root: cloneNode(svg)}, nil
		}
	}
	return nil, ErrNoSVG
}

// DefaultTemplate returns the template shipped with the binary.
func DefaultTemplate() (*Template, error) {
	return ParseTemplate(bytes.NewReader(defaultTemplate))
}

// Instantiate returns a fresh icon backed by a deep copy of the template.
func (t *Template) Instantiate() *Icon {
	root := cloneNode(t.root)
	ic := &Icon{
		root:      root,
		byID:      make(map[string]*html.Node),
		baseStyle: attr(root, "style"),
		levels:    make(map[string]Highlight),
	}
	walk(root, func(n *html.Node) {
		if id := attr(n, "id"); id != "" {
			if _, ok := ic.byID[id]; !ok {
				ic.byID[id] = n
			}
		}
	})
	return ic
}

func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(cloneNode(ch))
	}
	return c
}

func findElement(n *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(n, func(m *html.Node) {
		if found == nil && m.Type == html.ElementNode && m.Data == tag {
			found = m
		}
	})
	return found
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		walk(ch, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
