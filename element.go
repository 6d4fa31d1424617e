package safelist

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Element is the view of a markup element that the decision engine
// needs. The traversal walking the document supplies one per element;
// [NodeElement] implements it for golang.org/x/net/html node trees,
// but any representation that can answer these five questions works.
type Element interface {
	// TagName returns the element's tag name.
	TagName() string

	// HasAttr reports whether the named attribute is present.
	HasAttr(key string) bool

	// Attr returns the raw, unresolved value of the named attribute,
	// or "" if it is not present.
	Attr(key string) string

	// SetAttr sets (or adds) the named attribute. The engine calls it
	// only from ResolveAttribute, to absolutize URL values.
	SetAttr(key, value string)

	// AbsURL resolves the named attribute's value against the
	// document's base URI and returns the absolute URL, or "" when
	// the attribute is absent, the value cannot be parsed, or there
	// is no base URI and the value is not already absolute.
	AbsURL(key string) string
}

// NodeElement adapts a golang.org/x/net/html element node, plus the
// document's base URI, to the [Element] interface. A nil base is
// fine; relative URLs are then unresolvable.
type NodeElement struct {
	Node *html.Node
	Base *url.URL
}

// TagName returns the node's lower-cased tag name.
func (e *NodeElement) TagName() string {
	return strings.ToLower(e.Node.Data)
}

// HasAttr reports whether the node carries the named attribute.
func (e *NodeElement) HasAttr(key string) bool {
	for _, a := range e.Node.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute on the node, or "" if
// not present.
func (e *NodeElement) Attr(key string) string {
	for _, a := range e.Node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets (or adds) the attribute key=value on the node.
func (e *NodeElement) SetAttr(key, value string) {
	for i, a := range e.Node.Attr {
		if a.Key == key {
			e.Node.Attr[i].Val = value
			return
		}
	}
	e.Node.Attr = append(e.Node.Attr, html.Attribute{Key: key, Val: value})
}

// AbsURL resolves the named attribute against the base URI. With no
// base, the value is returned only if it is absolute on its own.
func (e *NodeElement) AbsURL(key string) string {
	raw := strings.TrimSpace(e.Attr(key))
	if raw == "" {
		return ""
	}
	if e.Base != nil {
		u, err := e.Base.Parse(raw)
		if err != nil {
			return ""
		}
		return u.String()
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return ""
	}
	return u.String()
}
