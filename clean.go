package safelist

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Clean parses the HTML fragment, applies p, and returns the safe
// HTML. baseURL, which may be empty, is the document's base URI used
// to resolve relative links during protocol and domain validation.
// If p is nil, [Basic] is used.
//
// Elements the policy rejects are removed, but their children are
// kept and promoted in their place; to strip everything down to plain
// text, clean with [None]. Comments and doctypes are always removed.
func Clean(fragment, baseURL string, p *Policy) (string, error) {
	return CleanReader(strings.NewReader(fragment), baseURL, p)
}

// CleanReader reads an HTML fragment from r, applies p, and returns
// the safe HTML string.
func CleanReader(r io.Reader, baseURL string, p *Policy) (string, error) {
	if p == nil {
		p = Basic()
	}

	var base *url.URL
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return "", err
		}
		base = u
	}

	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	var walk func(n *html.Node)

	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(html.EscapeString(n.Data))

		case html.ElementNode:
			el := &NodeElement{Node: n, Base: base}
			tag := el.TagName()

			if !p.IsSafeElement(el) {
				if isRawTextElement(tag) {
					// script/style bodies are code, not content
					return
				}
				// drop the element, promote its children
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				return
			}

			n.Attr = cleanAttrs(p, el)
			for _, a := range p.EnforcedAttributes(tag) {
				el.SetAttr(a.Key, a.Value)
			}

			buf.WriteByte('<')
			buf.WriteString(tag)
			for _, a := range n.Attr {
				buf.WriteByte(' ')
				buf.WriteString(a.Key)
				buf.WriteString(`="`)
				buf.WriteString(html.EscapeString(a.Val))
				buf.WriteByte('"')
			}
			if isVoidElement(tag) {
				buf.WriteString(" />")
				return
			}
			buf.WriteByte('>')
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			buf.WriteString("</")
			buf.WriteString(tag)
			buf.WriteByte('>')

		case html.CommentNode, html.DoctypeNode:
			// strip

		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}

	// html.Parse wraps content in <html><head><body>; clean the body.
	body := findBody(doc)
	if body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	} else {
		walk(doc)
	}

	return buf.String(), nil
}

// cleanAttrs filters the element's attributes down to those the
// policy accepts, resolving accepted URL values to absolute form.
func cleanAttrs(p *Policy, el *NodeElement) []html.Attribute {
	tag := el.TagName()
	kept := make([]html.Attribute, 0, len(el.Node.Attr))
	for _, a := range el.Node.Attr {
		if p.IsSafeAttribute(tag, el, a.Key) {
			kept = append(kept, a)
		}
	}
	el.Node.Attr = kept
	for _, a := range kept {
		p.ResolveAttribute(el, a.Key)
	}
	return el.Node.Attr
}

// StripTags removes all HTML tags and returns plain text. Entity
// references are decoded.
func StripTags(fragment string) (string, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	body := findBody(doc)
	if body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return buf.String(), nil
}

// isRawTextElement reports whether the tag's content is raw text in
// the HTML parsing sense, so that dropping the element must drop its
// body too rather than promote it as visible text.
func isRawTextElement(tag string) bool {
	switch tag {
	case "script", "style", "title", "textarea",
		"xmp", "plaintext", "noembed", "noframes", "noscript":
		return true
	}
	return false
}

func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

func findBody(doc *html.Node) *html.Node {
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == "body" {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if r := find(c); r != nil {
				return r
			}
		}
		return nil
	}
	return find(doc)
}
