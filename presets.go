package safelist

// None returns a policy that allows no tags at all. Cleaning with it
// reduces HTML to its text content.
func None() *Policy {
	return NewPolicy()
}

// SimpleText returns a policy that allows only simple text
// formatting: b, em, i, strong, u. All other tags and all attributes
// are removed.
func SimpleText() *Policy {
	return NewPolicy().
		AddTags("b", "em", "i", "strong", "u")
}

// Basic returns a policy that allows a fuller range of text nodes: a,
// b, blockquote, br, cite, code, dd, dl, dt, em, i, li, ol, p, pre,
// q, small, span, strike, strong, sub, sup, u, ul, and appropriate
// attributes.
//
// Links (a elements) can point to http, https, ftp, mailto, and have
// an enforced rel=nofollow attribute. Does not allow images.
func Basic() *Policy {
	return NewPolicy().
		AddTags(
			"a", "b", "blockquote", "br", "cite", "code", "dd", "dl", "dt", "em",
			"i", "li", "ol", "p", "pre", "q", "small", "span", "strike", "strong", "sub",
			"sup", "u", "ul").
		AddAttributes("a", "href").
		AddAttributes("blockquote", "cite").
		AddAttributes("q", "cite").
		AddProtocols("a", "href", "ftp", "http", "https", "mailto").
		AddProtocols("blockquote", "cite", "http", "https").
		AddProtocols("cite", "cite", "http", "https").
		AddEnforcedAttribute("a", "rel", "nofollow")
}

// BasicWithImages returns the [Basic] policy extended with img tags,
// with appropriate attributes and src pointing to http or https.
func BasicWithImages() *Policy {
	return Basic().
		AddTags("img").
		AddAttributes("img", "align", "alt", "height", "src", "title", "width").
		AddProtocols("img", "src", "http", "https")
}

// Relaxed returns a policy that allows a full range of text and
// structural body HTML: a, b, blockquote, br, caption, cite, code,
// col, colgroup, dd, div, dl, dt, em, h1, h2, h3, h4, h5, h6, i, img,
// li, ol, p, pre, q, small, span, strike, strong, sub, sup, table,
// tbody, td, tfoot, th, thead, tr, u, ul.
//
// Links here carry no enforced rel=nofollow attribute; add one if you
// want it.
func Relaxed() *Policy {
	return NewPolicy().
		AddTags(
			"a", "b", "blockquote", "br", "caption", "cite", "code", "col",
			"colgroup", "dd", "div", "dl", "dt", "em", "h1", "h2", "h3", "h4", "h5", "h6",
			"i", "img", "li", "ol", "p", "pre", "q", "small", "span", "strike", "strong",
			"sub", "sup", "table", "tbody", "td", "tfoot", "th", "thead", "tr", "u",
			"ul").
		AddAttributes("a", "href", "title").
		AddAttributes("blockquote", "cite").
		AddAttributes("col", "span", "width").
		AddAttributes("colgroup", "span", "width").
		AddAttributes("img", "align", "alt", "height", "src", "title", "width").
		AddAttributes("ol", "start", "type").
		AddAttributes("q", "cite").
		AddAttributes("table", "summary", "width").
		AddAttributes("td", "abbr", "axis", "colspan", "rowspan", "width").
		AddAttributes("th", "abbr", "axis", "colspan", "rowspan", "scope", "width").
		AddAttributes("ul", "type").
		AddProtocols("a", "href", "ftp", "http", "https", "mailto").
		AddProtocols("blockquote", "cite", "http", "https").
		AddProtocols("cite", "cite", "http", "https").
		AddProtocols("img", "src", "http", "https").
		AddProtocols("q", "cite", "http", "https")
}
