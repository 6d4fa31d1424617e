package safelist_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/njchilds90/safelist"
)

// elem builds a detached element node with the given attribute
// key/value pairs and no base URI.
func elem(tag string, kv ...string) *safelist.NodeElement {
	return elemBase("", tag, kv...)
}

// elemBase is elem with a document base URI for relative resolution.
func elemBase(base, tag string, kv ...string) *safelist.NodeElement {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	var u *url.URL
	if base != "" {
		var err error
		u, err = url.Parse(base)
		if err != nil {
			panic(err)
		}
	}
	return &safelist.NodeElement{Node: n, Base: u}
}

func Test_IsSafeAttribute(t *testing.T) {
	t.Run("should reject everything on an empty policy", func(t *testing.T) {
		p := safelist.None()
		assert.False(t, p.IsSafeAttribute("a", elem("a", "href", "http://x.com"), "href"))
	})

	t.Run("should allow http links under the basic policy", func(t *testing.T) {
		p := safelist.Basic()
		assert.True(t, p.IsSafeAttribute("a", elem("a", "href", "http://x.com"), "href"))
	})

	t.Run("should reject javascript links under the basic policy", func(t *testing.T) {
		p := safelist.Basic()
		assert.False(t, p.IsSafeAttribute("a", elem("a", "href", "javascript:alert(1)"), "href"))
	})

	t.Run("should match the scheme case-insensitively", func(t *testing.T) {
		p := safelist.Basic()
		assert.True(t, p.IsSafeAttribute("a", elem("a", "href", "HTTP://x.com"), "href"))
	})

	t.Run("should reject attribute keys the tag does not allow", func(t *testing.T) {
		p := safelist.Basic()
		assert.False(t, p.IsSafeAttribute("a", elem("a", "onclick", "steal()"), "onclick"))
	})

	t.Run("should accept without restriction when no protocol rule exists", func(t *testing.T) {
		p := safelist.None().AddAttributes("a", "href")
		assert.True(t, p.IsSafeAttribute("a", elem("a", "href", "weird:anything"), "href"))
	})

	t.Run("should report false for blank inputs", func(t *testing.T) {
		p := safelist.Basic()
		assert.False(t, p.IsSafeAttribute("", elem("a", "href", "http://x.com"), "href"))
		assert.False(t, p.IsSafeAttribute("a", elem("a", "href", "http://x.com"), ""))
	})
}

func Test_WildcardAttributeFallback(t *testing.T) {
	t.Run("should allow a wildcard attribute on any tag", func(t *testing.T) {
		p := safelist.SimpleText().AddAttributes(safelist.AllTags, "class")
		assert.True(t, p.IsSafeAttribute("b", elem("b", "class", "x"), "class"))
	})

	t.Run("should fall through to the wildcard when the tag's own rules miss", func(t *testing.T) {
		p := safelist.None().
			AddAttributes("a", "href").
			AddAttributes(safelist.AllTags, "class")
		assert.True(t, p.IsSafeAttribute("a", elem("a", "class", "x"), "class"))
	})

	t.Run("should not loop when the wildcard itself has no rule", func(t *testing.T) {
		p := safelist.None()
		assert.False(t, p.IsSafeAttribute(safelist.AllTags, elem("p", "class", "x"), "class"))
	})

	t.Run("should apply wildcard protocol rules through the fallback", func(t *testing.T) {
		p := safelist.None().
			AddAttributes(safelist.AllTags, "href").
			AddProtocols(safelist.AllTags, "href", "https")
		assert.True(t, p.IsSafeAttribute("a", elem("a", "href", "https://x.com"), "href"))
		assert.False(t, p.IsSafeAttribute("a", elem("a", "href", "http://x.com"), "href"))
	})
}

func Test_ProtocolValidation(t *testing.T) {
	t.Run("should accept anchors via the # pseudo protocol", func(t *testing.T) {
		p := safelist.None().AddAttributes("a", "href").AddProtocols("a", "href", "#")
		assert.True(t, p.IsSafeAttribute("a", elem("a", "href", "#section"), "href"))
	})

	t.Run("should reject anchors containing whitespace", func(t *testing.T) {
		p := safelist.None().AddAttributes("a", "href").AddProtocols("a", "href", "#")
		assert.False(t, p.IsSafeAttribute("a", elem("a", "href", "# bad"), "href"))
		assert.False(t, p.IsSafeAttribute("a", elem("a", "href", "#bad\tanchor"), "href"))
	})

	t.Run("should reject non-anchor values when only # is allowed", func(t *testing.T) {
		p := safelist.None().AddAttributes("a", "href").AddProtocols("a", "href", "#")
		assert.False(t, p.IsSafeAttribute("a", elem("a", "href", "http://x.com"), "href"))
	})

	t.Run("should accept custom schemes that cannot be resolved", func(t *testing.T) {
		p := safelist.None().AddAttributes("a", "href").AddProtocols("a", "href", "tel")
		assert.True(t, p.IsSafeAttribute("a", elem("a", "href", "tel:+1-555-0100"), "href"))
	})

	t.Run("should resolve relative links against the base URI", func(t *testing.T) {
		p := safelist.Basic()
		el := elemBase("https://example.com/dir/", "a", "href", "page.html")
		assert.True(t, p.IsSafeAttribute("a", el, "href"))
	})

	t.Run("should reject relative links without a base URI", func(t *testing.T) {
		p := safelist.Basic()
		assert.False(t, p.IsSafeAttribute("a", elem("a", "href", "page.html"), "href"))
	})

	t.Run("should not mutate the element", func(t *testing.T) {
		p := safelist.Basic()
		el := elemBase("https://example.com/dir/", "a", "href", "page.html")
		require.True(t, p.IsSafeAttribute("a", el, "href"))
		assert.Equal(t, "page.html", el.Attr("href"))
	})
}

func Test_ResolveAttribute(t *testing.T) {
	t.Run("should absolutize by default", func(t *testing.T) {
		p := safelist.Basic()
		el := elemBase("https://example.com/dir/", "a", "href", "page.html")
		p.ResolveAttribute(el, "href")
		assert.Equal(t, "https://example.com/dir/page.html", el.Attr("href"))
	})

	t.Run("should leave values alone when preserving relative links", func(t *testing.T) {
		p := safelist.Basic().PreserveRelativeLinks(true)
		el := elemBase("https://example.com/dir/", "a", "href", "page.html")
		p.ResolveAttribute(el, "href")
		assert.Equal(t, "page.html", el.Attr("href"))
	})

	t.Run("should leave unresolvable values alone", func(t *testing.T) {
		p := safelist.Basic()
		el := elem("a", "href", "page.html")
		p.ResolveAttribute(el, "href")
		assert.Equal(t, "page.html", el.Attr("href"))
	})
}

func Test_DomainValidation(t *testing.T) {
	link := func(href string) *safelist.NodeElement { return elem("a", "href", href) }
	p := safelist.Basic().AddDomains("a", "href", "knowings.fr")

	t.Run("should accept the exact host", func(t *testing.T) {
		assert.True(t, p.IsSafeElement(link("http://knowings.fr/page")))
	})

	t.Run("should accept subdomains", func(t *testing.T) {
		assert.True(t, p.IsSafeElement(link("http://a.b.knowings.fr/page")))
	})

	t.Run("should match hosts case-insensitively", func(t *testing.T) {
		assert.True(t, p.IsSafeElement(link("http://KNOWINGS.FR/page")))
	})

	t.Run("should reject partial label matches", func(t *testing.T) {
		assert.False(t, p.IsSafeElement(link("http://notknowings.fr/page")))
	})

	t.Run("should reject other hosts", func(t *testing.T) {
		assert.False(t, p.IsSafeElement(link("http://evil.example/page")))
	})

	t.Run("should judge anchor values as anchors", func(t *testing.T) {
		assert.True(t, p.IsSafeElement(link("#section")))
		assert.False(t, p.IsSafeElement(link("# bad")))
	})

	t.Run("should reject blank values", func(t *testing.T) {
		assert.False(t, p.IsSafeElement(link("  ")))
	})

	t.Run("should coerce bare hosts with an http prefix", func(t *testing.T) {
		assert.True(t, p.IsSafeElement(link("knowings.fr/page")))
		assert.True(t, p.IsSafeElement(link("//cdn.knowings.fr/lib.js")))
	})

	t.Run("should fail closed on unparsable URLs", func(t *testing.T) {
		assert.False(t, p.IsSafeElement(link("http://kno wings.fr/")))
	})

	t.Run("should resolve relative values against the base URI", func(t *testing.T) {
		el := elemBase("http://docs.knowings.fr/", "a", "href", "guide.html")
		assert.True(t, p.IsSafeElement(el))
		other := elemBase("http://other.example/", "a", "href", "guide.html")
		assert.False(t, p.IsSafeElement(other))
	})
}

func Test_IsSafeElement(t *testing.T) {
	t.Run("should reject disallowed tags regardless of domains", func(t *testing.T) {
		p := safelist.None().AddDomains("iframe", "src", "example.com")
		// AddDomains does not allow the tag; only AddTags and friends do
		assert.False(t, p.IsSafeElement(elem("div")))
		assert.False(t, p.IsSafeElement(elem("iframe", "src", "http://example.com/")))
	})

	t.Run("should accept allowed tags with no domain rules", func(t *testing.T) {
		p := safelist.Basic()
		assert.True(t, p.IsSafeElement(elem("a", "href", "http://anywhere.example")))
	})

	t.Run("should accept elements with no URL attribute to judge", func(t *testing.T) {
		p := safelist.Basic().AddDomains("a", "href", "knowings.fr")
		assert.True(t, p.IsSafeElement(elem("a", "title", "plain")))
	})

	t.Run("should check href before src", func(t *testing.T) {
		p := safelist.BasicWithImages().
			AddAttributes("a", "href").
			AddDomains("a", "href", "knowings.fr").
			AddDomains("a", "src", "knowings.fr")
		el := elem("a", "href", "http://evil.example/", "src", "http://knowings.fr/")
		assert.False(t, p.IsSafeElement(el))
	})

	t.Run("should judge src when only src carries a rule", func(t *testing.T) {
		p := safelist.BasicWithImages().AddDomains("img", "src", "knowings.fr")
		assert.True(t, p.IsSafeElement(elem("img", "src", "http://img.knowings.fr/x.png")))
		assert.False(t, p.IsSafeElement(elem("img", "src", "http://evil.example/x.png")))
	})

	t.Run("should reject nil elements", func(t *testing.T) {
		assert.False(t, safelist.Basic().IsSafeElement(nil))
	})
}

func Test_EmptyPolicyRejectsEverything(t *testing.T) {
	p := safelist.None()
	assert.False(t, p.IsSafeTag("p"))
	assert.False(t, p.IsSafeElement(elem("p")))
	assert.False(t, p.IsSafeAttribute("p", elem("p", "class", "x"), "class"))
	assert.Empty(t, p.EnforcedAttributes("p"))
}
