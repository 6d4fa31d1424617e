package safelist

import (
	"net/url"
	"sort"
	"strings"
)

// Attribute is a key/value pair returned by EnforcedAttributes.
type Attribute struct {
	Key   string
	Value string
}

const (
	hrefAttr attrKey = "href"
	srcAttr  attrKey = "src"
)

// IsSafeTag reports whether the tag name is allowed by this policy.
// Blank input reports false.
func (p *Policy) IsSafeTag(tag string) bool {
	if strings.TrimSpace(tag) == "" {
		return false
	}
	_, ok := p.tagNames[tagNameOf(tag)]
	return ok
}

// IsSafeElement reports whether the element is allowed by this
// policy. The tag must be allowed; additionally, when the tag has
// domain rules, the element's URL is checked against them — href
// first if present, else src. Only that one attribute is judged (an
// element whose href carries no domain rule is not re-checked on
// src), and URL attributes beyond href and src do not participate.
// An element with neither attribute passes the domain gate.
func (p *Policy) IsSafeElement(el Element) bool {
	if el == nil {
		return false
	}
	tag := el.TagName()
	if !p.IsSafeTag(tag) {
		return false
	}
	attrDomains, ok := p.domains[tagNameOf(tag)]
	if !ok {
		return true
	}
	if doms, ok := attrDomains[hrefAttr]; ok && el.HasAttr(string(hrefAttr)) {
		return p.validDomain(el, string(hrefAttr), doms)
	}
	if doms, ok := attrDomains[srcAttr]; ok && el.HasAttr(string(srcAttr)) {
		return p.validDomain(el, string(srcAttr), doms)
	}
	return true
}

// IsSafeAttribute reports whether the attribute key on el is allowed
// for tag. The key must be in the tag's attribute rules (or, failing
// that, in the [AllTags] wildcard rules); when a protocol rule exists
// for the (tag, key) pair, the attribute's URL must also resolve to
// an allowed protocol. The check is pure: the element is never
// modified. Call [Policy.ResolveAttribute] after acceptance to
// absolutize the value.
func (p *Policy) IsSafeAttribute(tag string, el Element, key string) bool {
	if strings.TrimSpace(tag) == "" || strings.TrimSpace(key) == "" {
		return false
	}
	tn := tagNameOf(tag)
	k := attrKeyOf(key)

	if set, ok := p.attributes[tn]; ok {
		if _, ok := set[k]; ok {
			if attrProts, ok := p.protocols[tn]; ok {
				// ok if no protocol rule for this key; otherwise test
				prots, ok := attrProts[k]
				return !ok || p.validProtocol(el, key, prots)
			}
			return true
		}
	}
	// no rule for this tag, try the wildcard
	return tn != AllTags && p.IsSafeAttribute(AllTags, el, key)
}

// EnforcedAttributes returns the attributes that must be set on every
// instance of tag, sorted by key. The slice is freshly allocated and
// empty when the tag has no enforced attributes.
func (p *Policy) EnforcedAttributes(tag string) []Attribute {
	var attrs []Attribute
	if strings.TrimSpace(tag) == "" {
		return attrs
	}
	for key, value := range p.enforced[tagNameOf(tag)] {
		attrs = append(attrs, Attribute{Key: string(key), Value: string(value)})
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
	return attrs
}

// ResolveAttribute rewrites the named attribute on el to its absolute
// form, resolved against the document's base URI. It is a no-op when
// the policy preserves relative links or the value cannot be
// resolved. Traversals should call it only on attributes that
// IsSafeAttribute has accepted.
func (p *Policy) ResolveAttribute(el Element, key string) {
	if p.preserveRelativeLinks {
		return
	}
	if abs := el.AbsURL(key); abs != "" {
		el.SetAttr(key, abs)
	}
}

// validProtocol tests the attribute's URL against the allowed
// protocol set. The value is judged in its resolved absolute form
// when the base URI permits; a value that cannot be resolved is
// judged as-is, so custom schemes (tel:, etc.) can still match an
// allowed protocol.
func (p *Policy) validProtocol(el Element, key string, prots map[protocol]struct{}) bool {
	value := el.AbsURL(key)
	if value == "" {
		value = el.Attr(key)
	}
	lower := strings.ToLower(value)
	for prot := range prots {
		if prot == anchorProtocol {
			if isValidAnchor(value) {
				return true
			}
			continue
		}
		if strings.HasPrefix(lower, string(prot)+":") {
			return true
		}
	}
	return false
}

// validDomain tests the attribute's URL host against the allowed
// domain set. Values that cannot be parsed into a URL with a host
// fail closed.
func (p *Policy) validDomain(el Element, key string, doms map[urlDomain]struct{}) bool {
	if len(doms) == 0 {
		return true
	}
	raw := el.Attr(key)
	if strings.TrimSpace(raw) == "" {
		return false
	}
	if strings.HasPrefix(raw, "#") {
		return isValidAnchor(raw)
	}
	abs := el.AbsURL(key)
	if abs == "" {
		// no base URI to resolve against; assume a bare host
		if strings.HasPrefix(raw, "//") {
			abs = "http:" + raw
		} else {
			abs = "http://" + raw
		}
	}
	u, err := url.Parse(abs)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for dom := range doms {
		if host == string(dom) || strings.HasSuffix(host, "."+string(dom)) {
			return true
		}
	}
	return false
}

// isValidAnchor reports whether value is an in-page anchor link: it
// starts with "#" and contains no whitespace.
func isValidAnchor(value string) bool {
	return strings.HasPrefix(value, "#") && !strings.ContainsAny(value, " \t\n\v\f\r")
}
