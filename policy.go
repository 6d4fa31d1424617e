package safelist

import "strings"

// Policy defines what HTML is considered safe: which element tags are
// allowed through, which attributes each tag may carry, which URL
// protocols and domains those attributes may point at, and which
// attributes are forcibly set on output.
//
// Start from one of the presets ([None], [SimpleText], [Basic],
// [BasicWithImages], [Relaxed]) or from [NewPolicy], then tweak it
// with the fluent Add*/Remove* methods. Build the policy once, up
// front; after configuration it should be treated as read-only.
//
// If you are going to extend a policy, be careful: URL attributes in
// particular are XSS vectors and need protocol restrictions.
type Policy struct {
	tagNames   map[tagName]struct{}
	attributes map[tagName]map[attrKey]struct{}
	enforced   map[tagName]map[attrKey]attrValue
	protocols  map[tagName]map[attrKey]map[protocol]struct{}
	domains    map[tagName]map[attrKey]map[urlDomain]struct{}

	// When false (default), URL attributes that pass protocol
	// validation are rewritten to their resolved absolute form by
	// ResolveAttribute. When true, relative values are left as-is.
	preserveRelativeLinks bool
}

// NewPolicy returns an empty policy. It allows no tags at all, so
// cleaning with it strips every element and keeps only text.
func NewPolicy() *Policy {
	return &Policy{
		tagNames:   make(map[tagName]struct{}),
		attributes: make(map[tagName]map[attrKey]struct{}),
		enforced:   make(map[tagName]map[attrKey]attrValue),
		protocols:  make(map[tagName]map[attrKey]map[protocol]struct{}),
		domains:    make(map[tagName]map[attrKey]map[urlDomain]struct{}),
	}
}

// AddTags allows the named elements. Unknown names are fine; matching
// is on the lower-cased tag name. Adding a tag twice is a no-op.
func (p *Policy) AddTags(tags ...string) *Policy {
	for _, tag := range tags {
		mustArg("AddTags", "tag", tag)
		p.tagNames[tagNameOf(tag)] = struct{}{}
	}
	return p
}

// RemoveTags disallows the named elements. Removing an allowed tag
// also drops its attribute, enforced-attribute, protocol, and domain
// rules, so re-adding the tag later starts from a clean slate.
func (p *Policy) RemoveTags(tags ...string) *Policy {
	for _, tag := range tags {
		mustArg("RemoveTags", "tag", tag)
		tn := tagNameOf(tag)
		if _, ok := p.tagNames[tn]; ok {
			delete(p.tagNames, tn)
			delete(p.attributes, tn)
			delete(p.enforced, tn)
			delete(p.protocols, tn)
			delete(p.domains, tn)
		}
	}
	return p
}

// AddAttributes allows the given attribute keys on tag. The tag is
// added to the allowed tag list if it is not there yet. Use [AllTags]
// as the tag to allow an attribute on every tag, e.g.
// AddAttributes(safelist.AllTags, "class").
func (p *Policy) AddAttributes(tag string, keys ...string) *Policy {
	mustArg("AddAttributes", "tag", tag)
	if len(keys) == 0 {
		panic(&InvalidArgumentError{Op: "AddAttributes", Reason: "no attribute keys supplied"})
	}

	tn := tagNameOf(tag)
	p.tagNames[tn] = struct{}{}
	set := p.attributes[tn]
	if set == nil {
		set = make(map[attrKey]struct{})
		p.attributes[tn] = set
	}
	for _, key := range keys {
		mustArg("AddAttributes", "attribute key", key)
		set[attrKeyOf(key)] = struct{}{}
	}
	return p
}

// RemoveAttributes disallows the given attribute keys on tag. With
// [AllTags] as the tag, the keys are removed from every tag's
// attribute rules as well as from the wildcard rules themselves.
func (p *Policy) RemoveAttributes(tag string, keys ...string) *Policy {
	mustArg("RemoveAttributes", "tag", tag)
	if len(keys) == 0 {
		panic(&InvalidArgumentError{Op: "RemoveAttributes", Reason: "no attribute keys supplied"})
	}

	tn := tagNameOf(tag)
	removed := make([]attrKey, 0, len(keys))
	for _, key := range keys {
		mustArg("RemoveAttributes", "attribute key", key)
		removed = append(removed, attrKeyOf(key))
	}

	if _, ok := p.tagNames[tn]; ok {
		if set := p.attributes[tn]; set != nil {
			for _, key := range removed {
				delete(set, key)
			}
			if len(set) == 0 {
				delete(p.attributes, tn)
			}
		}
	}
	if tn == AllTags {
		for name, set := range p.attributes {
			for _, key := range removed {
				delete(set, key)
			}
			if len(set) == 0 {
				delete(p.attributes, name)
			}
		}
	}
	return p
}

// AddEnforcedAttribute makes every instance of tag carry key=value on
// output, overriding any input value. The tag is added to the allowed
// tag list if necessary. E.g. AddEnforcedAttribute("a", "rel",
// "nofollow") makes all links render with rel="nofollow".
func (p *Policy) AddEnforcedAttribute(tag, key, value string) *Policy {
	mustArg("AddEnforcedAttribute", "tag", tag)
	mustArg("AddEnforcedAttribute", "attribute key", key)
	mustArg("AddEnforcedAttribute", "attribute value", value)

	tn := tagNameOf(tag)
	p.tagNames[tn] = struct{}{}
	attrs := p.enforced[tn]
	if attrs == nil {
		attrs = make(map[attrKey]attrValue)
		p.enforced[tn] = attrs
	}
	attrs[attrKeyOf(key)] = attrValueOf(value)
	return p
}

// RemoveEnforcedAttribute removes a previously configured enforced
// attribute from tag.
func (p *Policy) RemoveEnforcedAttribute(tag, key string) *Policy {
	mustArg("RemoveEnforcedAttribute", "tag", tag)
	mustArg("RemoveEnforcedAttribute", "attribute key", key)

	tn := tagNameOf(tag)
	if _, ok := p.tagNames[tn]; ok {
		if attrs := p.enforced[tn]; attrs != nil {
			delete(attrs, attrKeyOf(key))
			if len(attrs) == 0 {
				delete(p.enforced, tn)
			}
		}
	}
	return p
}

// AddProtocols restricts the URL protocols permitted in the given
// attribute on tag. An attribute with no protocol rule accepts any
// value; once a rule exists, only the listed protocols pass. Use the
// pseudo protocol "#" to also admit in-page anchor links, e.g.
// AddProtocols("a", "href", "#").
func (p *Policy) AddProtocols(tag, key string, protocols ...string) *Policy {
	mustArg("AddProtocols", "tag", tag)
	mustArg("AddProtocols", "attribute key", key)

	tn := tagNameOf(tag)
	k := attrKeyOf(key)
	attrs := p.protocols[tn]
	if attrs == nil {
		attrs = make(map[attrKey]map[protocol]struct{})
		p.protocols[tn] = attrs
	}
	set := attrs[k]
	if set == nil {
		set = make(map[protocol]struct{})
		attrs[k] = set
	}
	for _, prot := range protocols {
		mustArg("AddProtocols", "protocol", prot)
		set[protocolOf(prot)] = struct{}{}
	}
	return p
}

// RemoveProtocols removes permitted protocols from the given
// attribute on tag. Emptied protocol sets are dropped entirely, so
// the attribute reverts to accepting any value.
func (p *Policy) RemoveProtocols(tag, key string, protocols ...string) *Policy {
	mustArg("RemoveProtocols", "tag", tag)
	mustArg("RemoveProtocols", "attribute key", key)

	tn := tagNameOf(tag)
	k := attrKeyOf(key)
	if attrs := p.protocols[tn]; attrs != nil {
		if set := attrs[k]; set != nil {
			for _, prot := range protocols {
				mustArg("RemoveProtocols", "protocol", prot)
				delete(set, protocolOf(prot))
			}
			if len(set) == 0 {
				delete(attrs, k)
				if len(attrs) == 0 {
					delete(p.protocols, tn)
				}
			}
		}
	}
	return p
}

// AddDomains restricts the URL hosts permitted in the given attribute
// on tag. A host matches a domain when it equals it or is a subdomain
// of it ("a.b.example.com" matches "example.com"). An attribute with
// no domain rule accepts any host.
func (p *Policy) AddDomains(tag, key string, domains ...string) *Policy {
	mustArg("AddDomains", "tag", tag)
	mustArg("AddDomains", "attribute key", key)

	tn := tagNameOf(tag)
	k := attrKeyOf(key)
	attrs := p.domains[tn]
	if attrs == nil {
		attrs = make(map[attrKey]map[urlDomain]struct{})
		p.domains[tn] = attrs
	}
	set := attrs[k]
	if set == nil {
		set = make(map[urlDomain]struct{})
		attrs[k] = set
	}
	for _, dom := range domains {
		mustArg("AddDomains", "domain", dom)
		set[urlDomainOf(dom)] = struct{}{}
	}
	return p
}

// RemoveDomains removes permitted domains from the given attribute on
// tag. Emptied domain sets are dropped entirely.
func (p *Policy) RemoveDomains(tag, key string, domains ...string) *Policy {
	mustArg("RemoveDomains", "tag", tag)
	mustArg("RemoveDomains", "attribute key", key)

	tn := tagNameOf(tag)
	k := attrKeyOf(key)
	if attrs := p.domains[tn]; attrs != nil {
		if set := attrs[k]; set != nil {
			for _, dom := range domains {
				mustArg("RemoveDomains", "domain", dom)
				delete(set, urlDomainOf(dom))
			}
			if len(set) == 0 {
				delete(attrs, k)
				if len(attrs) == 0 {
					delete(p.domains, tn)
				}
			}
		}
	}
	return p
}

// PreserveRelativeLinks controls whether ResolveAttribute rewrites
// relative URLs to their absolute form (false, the default) or leaves
// them untouched (true). Either way the link must still resolve to an
// allowed protocol against the document's base URI to be accepted; a
// relative link with no base URI is judged on its raw value.
func (p *Policy) PreserveRelativeLinks(preserve bool) *Policy {
	p.preserveRelativeLinks = preserve
	return p
}

// HasTag reports whether tag is currently allowed. Blank input
// reports false.
func (p *Policy) HasTag(tag string) bool {
	if strings.TrimSpace(tag) == "" {
		return false
	}
	_, ok := p.tagNames[tagNameOf(tag)]
	return ok
}

// HasAttribute reports whether the attribute key is currently allowed
// on tag. Blank input reports false.
func (p *Policy) HasAttribute(tag, key string) bool {
	if strings.TrimSpace(tag) == "" || strings.TrimSpace(key) == "" {
		return false
	}
	tn := tagNameOf(tag)
	if _, ok := p.tagNames[tn]; !ok {
		return false
	}
	set, ok := p.attributes[tn]
	if !ok {
		return false
	}
	_, ok = set[attrKeyOf(key)]
	return ok
}

// HasProtocol reports whether the protocol is currently permitted for
// the attribute key on tag. Blank input reports false.
func (p *Policy) HasProtocol(tag, key, prot string) bool {
	if strings.TrimSpace(tag) == "" || strings.TrimSpace(key) == "" || strings.TrimSpace(prot) == "" {
		return false
	}
	attrs, ok := p.protocols[tagNameOf(tag)]
	if !ok {
		return false
	}
	set, ok := attrs[attrKeyOf(key)]
	if !ok {
		return false
	}
	_, ok = set[protocolOf(prot)]
	return ok
}

// HasDomain reports whether the domain is currently permitted for the
// attribute key on tag. Blank input reports false.
func (p *Policy) HasDomain(tag, key, dom string) bool {
	if strings.TrimSpace(tag) == "" || strings.TrimSpace(key) == "" || strings.TrimSpace(dom) == "" {
		return false
	}
	attrs, ok := p.domains[tagNameOf(tag)]
	if !ok {
		return false
	}
	set, ok := attrs[attrKeyOf(key)]
	if !ok {
		return false
	}
	_, ok = set[urlDomainOf(dom)]
	return ok
}

func mustArg(op, what, v string) {
	if strings.TrimSpace(v) == "" {
		panic(&InvalidArgumentError{Op: op, Reason: "empty " + what})
	}
}
