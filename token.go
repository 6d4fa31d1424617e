package safelist

import "strings"

// The registries key on a distinct defined type per namespace so that
// a tag name can never be used where an attribute key is expected,
// even when the underlying text matches. Construction normalizes the
// input; the stored form is what every comparison and map lookup uses.

type tagName string
type attrKey string
type attrValue string
type protocol string
type urlDomain string

// AllTags is the pseudo tag applying an attribute rule to every tag.
const AllTags = ":all"

// anchorProtocol is the pseudo protocol admitting in-page anchors.
const anchorProtocol protocol = "#"

func tagNameOf(v string) tagName {
	return tagName(normalToken("tag", v))
}

func attrKeyOf(v string) attrKey {
	return attrKey(normalToken("attribute key", v))
}

func attrValueOf(v string) attrValue {
	v = strings.TrimSpace(v)
	if v == "" {
		panic(&InvalidTokenError{Namespace: "attribute value", Value: v})
	}
	// Values are emitted, not compared, so their case is preserved.
	return attrValue(v)
}

func protocolOf(v string) protocol {
	return protocol(normalToken("protocol", v))
}

func urlDomainOf(v string) urlDomain {
	return urlDomain(normalToken("domain", v))
}

// normalToken folds a lookup token to its canonical lower-case form.
// Empty input is a configuration bug and fails loudly.
func normalToken(namespace, v string) string {
	t := strings.ToLower(strings.TrimSpace(v))
	if t == "" {
		panic(&InvalidTokenError{Namespace: namespace, Value: v})
	}
	return t
}
