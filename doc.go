// Package safelist provides an allow-list policy engine for HTML
// sanitization.
//
// # Overview
//
// safelist decides, for a fragment of untrusted markup, which
// elements, attributes, attribute values, and link targets may pass
// through to trusted output. A [Policy] holds the allow-list
// registries; the Is* predicates answer, per element and attribute,
// whether a candidate is safe and what the attribute value should
// carry. [Clean] is a ready-made traversal over
// golang.org/x/net/html node trees driven by those predicates, but
// the engine works with any element representation that implements
// [Element].
//
// # Policies
//
// A [Policy] controls:
//   - Which element tags are allowed ([Policy.AddTags])
//   - Which attributes are allowed, per tag or for all tags ([Policy.AddAttributes], [AllTags])
//   - Which URL protocols an attribute may use, including in-page anchors ([Policy.AddProtocols])
//   - Which URL hosts an attribute may point at, including subdomains ([Policy.AddDomains])
//   - Attributes forcibly set on every instance of a tag ([Policy.AddEnforcedAttribute])
//   - Whether relative links are preserved or absolutized ([Policy.PreserveRelativeLinks])
//
// Five built-in policies are provided:
//   - [None] — no tags at all; strips markup to plain text.
//   - [SimpleText] — basic inline formatting only. Good for comment
//     sections.
//   - [Basic] — inline text and links, with protocol restrictions and
//     an enforced rel=nofollow on links.
//   - [BasicWithImages] — Basic plus img with http/https sources.
//   - [Relaxed] — full text and structural body HTML. Good starting
//     point for blog posts, articles, etc.
//
// # Security
//
// Everything not explicitly allowed is rejected. URL validation fails
// closed: an attribute whose value cannot be parsed, resolved, or
// matched against the configured protocols and domains is dropped,
// and an element whose URL host violates a domain rule is removed
// wholesale. Misconfiguration (empty tag or attribute names) panics
// at the call site rather than producing a policy that silently
// allows more than intended.
//
// safelist does not parse CSS or JavaScript and does not normalize
// Unicode; pair it with encoding-level defences as needed.
//
// # Thread Safety
//
// Build a Policy once, then share it: all predicates and Clean are
// safe for concurrent use over a policy that is no longer being
// mutated. Concurrent mutation is not supported.
//
// # Example
//
//	p := safelist.Basic().AddDomains("a", "href", "example.com")
//	clean, err := safelist.Clean(userInput, "https://example.com/", p)
package safelist
