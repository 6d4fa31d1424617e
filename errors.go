package safelist

import "fmt"

// InvalidTokenError reports a policy token that could not be
// constructed, e.g. an empty tag name. It is the payload of the panic
// raised when a mutation call passes an unusable value through to
// token construction.
type InvalidTokenError struct {
	Namespace string // "tag", "attribute key", "attribute value", "protocol", or "domain"
	Value     string // the offending input, as supplied
}

// Error implements the error interface.
func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("safelist: invalid %s token %q", e.Namespace, e.Value)
}

// InvalidArgumentError reports misuse of the policy mutation API: an
// empty required string, or an empty list where at least one entry is
// required. Mutation methods panic with this error at the call site;
// it is never deferred or returned.
type InvalidArgumentError struct {
	Op     string // the mutation method that was misused, e.g. "AddAttributes"
	Reason string // what was wrong with the arguments
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("safelist: %s: %s", e.Op, e.Reason)
}
