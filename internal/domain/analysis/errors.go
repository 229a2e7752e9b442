package analysis

import "errors"

// ErrCommunication indicates the model service could not be reached or
// returned no completion. The provider-specific cause is logged by the
// gateway and never leaves the process.
var ErrCommunication = errors.New("failed to communicate with the analysis model")

// ValidationError rejects a malformed bundle before any model call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ResponseFormatError signals that the model completion was not valid
// JSON. Raw holds the full completion for server-side logging; callers
// only ever see Excerpt.
type ResponseFormatError struct {
	Raw string
}

func (e *ResponseFormatError) Error() string {
	return "model returned a response that is not valid JSON"
}

const excerptLen = 100

// Excerpt returns the first 100 characters of the raw completion plus
// an ellipsis marker, safe to show to callers.
func (e *ResponseFormatError) Excerpt() string {
	raw := e.Raw
	if len(raw) > excerptLen {
		raw = raw[:excerptLen]
	}
	return raw + "..."
}
