package analysis

import "context"

// Client is the external model capability: prompt text in, completion
// text out. Implementations make exactly one attempt per call.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
