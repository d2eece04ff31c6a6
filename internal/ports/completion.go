package ports

import "context"

// CompletionParams are the sampling knobs sent with every completion.
type CompletionParams struct {
	Model       string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// CompletionClient talks to a hosted chat-completion API. Calls are single
// attempts; failures are returned as-is.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, question string, params CompletionParams) (string, error)
	// CompleteStream calls onChunk for each non-empty fragment, in the order
	// upstream delivers them.
	CompleteStream(ctx context.Context, systemPrompt, question string, params CompletionParams, onChunk func(string)) error
}
