package mocks

import (
	"context"

	"github.com/seu-repo/jarvis-backend/internal/ports"
)

// CompletionCall records the arguments of one completion request.
type CompletionCall struct {
	SystemPrompt string
	Question     string
	Params       ports.CompletionParams
}

// MockCompletionClient is a mock implementation of CompletionClient interface
type MockCompletionClient struct {
	CompleteFunc       func(ctx context.Context, systemPrompt, question string, params ports.CompletionParams) (string, error)
	CompleteStreamFunc func(ctx context.Context, systemPrompt, question string, params ports.CompletionParams, onChunk func(string)) error

	Calls []CompletionCall
}

func (m *MockCompletionClient) Complete(ctx context.Context, systemPrompt, question string, params ports.CompletionParams) (string, error) {
	m.Calls = append(m.Calls, CompletionCall{SystemPrompt: systemPrompt, Question: question, Params: params})
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, question, params)
	}
	return "", nil
}

func (m *MockCompletionClient) CompleteStream(ctx context.Context, systemPrompt, question string, params ports.CompletionParams, onChunk func(string)) error {
	m.Calls = append(m.Calls, CompletionCall{SystemPrompt: systemPrompt, Question: question, Params: params})
	if m.CompleteStreamFunc != nil {
		return m.CompleteStreamFunc(ctx, systemPrompt, question, params, onChunk)
	}
	return nil
}
