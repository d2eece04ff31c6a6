package mocks

import (
	"context"

	"github.com/seu-repo/jarvis-backend/internal/domain"
)

// MockQuestionService is a mock implementation of QuestionService interface
type MockQuestionService struct {
	AskQuestionFunc       func(ctx context.Context, req domain.QuestionRequest) (*domain.AnswerResponse, error)
	AskQuestionStreamFunc func(ctx context.Context, req domain.QuestionRequest, onChunk func(string)) error

	Requests []domain.QuestionRequest
}

func (m *MockQuestionService) AskQuestion(ctx context.Context, req domain.QuestionRequest) (*domain.AnswerResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.AskQuestionFunc != nil {
		return m.AskQuestionFunc(ctx, req)
	}
	return &domain.AnswerResponse{Answer: domain.FallbackAnswer}, nil
}

func (m *MockQuestionService) AskQuestionStream(ctx context.Context, req domain.QuestionRequest, onChunk func(string)) error {
	m.Requests = append(m.Requests, req)
	if m.AskQuestionStreamFunc != nil {
		return m.AskQuestionStreamFunc(ctx, req, onChunk)
	}
	return nil
}

// MockVoiceService is a mock implementation of VoiceService interface
type MockVoiceService struct {
	HandleEventFunc func(ctx context.Context, payload []byte) *domain.VoiceResponse
}

func (m *MockVoiceService) HandleEvent(ctx context.Context, payload []byte) *domain.VoiceResponse {
	if m.HandleEventFunc != nil {
		return m.HandleEventFunc(ctx, payload)
	}
	return &domain.VoiceResponse{Version: "1.0"}
}
