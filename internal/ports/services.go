package ports

import (
	"context"

	"github.com/seu-repo/jarvis-backend/internal/domain"
)

type QuestionService interface {
	AskQuestion(ctx context.Context, req domain.QuestionRequest) (*domain.AnswerResponse, error)
	AskQuestionStream(ctx context.Context, req domain.QuestionRequest, onChunk func(string)) error
}

// VoiceService turns a raw voice-platform event into a reply envelope. It
// never fails: every problem is reported as speech.
type VoiceService interface {
	HandleEvent(ctx context.Context, payload []byte) *domain.VoiceResponse
}
