package jarvis

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/domain"
	"github.com/seu-repo/jarvis-backend/internal/observability/telemetry"
	"github.com/seu-repo/jarvis-backend/internal/ports"
)

// TimestampLayout renders UTC instants with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type Service struct {
	client       ports.CompletionClient
	params       ports.CompletionParams
	systemPrompt string
	tracer       trace.Tracer
	log          *zap.Logger
}

var _ ports.QuestionService = (*Service)(nil)

// NewService creates the question service. An empty systemPrompt selects
// DefaultSystemPrompt.
func NewService(client ports.CompletionClient, params ports.CompletionParams, systemPrompt string, log *zap.Logger) *Service {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}
	log.Info("JARVIS service initialized", zap.String("model", params.Model))
	return &Service{
		client:       client,
		params:       params,
		systemPrompt: systemPrompt,
		tracer:       otel.Tracer("github.com/seu-repo/jarvis-backend/internal/service/jarvis"),
		log:          log,
	}
}

// AskQuestion answers req.Question. The request is assumed to have passed
// input validation already.
func (s *Service) AskQuestion(ctx context.Context, req domain.QuestionRequest) (*domain.AnswerResponse, error) {
	question := strings.TrimSpace(req.Question)

	ctx, span := s.tracer.Start(ctx, "jarvis.AskQuestion", trace.WithAttributes(
		attribute.String("llm.model", s.params.Model),
		attribute.Int("question.length", utf8.RuneCountInString(question)),
	))
	defer span.End()

	s.log.Info("Processing question", zap.String("question", preview(question)))

	start := time.Now()
	answer, err := s.client.Complete(ctx, s.systemPrompt, question, s.params)
	telemetry.CompletionLatency.WithLabelValues("sync").Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.QuestionsTotal.WithLabelValues("sync", "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("Failed to process question", zap.Error(err))
		return nil, &ProcessingError{prefix: processingPrefix, Err: err}
	}

	if answer == "" {
		answer = domain.FallbackAnswer
	}

	telemetry.QuestionsTotal.WithLabelValues("sync", "ok").Inc()
	s.log.Info("Answer generated", zap.Int("answer_length", utf8.RuneCountInString(answer)))

	return &domain.AnswerResponse{
		Answer:         answer,
		ConversationID: req.ConversationID,
		Timestamp:      time.Now().UTC().Format(TimestampLayout),
		Model:          s.params.Model,
	}, nil
}

// AskQuestionStream answers req.Question incrementally through onChunk.
func (s *Service) AskQuestionStream(ctx context.Context, req domain.QuestionRequest, onChunk func(string)) error {
	question := strings.TrimSpace(req.Question)

	ctx, span := s.tracer.Start(ctx, "jarvis.AskQuestionStream", trace.WithAttributes(
		attribute.String("llm.model", s.params.Model),
	))
	defer span.End()

	s.log.Info("Processing question with streaming", zap.String("question", preview(question)))

	start := time.Now()
	err := s.client.CompleteStream(ctx, s.systemPrompt, question, s.params, onChunk)
	telemetry.CompletionLatency.WithLabelValues("stream").Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.QuestionsTotal.WithLabelValues("stream", "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("Streaming failed", zap.Error(err))
		return &ProcessingError{prefix: streamProcessingPrefix, Err: err}
	}

	telemetry.QuestionsTotal.WithLabelValues("stream", "ok").Inc()
	return nil
}

// preview keeps log lines short.
func preview(s string) string {
	const max = 50
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
