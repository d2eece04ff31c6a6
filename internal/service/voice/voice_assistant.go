package voice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/domain"
	"github.com/seu-repo/jarvis-backend/internal/observability/telemetry"
	"github.com/seu-repo/jarvis-backend/internal/ports"
	"github.com/seu-repo/jarvis-backend/pkg/config"
)

const questionSlot = "question"

// VoiceAssistant turns voice platform events into spoken replies, forwarding
// questions to the question service.
type VoiceAssistant struct {
	questions ports.QuestionService
	renderer  *Renderer
	logger    *zap.Logger
}

var _ ports.VoiceService = (*VoiceAssistant)(nil)

func NewVoiceAssistant(questions ports.QuestionService, cfg config.AlexaConfig, logger *zap.Logger) *VoiceAssistant {
	return &VoiceAssistant{
		questions: questions,
		renderer:  NewRenderer(cfg.OutputFormat, cfg.MaxSpeechLen),
		logger:    logger,
	}
}

// HandleEvent always produces a response envelope. Failures are turned into
// spoken apologies, never into errors.
func (va *VoiceAssistant) HandleEvent(ctx context.Context, payload []byte) (resp *domain.VoiceResponse) {
	kind := "unknown"
	defer func() {
		if r := recover(); r != nil {
			va.logger.Error("Panic handling voice event",
				zap.String("kind", kind),
				zap.String("panic", fmt.Sprint(r)),
			)
			telemetry.VoiceEventsTotal.WithLabelValues(kind, "panic").Inc()
			resp = va.renderer.Speak(MsgCritical, true)
		}
	}()

	req, err := ParseEvent(payload)
	if err != nil {
		va.logger.Warn("Invalid voice event", zap.Error(err))
		telemetry.VoiceEventsTotal.WithLabelValues("invalid", "rejected").Inc()
		return va.renderer.Speak(MsgInvalidRequest, true)
	}

	switch r := req.(type) {
	case *domain.LaunchRequest:
		kind = domain.RequestTypeLaunch
		va.logger.Info("Voice session launched")
		telemetry.VoiceEventsTotal.WithLabelValues(kind, "greeted").Inc()
		return va.renderer.Speak(MsgGreeting, false)

	case *domain.IntentRequest:
		kind = domain.RequestTypeIntent
		reply, outcome := va.handleIntent(ctx, r.Intent)
		telemetry.VoiceEventsTotal.WithLabelValues(kind, outcome).Inc()
		return reply

	case *domain.SessionEndedRequest:
		kind = domain.RequestTypeSessionEnded
		va.logger.Info("Voice session ended", zap.String("reason", r.Reason))
		telemetry.VoiceEventsTotal.WithLabelValues(kind, "closed").Inc()
		return va.renderer.Speak(MsgFarewell, true)

	case *domain.UnrecognizedRequest:
		va.logger.Warn("Unrecognized voice request type", zap.String("type", r.Type))
		telemetry.VoiceEventsTotal.WithLabelValues("unrecognized", "rejected").Inc()
		return va.renderer.Speak(MsgUnknownRequest, true)

	default:
		telemetry.VoiceEventsTotal.WithLabelValues("unrecognized", "rejected").Inc()
		return va.renderer.Speak(MsgUnknownRequest, true)
	}
}

func (va *VoiceAssistant) handleIntent(ctx context.Context, intent *domain.Intent) (*domain.VoiceResponse, string) {
	if intent == nil {
		va.logger.Warn("Intent request without intent")
		return va.renderer.Speak(MsgNoIntent, false), "no_intent"
	}

	if intent.Name != AskJarvisIntent {
		va.logger.Info("Unsupported intent", zap.String("intent", intent.Name))
		return va.renderer.Speak(MsgUnknownIntent, false), "unsupported_intent"
	}

	question, ok := ExtractSlotText(intent.Slots[questionSlot], QuestionSlotPaths...)
	if !ok {
		va.logger.Info("Question slot is empty")
		return va.renderer.Speak(MsgNotUnderstood, false), "empty_slot"
	}

	answer, err := va.questions.AskQuestion(ctx, domain.QuestionRequest{Question: question})
	if err != nil {
		va.logger.Error("Failed to answer voice question", zap.Error(err))
		return va.renderer.Speak(MsgProcessingError, false), "error"
	}
	if answer == nil {
		return va.renderer.Speak(MsgNoAnswer, false), "empty_answer"
	}

	text := va.renderer.PrepareAnswer(answer.Answer)
	if text == "" {
		return va.renderer.Speak(MsgNoAnswer, false), "empty_answer"
	}

	return va.renderer.Speak(text, false), "answered"
}
