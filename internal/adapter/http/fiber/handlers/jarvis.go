package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/jarvis-backend/internal/domain"
	"github.com/seu-repo/jarvis-backend/internal/ports"
	"github.com/seu-repo/jarvis-backend/internal/service/health"
	"github.com/seu-repo/jarvis-backend/internal/validation"
)

type JarvisHandler struct {
	questions ports.QuestionService
	health    *health.Service
	log       *zap.Logger
}

func NewJarvisHandler(questions ports.QuestionService, healthSvc *health.Service, log *zap.Logger) *JarvisHandler {
	return &JarvisHandler{
		questions: questions,
		health:    healthSvc,
		log:       log,
	}
}

func (h *JarvisHandler) RegisterRoutes(router fiber.Router) {
	jarvis := router.Group("/jarvis")
	jarvis.Post("/ask", h.Ask)
	jarvis.Post("/ask/stream", h.AskStream)
	jarvis.Post("/health", h.Health)
}

func (h *JarvisHandler) Ask(c *fiber.Ctx) error {
	req, err := validation.ValidateAskRequest(c.Body())
	if err != nil {
		return err
	}

	resp, err := h.questions.AskQuestion(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// AskStream answers as server-sent events: one data frame per chunk, then a
// "done" or "error" event.
func (h *JarvisHandler) AskStream(c *fiber.Ctx) error {
	req, err := validation.ValidateAskRequest(c.Body())
	if err != nil {
		return err
	}

	// The fiber context is recycled once the handler returns, so everything the
	// writer needs is captured here.
	ctx := c.UserContext()
	requestID, _ := c.Locals(middleware.RequestIDLocal).(string)
	log := h.log.With(zap.String("request_id", requestID))

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		err := h.questions.AskQuestionStream(ctx, req, func(chunk string) {
			if werr := writeEvent(w, "", domain.StreamChunk{Content: chunk}); werr != nil {
				log.Debug("Stream client went away", zap.Error(werr))
			}
		})
		if err != nil {
			log.Warn("Streaming answer failed", zap.Error(err))
			_ = writeEvent(w, "error", fiber.Map{"error": err.Error()})
			return
		}
		_ = writeEvent(w, "done", fiber.Map{})
	}))

	return nil
}

func (h *JarvisHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.health.Health(c.UserContext()))
}

func writeEvent(w *bufio.Writer, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}
