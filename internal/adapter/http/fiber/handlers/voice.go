package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/jarvis-backend/internal/ports"
)

type VoiceHandler struct {
	assistant ports.VoiceService
	log       *zap.Logger
}

func NewVoiceHandler(assistant ports.VoiceService, log *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		assistant: assistant,
		log:       log,
	}
}

func (h *VoiceHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/alexa/webhook", h.Webhook)
}

// Webhook always answers 200 so the platform has something to speak.
func (h *VoiceHandler) Webhook(c *fiber.Ctx) error {
	resp := h.assistant.HandleEvent(c.UserContext(), c.Body())
	return c.Status(fiber.StatusOK).JSON(resp)
}
