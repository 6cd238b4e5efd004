package handlers

import (
	"expense-management/internal/core/domain"
	"expense-management/internal/core/services"
	"expense-management/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles chat assistant endpoints
type ChatHandler struct {
	assistant services.Assistant
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistant services.Assistant) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// ChatStatus reports whether a model is configured
// @Summary Chat status
// @Description Reports whether the chat assistant has a model configured
// @Tags Chat
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/chat/status [get]
func (h *ChatHandler) ChatStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"configured": h.assistant.IsConfigured(),
	})
}

// Chat sends a message to the assistant
// @Summary Chat
// @Description Send a message with optional history. Model failures come back as an apology in data.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body domain.ChatRequest true "Message"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req domain.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if err := req.Validate(); err != nil {
		return response.Fail(c, "Failed to process chat request", err.Error())
	}

	reply := h.assistant.Chat(c.UserContext(), req.Message, req.History)
	return response.Success(c, reply)
}
