package handlers

import (
	"context"

	"expense-management/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// StoreProbe reports which gateway serves expense data and whether it answers
type StoreProbe interface {
	Mode() string
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store     StoreProbe
	assistant services.Assistant
	version   string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store StoreProbe, assistant services.Assistant, version string) *HealthHandler {
	return &HealthHandler{
		store:     store,
		assistant: assistant,
		version:   version,
	}
}

// HealthCheck handles health check
// @Summary Health check
// @Description Reports the expense store mode (database or dummy), store health and chat configuration
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	storeStatus := "healthy"
	if err := h.store.Ping(c.UserContext()); err != nil {
		storeStatus = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"mode":   h.store.Mode(),
		"checks": fiber.Map{
			"api":   "healthy",
			"store": storeStatus,
			"chat":  h.assistant.IsConfigured(),
		},
	})
}

// APIInfo handles API info
// @Summary API info
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Expense Management API",
		"version": h.version,
		"docs":    "/swagger/index.html",
	})
}
