package handlers

import (
	"expense-management/internal/core/services"
	"expense-management/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger.Named("dashboard_handler"),
	}
}

// GetSummary returns dashboard totals
// @Summary Dashboard summary
// @Description Expense counts by status, total amount and the most recent expenses
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.GetSummary(c.UserContext())
	if err != nil {
		h.logger.Error("failed to load dashboard", zap.Error(err))
		return response.Fail(c, "Failed to load dashboard", err.Error())
	}

	return response.Success(c, summary)
}
