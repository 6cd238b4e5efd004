package handlers

import (
	"context"
	"fmt"

	"expense-management/internal/core/domain"
	"expense-management/internal/core/services"
	"expense-management/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	expenses services.ExpenseWorkflow
	logger   *zap.Logger
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenses services.ExpenseWorkflow, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenses: expenses,
		logger:   logger.Named("expense_handler"),
	}
}

// ListExpenses lists expenses
// @Summary List expenses
// @Description Get expenses, optionally filtered by status name and category
// @Tags Expenses
// @Accept json
// @Produce json
// @Param status query string false "Status name (exact, case-insensitive)"
// @Param category query string false "Category name (substring, case-insensitive)"
// @Success 200 {object} response.Response
// @Router /api/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	expenses, err := h.expenses.ListExpenses(c.UserContext(), c.Query("status"), c.Query("category"))
	if err != nil {
		return h.fail(c, "Failed to retrieve expenses", err)
	}
	return response.Success(c, expenses)
}

// ListPendingExpenses lists expenses awaiting approval
// @Summary List pending expenses
// @Description Get expenses with status Submitted
// @Tags Expenses
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/expenses/pending [get]
func (h *ExpenseHandler) ListPendingExpenses(c *fiber.Ctx) error {
	expenses, err := h.expenses.ListPendingExpenses(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to retrieve pending expenses", err)
	}
	return response.Success(c, expenses)
}

// GetExpense gets an expense by ID
// @Summary Get expense
// @Description Get a single expense by ID
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid expense ID", "")
	}

	expense, found, err := h.expenses.GetExpense(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Failed to retrieve expense", err)
	}
	if !found {
		return response.NotFound(c, fmt.Sprintf("Expense with ID %d not found", id))
	}
	return response.Success(c, expense)
}

// CreateExpense creates a Draft expense
// @Summary Create expense
// @Description Create a new expense in Draft status. Returns the new expense ID.
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body domain.CreateExpenseRequest true "Expense"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var req domain.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	id, err := h.expenses.CreateExpense(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "Failed to create expense", err)
	}
	return response.Success(c, id)
}

// SubmitExpense submits an expense for approval
// @Summary Submit expense
// @Description Move a Draft expense to Submitted. Data is false when nothing changed.
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} response.Response
// @Router /api/expenses/{id}/submit [post]
func (h *ExpenseHandler) SubmitExpense(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid expense ID", "")
	}

	ok, err := h.expenses.SubmitExpense(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Failed to submit expense", err)
	}
	return response.Success(c, ok)
}

// ApproveExpense approves a submitted expense
// @Summary Approve expense
// @Description Move a Submitted expense to Approved. Data is false when nothing changed.
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body domain.ReviewRequest true "Reviewer"
// @Success 200 {object} response.Response
// @Router /api/expenses/{id}/approve [post]
func (h *ExpenseHandler) ApproveExpense(c *fiber.Ctx) error {
	return h.review(c, "approve", h.expenses.ApproveExpense)
}

// RejectExpense rejects a submitted expense
// @Summary Reject expense
// @Description Move a Submitted expense to Rejected. Data is false when nothing changed.
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body domain.ReviewRequest true "Reviewer"
// @Success 200 {object} response.Response
// @Router /api/expenses/{id}/reject [post]
func (h *ExpenseHandler) RejectExpense(c *fiber.Ctx) error {
	return h.review(c, "reject", h.expenses.RejectExpense)
}

func (h *ExpenseHandler) review(c *fiber.Ctx, action string, transition func(context.Context, int, int) (bool, error)) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid expense ID", "")
	}

	var req domain.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if err := req.Validate(); err != nil {
		return response.Fail(c, "Failed to "+action+" expense", err.Error())
	}

	ok, err := transition(c.UserContext(), id, req.ReviewerID)
	if err != nil {
		return h.fail(c, "Failed to "+action+" expense", err)
	}
	return response.Success(c, ok)
}

// ListCategories lists expense categories
// @Summary List categories
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/expenses/categories [get]
func (h *ExpenseHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.expenses.ListCategories(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to retrieve categories", err)
	}
	return response.Success(c, categories)
}

// ListStatuses lists expense statuses
// @Summary List statuses
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/expenses/statuses [get]
func (h *ExpenseHandler) ListStatuses(c *fiber.Ctx) error {
	statuses, err := h.expenses.ListStatuses(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to retrieve statuses", err)
	}
	return response.Success(c, statuses)
}

// ListUsers lists users
// @Summary List users
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/expenses/users [get]
func (h *ExpenseHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.expenses.ListUsers(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to retrieve users", err)
	}
	return response.Success(c, users)
}

// fail logs the error and reports it in a 200 failure envelope
func (h *ExpenseHandler) fail(c *fiber.Ctx, message string, err error) error {
	h.logger.Error(message,
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return response.Fail(c, message, err.Error())
}
