package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"expense-management/internal/core/domain"
	"expense-management/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultReviewerID preselects the sample manager on the approve page
const DefaultReviewerID = 2

const layout = "layout"

// PageHandler renders the server-side pages. When the active store fails,
// a page shows an error banner and renders the fallback data instead.
type PageHandler struct {
	expenses services.ExpenseWorkflow
	fallback services.ExpenseWorkflow
	logger   *zap.Logger
	now      func() time.Time
}

// NewPageHandler creates a new page handler
func NewPageHandler(expenses, fallback services.ExpenseWorkflow, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		expenses: expenses,
		fallback: fallback,
		logger:   logger.Named("page_handler"),
		now:      time.Now,
	}
}

// pageAlert is the banner shown above page content
type pageAlert struct {
	Error   string
	Details string
	Success string
}

// Dashboard renders the home page
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	var alert pageAlert

	expenses, err := h.expenses.ListExpenses(c.UserContext(), "", "")
	if err != nil {
		alert = h.fallbackAlert("Failed to connect to database. Showing dummy data.", "Dashboard", err)
		expenses, err = h.fallback.ListExpenses(c.UserContext(), "", "")
		h.logFallbackFailure("Dashboard", err)
	}

	return c.Render("index", fiber.Map{
		"Title":   "Dashboard",
		"Alert":   alert,
		"Summary": services.Summarize(expenses),
	}, layout)
}

// Expenses renders the expense list with filters
func (h *PageHandler) Expenses(c *fiber.Ctx) error {
	return h.renderExpenses(c, pageAlert{})
}

// SubmitExpense submits a Draft expense from the list page
func (h *PageHandler) SubmitExpense(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.FormValue("expenseId"))
	if err != nil {
		return h.renderExpenses(c, pageAlert{Error: "Failed to submit expense: invalid expense ID"})
	}

	if _, err := h.expenses.SubmitExpense(c.UserContext(), id); err != nil {
		h.logger.Error("failed to submit expense", zap.Int("expense_id", id), zap.Error(err))
		return h.renderExpenses(c, pageAlert{Error: "Failed to submit expense: " + err.Error()})
	}
	return c.Redirect("/expenses", fiber.StatusSeeOther)
}

func (h *PageHandler) renderExpenses(c *fiber.Ctx, alert pageAlert) error {
	ctx := c.UserContext()
	statusFilter := c.Query("status")
	categoryFilter := c.Query("category")

	expenses, categories, statuses, err := h.loadExpenses(ctx, h.expenses, statusFilter, categoryFilter)
	if err != nil {
		fallback := h.fallbackAlert("Failed to load expenses from database. Showing dummy data.", "Expenses", err)
		if alert.Error == "" {
			alert = fallback
		}
		expenses, categories, statuses, err = h.loadExpenses(ctx, h.fallback, statusFilter, categoryFilter)
		h.logFallbackFailure("Expenses", err)
	}

	return c.Render("expenses", fiber.Map{
		"Title":          "Expenses",
		"Alert":          alert,
		"Expenses":       expenses,
		"Categories":     categories,
		"Statuses":       statuses,
		"StatusFilter":   statusFilter,
		"CategoryFilter": categoryFilter,
		"DraftStatus":    domain.StatusNameDraft,
	}, layout)
}

func (h *PageHandler) loadExpenses(ctx context.Context, source services.ExpenseWorkflow, statusFilter, categoryFilter string) ([]domain.Expense, []domain.ExpenseCategory, []domain.ExpenseStatus, error) {
	expenses, err := source.ListExpenses(ctx, statusFilter, categoryFilter)
	if err != nil {
		return nil, nil, nil, err
	}
	categories, err := source.ListCategories(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	statuses, err := source.ListStatuses(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return expenses, categories, statuses, nil
}

// expenseForm holds the add expense form values for redisplay
type expenseForm struct {
	UserID      int
	CategoryID  int
	Amount      string
	ExpenseDate string
	Description string
}

// AddExpense renders the add expense form
func (h *PageHandler) AddExpense(c *fiber.Ctx) error {
	return h.renderAddExpense(c, pageAlert{}, h.emptyForm())
}

// CreateExpense creates an expense from the add expense form
func (h *PageHandler) CreateExpense(c *fiber.Ctx) error {
	form := expenseForm{
		Amount:      strings.TrimSpace(c.FormValue("amount")),
		ExpenseDate: strings.TrimSpace(c.FormValue("expenseDate")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
	form.UserID, _ = strconv.Atoi(c.FormValue("userId"))
	form.CategoryID, _ = strconv.Atoi(c.FormValue("categoryId"))

	req, err := form.request()
	if err == nil {
		var id int
		id, err = h.expenses.CreateExpense(c.UserContext(), req)
		if err == nil {
			return h.renderAddExpense(c, pageAlert{
				Success: fmt.Sprintf("Expense created successfully with ID: %d", id),
			}, h.emptyForm())
		}
	}

	h.logger.Error("failed to create expense", zap.Error(err))
	return h.renderAddExpense(c, pageAlert{
		Error:   "Failed to create expense",
		Details: err.Error(),
	}, form)
}

func (f expenseForm) request() (domain.CreateExpenseRequest, error) {
	amount, err := decimal.NewFromString(f.Amount)
	if err != nil {
		return domain.CreateExpenseRequest{}, fmt.Errorf("%w: amount %q is not a number", domain.ErrInvalidInput, f.Amount)
	}
	date, err := domain.ParseDate(f.ExpenseDate)
	if err != nil {
		return domain.CreateExpenseRequest{}, err
	}

	req := domain.CreateExpenseRequest{
		UserID:      f.UserID,
		CategoryID:  f.CategoryID,
		Amount:      amount,
		ExpenseDate: date,
	}
	if f.Description != "" {
		req.Description = &f.Description
	}
	return req, nil
}

func (h *PageHandler) emptyForm() expenseForm {
	return expenseForm{ExpenseDate: domain.NewDate(h.now()).String()}
}

func (h *PageHandler) renderAddExpense(c *fiber.Ctx, alert pageAlert, form expenseForm) error {
	ctx := c.UserContext()

	categories, users, err := h.loadFormData(ctx, h.expenses)
	if err != nil {
		fallback := h.fallbackAlert("Failed to load form data from database. Using dummy data.", "AddExpense", err)
		if alert.Error == "" && alert.Success == "" {
			alert = fallback
		}
		categories, users, err = h.loadFormData(ctx, h.fallback)
		h.logFallbackFailure("AddExpense", err)
	}

	return c.Render("add_expense", fiber.Map{
		"Title":      "Add Expense",
		"Alert":      alert,
		"Form":       form,
		"Categories": categories,
		"Users":      users,
	}, layout)
}

func (h *PageHandler) loadFormData(ctx context.Context, source services.ExpenseWorkflow) ([]domain.ExpenseCategory, []domain.User, error) {
	categories, err := source.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	users, err := source.ListUsers(ctx)
	if err != nil {
		return nil, nil, err
	}
	return categories, users, nil
}

// Approve renders the pending approvals page
func (h *PageHandler) Approve(c *fiber.Ctx) error {
	return h.renderApprove(c, pageAlert{})
}

// ApproveExpense approves a pending expense from the approvals page
func (h *PageHandler) ApproveExpense(c *fiber.Ctx) error {
	return h.reviewExpense(c, "approve", h.expenses.ApproveExpense, "Expense #%d approved successfully.")
}

// RejectExpense rejects a pending expense from the approvals page
func (h *PageHandler) RejectExpense(c *fiber.Ctx) error {
	return h.reviewExpense(c, "reject", h.expenses.RejectExpense, "Expense #%d rejected.")
}

func (h *PageHandler) reviewExpense(c *fiber.Ctx, action string, transition func(context.Context, int, int) (bool, error), successFormat string) error {
	id, _ := strconv.Atoi(c.FormValue("expenseId"))
	reviewerID, _ := strconv.Atoi(c.FormValue("reviewerId"))

	var alert pageAlert
	err := domain.ReviewRequest{ReviewerID: reviewerID}.Validate()
	if err == nil {
		_, err = transition(c.UserContext(), id, reviewerID)
	}
	if err != nil {
		h.logger.Error("failed to "+action+" expense", zap.Int("expense_id", id), zap.Error(err))
		alert = pageAlert{
			Error:   fmt.Sprintf("Failed to %s expense: %v", action, err),
			Details: err.Error(),
		}
	} else {
		alert.Success = fmt.Sprintf(successFormat, id)
	}

	return h.renderApprove(c, alert)
}

func (h *PageHandler) renderApprove(c *fiber.Ctx, alert pageAlert) error {
	ctx := c.UserContext()
	filter := strings.TrimSpace(c.Query("filter", c.FormValue("filter")))

	reviewerID := c.QueryInt("reviewerId", DefaultReviewerID)
	if v, err := strconv.Atoi(c.FormValue("reviewerId")); err == nil && v > 0 {
		reviewerID = v
	}

	pending, users, err := h.loadApprovals(ctx, h.expenses)
	if err != nil {
		fallback := h.fallbackAlert("Failed to load data from database. Using dummy data.", "Approve", err)
		if alert.Error == "" && alert.Success == "" {
			alert = fallback
		}
		pending, users, err = h.loadApprovals(ctx, h.fallback)
		h.logFallbackFailure("Approve", err)
	}

	return c.Render("approve", fiber.Map{
		"Title":      "Approve Expenses",
		"Alert":      alert,
		"Pending":    FilterPending(pending, filter),
		"Managers":   Reviewers(users),
		"Filter":     filter,
		"ReviewerID": reviewerID,
	}, layout)
}

func (h *PageHandler) loadApprovals(ctx context.Context, source services.ExpenseWorkflow) ([]domain.Expense, []domain.User, error) {
	pending, err := source.ListPendingExpenses(ctx)
	if err != nil {
		return nil, nil, err
	}
	users, err := source.ListUsers(ctx)
	if err != nil {
		return nil, nil, err
	}
	return pending, users, nil
}

// FilterPending keeps expenses whose category, description or submitter
// contains the filter, ignoring case
func FilterPending(expenses []domain.Expense, filter string) []domain.Expense {
	if filter == "" {
		return expenses
	}
	needle := strings.ToLower(filter)

	var matched []domain.Expense
	for _, e := range expenses {
		if strings.Contains(strings.ToLower(e.Category()), needle) ||
			strings.Contains(strings.ToLower(e.Text()), needle) ||
			strings.Contains(strings.ToLower(e.Submitter()), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Reviewers returns the users holding the Manager role, or the first user
// when there are none
func Reviewers(users []domain.User) []domain.User {
	var managers []domain.User
	for _, u := range users {
		if u.IsManager() {
			managers = append(managers, u)
		}
	}
	if len(managers) == 0 && len(users) > 0 {
		return users[:1]
	}
	return managers
}

// Chat renders the chat page
func (h *PageHandler) Chat(c *fiber.Ctx) error {
	return c.Render("chat", fiber.Map{
		"Title": "Chat",
	}, layout)
}

func (h *PageHandler) fallbackAlert(message, page string, err error) pageAlert {
	h.logger.Error("page data unavailable, rendering dummy data",
		zap.String("page", page),
		zap.Error(err),
	)
	return pageAlert{
		Error:   message,
		Details: fmt.Sprintf("Error loading %s page: %v", page, err),
	}
}

// logFallbackFailure records a failed fallback load; the page renders empty
func (h *PageHandler) logFallbackFailure(page string, err error) {
	if err == nil {
		return
	}
	h.logger.Error("fallback data unavailable",
		zap.String("page", page),
		zap.Error(err),
	)
}
