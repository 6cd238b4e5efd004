package repositories

import (
	"context"
	"strings"
	"time"

	"expense-management/internal/core/domain"

	"go.uber.org/zap"
)

// DummyExpenseID is returned by DummyGateway.CreateExpense
const DummyExpenseID = 999

// DummyGateway serves a fixed sample data set when no store is available.
// Mutations are logged and report success without changing anything.
type DummyGateway struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewDummyGateway creates a new dummy gateway
func NewDummyGateway(logger *zap.Logger) *DummyGateway {
	return &DummyGateway{
		logger: logger.Named("dummy_gateway"),
		now:    time.Now,
	}
}

// Mode implements ExpenseGateway
func (g *DummyGateway) Mode() string {
	return ModeDummy
}

// Ping always succeeds
func (g *DummyGateway) Ping(ctx context.Context) error {
	return nil
}

// ListExpenses filters the sample expenses by exact status and category substring,
// both case-insensitive
func (g *DummyGateway) ListExpenses(ctx context.Context, statusFilter, categoryFilter string) ([]domain.Expense, error) {
	g.warn("ListExpenses")

	statusFilter = strings.TrimSpace(statusFilter)
	categoryFilter = strings.ToLower(strings.TrimSpace(categoryFilter))

	result := make([]domain.Expense, 0, 4)
	for _, e := range g.expenses() {
		if statusFilter != "" && !strings.EqualFold(e.Status(), statusFilter) {
			continue
		}
		if categoryFilter != "" && !strings.Contains(strings.ToLower(e.Category()), categoryFilter) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// ListPendingExpenses returns the Submitted sample expenses
func (g *DummyGateway) ListPendingExpenses(ctx context.Context) ([]domain.Expense, error) {
	g.warn("ListPendingExpenses")

	result := make([]domain.Expense, 0, 2)
	for _, e := range g.expenses() {
		if e.Status() == domain.StatusNameSubmitted {
			result = append(result, e)
		}
	}
	return result, nil
}

// GetExpense returns the sample expense or nil
func (g *DummyGateway) GetExpense(ctx context.Context, id int) (*domain.Expense, error) {
	g.warn("GetExpense")

	for _, e := range g.expenses() {
		if e.ExpenseID == id {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

// ListCategories returns the sample categories
func (g *DummyGateway) ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	g.warn("ListCategories")

	return []domain.ExpenseCategory{
		{CategoryID: 1, CategoryName: "Travel", IsActive: true},
		{CategoryID: 2, CategoryName: "Meals", IsActive: true},
		{CategoryID: 3, CategoryName: "Supplies", IsActive: true},
		{CategoryID: 4, CategoryName: "Accommodation", IsActive: true},
		{CategoryID: 5, CategoryName: "Other", IsActive: true},
	}, nil
}

// ListStatuses returns the four lifecycle statuses
func (g *DummyGateway) ListStatuses(ctx context.Context) ([]domain.ExpenseStatus, error) {
	g.warn("ListStatuses")

	return []domain.ExpenseStatus{
		{StatusID: domain.StatusDraft, StatusName: domain.StatusNameDraft},
		{StatusID: domain.StatusSubmitted, StatusName: domain.StatusNameSubmitted},
		{StatusID: domain.StatusApproved, StatusName: domain.StatusNameApproved},
		{StatusID: domain.StatusRejected, StatusName: domain.StatusNameRejected},
	}, nil
}

// ListUsers returns the sample employee and manager
func (g *DummyGateway) ListUsers(ctx context.Context) ([]domain.User, error) {
	g.warn("ListUsers")

	created := g.now().AddDate(0, -1, 0)
	return []domain.User{
		{
			UserID:    1,
			UserName:  "Alice Example",
			Email:     "alice@example.co.uk",
			RoleID:    1,
			RoleName:  strPtr("Employee"),
			ManagerID: intPtr(2),
			IsActive:  true,
			CreatedAt: &created,
		},
		{
			UserID:    2,
			UserName:  "Bob Manager",
			Email:     "bob.manager@example.co.uk",
			RoleID:    2,
			RoleName:  strPtr(domain.RoleNameManager),
			IsActive:  true,
			CreatedAt: &created,
		},
	}, nil
}

// CreateExpense logs the request and returns DummyExpenseID
func (g *DummyGateway) CreateExpense(ctx context.Context, req domain.CreateExpenseRequest) (int, error) {
	g.logger.Warn("dummy gateway ignoring create",
		zap.Int("user_id", req.UserID),
		zap.Int("category_id", req.CategoryID),
		zap.Int64("amount_minor", req.AmountMinor()),
	)
	return DummyExpenseID, nil
}

// SubmitExpense logs the request and reports success
func (g *DummyGateway) SubmitExpense(ctx context.Context, id int) (bool, error) {
	g.logger.Warn("dummy gateway ignoring submit", zap.Int("expense_id", id))
	return true, nil
}

// ApproveExpense logs the request and reports success
func (g *DummyGateway) ApproveExpense(ctx context.Context, id, reviewerID int) (bool, error) {
	g.logger.Warn("dummy gateway ignoring approve", zap.Int("expense_id", id), zap.Int("reviewer_id", reviewerID))
	return true, nil
}

// RejectExpense logs the request and reports success
func (g *DummyGateway) RejectExpense(ctx context.Context, id, reviewerID int) (bool, error) {
	g.logger.Warn("dummy gateway ignoring reject", zap.Int("expense_id", id), zap.Int("reviewer_id", reviewerID))
	return true, nil
}

func (g *DummyGateway) warn(op string) {
	g.logger.Warn("serving dummy data, expense store not connected", zap.String("operation", op))
}

// expenses builds the sample set. Timestamps are relative to now so the
// data always looks recent.
func (g *DummyGateway) expenses() []domain.Expense {
	now := g.now()
	daysAgo := func(n int) *time.Time {
		t := now.AddDate(0, 0, -n)
		return &t
	}
	date := func(y int, m time.Month, d int) domain.Date {
		return domain.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	}

	return []domain.Expense{
		{
			ExpenseID:    1,
			UserID:       1,
			CategoryID:   1,
			StatusID:     domain.StatusSubmitted,
			AmountMinor:  12000,
			Currency:     domain.DefaultCurrency,
			ExpenseDate:  date(2024, time.January, 15),
			Description:  strPtr("Taxi from airport to client site"),
			SubmittedAt:  daysAgo(2),
			CreatedAt:    *daysAgo(3),
			UserName:     strPtr("Alice Example"),
			CategoryName: strPtr("Travel"),
			StatusName:   strPtr(domain.StatusNameSubmitted),
		},
		{
			ExpenseID:    2,
			UserID:       1,
			CategoryID:   2,
			StatusID:     domain.StatusSubmitted,
			AmountMinor:  6900,
			Currency:     domain.DefaultCurrency,
			ExpenseDate:  date(2024, time.January, 10),
			Description:  strPtr("Client lunch meeting"),
			SubmittedAt:  daysAgo(5),
			CreatedAt:    *daysAgo(6),
			UserName:     strPtr("Alice Example"),
			CategoryName: strPtr("Meals"),
			StatusName:   strPtr(domain.StatusNameSubmitted),
		},
		{
			ExpenseID:    3,
			UserID:       1,
			CategoryID:   3,
			StatusID:     domain.StatusApproved,
			AmountMinor:  9950,
			Currency:     domain.DefaultCurrency,
			ExpenseDate:  date(2024, time.December, 4),
			Description:  strPtr("Office stationery"),
			SubmittedAt:  daysAgo(10),
			ReviewedBy:   intPtr(2),
			ReviewedAt:   daysAgo(8),
			CreatedAt:    *daysAgo(11),
			UserName:     strPtr("Alice Example"),
			CategoryName: strPtr("Supplies"),
			StatusName:   strPtr(domain.StatusNameApproved),
			ReviewerName: strPtr("Bob Manager"),
		},
		{
			ExpenseID:    4,
			UserID:       1,
			CategoryID:   1,
			StatusID:     domain.StatusApproved,
			AmountMinor:  1920,
			Currency:     domain.DefaultCurrency,
			ExpenseDate:  date(2024, time.December, 18),
			Description:  strPtr("Transport to conference"),
			SubmittedAt:  daysAgo(15),
			ReviewedBy:   intPtr(2),
			ReviewedAt:   daysAgo(14),
			CreatedAt:    *daysAgo(16),
			UserName:     strPtr("Alice Example"),
			CategoryName: strPtr("Travel"),
			StatusName:   strPtr(domain.StatusNameApproved),
			ReviewerName: strPtr("Bob Manager"),
		},
	}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
