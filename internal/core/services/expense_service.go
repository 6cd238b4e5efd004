package services

import (
	"context"
	"time"

	"expense-management/internal/adapters/persistence/repositories"
	"expense-management/internal/core/domain"
	"expense-management/internal/pkg/metrics"

	"go.uber.org/zap"
)

// DefaultStoreTimeout bounds a single store call when none is configured
const DefaultStoreTimeout = 15 * time.Second

// ExpenseService is the expense workflow facade. It delegates every call to
// the gateway chosen at startup, bounds it with the store timeout and
// records store metrics. Store errors are returned to the caller.
type ExpenseService struct {
	gateway repositories.ExpenseGateway
	timeout time.Duration
	logger  *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(gateway repositories.ExpenseGateway, timeout time.Duration, logger *zap.Logger) *ExpenseService {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &ExpenseService{
		gateway: gateway,
		timeout: timeout,
		logger:  logger.Named("expense_service"),
	}
}

// Mode reports which gateway is serving data
func (s *ExpenseService) Mode() string {
	return s.gateway.Mode()
}

// Ping checks the backing store
func (s *ExpenseService) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.gateway.Ping(ctx)
}

// ListExpenses lists expenses by exact status and category substring
func (s *ExpenseService) ListExpenses(ctx context.Context, statusFilter, categoryFilter string) ([]domain.Expense, error) {
	return call(ctx, s, "list_expenses", func(ctx context.Context) ([]domain.Expense, error) {
		return s.gateway.ListExpenses(ctx, statusFilter, categoryFilter)
	})
}

// ListPendingExpenses lists expenses awaiting review
func (s *ExpenseService) ListPendingExpenses(ctx context.Context) ([]domain.Expense, error) {
	return call(ctx, s, "list_pending_expenses", s.gateway.ListPendingExpenses)
}

// GetExpense looks up one expense. A missing expense is reported with
// found=false and a nil error.
func (s *ExpenseService) GetExpense(ctx context.Context, id int) (*domain.Expense, bool, error) {
	expense, err := call(ctx, s, "get_expense", func(ctx context.Context) (*domain.Expense, error) {
		return s.gateway.GetExpense(ctx, id)
	})
	if err != nil {
		return nil, false, err
	}
	return expense, expense != nil, nil
}

// ListCategories lists expense categories
func (s *ExpenseService) ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	return call(ctx, s, "list_categories", s.gateway.ListCategories)
}

// ListStatuses lists lifecycle statuses
func (s *ExpenseService) ListStatuses(ctx context.Context) ([]domain.ExpenseStatus, error) {
	return call(ctx, s, "list_statuses", s.gateway.ListStatuses)
}

// ListUsers lists users
func (s *ExpenseService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return call(ctx, s, "list_users", s.gateway.ListUsers)
}

// CreateExpense validates the request and creates a Draft expense
func (s *ExpenseService) CreateExpense(ctx context.Context, req domain.CreateExpenseRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	id, err := call(ctx, s, "create_expense", func(ctx context.Context) (int, error) {
		return s.gateway.CreateExpense(ctx, req)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("expense created",
		zap.Int("expense_id", id),
		zap.Int("user_id", req.UserID),
		zap.Int64("amount_minor", req.AmountMinor()),
	)
	return id, nil
}

// SubmitExpense moves a Draft expense to Submitted
func (s *ExpenseService) SubmitExpense(ctx context.Context, id int) (bool, error) {
	ok, err := call(ctx, s, "submit_expense", func(ctx context.Context) (bool, error) {
		return s.gateway.SubmitExpense(ctx, id)
	})
	s.logTransition("submit", id, 0, ok, err)
	return ok, err
}

// ApproveExpense moves a Submitted expense to Approved
func (s *ExpenseService) ApproveExpense(ctx context.Context, id, reviewerID int) (bool, error) {
	ok, err := call(ctx, s, "approve_expense", func(ctx context.Context) (bool, error) {
		return s.gateway.ApproveExpense(ctx, id, reviewerID)
	})
	s.logTransition("approve", id, reviewerID, ok, err)
	return ok, err
}

// RejectExpense moves a Submitted expense to Rejected
func (s *ExpenseService) RejectExpense(ctx context.Context, id, reviewerID int) (bool, error) {
	ok, err := call(ctx, s, "reject_expense", func(ctx context.Context) (bool, error) {
		return s.gateway.RejectExpense(ctx, id, reviewerID)
	})
	s.logTransition("reject", id, reviewerID, ok, err)
	return ok, err
}

func (s *ExpenseService) logTransition(action string, id, reviewerID int, changed bool, err error) {
	if err != nil {
		return
	}
	fields := []zap.Field{
		zap.String("action", action),
		zap.Int("expense_id", id),
		zap.Bool("changed", changed),
	}
	if reviewerID != 0 {
		fields = append(fields, zap.Int("reviewer_id", reviewerID))
	}
	s.logger.Info("expense transition", fields...)
}

// call runs one gateway operation under the store timeout and records it
func call[T any](ctx context.Context, s *ExpenseService, op string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := metrics.ObserveStore(op)
	result, err := fn(ctx)
	done(err)

	if err != nil {
		s.logger.Error("expense store call failed",
			zap.String("operation", op),
			zap.String("mode", s.gateway.Mode()),
			zap.Error(err),
		)
	}
	return result, err
}
