package repositories

import (
	"context"

	"expense-management/internal/core/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_gateway.go -package=mocks

// Gateway modes reported by Mode
const (
	ModeDatabase = "database"
	ModeDummy    = "dummy"
)

// ExpenseGateway defines access to the expense store.
// GetExpense returns (nil, nil) when the expense does not exist.
type ExpenseGateway interface {
	ListExpenses(ctx context.Context, statusFilter, categoryFilter string) ([]domain.Expense, error)
	ListPendingExpenses(ctx context.Context) ([]domain.Expense, error)
	GetExpense(ctx context.Context, id int) (*domain.Expense, error)
	ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error)
	ListStatuses(ctx context.Context) ([]domain.ExpenseStatus, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateExpense(ctx context.Context, req domain.CreateExpenseRequest) (int, error)
	SubmitExpense(ctx context.Context, id int) (bool, error)
	ApproveExpense(ctx context.Context, id, reviewerID int) (bool, error)
	RejectExpense(ctx context.Context, id, reviewerID int) (bool, error)

	// Mode reports ModeDatabase or ModeDummy
	Mode() string
	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error
}
