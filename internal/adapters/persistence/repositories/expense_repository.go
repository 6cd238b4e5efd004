package repositories

import (
	"context"
	"fmt"
	"strings"

	"expense-management/internal/adapters/persistence/models"
	"expense-management/internal/core/domain"

	"gorm.io/gorm"
)

// StoredProcGateway reads and mutates expenses through the store's
// stored procedures. It never issues ad-hoc table queries.
type StoredProcGateway struct {
	db *gorm.DB
}

// NewStoredProcGateway creates a new stored procedure gateway
func NewStoredProcGateway(db *gorm.DB) *StoredProcGateway {
	return &StoredProcGateway{db: db}
}

// Mode implements ExpenseGateway
func (g *StoredProcGateway) Mode() string {
	return ModeDatabase
}

// Ping checks the connection pool
func (g *StoredProcGateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ListExpenses calls sp_GetExpenses. Empty filters are sent as NULL.
func (g *StoredProcGateway) ListExpenses(ctx context.Context, statusFilter, categoryFilter string) ([]domain.Expense, error) {
	var rows []models.ExpenseRow
	err := g.db.WithContext(ctx).
		Raw("CALL sp_GetExpenses(?, ?)", nullable(statusFilter), nullable(categoryFilter)).
		Scan(&rows).Error
	if err != nil {
		return nil, storeError("sp_GetExpenses", err)
	}
	return toExpenses(rows), nil
}

// ListPendingExpenses calls sp_GetPendingExpenses
func (g *StoredProcGateway) ListPendingExpenses(ctx context.Context) ([]domain.Expense, error) {
	var rows []models.ExpenseRow
	if err := g.db.WithContext(ctx).Raw("CALL sp_GetPendingExpenses()").Scan(&rows).Error; err != nil {
		return nil, storeError("sp_GetPendingExpenses", err)
	}
	return toExpenses(rows), nil
}

// GetExpense calls sp_GetExpenseById and returns nil when no row comes back
func (g *StoredProcGateway) GetExpense(ctx context.Context, id int) (*domain.Expense, error) {
	var rows []models.ExpenseRow
	if err := g.db.WithContext(ctx).Raw("CALL sp_GetExpenseById(?)", id).Scan(&rows).Error; err != nil {
		return nil, storeError("sp_GetExpenseById", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	expense := rows[0].ToDomain()
	return &expense, nil
}

// ListCategories calls sp_GetCategories
func (g *StoredProcGateway) ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	var rows []models.CategoryRow
	if err := g.db.WithContext(ctx).Raw("CALL sp_GetCategories()").Scan(&rows).Error; err != nil {
		return nil, storeError("sp_GetCategories", err)
	}

	categories := make([]domain.ExpenseCategory, 0, len(rows))
	for i := range rows {
		categories = append(categories, rows[i].ToDomain())
	}
	return categories, nil
}

// ListStatuses calls sp_GetStatuses
func (g *StoredProcGateway) ListStatuses(ctx context.Context) ([]domain.ExpenseStatus, error) {
	var rows []models.StatusRow
	if err := g.db.WithContext(ctx).Raw("CALL sp_GetStatuses()").Scan(&rows).Error; err != nil {
		return nil, storeError("sp_GetStatuses", err)
	}

	statuses := make([]domain.ExpenseStatus, 0, len(rows))
	for i := range rows {
		statuses = append(statuses, rows[i].ToDomain())
	}
	return statuses, nil
}

// ListUsers calls sp_GetUsers
func (g *StoredProcGateway) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []models.UserRow
	if err := g.db.WithContext(ctx).Raw("CALL sp_GetUsers()").Scan(&rows).Error; err != nil {
		return nil, storeError("sp_GetUsers", err)
	}

	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].ToDomain())
	}
	return users, nil
}

// CreateExpense calls sp_CreateExpense with the amount in pence and
// returns the id selected by the procedure
func (g *StoredProcGateway) CreateExpense(ctx context.Context, req domain.CreateExpenseRequest) (int, error) {
	var description interface{}
	if req.Description != nil {
		description = *req.Description
	}

	var id int
	result := g.db.WithContext(ctx).
		Raw("CALL sp_CreateExpense(?, ?, ?, ?, ?)",
			req.UserID,
			req.CategoryID,
			req.AmountMinor(),
			req.ExpenseDate.Time,
			description,
		).
		Scan(&id)
	if result.Error != nil {
		return 0, storeError("sp_CreateExpense", result.Error)
	}
	if result.RowsAffected == 0 || id == 0 {
		return 0, storeError("sp_CreateExpense", domain.ErrNoExpenseCreated)
	}
	return id, nil
}

// SubmitExpense calls sp_SubmitExpense; true when a Draft row moved to Submitted
func (g *StoredProcGateway) SubmitExpense(ctx context.Context, id int) (bool, error) {
	return g.exec(ctx, "sp_SubmitExpense", "CALL sp_SubmitExpense(?)", id)
}

// ApproveExpense calls sp_ApproveExpense; true when a Submitted row moved to Approved
func (g *StoredProcGateway) ApproveExpense(ctx context.Context, id, reviewerID int) (bool, error) {
	return g.exec(ctx, "sp_ApproveExpense", "CALL sp_ApproveExpense(?, ?)", id, reviewerID)
}

// RejectExpense calls sp_RejectExpense; true when a Submitted row moved to Rejected
func (g *StoredProcGateway) RejectExpense(ctx context.Context, id, reviewerID int) (bool, error) {
	return g.exec(ctx, "sp_RejectExpense", "CALL sp_RejectExpense(?, ?)", id, reviewerID)
}

func (g *StoredProcGateway) exec(ctx context.Context, proc, sql string, args ...interface{}) (bool, error) {
	result := g.db.WithContext(ctx).Exec(sql, args...)
	if result.Error != nil {
		return false, storeError(proc, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func toExpenses(rows []models.ExpenseRow) []domain.Expense {
	expenses := make([]domain.Expense, 0, len(rows))
	for i := range rows {
		expenses = append(expenses, rows[i].ToDomain())
	}
	return expenses
}

// nullable maps an empty or blank filter to SQL NULL
func nullable(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func storeError(proc string, err error) error {
	return fmt.Errorf("%s: %w", proc, err)
}
