package models

import (
	"database/sql"
	"time"

	"expense-management/internal/core/domain"
)

// ============================================================
// Rows returned by the expense stored procedures.
// Column names follow the procedures' PascalCase result sets.
// ============================================================

// ExpenseRow is one row of sp_GetExpenses, sp_GetPendingExpenses and sp_GetExpenseById
type ExpenseRow struct {
	ExpenseID    int            `gorm:"column:ExpenseId"`
	UserID       int            `gorm:"column:UserId"`
	CategoryID   int            `gorm:"column:CategoryId"`
	StatusID     int            `gorm:"column:StatusId"`
	AmountMinor  int64          `gorm:"column:AmountMinor"`
	Currency     sql.NullString `gorm:"column:Currency"`
	ExpenseDate  time.Time      `gorm:"column:ExpenseDate"`
	Description  sql.NullString `gorm:"column:Description"`
	ReceiptFile  sql.NullString `gorm:"column:ReceiptFile"`
	SubmittedAt  sql.NullTime   `gorm:"column:SubmittedAt"`
	ReviewedBy   sql.NullInt64  `gorm:"column:ReviewedBy"`
	ReviewedAt   sql.NullTime   `gorm:"column:ReviewedAt"`
	CreatedAt    time.Time      `gorm:"column:CreatedAt"`
	UserName     sql.NullString `gorm:"column:UserName"`
	CategoryName sql.NullString `gorm:"column:CategoryName"`
	StatusName   sql.NullString `gorm:"column:StatusName"`
	ReviewerName sql.NullString `gorm:"column:ReviewerName"`
}

// ToDomain converts the row to a domain expense
func (r *ExpenseRow) ToDomain() domain.Expense {
	currency := domain.DefaultCurrency
	if r.Currency.Valid && r.Currency.String != "" {
		currency = r.Currency.String
	}

	return domain.Expense{
		ExpenseID:    r.ExpenseID,
		UserID:       r.UserID,
		CategoryID:   r.CategoryID,
		StatusID:     r.StatusID,
		AmountMinor:  r.AmountMinor,
		Currency:     currency,
		ExpenseDate:  domain.NewDate(r.ExpenseDate),
		Description:  nullString(r.Description),
		ReceiptFile:  nullString(r.ReceiptFile),
		SubmittedAt:  nullTime(r.SubmittedAt),
		ReviewedBy:   nullInt(r.ReviewedBy),
		ReviewedAt:   nullTime(r.ReviewedAt),
		CreatedAt:    r.CreatedAt,
		UserName:     nullString(r.UserName),
		CategoryName: nullString(r.CategoryName),
		StatusName:   nullString(r.StatusName),
		ReviewerName: nullString(r.ReviewerName),
	}
}

// CategoryRow is one row of sp_GetCategories
type CategoryRow struct {
	CategoryID   int    `gorm:"column:CategoryId"`
	CategoryName string `gorm:"column:CategoryName"`
	IsActive     bool   `gorm:"column:IsActive"`
}

// ToDomain converts the row to a domain category
func (r *CategoryRow) ToDomain() domain.ExpenseCategory {
	return domain.ExpenseCategory{
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		IsActive:     r.IsActive,
	}
}

// StatusRow is one row of sp_GetStatuses
type StatusRow struct {
	StatusID   int    `gorm:"column:StatusId"`
	StatusName string `gorm:"column:StatusName"`
}

// ToDomain converts the row to a domain status
func (r *StatusRow) ToDomain() domain.ExpenseStatus {
	return domain.ExpenseStatus{
		StatusID:   r.StatusID,
		StatusName: r.StatusName,
	}
}

// UserRow is one row of sp_GetUsers
type UserRow struct {
	UserID      int            `gorm:"column:UserId"`
	UserName    string         `gorm:"column:UserName"`
	Email       string         `gorm:"column:Email"`
	RoleID      int            `gorm:"column:RoleId"`
	RoleName    sql.NullString `gorm:"column:RoleName"`
	ManagerID   sql.NullInt64  `gorm:"column:ManagerId"`
	ManagerName sql.NullString `gorm:"column:ManagerName"`
	IsActive    bool           `gorm:"column:IsActive"`
	CreatedAt   sql.NullTime   `gorm:"column:CreatedAt"`
}

// ToDomain converts the row to a domain user
func (r *UserRow) ToDomain() domain.User {
	return domain.User{
		UserID:      r.UserID,
		UserName:    r.UserName,
		Email:       r.Email,
		RoleID:      r.RoleID,
		RoleName:    nullString(r.RoleName),
		ManagerID:   nullInt(r.ManagerID),
		ManagerName: nullString(r.ManagerName),
		IsActive:    r.IsActive,
		CreatedAt:   nullTime(r.CreatedAt),
	}
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
