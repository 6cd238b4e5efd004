package domain

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Status IDs match the ExpenseStatuses reference table
const (
	StatusDraft     = 1
	StatusSubmitted = 2
	StatusApproved  = 3
	StatusRejected  = 4
)

// Status names as returned by the store
const (
	StatusNameDraft     = "Draft"
	StatusNameSubmitted = "Submitted"
	StatusNameApproved  = "Approved"
	StatusNameRejected  = "Rejected"
)

// DefaultCurrency is used when the store returns no currency
const DefaultCurrency = "GBP"

// RoleNameManager identifies users who may review expenses
const RoleNameManager = "Manager"

// Role represents a user role
type Role struct {
	RoleID      int     `json:"roleId"`
	RoleName    string  `json:"roleName"`
	Description *string `json:"description,omitempty"`
}

// User represents an employee or manager
type User struct {
	UserID      int        `json:"userId"`
	UserName    string     `json:"userName"`
	Email       string     `json:"email"`
	RoleID      int        `json:"roleId"`
	RoleName    *string    `json:"roleName,omitempty"`
	ManagerID   *int       `json:"managerId,omitempty"`
	ManagerName *string    `json:"managerName,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// IsManager reports whether the user holds the Manager role
func (u User) IsManager() bool {
	return u.RoleName != nil && *u.RoleName == RoleNameManager
}

// ExpenseCategory represents an expense category
type ExpenseCategory struct {
	CategoryID   int    `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	IsActive     bool   `json:"isActive"`
}

// ExpenseStatus represents a lifecycle status
type ExpenseStatus struct {
	StatusID   int    `json:"statusId"`
	StatusName string `json:"statusName"`
}

// Expense represents a single expense claim.
// AmountMinor is held in pence; Amount and AmountFormatted are derived from it.
type Expense struct {
	ExpenseID    int        `json:"expenseId"`
	UserID       int        `json:"userId"`
	CategoryID   int        `json:"categoryId"`
	StatusID     int        `json:"statusId"`
	AmountMinor  int64      `json:"amountMinor"`
	Currency     string     `json:"currency"`
	ExpenseDate  Date       `json:"expenseDate"`
	Description  *string    `json:"description,omitempty"`
	ReceiptFile  *string    `json:"receiptFile,omitempty"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	ReviewedBy   *int       `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UserName     *string    `json:"userName,omitempty"`
	CategoryName *string    `json:"categoryName,omitempty"`
	StatusName   *string    `json:"statusName,omitempty"`
	ReviewerName *string    `json:"reviewerName,omitempty"`
}

// Amount returns the amount in pounds
func (e Expense) Amount() decimal.Decimal {
	return MinorToAmount(e.AmountMinor)
}

// AmountFormatted returns the amount as a £ string, e.g. £1,234.50
func (e Expense) AmountFormatted() string {
	return FormatPounds(e.AmountMinor)
}

// Status returns the status name, or an empty string when not joined
func (e Expense) Status() string {
	return deref(e.StatusName)
}

// Category returns the category name, or an empty string when not joined
func (e Expense) Category() string {
	return deref(e.CategoryName)
}

// Submitter returns the submitting user's name, or an empty string when not joined
func (e Expense) Submitter() string {
	return deref(e.UserName)
}

// Text returns the description, or an empty string when absent
func (e Expense) Text() string {
	return deref(e.Description)
}

// MarshalJSON adds the derived amount fields to the serialized expense
func (e Expense) MarshalJSON() ([]byte, error) {
	type expense Expense
	return json.Marshal(struct {
		expense
		Amount          float64 `json:"amount"`
		AmountFormatted string  `json:"amountFormatted"`
	}{
		expense:         expense(e),
		Amount:          e.Amount().InexactFloat64(),
		AmountFormatted: e.AmountFormatted(),
	})
}

// CreateExpenseRequest is the input for creating a Draft expense
type CreateExpenseRequest struct {
	UserID      int             `json:"userId" validate:"required,gt=0"`
	CategoryID  int             `json:"categoryId" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate Date            `json:"expenseDate" validate:"required"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// AmountMinor converts the requested amount to pence, truncating sub-penny digits
func (r CreateExpenseRequest) AmountMinor() int64 {
	return AmountToMinor(r.Amount)
}

// ReviewRequest carries the reviewer for approve and reject
type ReviewRequest struct {
	ReviewerID int `json:"reviewerId" validate:"required,gt=0"`
}

// ChatMessage is one turn of a chat conversation. Only "user" and
// "assistant" roles are honoured when replaying history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of a chat exchange
type ChatRequest struct {
	Message string        `json:"message" validate:"required"`
	History []ChatMessage `json:"history,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
