package services

import (
	"context"

	"expense-management/internal/core/domain"

	"github.com/sashabaranov/go-openai"
)

// ExpenseWorkflow is the expense facade the HTTP surface, the chat tools and
// the reminder job depend on. ExpenseService implements it.
type ExpenseWorkflow interface {
	ListExpenses(ctx context.Context, statusFilter, categoryFilter string) ([]domain.Expense, error)
	ListPendingExpenses(ctx context.Context) ([]domain.Expense, error)
	GetExpense(ctx context.Context, id int) (*domain.Expense, bool, error)
	ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error)
	ListStatuses(ctx context.Context) ([]domain.ExpenseStatus, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateExpense(ctx context.Context, req domain.CreateExpenseRequest) (int, error)
	SubmitExpense(ctx context.Context, id int) (bool, error)
	ApproveExpense(ctx context.Context, id, reviewerID int) (bool, error)
	RejectExpense(ctx context.Context, id, reviewerID int) (bool, error)
}

// ChatCompleter is the subset of *openai.Client the chat loop uses
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Assistant answers chat messages. ChatService implements it.
type Assistant interface {
	IsConfigured() bool
	Chat(ctx context.Context, message string, history []domain.ChatMessage) string
}
