package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expense-management/internal/core/domain"
	"expense-management/internal/pkg/metrics"
	"expense-management/internal/pkg/validation"

	"github.com/goccy/go-json"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Tool names offered to the model
const (
	ToolListExpenses        = "list_expenses"
	ToolListPendingExpenses = "list_pending_expenses"
	ToolListCategories      = "list_categories"
	ToolCreateExpense       = "create_expense"
	ToolApproveExpense      = "approve_expense"
	ToolRejectExpense       = "reject_expense"
)

// chatTools builds the function catalogue sent with every model call
func chatTools() []openai.Tool {
	noArgs := jsonschema.Definition{
		Type:       jsonschema.Object,
		Properties: map[string]jsonschema.Definition{},
	}
	review := func(verb string) jsonschema.Definition {
		return jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"expenseId": {
					Type:        jsonschema.Integer,
					Description: fmt.Sprintf("The ID of the expense to %s", verb),
				},
				"reviewerId": {
					Type:        jsonschema.Integer,
					Description: fmt.Sprintf("The ID of the manager who will %s the expense", verb),
				},
			},
			Required: []string{"expenseId", "reviewerId"},
		}
	}

	return []openai.Tool{
		tool(ToolListExpenses, "Retrieves expenses, optionally filtered by status or category", jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"statusFilter": {
					Type:        jsonschema.String,
					Description: "Filter by status: Draft, Submitted, Approved, Rejected",
					Enum: []string{
						domain.StatusNameDraft,
						domain.StatusNameSubmitted,
						domain.StatusNameApproved,
						domain.StatusNameRejected,
					},
				},
				"categoryFilter": {
					Type:        jsonschema.String,
					Description: "Filter by category name, partial names match",
				},
			},
		}),
		tool(ToolListPendingExpenses, "Retrieves all expenses with 'Submitted' status that are pending approval", noArgs),
		tool(ToolListCategories, "Retrieves all available expense categories", noArgs),
		tool(ToolCreateExpense, "Creates a new Draft expense", jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"userId": {
					Type:        jsonschema.Integer,
					Description: "The ID of the user the expense belongs to",
				},
				"categoryId": {
					Type:        jsonschema.Integer,
					Description: "The ID of the expense category",
				},
				"amount": {
					Type:        jsonschema.Number,
					Description: "The expense amount in pounds (e.g. 25.50)",
				},
				"expenseDate": {
					Type:        jsonschema.String,
					Description: "The date of the expense in YYYY-MM-DD format",
				},
				"description": {
					Type:        jsonschema.String,
					Description: "Description of the expense",
				},
			},
			Required: []string{"userId", "categoryId", "amount", "expenseDate"},
		}),
		tool(ToolApproveExpense, "Approves a submitted expense", review("approve")),
		tool(ToolRejectExpense, "Rejects a submitted expense", review("reject")),
	}
}

func tool(name, description string, params jsonschema.Definition) openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
	}
}

// ============================================================
// Tool arguments
// ============================================================

type listExpensesArgs struct {
	StatusFilter   *string `json:"statusFilter"`
	CategoryFilter *string `json:"categoryFilter"`
}

type createExpenseArgs struct {
	UserID      *int     `json:"userId" validate:"required"`
	CategoryID  *int     `json:"categoryId" validate:"required"`
	Amount      *float64 `json:"amount" validate:"required"`
	ExpenseDate *string  `json:"expenseDate" validate:"required"`
	Description *string  `json:"description"`
}

type reviewArgs struct {
	ExpenseID  *int `json:"expenseId" validate:"required"`
	ReviewerID *int `json:"reviewerId" validate:"required"`
}

// expenseSummary is what list tools hand back to the model
type expenseSummary struct {
	ExpenseID       int    `json:"expenseId"`
	Description     string `json:"description"`
	AmountFormatted string `json:"amountFormatted"`
	ExpenseDate     string `json:"expenseDate"`
	CategoryName    string `json:"categoryName"`
	StatusName      string `json:"statusName,omitempty"`
	UserName        string `json:"userName"`
}

func summarize(expenses []domain.Expense, withStatus bool) []expenseSummary {
	out := make([]expenseSummary, 0, len(expenses))
	for _, e := range expenses {
		s := expenseSummary{
			ExpenseID:       e.ExpenseID,
			Description:     e.Text(),
			AmountFormatted: e.AmountFormatted(),
			ExpenseDate:     e.ExpenseDate.String(),
			CategoryName:    e.Category(),
			UserName:        e.Submitter(),
		}
		if withStatus {
			s.StatusName = e.Status()
		}
		out = append(out, s)
	}
	return out
}

// ============================================================
// Dispatch
// ============================================================

// toolbox executes tool calls against the expense workflow. Every failure
// is turned into an {"error": ...} result for the model.
type toolbox struct {
	expenses ExpenseWorkflow
	logger   *zap.Logger
	now      func() time.Time
}

// dispatch runs one tool call and returns its JSON result
func (t *toolbox) dispatch(ctx context.Context, call openai.ToolCall) string {
	name := call.Function.Name
	result, err := t.run(ctx, name, call.Function.Arguments)
	metrics.ChatToolCall(name, err)

	if err != nil {
		t.logger.Warn("tool call failed",
			zap.String("tool", name),
			zap.String("tool_call_id", call.ID),
			zap.Error(err),
		)
		if errors.Is(err, domain.ErrUnknownTool) {
			return encodeResult(map[string]string{"error": "Unknown function: " + name})
		}
		return encodeResult(map[string]string{"error": err.Error()})
	}
	return encodeResult(result)
}

func (t *toolbox) run(ctx context.Context, name, rawArgs string) (interface{}, error) {
	switch name {
	case ToolListExpenses:
		var args listExpensesArgs
		if err := decodeArgs(name, rawArgs, &args); err != nil {
			return nil, err
		}
		expenses, err := t.expenses.ListExpenses(ctx, deref(args.StatusFilter), deref(args.CategoryFilter))
		if err != nil {
			return nil, err
		}
		return summarize(expenses, true), nil

	case ToolListPendingExpenses:
		expenses, err := t.expenses.ListPendingExpenses(ctx)
		if err != nil {
			return nil, err
		}
		return summarize(expenses, false), nil

	case ToolListCategories:
		return t.expenses.ListCategories(ctx)

	case ToolCreateExpense:
		var args createExpenseArgs
		if err := decodeArgs(name, rawArgs, &args); err != nil {
			return nil, err
		}
		date, err := domain.ParseDate(*args.ExpenseDate)
		if err != nil {
			date = domain.NewDate(t.now())
			t.logger.Info("unparseable expense date, using today",
				zap.String("expense_date", *args.ExpenseDate),
				zap.String("today", date.String()),
			)
		}
		id, err := t.expenses.CreateExpense(ctx, domain.CreateExpenseRequest{
			UserID:      *args.UserID,
			CategoryID:  *args.CategoryID,
			Amount:      decimal.NewFromFloat(*args.Amount),
			ExpenseDate: date,
			Description: args.Description,
		})
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"success": true, "expenseId": id}, nil

	case ToolApproveExpense, ToolRejectExpense:
		var args reviewArgs
		if err := decodeArgs(name, rawArgs, &args); err != nil {
			return nil, err
		}
		review := t.expenses.ApproveExpense
		if name == ToolRejectExpense {
			review = t.expenses.RejectExpense
		}
		ok, err := review(ctx, *args.ExpenseID, *args.ReviewerID)
		if err != nil {
			return nil, err
		}
		return map[string]bool{"success": ok}, nil

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}
}

// decodeArgs parses the model's JSON arguments and checks required fields
func decodeArgs(tool, raw string, dst interface{}) error {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", tool, err)
	}
	if err := validation.Struct(dst); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", tool, err)
	}
	return nil
}

func encodeResult(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"error":"could not encode tool result"}`
	}
	return string(b)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
