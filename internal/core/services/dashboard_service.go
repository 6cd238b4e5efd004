package services

import (
	"context"
	"sort"

	"expense-management/internal/core/domain"
)

// RecentExpenseCount is how many expenses the dashboard lists
const RecentExpenseCount = 5

// DashboardService handles dashboard operations
type DashboardService struct {
	expenses ExpenseWorkflow
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(expenses ExpenseWorkflow) *DashboardService {
	return &DashboardService{expenses: expenses}
}

// DashboardSummary represents dashboard totals
type DashboardSummary struct {
	TotalExpenses        int              `json:"totalExpenses"`
	PendingCount         int              `json:"pendingCount"`
	ApprovedCount        int              `json:"approvedCount"`
	RejectedCount        int              `json:"rejectedCount"`
	DraftCount           int              `json:"draftCount"`
	TotalAmountMinor     int64            `json:"totalAmountMinor"`
	TotalAmountFormatted string           `json:"totalAmountFormatted"`
	RecentExpenses       []domain.Expense `json:"recentExpenses"`
}

// GetSummary loads every expense and summarizes it
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	expenses, err := s.expenses.ListExpenses(ctx, "", "")
	if err != nil {
		return nil, err
	}
	summary := Summarize(expenses)
	return &summary, nil
}

// Summarize counts expenses by status, totals their amounts and picks the
// most recent by expense date
func Summarize(expenses []domain.Expense) DashboardSummary {
	summary := DashboardSummary{TotalExpenses: len(expenses)}

	for _, e := range expenses {
		summary.TotalAmountMinor += e.AmountMinor
		switch e.Status() {
		case domain.StatusNameSubmitted:
			summary.PendingCount++
		case domain.StatusNameApproved:
			summary.ApprovedCount++
		case domain.StatusNameRejected:
			summary.RejectedCount++
		case domain.StatusNameDraft:
			summary.DraftCount++
		}
	}
	summary.TotalAmountFormatted = domain.FormatPounds(summary.TotalAmountMinor)

	recent := make([]domain.Expense, len(expenses))
	copy(recent, expenses)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ExpenseDate.After(recent[j].ExpenseDate.Time)
	})
	if len(recent) > RecentExpenseCount {
		recent = recent[:RecentExpenseCount]
	}
	summary.RecentExpenses = recent

	return summary
}
