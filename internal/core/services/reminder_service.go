package services

import (
	"context"
	"fmt"
	"time"

	"expense-management/internal/core/domain"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderService logs a digest of expenses awaiting review on a cron schedule
type ReminderService struct {
	expenses ExpenseWorkflow
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// PendingDigest summarizes the expenses awaiting review
type PendingDigest struct {
	Count                int
	TotalAmountMinor     int64
	TotalAmountFormatted string
	Oldest               *domain.Expense
}

// NewReminderService creates a reminder service. An empty schedule disables it.
func NewReminderService(expenses ExpenseWorkflow, schedule string, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		expenses: expenses,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.Named("reminder_service"),
	}
}

// Start registers the digest job and starts the scheduler
func (s *ReminderService) Start() error {
	if s.schedule == "" {
		s.logger.Info("pending reminder disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("🚀 pending reminder started", zap.String("schedule", s.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running digest to finish
func (s *ReminderService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("🛑 pending reminder stopped")
}

func (s *ReminderService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.SendDigest(ctx); err != nil {
		s.logger.Error("pending reminder failed", zap.Error(err))
	}
}

// SendDigest loads pending expenses and logs one line per expense plus a total
func (s *ReminderService) SendDigest(ctx context.Context) (*PendingDigest, error) {
	pending, err := s.expenses.ListPendingExpenses(ctx)
	if err != nil {
		return nil, err
	}

	digest := &PendingDigest{Count: len(pending)}
	for i := range pending {
		e := pending[i]
		digest.TotalAmountMinor += e.AmountMinor
		if e.SubmittedAt != nil && (digest.Oldest == nil || e.SubmittedAt.Before(*digest.Oldest.SubmittedAt)) {
			digest.Oldest = &e
		}

		s.logger.Info("expense awaiting approval",
			zap.Int("expense_id", e.ExpenseID),
			zap.String("user", e.Submitter()),
			zap.String("category", e.Category()),
			zap.String("amount", e.AmountFormatted()),
			zap.String("expense_date", e.ExpenseDate.String()),
		)
	}
	digest.TotalAmountFormatted = domain.FormatPounds(digest.TotalAmountMinor)

	fields := []zap.Field{
		zap.Int("count", digest.Count),
		zap.String("total", digest.TotalAmountFormatted),
	}
	if digest.Oldest != nil {
		fields = append(fields, zap.Int("oldest_expense_id", digest.Oldest.ExpenseID))
	}
	s.logger.Info("pending approval digest", fields...)

	return digest, nil
}
