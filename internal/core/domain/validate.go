package domain

import (
	"fmt"
	"math"

	"expense-management/internal/pkg/validation"

	"github.com/shopspring/decimal"
)

var maxAmountMinor = decimal.NewFromInt(math.MaxInt32)

// Validate checks field constraints and the non-negative amount rule
func (r CreateExpenseRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	// AmountMinor is stored in an INT column
	if r.Amount.Shift(2).Truncate(0).GreaterThan(maxAmountMinor) {
		return fmt.Errorf("%w: amount must be at most %s", ErrInvalidInput, FormatPounds(math.MaxInt32))
	}
	return nil
}

// Validate checks that a reviewer is present
func (r ReviewRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// Validate checks that a message is present
func (r ChatRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
