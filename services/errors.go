package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error taxonomy. Validation errors are raised before any lock is taken,
// conflicts before any mutation; not-found is distinct from rejection.
var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// InsufficientFundsError is raised inside the funding transaction, after the
// relevant ledger rows are locked, when the pool cannot cover the principal.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient cash balance: required %s, available %s",
		e.Required.StringFixed(2), e.Available.StringFixed(2))
}

func validationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

func conflictErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}
