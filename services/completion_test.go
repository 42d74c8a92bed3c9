package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteInvestment_RejectsConflictingOptions(t *testing.T) {
	// option validation happens before any database work
	_, err := CompleteInvestment(nil, 1, CompletionOptions{ClearLateStatus: true, ExtendLateDays: 14})
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestCompleteInvestment_RejectsNegativeExtension(t *testing.T) {
	_, err := CompleteInvestment(nil, 1, CompletionOptions{ExtendLateDays: -5})
	assert.True(t, errors.Is(err, ErrValidation))
}
