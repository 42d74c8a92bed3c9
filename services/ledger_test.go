package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

func TestSignedEffect(t *testing.T) {
	amount := dec("250.00")

	assert.True(t, amount.Equal(SignedEffect(models.TransactionTypeDeposit, amount)))
	assert.True(t, amount.Equal(SignedEffect(models.TransactionTypeDistribution, amount)))
	assert.True(t, amount.Neg().Equal(SignedEffect(models.TransactionTypeWithdrawal, amount)))
	assert.True(t, amount.Neg().Equal(SignedEffect(models.TransactionTypeInvestment, amount)))
	assert.True(t, amount.Neg().Equal(SignedEffect(models.TransactionTypeTransfer, amount)))
}

func TestComputeBalance_Total(t *testing.T) {
	entries := []models.CashTransaction{
		{Type: models.TransactionTypeDeposit, Amount: dec("1000.00")},
		{Type: models.TransactionTypeInvestment, Amount: dec("600.00")},
		{Type: models.TransactionTypeDistribution, Amount: dec("50.00")},
		{Type: models.TransactionTypeWithdrawal, Amount: dec("100.00")},
	}

	s := ComputeBalance(entries)
	assert.True(t, dec("350.00").Equal(s.Total), "expected 350.00, got %s", s.Total)
}

func TestComputeBalance_PerPlatformAttribution(t *testing.T) {
	p1, p2 := uint(1), uint(2)
	entries := []models.CashTransaction{
		{Type: models.TransactionTypeInvestment, Amount: dec("500"), PlatformID: &p1},
		{Type: models.TransactionTypeDistribution, Amount: dec("40"), PlatformID: &p1},
		{Type: models.TransactionTypeInvestment, Amount: dec("300"), Investment: &models.Investment{PlatformID: p2}},
	}

	s := ComputeBalance(entries)
	assert.True(t, dec("-460").Equal(s.ByPlatform[p1]))
	assert.True(t, dec("-300").Equal(s.ByPlatform[p2]))
}

func TestComputeBalance_UntaggedEntryCountsOnlyTowardTotal(t *testing.T) {
	entries := []models.CashTransaction{
		{Type: models.TransactionTypeDeposit, Amount: dec("1000")},
	}

	s := ComputeBalance(entries)
	assert.True(t, dec("1000").Equal(s.Total))
	assert.Empty(t, s.ByPlatform)
}

func TestComputeBalance_Empty(t *testing.T) {
	s := ComputeBalance(nil)
	assert.True(t, decimal.Zero.Equal(s.Total))
	assert.Empty(t, s.ByPlatform)
}
