package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// CashTransactionInput is a manual pool movement (deposit, withdrawal or
// transfer). Investment and distribution entries are only ever created by the
// investment flows, never by hand.
type CashTransactionInput struct {
	Amount     decimal.Decimal
	Type       string
	Source     *string
	PlatformID *uint
	Date       time.Time
}

func CreateCashTransaction(db *gorm.DB, in CashTransactionInput) (*models.CashTransaction, error) {
	switch in.Type {
	case models.TransactionTypeDeposit, models.TransactionTypeWithdrawal, models.TransactionTypeTransfer:
	case models.TransactionTypeInvestment, models.TransactionTypeDistribution:
		return nil, validationErrorf("%s transactions are created by the investment flows", in.Type)
	default:
		return nil, validationErrorf("invalid transaction type %q", in.Type)
	}
	if !in.Amount.IsPositive() {
		return nil, validationErrorf("amount must be positive")
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	entry := models.CashTransaction{
		Amount:     in.Amount,
		Type:       in.Type,
		Source:     in.Source,
		PlatformID: in.PlatformID,
		Date:       in.Date,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func ListCashTransactions(db *gorm.DB) ([]models.CashTransaction, error) {
	var entries []models.CashTransaction
	err := db.Preload("Investment").Order("date DESC, id DESC").Find(&entries).Error
	return entries, err
}

// DeleteCashTransaction removes a manual pool movement. Entries linked to an
// investment or cashflow belong to the investment lifecycle and are rejected;
// those are only removed or detached by the investment deletion path.
func DeleteCashTransaction(db *gorm.DB, id uint) error {
	var entry models.CashTransaction
	err := db.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if entry.InvestmentID != nil || entry.CashflowID != nil {
		return conflictErrorf("transaction %d belongs to an investment and cannot be deleted directly", entry.ID)
	}
	return db.Delete(&entry).Error
}
