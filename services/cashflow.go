package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// CashflowUpdate is a partial update of one cashflow; nil fields are left
// untouched.
type CashflowUpdate struct {
	DueDate      *time.Time
	Amount       *decimal.Decimal
	Kind         *string
	Status       *string
	ReceivedDate *time.Time
}

// ListCashflows returns all cashflows of one investment ordered by due date.
func ListCashflows(db *gorm.DB, investmentID uint) ([]models.Cashflow, error) {
	var flows []models.Cashflow
	err := db.Where("investment_id = ?", investmentID).Order("due_date ASC, id ASC").Find(&flows).Error
	return flows, err
}

// UpdateCashflow applies a partial update under a row lock. The pre-image is
// locked before deciding whether a ledger entry must be created so a
// concurrent bulk completion cannot double-credit the pool. Marking a
// cashflow received creates its distribution ledger entry exactly once; a
// cashflow that already has a ledger entry can no longer change amount,
// received date or leave the received status.
func UpdateCashflow(db *gorm.DB, id uint, upd CashflowUpdate) (*models.Cashflow, error) {
	var flow models.Cashflow
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&flow, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var reconciled int64
		if err := tx.Model(&models.CashTransaction{}).Where("cashflow_id = ?", flow.ID).Count(&reconciled).Error; err != nil {
			return err
		}
		if reconciled > 0 {
			if upd.Status != nil && *upd.Status != models.CashflowStatusReceived {
				return conflictErrorf("cashflow %d is ledger-reconciled and cannot leave received status", flow.ID)
			}
			if upd.ReceivedDate != nil || upd.Amount != nil {
				return conflictErrorf("cashflow %d is ledger-reconciled; amount and received date are immutable", flow.ID)
			}
		}

		if upd.DueDate != nil {
			flow.DueDate = *upd.DueDate
		}
		if upd.Amount != nil {
			if !upd.Amount.IsPositive() {
				return validationErrorf("cashflow amount must be positive")
			}
			flow.Amount = *upd.Amount
		}
		if upd.Kind != nil {
			if *upd.Kind != models.CashflowKindProfit && *upd.Kind != models.CashflowKindPrincipal {
				return validationErrorf("invalid cashflow kind %q", *upd.Kind)
			}
			flow.Kind = *upd.Kind
		}

		becameReceived := false
		if upd.Status != nil {
			switch *upd.Status {
			case models.CashflowStatusUpcoming, models.CashflowStatusExpected, models.CashflowStatusReceived:
			default:
				return validationErrorf("invalid cashflow status %q", *upd.Status)
			}
			becameReceived = *upd.Status == models.CashflowStatusReceived && flow.Status != models.CashflowStatusReceived
			flow.Status = *upd.Status
			if *upd.Status != models.CashflowStatusReceived {
				flow.ReceivedDate = nil
			}
		}

		if flow.Status == models.CashflowStatusReceived {
			switch {
			case upd.ReceivedDate != nil:
				flow.ReceivedDate = upd.ReceivedDate
			case flow.ReceivedDate == nil:
				now := time.Now()
				flow.ReceivedDate = &now
			}
		}

		if err := tx.Save(&flow).Error; err != nil {
			return err
		}

		if becameReceived && reconciled == 0 {
			var inv models.Investment
			if err := tx.First(&inv, flow.InvestmentID).Error; err != nil {
				return err
			}
			entry := models.CashTransaction{
				Amount:       flow.Amount,
				Type:         models.TransactionTypeDistribution,
				InvestmentID: &flow.InvestmentID,
				CashflowID:   &flow.ID,
				PlatformID:   &inv.PlatformID,
				Date:         *flow.ReceivedDate,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &flow, nil
}
