package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// CompletionOptions controls a bulk "mark all as paid" run. UseDueDates
// stamps each cashflow with its own due date instead of a single received
// date; it is also the only way to re-run completion on an already completed
// investment (to clear stale delinquency dates). ClearLateStatus and
// ExtendLateDays are mutually exclusive.
type CompletionOptions struct {
	UseDueDates     bool
	ClearLateStatus bool
	ExtendLateDays  int
	ReceivedDate    *time.Time
}

// CompletionResult summarizes what a bulk completion changed.
type CompletionResult struct {
	UpdatedCount int             `json:"updated_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// CompleteInvestment transitions every outstanding cashflow of one investment
// to received in a single transaction. The investment and all its outstanding
// cashflows are locked together so a concurrent single-cashflow update cannot
// double-credit the pool; ledger entries are created only for cashflows that
// have none yet, making re-invocation idempotent at the ledger level.
func CompleteInvestment(db *gorm.DB, id uint, opts CompletionOptions) (*CompletionResult, error) {
	if opts.ClearLateStatus && opts.ExtendLateDays > 0 {
		return nil, conflictErrorf("clear late status and extend late days cannot be combined")
	}
	if opts.ExtendLateDays < 0 {
		return nil, validationErrorf("extend late days cannot be negative")
	}

	result := &CompletionResult{TotalAmount: decimal.Zero}
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.Investment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if inv.Status == models.InvestmentStatusPending {
			return conflictErrorf("pending investment %d cannot be completed", inv.ID)
		}
		if inv.Status == models.InvestmentStatusCompleted && !opts.UseDueDates {
			return conflictErrorf("investment %d is already completed", inv.ID)
		}

		var outstanding []models.Cashflow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("investment_id = ? AND status <> ?", inv.ID, models.CashflowStatusReceived).
			Find(&outstanding).Error; err != nil {
			return err
		}

		asOf := time.Now()
		if opts.ReceivedDate != nil {
			asOf = *opts.ReceivedDate
		}

		for i := range outstanding {
			f := &outstanding[i]
			receivedAt := asOf
			if opts.UseDueDates {
				receivedAt = f.DueDate
			}

			updates := map[string]interface{}{
				"status":        models.CashflowStatusReceived,
				"received_date": receivedAt,
			}
			if err := tx.Model(&models.Cashflow{}).Where("id = ?", f.ID).Updates(updates).Error; err != nil {
				return err
			}

			var reconciled int64
			if err := tx.Model(&models.CashTransaction{}).Where("cashflow_id = ?", f.ID).Count(&reconciled).Error; err != nil {
				return err
			}
			if reconciled == 0 {
				entry := models.CashTransaction{
					Amount:       f.Amount,
					Type:         models.TransactionTypeDistribution,
					InvestmentID: &inv.ID,
					CashflowID:   &f.ID,
					PlatformID:   &inv.PlatformID,
					Date:         receivedAt,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}

			result.UpdatedCount++
			result.TotalAmount = result.TotalAmount.Add(f.Amount)
		}

		invUpdates := map[string]interface{}{}
		switch inv.Status {
		case models.InvestmentStatusLate, models.InvestmentStatusDefaulted:
			invUpdates["status"] = models.InvestmentStatusCompleted
			if opts.ClearLateStatus {
				invUpdates["late_date"] = nil
				invUpdates["defaulted_date"] = nil
			} else if inv.LateDate != nil {
				// History stays: the grace window (extended when requested)
				// decides whether the defaulted milestone is kept.
				grace := GracePeriodDays + opts.ExtendLateDays
				deadline := inv.LateDate.AddDate(0, 0, grace)
				if asOf.After(deadline) {
					invUpdates["defaulted_date"] = deadline
				} else {
					invUpdates["defaulted_date"] = nil
				}
			}
		case models.InvestmentStatusActive:
			invUpdates["status"] = models.InvestmentStatusCompleted
		case models.InvestmentStatusCompleted:
			// Due-date mode on an already completed investment only clears
			// stale delinquency dates.
			if inv.LateDate != nil || inv.DefaultedDate != nil {
				invUpdates["late_date"] = nil
				invUpdates["defaulted_date"] = nil
			}
		}

		if len(invUpdates) > 0 {
			if err := tx.Model(&inv).Updates(invUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
