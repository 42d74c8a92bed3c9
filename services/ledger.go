package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// SignedEffect maps a cash transaction to its signed effect on the pool.
// Deposits and distributions add money, everything else removes it. The sign
// is never stored; it is always derived here so call sites cannot disagree.
func SignedEffect(txType string, amount decimal.Decimal) decimal.Decimal {
	switch txType {
	case models.TransactionTypeDeposit, models.TransactionTypeDistribution:
		return amount
	default:
		return amount.Neg()
	}
}

// BalanceSummary is the pool balance with a per-platform breakdown.
type BalanceSummary struct {
	Total      decimal.Decimal          `json:"total"`
	ByPlatform map[uint]decimal.Decimal `json:"by_platform"`
}

// ComputeBalance folds cash transactions into a total and per-platform
// balances. An entry without a direct platform tag is attributed through its
// linked investment's platform; entries with neither still count toward the
// total but are excluded from the breakdown.
func ComputeBalance(entries []models.CashTransaction) BalanceSummary {
	summary := BalanceSummary{
		Total:      decimal.Zero,
		ByPlatform: make(map[uint]decimal.Decimal),
	}
	for i := range entries {
		e := entries[i]
		effect := SignedEffect(e.Type, e.Amount)
		summary.Total = summary.Total.Add(effect)

		var platformID *uint
		if e.PlatformID != nil {
			platformID = e.PlatformID
		} else if e.Investment != nil {
			platformID = &e.Investment.PlatformID
		}
		if platformID != nil {
			current, ok := summary.ByPlatform[*platformID]
			if !ok {
				current = decimal.Zero
			}
			summary.ByPlatform[*platformID] = current.Add(effect)
		}
	}
	return summary
}

// PoolBalance loads every cash transaction and computes the current balance.
func PoolBalance(db *gorm.DB) (BalanceSummary, error) {
	var entries []models.CashTransaction
	if err := db.Preload("Investment").Find(&entries).Error; err != nil {
		return BalanceSummary{}, err
	}
	return ComputeBalance(entries), nil
}
