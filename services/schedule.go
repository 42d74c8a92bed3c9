package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// IntervalMonths maps a distribution frequency to its payment interval.
// Returns 0 for at_maturity and custom, which have no regular interval.
func IntervalMonths(frequency string) int {
	switch frequency {
	case models.FrequencyMonthly:
		return 1
	case models.FrequencyQuarterly:
		return 3
	case models.FrequencySemiAnnually:
		return 6
	case models.FrequencyAnnually:
		return 12
	default:
		return 0
	}
}

// GenerateSchedule produces the expected cashflows for an investment from its
// financial parameters. Callers must not invoke it with endDate <= startDate;
// the coordinator validates dates first and falls back to a single principal
// event for the degenerate case.
//
// For at_maturity frequency the profit and the principal stay separate events
// on the end date so each can be reconciled against the ledger on its own.
// For periodic frequencies the total profit is split evenly across the payment
// dates (no remainder correction on the last event), and the principal is due
// one day after the final profit date so it sorts after it. When the profit
// structure defers payout to maturity despite a periodic frequency, the whole
// return collapses into one principal event of profit+principal on the end
// date; that event is deliberately not itemized.
func GenerateSchedule(startDate, endDate time.Time, principal, totalProfit decimal.Decimal, frequency, structure string) []models.Cashflow {
	var flows []models.Cashflow

	if frequency == models.FrequencyAtMaturity {
		if totalProfit.IsPositive() {
			flows = append(flows, models.Cashflow{
				DueDate: endDate,
				Amount:  totalProfit,
				Kind:    models.CashflowKindProfit,
				Status:  models.CashflowStatusExpected,
			})
		}
		flows = append(flows, models.Cashflow{
			DueDate: endDate,
			Amount:  principal,
			Kind:    models.CashflowKindPrincipal,
			Status:  models.CashflowStatusExpected,
		})
		return flows
	}

	interval := IntervalMonths(frequency)
	if interval <= 0 {
		interval = 1
	}

	var dates []time.Time
	for d := AddMonths(startDate, interval); !d.After(endDate); d = AddMonths(d, interval) {
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		dates = append(dates, endDate)
	}

	if structure == models.StructureAtMaturity {
		// Profit deferred to maturity: a single lump event, profit folded
		// into the principal rather than itemized.
		return []models.Cashflow{{
			DueDate: endDate,
			Amount:  totalProfit.Add(principal),
			Kind:    models.CashflowKindPrincipal,
			Status:  models.CashflowStatusExpected,
		}}
	}

	share := totalProfit.Div(decimal.NewFromInt(int64(len(dates)))).Round(2)
	for _, d := range dates {
		flows = append(flows, models.Cashflow{
			DueDate: d,
			Amount:  share,
			Kind:    models.CashflowKindProfit,
			Status:  models.CashflowStatusExpected,
		})
	}

	// Principal one day after the last profit payment, so listings keep it
	// ordered after rather than co-dated.
	flows = append(flows, models.Cashflow{
		DueDate: dates[len(dates)-1].AddDate(0, 0, 1),
		Amount:  principal,
		Kind:    models.CashflowKindPrincipal,
		Status:  models.CashflowStatusExpected,
	})

	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].DueDate.Before(flows[j].DueDate)
	})
	return flows
}
