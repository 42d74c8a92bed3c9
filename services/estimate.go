package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// ProfitEstimate previews duration and per-period profit for the UI form
// before an investment is saved. It uses the same month convention as the
// schedule generator so the preview matches what generation will produce.
type ProfitEstimate struct {
	DurationMonths  int             `json:"duration_months"`
	PaymentCount    int             `json:"payment_count"`
	ProfitPerPeriod decimal.Decimal `json:"profit_per_period"`
}

func EstimateProfit(startDate, endDate time.Time, totalProfit decimal.Decimal, frequency string) (*ProfitEstimate, error) {
	if !endDate.After(startDate) {
		return nil, validationErrorf("end date must be after start date")
	}
	if totalProfit.IsNegative() {
		return nil, validationErrorf("expected profit cannot be negative")
	}
	if !validFrequency(frequency) {
		return nil, validationErrorf("invalid distribution frequency %q", frequency)
	}

	est := &ProfitEstimate{DurationMonths: MonthsBetween(startDate, endDate)}

	if frequency == models.FrequencyAtMaturity || frequency == models.FrequencyCustom {
		est.PaymentCount = 1
		est.ProfitPerPeriod = totalProfit
		return est, nil
	}

	interval := IntervalMonths(frequency)
	count := 0
	for d := AddMonths(startDate, interval); !d.After(endDate); d = AddMonths(d, interval) {
		count++
	}
	if count == 0 {
		count = 1
	}
	est.PaymentCount = count
	est.ProfitPerPeriod = totalProfit.Div(decimal.NewFromInt(int64(count))).Round(2)
	return est, nil
}
