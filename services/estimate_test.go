package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

func TestEstimateProfit_Monthly(t *testing.T) {
	est, err := EstimateProfit(date(2025, time.January, 15), date(2026, time.January, 15), dec("1200"), models.FrequencyMonthly)
	require.NoError(t, err)

	assert.Equal(t, 12, est.DurationMonths)
	assert.Equal(t, 12, est.PaymentCount)
	assert.True(t, dec("100.00").Equal(est.ProfitPerPeriod))
}

func TestEstimateProfit_AtMaturitySinglePayment(t *testing.T) {
	est, err := EstimateProfit(date(2025, time.January, 1), date(2025, time.July, 1), dec("500"), models.FrequencyAtMaturity)
	require.NoError(t, err)

	assert.Equal(t, 1, est.PaymentCount)
	assert.True(t, dec("500").Equal(est.ProfitPerPeriod))
}

func TestEstimateProfit_MatchesGeneratedSchedule(t *testing.T) {
	start := date(2025, time.February, 1)
	end := date(2026, time.February, 1)
	est, err := EstimateProfit(start, end, dec("900"), models.FrequencyQuarterly)
	require.NoError(t, err)

	flows := GenerateSchedule(start, end, dec("10000"), dec("900"), models.FrequencyQuarterly, models.StructurePeriodic)
	profits := 0
	for _, f := range flows {
		if f.Kind == models.CashflowKindProfit {
			profits++
			assert.True(t, est.ProfitPerPeriod.Equal(f.Amount))
		}
	}
	assert.Equal(t, est.PaymentCount, profits)
}

func TestEstimateProfit_InvalidInputs(t *testing.T) {
	start := date(2025, time.June, 1)

	_, err := EstimateProfit(start, start, dec("100"), models.FrequencyMonthly)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = EstimateProfit(start, start.AddDate(1, 0, 0), dec("-1"), models.FrequencyMonthly)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = EstimateProfit(start, start.AddDate(1, 0, 0), dec("100"), "weekly")
	assert.True(t, errors.Is(err, ErrValidation))
}
