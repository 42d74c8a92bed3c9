package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

func flow(due time.Time, status string) models.Cashflow {
	return models.Cashflow{DueDate: due, Amount: dec("100"), Kind: models.CashflowKindProfit, Status: status}
}

func TestDecideStatus_AllReceivedMeansCompleted(t *testing.T) {
	now := date(2025, time.June, 15)
	late := date(2025, time.March, 1)
	inv := &models.Investment{Status: models.InvestmentStatusLate, LateDate: &late}
	flows := []models.Cashflow{
		flow(date(2025, time.February, 1), models.CashflowStatusReceived),
		flow(date(2025, time.March, 1), models.CashflowStatusReceived),
	}

	d := DecideStatus(inv, flows, now)
	assert.Equal(t, models.InvestmentStatusCompleted, d.Status)
	assert.Nil(t, d.LateDate)
	assert.Nil(t, d.DefaultedDate)
}

func TestDecideStatus_NoOverdueMeansActive(t *testing.T) {
	now := date(2025, time.June, 15)
	inv := &models.Investment{Status: models.InvestmentStatusActive}
	flows := []models.Cashflow{
		flow(date(2025, time.June, 1), models.CashflowStatusReceived),
		flow(date(2025, time.July, 1), models.CashflowStatusExpected),
	}

	d := DecideStatus(inv, flows, now)
	assert.Equal(t, models.InvestmentStatusActive, d.Status)
}

func TestDecideStatus_OverdueWithinGraceIsLate(t *testing.T) {
	due := date(2025, time.June, 1)
	now := due.AddDate(0, 0, 10)
	inv := &models.Investment{Status: models.InvestmentStatusActive}
	flows := []models.Cashflow{flow(due, models.CashflowStatusExpected)}

	d := DecideStatus(inv, flows, now)
	assert.Equal(t, models.InvestmentStatusLate, d.Status)
	require.NotNil(t, d.LateDate)
	assert.Equal(t, due, *d.LateDate)
	assert.Nil(t, d.DefaultedDate)
}

func TestDecideStatus_PastGraceIsDefaulted(t *testing.T) {
	due := date(2025, time.June, 1)
	now := due.AddDate(0, 0, 31)
	inv := &models.Investment{Status: models.InvestmentStatusLate}
	flows := []models.Cashflow{flow(due, models.CashflowStatusExpected)}

	d := DecideStatus(inv, flows, now)
	assert.Equal(t, models.InvestmentStatusDefaulted, d.Status)
	require.NotNil(t, d.DefaultedDate)
	assert.Equal(t, due.AddDate(0, 0, GracePeriodDays), *d.DefaultedDate)
}

func TestDecideStatus_ExactlyAtGraceBoundaryStaysLate(t *testing.T) {
	due := date(2025, time.June, 1)
	now := due.AddDate(0, 0, GracePeriodDays)
	inv := &models.Investment{}
	flows := []models.Cashflow{flow(due, models.CashflowStatusExpected)}

	d := DecideStatus(inv, flows, now)
	assert.Equal(t, models.InvestmentStatusLate, d.Status)
}

func TestDecideStatus_EarliestOverdueDrivesDecision(t *testing.T) {
	now := date(2025, time.August, 15)
	oldDue := date(2025, time.July, 1)
	inv := &models.Investment{}
	flows := []models.Cashflow{
		flow(date(2025, time.August, 1), models.CashflowStatusExpected),
		flow(oldDue, models.CashflowStatusExpected),
		flow(date(2025, time.September, 1), models.CashflowStatusExpected),
	}

	d := DecideStatus(inv, flows, now)
	assert.Equal(t, models.InvestmentStatusDefaulted, d.Status)
	require.NotNil(t, d.DefaultedDate)
	assert.Equal(t, oldDue.AddDate(0, 0, GracePeriodDays), *d.DefaultedDate)
}

func TestDecideStatus_PreservesExistingLateDate(t *testing.T) {
	recorded := date(2025, time.May, 20)
	due := date(2025, time.June, 1)
	inv := &models.Investment{LateDate: &recorded}
	flows := []models.Cashflow{flow(due, models.CashflowStatusExpected)}

	d := DecideStatus(inv, flows, date(2025, time.June, 10))
	require.NotNil(t, d.LateDate)
	assert.Equal(t, recorded, *d.LateDate)
}

func TestDecideStatus_Idempotent(t *testing.T) {
	due := date(2025, time.June, 1)
	now := due.AddDate(0, 0, 45)
	inv := &models.Investment{}
	flows := []models.Cashflow{flow(due, models.CashflowStatusExpected)}

	first := DecideStatus(inv, flows, now)
	second := DecideStatus(inv, flows, now)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.DefaultedDate, second.DefaultedDate)
}

func TestDecideStatus_NoFlowsMeansActive(t *testing.T) {
	d := DecideStatus(&models.Investment{}, nil, date(2025, time.June, 1))
	assert.Equal(t, models.InvestmentStatusActive, d.Status)
}
