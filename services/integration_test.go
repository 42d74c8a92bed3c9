package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// openTestDB connects to the database named by TEST_DB_DSN and migrates a
// fresh schema. Tests calling it are skipped when the variable is unset so
// the suite stays runnable without infrastructure.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping database test")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(
		&models.Alert{}, &models.CashTransaction{}, &models.CustomDistribution{},
		&models.Cashflow{}, &models.Investment{}, &models.Platform{},
	))
	require.NoError(t, db.AutoMigrate(
		&models.Platform{}, &models.Investment{}, &models.Cashflow{},
		&models.CustomDistribution{}, &models.CashTransaction{}, &models.Alert{},
	))
	return db
}

func seedPlatform(t *testing.T, db *gorm.DB, name string) *models.Platform {
	t.Helper()
	p := models.Platform{Name: name, Status: "active"}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func seedDeposit(t *testing.T, db *gorm.DB, platformID uint, amount string) {
	t.Helper()
	pid := platformID
	entry := models.CashTransaction{
		Amount:     dec(amount),
		Type:       models.TransactionTypeDeposit,
		PlatformID: &pid,
		Date:       time.Now(),
	}
	require.NoError(t, db.Create(&entry).Error)
}

func baseInput(platformID uint) InvestmentInput {
	return InvestmentInput{
		PlatformID:     platformID,
		Name:           "Warehouse Sukuk",
		FaceValue:      dec("5000.00"),
		ExpectedProfit: dec("600.00"),
		StartDate:      date(2025, time.January, 15),
		EndDate:        date(2026, time.January, 15),
		Frequency:      models.FrequencyMonthly,
	}
}

func TestCreateInvestment_GeneratesScheduleAndNumber(t *testing.T) {
	db := openTestDB(t)
	p := seedPlatform(t, db, "Funding Souq")

	inv, err := CreateInvestment(db, baseInput(p.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), inv.InvestmentNo)
	assert.Equal(t, 12, inv.DurationMonths)
	assert.Equal(t, models.InvestmentStatusActive, inv.Status)

	flows, err := ListCashflows(db, inv.ID)
	require.NoError(t, err)
	assert.Len(t, flows, 13)

	second, err := CreateInvestment(db, baseInput(p.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.InvestmentNo)
}

func TestCreateInvestment_PoolFunding(t *testing.T) {
	db := openTestDB(t)
	p := seedPlatform(t, db, "Funding Souq")
	seedDeposit(t, db, p.ID, "10000.00")

	in := baseInput(p.ID)
	in.FundedFromCash = true
	inv, err := CreateInvestment(db, in)
	require.NoError(t, err)

	var funding models.CashTransaction
	require.NoError(t, db.Where("investment_id = ? AND type = ?", inv.ID, models.TransactionTypeInvestment).First(&funding).Error)
	assert.True(t, dec("5000.00").Equal(funding.Amount))
	assert.NotEmpty(t, funding.Reference)

	balance, err := PoolBalance(db)
	require.NoError(t, err)
	assert.True(t, dec("5000.00").Equal(balance.Total))
}

func TestCreateInvestment_InsufficientFundsRollsBack(t *testing.T) {
	db := openTestDB(t)
	p := seedPlatform(t, db, "Funding Souq")
	seedDeposit(t, db, p.ID, "1000.00")

	in := baseInput(p.ID)
	in.FundedFromCash = true
	_, err := CreateInvestment(db, in)

	var ife *InsufficientFundsError
	require.ErrorAs(t, err, &ife)
	assert.True(t, dec("5000.00").Equal(ife.Required))
	assert.True(t, dec("1000.00").Equal(ife.Available))

	// nothing from the failed creation survives
	var invCount, flowCount int64
	require.NoError(t, db.Model(&models.Investment{}).Count(&invCount).Error)
	require.NoError(t, db.Model(&models.Cashflow{}).Count(&flowCount).Error)
	assert.Zero(t, invCount)
	assert.Zero(t, flowCount)
}

func TestUpdateCashflow_ReceiveCreatesLedgerEntryOnce(t *testing.T) {
	db := openTestDB(t)
	p := seedPlatform(t, db, "Funding Souq")
	inv, err := CreateInvestment(db, baseInput(p.ID))
	require.NoError(t, err)

	flows, err := ListCashflows(db, inv.ID)
	require.NoError(t, err)
	first := flows[0]

	received := models.CashflowStatusReceived
	_, err = UpdateCashflow(db, first.ID, CashflowUpdate{Status: &received})
	require.NoError(t, err)

	var entries int64
	require.NoError(t, db.Model(&models.CashTransaction{}).Where("cashflow_id = ?", first.ID).Count(&entries).Error)
	assert.Equal(t, int64(1), entries)

	// reconciled cashflow cannot leave received status
	expected := models.CashflowStatusExpected
	_, err = UpdateCashflow(db, first.ID, CashflowUpdate{Status: &expected})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCompleteInvestment_MarksEverythingAndRejectsRerun(t *testing.T) {
	db := openTestDB(t)
	p := seedPlatform(t, db, "Funding Souq")
	inv, err := CreateInvestment(db, baseInput(p.ID))
	require.NoError(t, err)

	res, err := CompleteInvestment(db, inv.ID, CompletionOptions{UseDueDates: true})
	require.NoError(t, err)
	assert.Equal(t, 13, res.UpdatedCount)
	assert.True(t, dec("5600.00").Equal(res.TotalAmount))

	reloaded, err := GetInvestment(db, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvestmentStatusCompleted, reloaded.Status)

	flows, err := ListCashflows(db, inv.ID)
	require.NoError(t, err)
	for _, f := range flows {
		assert.Equal(t, models.CashflowStatusReceived, f.Status)
		require.NotNil(t, f.ReceivedDate)
	}

	// one ledger credit per cashflow
	var entries int64
	require.NoError(t, db.Model(&models.CashTransaction{}).Where("investment_id = ?", inv.ID).Count(&entries).Error)
	assert.Equal(t, int64(13), entries)

	// plain re-completion is rejected; due-date mode stays allowed for cleanup
	_, err = CompleteInvestment(db, inv.ID, CompletionOptions{})
	assert.ErrorIs(t, err, ErrConflict)
	rerun, err := CompleteInvestment(db, inv.ID, CompletionOptions{UseDueDates: true})
	require.NoError(t, err)
	assert.Zero(t, rerun.UpdatedCount)
}

func TestCompleteInvestment_LateWithinGraceClearsDefaultMilestone(t *testing.T) {
	db := openTestDB(t)
	p := seedPlatform(t, db, "Funding Souq")
	inv, err := CreateInvestment(db, baseInput(p.ID))
	require.NoError(t, err)

	lateSince := time.Now().AddDate(0, 0, -10)
	require.NoError(t, db.Model(&models.Investment{}).Where("id = ?", inv.ID).
		Updates(map[string]interface{}{"status": models.InvestmentStatusLate, "late_date": lateSince}).Error)

	_, err = CompleteInvestment(db, inv.ID, CompletionOptions{})
	require.NoError(t, err)

	reloaded, err := GetInvestment(db, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvestmentStatusCompleted, reloaded.Status)
	assert.Nil(t, reloaded.DefaultedDate)
	require.NotNil(t, reloaded.LateDate)
}

func TestDeleteInvestment_PreservesRealizedCashHistory(t *testing.T) {
	db := openTestDB(t)
	p := seedPlatform(t, db, "Funding Souq")
	seedDeposit(t, db, p.ID, "10000.00")

	in := baseInput(p.ID)
	in.FundedFromCash = true
	inv, err := CreateInvestment(db, in)
	require.NoError(t, err)

	flows, err := ListCashflows(db, inv.ID)
	require.NoError(t, err)
	received := models.CashflowStatusReceived
	_, err = UpdateCashflow(db, flows[0].ID, CashflowUpdate{Status: &received})
	require.NoError(t, err)

	require.NoError(t, DeleteInvestment(db, inv.ID))

	_, err = GetInvestment(db, inv.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var flowCount int64
	require.NoError(t, db.Model(&models.Cashflow{}).Where("investment_id = ?", inv.ID).Count(&flowCount).Error)
	assert.Zero(t, flowCount)

	// the realized distribution survives detached and annotated
	var survivors []models.CashTransaction
	require.NoError(t, db.Find(&survivors).Error)
	require.Len(t, survivors, 2) // seed deposit + detached distribution
	var detached *models.CashTransaction
	for i := range survivors {
		if survivors[i].Type == models.TransactionTypeDistribution {
			detached = &survivors[i]
		}
	}
	require.NotNil(t, detached)
	assert.Nil(t, detached.InvestmentID)
	assert.Nil(t, detached.CashflowID)
	require.NotNil(t, detached.Source)
	assert.Contains(t, *detached.Source, fmt.Sprintf("investment #%d", inv.InvestmentNo))

	// funding debit removed, pool back to deposit plus realized profit
	balance, err := PoolBalance(db)
	require.NoError(t, err)
	expected := dec("10000.00").Add(flows[0].Amount)
	assert.True(t, expected.Equal(balance.Total), "expected %s, got %s", expected, balance.Total)
}

func TestSweeper_RunOnceTransitionsAndAlerts(t *testing.T) {
	db := openTestDB(t)
	p := seedPlatform(t, db, "Funding Souq")

	in := baseInput(p.ID)
	in.StartDate = time.Now().AddDate(-1, 0, 0)
	in.EndDate = time.Now().AddDate(0, -2, 0)
	inv, err := CreateInvestment(db, in)
	require.NoError(t, err)

	pendingIn := baseInput(p.ID)
	pendingIn.Name = "Draft Deal"
	pendingIn.Status = models.InvestmentStatusPending
	pendingIn.StartDate = in.StartDate
	pendingIn.EndDate = in.EndDate
	pending, err := CreateInvestment(db, pendingIn)
	require.NoError(t, err)

	s := NewSweeper(db)
	res, err := s.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, res.UpdatesApplied)

	reloaded, err := GetInvestment(db, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvestmentStatusDefaulted, reloaded.Status)
	require.NotNil(t, reloaded.DefaultedDate)

	unchanged, err := GetInvestment(db, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvestmentStatusPending, unchanged.Status)

	var alerts []models.Alert
	require.NoError(t, db.Where("investment_id = ?", inv.ID).Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.Equal(t, "defaulted", alerts[0].Kind)

	// second sweep is a no-op
	res, err = s.RunOnce()
	require.NoError(t, err)
	assert.Zero(t, res.UpdatesApplied)
}
