package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahmaad277/A.Z-Finance-Hub-sub000/models"
)

// DistributionInput is one investor-authored schedule entry.
type DistributionInput struct {
	DueDate time.Time
	Amount  decimal.Decimal
	Kind    string
	Note    *string
}

// DistributionsPatch distinguishes "not provided" (keep the existing
// schedule) from an explicit list. An explicitly empty list clears any custom
// distributions and regenerates the standard schedule.
type DistributionsPatch struct {
	Provided bool
	Items    []DistributionInput
}

// InvestmentInput carries the fields needed to create an investment.
type InvestmentInput struct {
	PlatformID      uint
	Name            string
	FaceValue       decimal.Decimal
	ExpectedProfit  decimal.Decimal
	StartDate       time.Time
	EndDate         time.Time
	Frequency       string
	ProfitStructure string
	Status          string
	FundedFromCash  bool
	RiskScore       int
	Distributions   []DistributionInput
}

// InvestmentUpdate is a partial update; nil fields are left untouched.
type InvestmentUpdate struct {
	PlatformID      *uint
	Name            *string
	FaceValue       *decimal.Decimal
	ExpectedProfit  *decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
	Frequency       *string
	ProfitStructure *string
	Status          *string
	RiskScore       *int
	Distributions   DistributionsPatch
}

func validFrequency(f string) bool {
	switch f {
	case models.FrequencyMonthly, models.FrequencyQuarterly, models.FrequencySemiAnnually,
		models.FrequencyAnnually, models.FrequencyAtMaturity, models.FrequencyCustom:
		return true
	}
	return false
}

func validStructure(s string) bool {
	return s == models.StructurePeriodic || s == models.StructureAtMaturity
}

func validStatus(s string) bool {
	switch s {
	case models.InvestmentStatusPending, models.InvestmentStatusActive, models.InvestmentStatusLate,
		models.InvestmentStatusDefaulted, models.InvestmentStatusCompleted:
		return true
	}
	return false
}

// validateInvestmentInput runs before any lock is taken.
func validateInvestmentInput(in *InvestmentInput) error {
	if in.PlatformID == 0 {
		return validationErrorf("platform is required")
	}
	if !in.FaceValue.IsPositive() {
		return validationErrorf("face value must be positive")
	}
	if in.ExpectedProfit.IsNegative() {
		return validationErrorf("expected profit cannot be negative")
	}
	if !in.EndDate.After(in.StartDate) {
		return validationErrorf("end date must be after start date")
	}
	if !validFrequency(in.Frequency) {
		return validationErrorf("invalid distribution frequency %q", in.Frequency)
	}
	if in.ProfitStructure == "" {
		in.ProfitStructure = models.StructurePeriodic
	}
	if !validStructure(in.ProfitStructure) {
		return validationErrorf("invalid profit structure %q", in.ProfitStructure)
	}
	if in.Status == "" {
		in.Status = models.InvestmentStatusActive
	}
	if !validStatus(in.Status) {
		return validationErrorf("invalid status %q", in.Status)
	}
	if in.Frequency == models.FrequencyCustom && len(in.Distributions) == 0 {
		return validationErrorf("custom frequency requires a distribution schedule")
	}
	for _, d := range in.Distributions {
		if !d.Amount.IsPositive() {
			return validationErrorf("distribution amounts must be positive")
		}
		if d.Kind != models.CashflowKindProfit && d.Kind != models.CashflowKindPrincipal {
			return validationErrorf("invalid distribution kind %q", d.Kind)
		}
	}
	return nil
}

// lockPlatformLedger locks every cash transaction relevant to the platform
// partition (directly tagged entries plus entries tagged only with an
// investment under that platform) and returns its current signed balance.
// Locking before the read closes the window where two concurrent creations
// could both observe a stale "sufficient balance".
func lockPlatformLedger(tx *gorm.DB, platformID uint) (decimal.Decimal, error) {
	sub := tx.Model(&models.Investment{}).Select("id").Where("platform_id = ?", platformID)
	var entries []models.CashTransaction
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("platform_id = ? OR investment_id IN (?)", platformID, sub).
		Find(&entries).Error; err != nil {
		return decimal.Zero, err
	}
	available := decimal.Zero
	for _, e := range entries {
		available = available.Add(SignedEffect(e.Type, e.Amount))
	}
	return available, nil
}

// nextInvestmentNo assigns the next sequential investment number under lock.
// If the table is completely empty two fully concurrent first insertions can
// both compute 1; the second fails on the unique index, which is the accepted
// outcome rather than a silent overwrite.
func nextInvestmentNo(tx *gorm.DB) (int64, error) {
	var maxNo int64
	err := tx.Model(&models.Investment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("COALESCE(MAX(investment_no), 0)").
		Scan(&maxNo).Error
	if err != nil {
		return 0, err
	}
	return maxNo + 1, nil
}

// insertDistributionSchedule persists custom distributions together with
// their mirrored cashflows.
func insertDistributionSchedule(tx *gorm.DB, investmentID uint, items []DistributionInput) error {
	for _, d := range items {
		dist := models.CustomDistribution{
			InvestmentID: investmentID,
			DueDate:      d.DueDate,
			Amount:       d.Amount,
			Kind:         d.Kind,
			Note:         d.Note,
		}
		if err := tx.Create(&dist).Error; err != nil {
			return err
		}
		flow := models.Cashflow{
			InvestmentID: investmentID,
			DueDate:      d.DueDate,
			Amount:       d.Amount,
			Kind:         d.Kind,
			Status:       models.CashflowStatusExpected,
		}
		if err := tx.Create(&flow).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertGeneratedSchedule(tx *gorm.DB, inv *models.Investment) error {
	var flows []models.Cashflow
	if !inv.EndDate.After(inv.StartDate) {
		// Degenerate dates should have been rejected by validation; keep a
		// single principal+profit event as the fallback.
		flows = []models.Cashflow{{
			DueDate: inv.EndDate,
			Amount:  inv.FaceValue.Add(inv.ExpectedProfit),
			Kind:    models.CashflowKindPrincipal,
			Status:  models.CashflowStatusExpected,
		}}
	} else {
		flows = GenerateSchedule(inv.StartDate, inv.EndDate, inv.FaceValue, inv.ExpectedProfit, inv.Frequency, inv.ProfitStructure)
	}
	for i := range flows {
		flows[i].InvestmentID = inv.ID
	}
	return tx.Create(&flows).Error
}

// CreateInvestment creates an investment together with its schedule and any
// cash-pool debit in one transaction. When the investment is funded from the
// internal pool the platform's ledger rows are locked and summed first; the
// whole unit of work rolls back on insufficient funds.
func CreateInvestment(db *gorm.DB, in InvestmentInput) (*models.Investment, error) {
	if err := validateInvestmentInput(&in); err != nil {
		return nil, err
	}

	inv := models.Investment{
		PlatformID:      in.PlatformID,
		Name:            in.Name,
		FaceValue:       in.FaceValue,
		ExpectedProfit:  in.ExpectedProfit,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		DurationMonths:  MonthsBetween(in.StartDate, in.EndDate),
		Frequency:       in.Frequency,
		ProfitStructure: in.ProfitStructure,
		Status:          in.Status,
		FundedFromCash:  in.FundedFromCash,
		RiskScore:       in.RiskScore,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if in.FundedFromCash {
			available, err := lockPlatformLedger(tx, in.PlatformID)
			if err != nil {
				return err
			}
			if available.LessThan(in.FaceValue) {
				return &InsufficientFundsError{Required: in.FaceValue, Available: available}
			}
		}

		no, err := nextInvestmentNo(tx)
		if err != nil {
			return err
		}
		inv.InvestmentNo = no

		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		if in.FundedFromCash {
			funding := models.CashTransaction{
				Amount:       in.FaceValue,
				Type:         models.TransactionTypeInvestment,
				InvestmentID: &inv.ID,
				PlatformID:   &inv.PlatformID,
				Date:         in.StartDate,
			}
			if err := tx.Create(&funding).Error; err != nil {
				return err
			}
		}

		if len(in.Distributions) > 0 {
			return insertDistributionSchedule(tx, inv.ID, in.Distributions)
		}
		return insertGeneratedSchedule(tx, &inv)
	})
	if err != nil {
		return nil, err
	}

	return GetInvestment(db, inv.ID)
}

// GetInvestment loads an investment with its platform and custom
// distributions attached.
func GetInvestment(db *gorm.DB, id uint) (*models.Investment, error) {
	var inv models.Investment
	err := db.Preload("Platform").Preload("Distributions").First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateInvestment applies a partial update. When the distributions patch is
// provided (including an explicit empty list) the existing custom
// distributions and all non-received cashflows are replaced; received history
// is never deleted by an update.
func UpdateInvestment(db *gorm.DB, id uint, upd InvestmentUpdate) (*models.Investment, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.Investment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if upd.PlatformID != nil {
			inv.PlatformID = *upd.PlatformID
		}
		if upd.Name != nil {
			inv.Name = *upd.Name
		}
		if upd.FaceValue != nil {
			inv.FaceValue = *upd.FaceValue
		}
		if upd.ExpectedProfit != nil {
			inv.ExpectedProfit = *upd.ExpectedProfit
		}
		if upd.StartDate != nil {
			inv.StartDate = *upd.StartDate
		}
		if upd.EndDate != nil {
			inv.EndDate = *upd.EndDate
		}
		if upd.Frequency != nil {
			inv.Frequency = *upd.Frequency
		}
		if upd.ProfitStructure != nil {
			inv.ProfitStructure = *upd.ProfitStructure
		}
		if upd.Status != nil {
			inv.Status = *upd.Status
		}
		if upd.RiskScore != nil {
			inv.RiskScore = *upd.RiskScore
		}

		if !inv.FaceValue.IsPositive() {
			return validationErrorf("face value must be positive")
		}
		if inv.ExpectedProfit.IsNegative() {
			return validationErrorf("expected profit cannot be negative")
		}
		if !inv.EndDate.After(inv.StartDate) {
			return validationErrorf("end date must be after start date")
		}
		if !validFrequency(inv.Frequency) {
			return validationErrorf("invalid distribution frequency %q", inv.Frequency)
		}
		if !validStructure(inv.ProfitStructure) {
			return validationErrorf("invalid profit structure %q", inv.ProfitStructure)
		}
		if !validStatus(inv.Status) {
			return validationErrorf("invalid status %q", inv.Status)
		}
		if upd.Distributions.Provided && inv.Frequency == models.FrequencyCustom && len(upd.Distributions.Items) == 0 {
			return validationErrorf("custom frequency requires a distribution schedule")
		}

		// Duration always follows the dates; it never silently diverges.
		inv.DurationMonths = MonthsBetween(inv.StartDate, inv.EndDate)

		if err := tx.Save(&inv).Error; err != nil {
			return err
		}

		if !upd.Distributions.Provided {
			return nil
		}

		if err := tx.Where("investment_id = ?", inv.ID).Delete(&models.CustomDistribution{}).Error; err != nil {
			return err
		}
		if err := tx.Where("investment_id = ? AND status <> ?", inv.ID, models.CashflowStatusReceived).
			Delete(&models.Cashflow{}).Error; err != nil {
			return err
		}

		if len(upd.Distributions.Items) > 0 {
			for _, d := range upd.Distributions.Items {
				if !d.Amount.IsPositive() {
					return validationErrorf("distribution amounts must be positive")
				}
				if d.Kind != models.CashflowKindProfit && d.Kind != models.CashflowKindPrincipal {
					return validationErrorf("invalid distribution kind %q", d.Kind)
				}
			}
			return insertDistributionSchedule(tx, inv.ID, upd.Distributions.Items)
		}
		return insertGeneratedSchedule(tx, &inv)
	})
	if err != nil {
		return nil, err
	}
	return GetInvestment(db, id)
}

// DeleteInvestment removes an investment, its schedule and its alerts while
// preserving realized cash history: ledger entries of received cashflows are
// detached and annotated instead of deleted, entries of unreceived cashflows
// are deleted outright, and the original funding debit is removed so the pool
// balance returns to its pre-investment value.
func DeleteInvestment(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var inv models.Investment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var flows []models.Cashflow
		if err := tx.Where("investment_id = ?", inv.ID).Find(&flows).Error; err != nil {
			return err
		}

		for _, f := range flows {
			if f.Status == models.CashflowStatusReceived {
				var entries []models.CashTransaction
				if err := tx.Where("cashflow_id = ?", f.ID).Find(&entries).Error; err != nil {
					return err
				}
				for _, e := range entries {
					note := fmt.Sprintf("investment #%d (%s) deleted", inv.InvestmentNo, inv.Name)
					if e.Source != nil && *e.Source != "" {
						note = *e.Source + "; " + note
					}
					updates := map[string]interface{}{
						"investment_id": nil,
						"cashflow_id":   nil,
						"source":        note,
					}
					if err := tx.Model(&models.CashTransaction{}).Where("id = ?", e.ID).Updates(updates).Error; err != nil {
						return err
					}
				}
			} else {
				if err := tx.Where("cashflow_id = ?", f.ID).Delete(&models.CashTransaction{}).Error; err != nil {
					return err
				}
			}
		}

		// The funding debit goes away entirely; pool balance is a derived
		// sum, so removing it returns the principal to the pool.
		if err := tx.Where("investment_id = ? AND type = ?", inv.ID, models.TransactionTypeInvestment).
			Delete(&models.CashTransaction{}).Error; err != nil {
			return err
		}

		if err := tx.Where("investment_id = ?", inv.ID).Delete(&models.Cashflow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("investment_id = ?", inv.ID).Delete(&models.CustomDistribution{}).Error; err != nil {
			return err
		}
		if err := tx.Where("investment_id = ?", inv.ID).Delete(&models.Alert{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inv).Error
	})
}
