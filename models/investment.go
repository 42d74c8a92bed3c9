package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment statuses. "pending" is only ever set at creation, before funding
// is confirmed; the status sweep never moves an investment into or out of it.
const (
	InvestmentStatusPending   = "pending"
	InvestmentStatusActive    = "active"
	InvestmentStatusLate      = "late"
	InvestmentStatusDefaulted = "defaulted"
	InvestmentStatusCompleted = "completed"
)

// Distribution frequencies.
const (
	FrequencyMonthly      = "monthly"
	FrequencyQuarterly    = "quarterly"
	FrequencySemiAnnually = "semi_annually"
	FrequencyAnnually     = "annually"
	FrequencyAtMaturity   = "at_maturity"
	FrequencyCustom       = "custom"
)

// Profit payment structures.
const (
	StructurePeriodic   = "periodic"
	StructureAtMaturity = "at_maturity"
)

type Investment struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	InvestmentNo int64 `gorm:"column:investment_no;not null;uniqueIndex" json:"investment_no"`
	PlatformID   uint  `gorm:"not null;index" json:"platform_id"`

	Name           string          `gorm:"size:150;not null" json:"name"`
	FaceValue      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"face_value"`
	ExpectedProfit decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0.00" json:"expected_profit"`

	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null" json:"end_date"`
	DurationMonths int       `gorm:"not null" json:"duration_months"`

	Frequency       string `gorm:"type:enum('monthly','quarterly','semi_annually','annually','at_maturity','custom');not null" json:"frequency"`
	ProfitStructure string `gorm:"type:enum('periodic','at_maturity');not null;default:'periodic'" json:"profit_structure"`

	Status        string     `gorm:"type:enum('pending','active','late','defaulted','completed');not null;default:'active';index" json:"status"`
	LateDate      *time.Time `gorm:"type:date" json:"late_date,omitempty"`
	DefaultedDate *time.Time `gorm:"type:date" json:"defaulted_date,omitempty"`

	// FundedFromCash marks investments paid out of the internal cash pool;
	// creating one debits the pool with a matching "investment" transaction.
	FundedFromCash bool `gorm:"not null;default:false" json:"funded_from_cash"`
	RiskScore      int  `gorm:"not null;default:0" json:"risk_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Platform      *Platform            `gorm:"foreignKey:PlatformID" json:"platform,omitempty"`
	Distributions []CustomDistribution `gorm:"foreignKey:InvestmentID" json:"distributions,omitempty"`
}

func (Investment) TableName() string {
	return "investments"
}
