package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cash transaction types. The amount column is always an unsigned magnitude;
// the signed effect on the pool is derived from the type (see services.SignedEffect).
const (
	TransactionTypeDeposit      = "deposit"
	TransactionTypeWithdrawal   = "withdrawal"
	TransactionTypeInvestment   = "investment"
	TransactionTypeDistribution = "distribution"
	TransactionTypeTransfer     = "transfer"
)

// CashTransaction is one movement of the internal cash pool.
type CashTransaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Reference string          `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type      string          `gorm:"type:enum('deposit','withdrawal','investment','distribution','transfer');not null;index" json:"type"`
	Source    *string         `gorm:"type:text" json:"source,omitempty"`

	// Links are nullable: entries for deleted investments are kept but
	// detached so the realized cash history survives.
	InvestmentID *uint `gorm:"index" json:"investment_id,omitempty"`
	CashflowID   *uint `gorm:"index" json:"cashflow_id,omitempty"`
	PlatformID   *uint `gorm:"index" json:"platform_id,omitempty"`

	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Investment *Investment `gorm:"foreignKey:InvestmentID" json:"investment,omitempty"`
}

func (CashTransaction) TableName() string {
	return "cash_transactions"
}

func (c *CashTransaction) BeforeCreate(tx *gorm.DB) error {
	if c.Reference == "" {
		c.Reference = uuid.NewString()
	}
	return nil
}
