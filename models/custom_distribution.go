package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomDistribution is an investor-authored schedule entry used when an
// investment has the "custom" distribution frequency. Each one is mirrored by
// a generated Cashflow with the same due date, amount and kind; the pair is
// created and destroyed together.
type CustomDistribution struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	InvestmentID uint            `gorm:"not null;index" json:"investment_id"`
	DueDate      time.Time       `gorm:"type:date;not null" json:"due_date"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Kind         string          `gorm:"type:enum('profit','principal');not null" json:"kind"`
	Note         *string         `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (CustomDistribution) TableName() string {
	return "custom_distributions"
}
