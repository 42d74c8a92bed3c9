package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cashflow statuses.
const (
	CashflowStatusUpcoming = "upcoming"
	CashflowStatusExpected = "expected"
	CashflowStatusReceived = "received"
)

// Cashflow kinds.
const (
	CashflowKindProfit    = "profit"
	CashflowKindPrincipal = "principal"
)

// Cashflow is one scheduled or realized cash movement of an investment.
type Cashflow struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	InvestmentID uint            `gorm:"not null;index" json:"investment_id"`
	DueDate      time.Time       `gorm:"type:date;not null;index" json:"due_date"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Kind         string          `gorm:"type:enum('profit','principal');not null" json:"kind"`
	Status       string          `gorm:"type:enum('upcoming','expected','received');not null;default:'expected';index" json:"status"`
	ReceivedDate *time.Time      `gorm:"type:date" json:"received_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Cashflow) TableName() string {
	return "cashflows"
}
