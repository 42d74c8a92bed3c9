package models

import "time"

// Alert records a lifecycle event worth surfacing in the UI, currently an
// investment turning late or defaulted. Alerts are removed together with
// their investment.
type Alert struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InvestmentID uint      `gorm:"not null;index" json:"investment_id"`
	Kind         string    `gorm:"type:enum('late','defaulted');not null" json:"kind"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Alert) TableName() string {
	return "alerts"
}
