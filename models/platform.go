package models

import "time"

// Platform is a crowdfunding venue investments are placed through.
type Platform struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Website   *string   `gorm:"size:255" json:"website,omitempty"`
	Status    string    `gorm:"type:enum('active','inactive');not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Platform) TableName() string {
	return "platforms"
}
