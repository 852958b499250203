package models

import (
	"time"
)

// StatusRow is one person's entry on the status board
type StatusRow struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        string    `gorm:"column:person;uniqueIndex;not null" json:"user"`
	Mood        string    `gorm:"not null" json:"mood"`
	Rating      int       `gorm:"not null" json:"rating"`
	LastUpdated string    `json:"last_updated"`
}

// TableName keeps the table name stable regardless of the struct name
func (StatusRow) TableName() string {
	return "statuses"
}
