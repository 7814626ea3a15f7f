package model

import (
	"time"
)

// TimerRecord represents the database model for scheduled timers
type TimerRecord struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Label        string    `gorm:"size:255"`
	DurationMs   float64   `gorm:"not null"`
	Status       string    `gorm:"not null;size:20;index"`
	CancelReason string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null;index"`
	FiresAt      time.Time `gorm:"not null"`
	CompletedAt  *time.Time
}

// TableName specifies the table name for TimerRecord
func (TimerRecord) TableName() string {
	return "timer_records"
}
