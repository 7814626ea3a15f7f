package model

import (
	"time"

	"github.com/fxamacker/cbor/v2"
)

// TimerEventRecord represents the database model for timer history entries.
// The event detail is stored as a compact CBOR payload.
type TimerEventRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	TimerID   string    `gorm:"not null;size:36;index"`
	Kind      string    `gorm:"not null;size:20"`
	Payload   []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Define relationships
	Timer TimerRecord `gorm:"foreignKey:TimerID;references:ID"`
}

// TableName specifies the table name for TimerEventRecord
func (TimerEventRecord) TableName() string {
	return "timer_events"
}

// TimerEventPayload is the CBOR structure stored in a TimerEventRecord
type TimerEventPayload struct {
	DurationMs float64 `cbor:"1,keyasint,omitempty"`
	ElapsedMs  float64 `cbor:"2,keyasint,omitempty"`
	Reason     string  `cbor:"3,keyasint,omitempty"`
}

// Encode serialises the payload to CBOR
func (p TimerEventPayload) Encode() ([]byte, error) {
	return cbor.Marshal(p)
}

// DecodeTimerEventPayload deserialises a CBOR payload
func DecodeTimerEventPayload(data []byte) (TimerEventPayload, error) {
	var p TimerEventPayload
	if len(data) == 0 {
		return p, nil
	}
	err := cbor.Unmarshal(data, &p)
	return p, err
}
