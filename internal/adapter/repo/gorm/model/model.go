package model

import "time"

// ActionRecord is the archived form of a processed action. The archive is
// append-only; rows are never read back by the engine.
type ActionRecord struct {
	ID          uint   `gorm:"primaryKey"`
	ActionID    string `gorm:"size:64;uniqueIndex"`
	NationID    string `gorm:"size:64;index"`
	Type        string `gorm:"size:32;index"`
	Epoch       int64  `gorm:"index"`
	Success     bool
	Message     string `gorm:"type:text"`
	Params      []byte `gorm:"type:jsonb"`
	Effects     []byte `gorm:"type:jsonb"`
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func (ActionRecord) TableName() string { return "action_archive" }

// EventRecord is one archived world event.
type EventRecord struct {
	ID             uint      `gorm:"primaryKey"`
	EventID        string    `gorm:"size:64;uniqueIndex"`
	Type           string    `gorm:"size:32;index"`
	NationID       string    `gorm:"size:64;index"`
	TargetNationID string    `gorm:"size:64"`
	RegionID       string    `gorm:"size:64"`
	Message        string    `gorm:"type:text"`
	Details        []byte    `gorm:"type:jsonb"`
	OccurredAt     time.Time `gorm:"index"`
}

func (EventRecord) TableName() string { return "event_archive" }
