// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string
type EventCategory string

const (
	EventOK     EventStatus = "OK"
	EventDenied EventStatus = "DENIED"
	EventFailed EventStatus = "FAILED"
)

const (
	AuthEvent         EventCategory = "AUTH"
	NewsEvent         EventCategory = "NEWS"
	SubscriptionEvent EventCategory = "SUBSCRIPTION"
)

// EventLog is the audit trail: login attempts, publish transitions and
// subscription mutations are recorded here.
type EventLog struct {
	ID          uint          `gorm:"primaryKey"`
	EID         uuid.UUID     `gorm:"type:uuid;not null"`
	Category    EventCategory `gorm:"size:20;not null;index"`
	Status      EventStatus   `gorm:"size:10;not null"`
	Action      string        `gorm:"size:100;not null"`
	Description *string       `gorm:"type:text;default:null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	UserID      *uint          `gorm:"index;default:null"`
}

func (e *EventLog) BeforeCreate(tx *gorm.DB) error {
	if e.EID == uuid.Nil {
		e.EID = uuid.New()
	}
	return nil
}

// RecordEvent appends an audit entry. Audit failures are reported to the
// caller but are not meant to abort the audited operation.
func RecordEvent(conn *gorm.DB, category EventCategory, status EventStatus, action string, userID *uint, description string) error {
	entry := EventLog{
		Category: category,
		Status:   status,
		Action:   action,
		UserID:   userID,
	}
	if description != "" {
		entry.Description = &description
	}
	return conn.Create(&entry).Error
}

func init() {
	AllModels = append(AllModels, &EventLog{})
}
