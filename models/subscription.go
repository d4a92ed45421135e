// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"presspass-server/crypto"

	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	ActiveSubscription    SubscriptionStatus = "active"
	PendingSubscription   SubscriptionStatus = "pending"
	CancelledSubscription SubscriptionStatus = "cancelled"
	ExpiredSubscription   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case ActiveSubscription, PendingSubscription, CancelledSubscription, ExpiredSubscription:
		return true
	}
	return false
}

type Subscription struct {
	ID       uint               `gorm:"primaryKey"`
	PublicID string             `gorm:"size:64;uniqueIndex"`
	Status   SubscriptionStatus `gorm:"size:20;not null;default:'active'"`

	StartDate time.Time  `gorm:"not null"`
	EndDate   *time.Time `gorm:"default:null"`

	AutoRenew           bool `gorm:"not null;default:true"`
	RenewalReminderSent bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// A user holds at most one subscription per plan.
	UserID uint `gorm:"not null;uniqueIndex:idx_subscriptions_user_plan"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PlanID uint `gorm:"not null;uniqueIndex:idx_subscriptions_user_plan"`
	Plan   Plan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

func (subscription *Subscription) BeforeCreate(tx *gorm.DB) (err error) {
	if subscription.PublicID == "" {
		subscription.PublicID, err = crypto.GenerateRandomString("sub_", 16, "hex")
		if err != nil {
			return err
		}
	}
	return
}

// IsCurrent reports whether the subscription grants access right now:
// status is active and the end date, when set, is still in the future.
func (subscription *Subscription) IsCurrent(now time.Time) bool {
	if subscription.Status != ActiveSubscription {
		return false
	}
	return subscription.EndDate == nil || subscription.EndDate.After(now)
}

// DaysUntilExpiration returns the remaining days before the end date, or
// nil for open-ended subscriptions. Never negative.
func (subscription *Subscription) DaysUntilExpiration(now time.Time) *int {
	if subscription.EndDate == nil {
		return nil
	}
	days := int(subscription.EndDate.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

func init() {
	AllModels = append(AllModels, &Subscription{})
}
