// SPDX-License-Identifier: GPL-3.0-only

package access

import (
	"context"
	"errors"
	"time"

	"presspass-server/models"

	"gorm.io/gorm"
)

// GormSubscriptionStore is the database-backed SubscriptionStore.
type GormSubscriptionStore struct {
	Conn *gorm.DB
}

// ActiveSubscription picks the first qualifying subscription in primary
// key order. A user holding active subscriptions on several plans gets
// the oldest one.
func (s *GormSubscriptionStore) ActiveSubscription(ctx context.Context, userID uint, now time.Time) (*models.Subscription, error) {
	var subscription models.Subscription
	err := s.Conn.WithContext(ctx).
		Preload("Plan").
		Preload("Plan.Verticals").
		Where("user_id = ? AND status = ?", userID, models.ActiveSubscription).
		Where("end_date IS NULL OR end_date > ?", now).
		Order("id").
		First(&subscription).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}
