// SPDX-License-Identifier: GPL-3.0-only

package access

import (
	"presspass-server/models"

	"gorm.io/gorm"
)

// NewsVisibleTo narrows article listings by role: admins see everything,
// editors see their own drafts plus all published articles, everyone else
// sees published articles only. Pro-content gating is applied per item at
// detail rendering, not here.
func NewsVisibleTo(actor *models.User) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if actor != nil && actor.IsAdmin() {
			return tx
		}
		if actor != nil && actor.IsEditor() {
			return tx.Where("author_id = ? OR status = ?", actor.ID, models.PublishedNews)
		}
		return tx.Where("status = ?", models.PublishedNews)
	}
}

// SubscriptionsVisibleTo narrows subscription listings: admins see all
// rows, every other actor only their own.
func SubscriptionsVisibleTo(actor *models.User) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if actor != nil && actor.IsAdmin() {
			return tx
		}
		if actor == nil {
			return tx.Where("1 = 0")
		}
		return tx.Where("user_id = ?", actor.ID)
	}
}
