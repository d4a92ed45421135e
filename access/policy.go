// SPDX-License-Identifier: GPL-3.0-only

// Package access centralizes every authorization decision in the system.
// Predicates are pure functions over entity snapshots; a nil actor means
// the request carried no authenticated identity.
package access

import "presspass-server/models"

// CanCreateNews allows article creation for admins and editors.
func CanCreateNews(actor *models.User) bool {
	return actor != nil && (actor.IsAdmin() || actor.IsEditor())
}

// CanMutateNews allows updates and deletes for admins, and for editors on
// their own articles.
func CanMutateNews(actor *models.User, news *models.News) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.IsEditor() && actor.ID == news.AuthorID
}

// CanPublishNews guards the draft-to-published transition: admins and the
// article's author may publish.
func CanPublishNews(actor *models.User, news *models.News) bool {
	return actor != nil && (actor.IsAdmin() || actor.ID == news.AuthorID)
}

// CanMutateCatalog covers writes to plans and verticals. Reads are public.
func CanMutateCatalog(actor *models.User) bool {
	return actor != nil && actor.IsAdmin()
}

// CanMutateSubscription covers subscription create/update/delete. Reads
// are row-filtered instead (see SubscriptionsVisibleTo).
func CanMutateSubscription(actor *models.User) bool {
	return actor != nil && actor.IsAdmin()
}

// CanViewSubscription allows admins, and owners on their own rows.
func CanViewSubscription(actor *models.User, subscription *models.Subscription) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || subscription.UserID == actor.ID
}

// CanViewUser allows admins and the user themselves.
func CanViewUser(actor *models.User, target *models.User) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == target.ID
}

// CanUpdateUser allows admins and the user themselves. Role and staff
// changes are additionally restricted to admins by the serving layer.
func CanUpdateUser(actor *models.User, target *models.User) bool {
	return CanViewUser(actor, target)
}

// CanDeleteUser allows admins only.
func CanDeleteUser(actor *models.User) bool {
	return actor != nil && actor.IsAdmin()
}

// CanListUsers allows admins only.
func CanListUsers(actor *models.User) bool {
	return actor != nil && actor.IsAdmin()
}

// CanViewEventLogs restricts the audit trail to admins.
func CanViewEventLogs(actor *models.User) bool {
	return actor != nil && actor.IsAdmin()
}

// CanCreateUserWithRole runs before persistence and decides whether the
// acting caller may create an account with the requested role. Reader
// accounts are open to anyone, including anonymous registration. Editor
// accounts require an admin; admin accounts require an admin with staff
// privileges. The staff flag alone never grants creation powers.
func CanCreateUserWithRole(actor *models.User, role models.Role) bool {
	switch role {
	case models.RoleReader:
		return true
	case models.RoleEditor:
		return actor != nil && actor.IsAdmin()
	case models.RoleAdmin:
		return actor != nil && actor.IsAdmin() && actor.IsStaff
	}
	return false
}
