// SPDX-License-Identifier: GPL-3.0-only

package access

import (
	"testing"

	"presspass-server/models"
)

func TestCanCreateNews(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	editor := &models.User{ID: 2, Role: models.RoleEditor}
	reader := &models.User{ID: 3, Role: models.RoleReader}

	if !CanCreateNews(admin) {
		t.Error("Admin should be able to create news")
	}
	if !CanCreateNews(editor) {
		t.Error("Editor should be able to create news")
	}
	if CanCreateNews(reader) {
		t.Error("Reader should not be able to create news")
	}
	if CanCreateNews(nil) {
		t.Error("Anonymous should not be able to create news")
	}
}

func TestCanMutateNews(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	author := &models.User{ID: 2, Role: models.RoleEditor}
	otherEditor := &models.User{ID: 3, Role: models.RoleEditor}
	reader := &models.User{ID: 4, Role: models.RoleReader}

	article := &models.News{ID: 10, AuthorID: author.ID}

	if !CanMutateNews(admin, article) {
		t.Error("Admin should be able to mutate any article")
	}
	if !CanMutateNews(author, article) {
		t.Error("Author editor should be able to mutate their own article")
	}
	if CanMutateNews(otherEditor, article) {
		t.Error("Editor should not be able to mutate another editor's article")
	}
	if CanMutateNews(reader, article) {
		t.Error("Reader should not be able to mutate articles")
	}
	if CanMutateNews(nil, article) {
		t.Error("Anonymous should not be able to mutate articles")
	}
}

func TestCanPublishNews(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	author := &models.User{ID: 2, Role: models.RoleEditor}
	otherEditor := &models.User{ID: 3, Role: models.RoleEditor}

	article := &models.News{ID: 10, AuthorID: author.ID}

	if !CanPublishNews(admin, article) {
		t.Error("Admin should be able to publish any article")
	}
	if !CanPublishNews(author, article) {
		t.Error("Author should be able to publish their own article")
	}
	if CanPublishNews(otherEditor, article) {
		t.Error("Non-author editor should not be able to publish")
	}
}

func TestCanMutateCatalogAndSubscriptions(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	editor := &models.User{ID: 2, Role: models.RoleEditor}
	reader := &models.User{ID: 3, Role: models.RoleReader}

	for _, actor := range []*models.User{editor, reader, nil} {
		if CanMutateCatalog(actor) {
			t.Errorf("Only admin should mutate the catalog, allowed: %+v", actor)
		}
		if CanMutateSubscription(actor) {
			t.Errorf("Only admin should mutate subscriptions, allowed: %+v", actor)
		}
	}
	if !CanMutateCatalog(admin) || !CanMutateSubscription(admin) {
		t.Error("Admin should be able to mutate catalog and subscriptions")
	}
}

func TestCanViewSubscription(t *testing.T) {
	admin := &models.User{ID: 1, Role: models.RoleAdmin}
	owner := &models.User{ID: 2, Role: models.RoleReader}
	other := &models.User{ID: 3, Role: models.RoleReader}

	subscription := &models.Subscription{ID: 7, UserID: owner.ID}

	if !CanViewSubscription(admin, subscription) {
		t.Error("Admin should see any subscription")
	}
	if !CanViewSubscription(owner, subscription) {
		t.Error("Owner should see their own subscription")
	}
	if CanViewSubscription(other, subscription) {
		t.Error("Other users should not see the subscription")
	}
	if CanViewSubscription(nil, subscription) {
		t.Error("Anonymous should not see any subscription")
	}
}

func TestCanCreateUserWithRole(t *testing.T) {
	staffAdmin := &models.User{ID: 1, Role: models.RoleAdmin, IsStaff: true}
	plainAdmin := &models.User{ID: 2, Role: models.RoleAdmin}
	editor := &models.User{ID: 3, Role: models.RoleEditor}
	staffReader := &models.User{ID: 4, Role: models.RoleReader, IsStaff: true}
	staffEditor := &models.User{ID: 5, Role: models.RoleEditor, IsStaff: true}

	if !CanCreateUserWithRole(nil, models.RoleReader) {
		t.Error("Anyone should be able to create a reader account")
	}
	if CanCreateUserWithRole(nil, models.RoleEditor) {
		t.Error("Anonymous should not create editor accounts")
	}
	if CanCreateUserWithRole(nil, models.RoleAdmin) {
		t.Error("Anonymous should not create admin accounts")
	}

	if !CanCreateUserWithRole(plainAdmin, models.RoleEditor) {
		t.Error("Admin should create editor accounts")
	}
	if CanCreateUserWithRole(plainAdmin, models.RoleAdmin) {
		t.Error("Admin without staff privileges should not create admin accounts")
	}
	if !CanCreateUserWithRole(staffAdmin, models.RoleAdmin) {
		t.Error("Staff admin should create admin accounts")
	}
	if CanCreateUserWithRole(editor, models.RoleEditor) {
		t.Error("Editor should not create editor accounts")
	}
	if CanCreateUserWithRole(staffReader, models.RoleAdmin) {
		t.Error("Staff-flagged reader should not create admin accounts")
	}
	if CanCreateUserWithRole(staffReader, models.RoleEditor) {
		t.Error("Staff-flagged reader should not create editor accounts")
	}
	if CanCreateUserWithRole(staffEditor, models.RoleAdmin) {
		t.Error("Staff-flagged editor should not create admin accounts")
	}
	if CanCreateUserWithRole(staffEditor, models.RoleEditor) {
		t.Error("Staff-flagged editor should not create editor accounts")
	}
}
