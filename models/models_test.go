// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"testing"
	"time"
)

func TestPlanCurrentPrice(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	plan := Plan{Price: 100}
	if got := plan.CurrentPrice(now); got != 100 {
		t.Errorf("Plan without discount should cost 100, got %v", got)
	}

	future := now.Add(48 * time.Hour)
	plan = Plan{Price: 100, DiscountPercent: 25, DiscountValidUntil: &future}
	if got := plan.CurrentPrice(now); got != 75 {
		t.Errorf("Discounted plan should cost 75, got %v", got)
	}

	past := now.Add(-time.Hour)
	plan = Plan{Price: 100, DiscountPercent: 25, DiscountValidUntil: &past}
	if got := plan.CurrentPrice(now); got != 100 {
		t.Errorf("Expired discount should not apply, got %v", got)
	}

	plan = Plan{Price: 100, DiscountPercent: 25}
	if got := plan.CurrentPrice(now); got != 100 {
		t.Errorf("Discount without a validity date should not apply, got %v", got)
	}
}

func TestSubscriptionIsCurrent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	cases := []struct {
		name         string
		subscription Subscription
		want         bool
	}{
		{"active open-ended", Subscription{Status: ActiveSubscription}, true},
		{"active ending in future", Subscription{Status: ActiveSubscription, EndDate: &future}, true},
		{"active already ended", Subscription{Status: ActiveSubscription, EndDate: &past}, false},
		{"pending", Subscription{Status: PendingSubscription, EndDate: &future}, false},
		{"cancelled", Subscription{Status: CancelledSubscription}, false},
		{"expired", Subscription{Status: ExpiredSubscription}, false},
	}
	for _, tc := range cases {
		if got := tc.subscription.IsCurrent(now); got != tc.want {
			t.Errorf("IsCurrent(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNewsPublishLastCallWins(t *testing.T) {
	article := News{Status: DraftNews}

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	article.Publish(first)
	if !article.IsPublished() {
		t.Fatal("Article should be published after Publish")
	}
	if article.PublicationDate == nil || !article.PublicationDate.Equal(first) {
		t.Errorf("Publication date should be %v, got %v", first, article.PublicationDate)
	}

	// Publishing again re-stamps the date; the second call wins.
	second := first.Add(2 * time.Hour)
	article.Publish(second)
	if article.PublicationDate == nil || !article.PublicationDate.Equal(second) {
		t.Errorf("Second publish should update the date to %v, got %v", second, article.PublicationDate)
	}
}

func TestRoleHelpers(t *testing.T) {
	admin := User{Role: RoleAdmin}
	editor := User{Role: RoleEditor}
	reader := User{Role: RoleReader}

	if !admin.IsAdmin() || admin.IsEditor() || admin.IsReader() {
		t.Error("Admin role helpers are inconsistent")
	}
	if !editor.IsEditor() || editor.IsAdmin() || editor.IsReader() {
		t.Error("Editor role helpers are inconsistent")
	}
	if !reader.IsReader() || reader.IsAdmin() || reader.IsEditor() {
		t.Error("Reader role helpers are inconsistent")
	}

	if Role("publisher").Valid() {
		t.Error("Unknown role should not validate")
	}
}

func TestVerticalSlugValid(t *testing.T) {
	for _, slug := range VerticalSlugs {
		if !slug.Valid() {
			t.Errorf("Known slug %s should validate", slug)
		}
	}
	if VerticalSlug("sports").Valid() {
		t.Error("Unknown slug should not validate")
	}
}
