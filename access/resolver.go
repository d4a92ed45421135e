// SPDX-License-Identifier: GPL-3.0-only

package access

import (
	"context"
	"fmt"
	"time"

	"presspass-server/cache"
	"presspass-server/commons"
	"presspass-server/models"
)

// ActiveSubscriptionTTL is how long resolved subscriptions (including
// "none found" results) stay cached. Writes do not invalidate entries, so
// a status change may go unseen by gating decisions for up to this long.
const ActiveSubscriptionTTL = time.Hour

// SubscriptionStore loads the subscription that is currently active for a
// user, with the plan and its verticals preloaded. A nil subscription with
// a nil error means none qualifies.
type SubscriptionStore interface {
	ActiveSubscription(ctx context.Context, userID uint, now time.Time) (*models.Subscription, error)
}

type cachedSubscription struct {
	Found        bool                 `json:"found"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
}

// Resolver answers "which subscription is active for this user right now"
// through a read-through cache.
type Resolver struct {
	store SubscriptionStore
	cache cache.Cache
	now   func() time.Time
}

func NewResolver(store SubscriptionStore, c cache.Cache) *Resolver {
	return &Resolver{store: store, cache: c, now: time.Now}
}

// WithClock replaces the resolver's notion of now. Intended for tests.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// ActiveSubscription returns the user's currently active subscription, or
// nil when there is none. Negative results are cached with the same TTL
// as hits so repeated lookups for unsubscribed users stay cheap.
func (r *Resolver) ActiveSubscription(ctx context.Context, userID uint) (*models.Subscription, error) {
	key := cacheKey(userID)

	var entry cachedSubscription
	found, err := r.cache.Get(key, &entry)
	if err != nil {
		return nil, err
	}
	if found {
		if !entry.Found {
			return nil, nil
		}
		return entry.Subscription, nil
	}

	subscription, err := r.store.ActiveSubscription(ctx, userID, r.now())
	if err != nil {
		return nil, err
	}

	entry = cachedSubscription{Found: subscription != nil, Subscription: subscription}
	if err := r.cache.Set(key, entry, ActiveSubscriptionTTL); err != nil {
		commons.Logger.Warnf("Failed to cache active subscription for user %d: %v", userID, err)
	}
	return subscription, nil
}

func cacheKey(userID uint) string {
	return fmt.Sprintf("user:%d:active_subscription", userID)
}
