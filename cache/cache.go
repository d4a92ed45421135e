// SPDX-License-Identifier: GPL-3.0-only

// Package cache provides the key-value store used by the subscription
// resolver. Entries carry a fixed time-to-live and are only ever removed
// by expiry.
package cache

import "time"

type Cache interface {
	// Get unmarshals the value stored under key into result and reports
	// whether a live entry was found.
	Get(key string, result any) (bool, error)
	// Set stores value under key with the given time-to-live.
	Set(key string, value any, expiration time.Duration) error
}
