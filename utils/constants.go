// File: utils/constants.go
package utils

import "time"

// SessionCachePrefix is the prefix used for Redis booking session keys.
const SessionCachePrefix = "bsession:"

// SessionCacheTTL is the default time-to-live for booking session entries.
const SessionCacheTTL = 30 * time.Minute

// DefaultSlotStepMinutes is the slot length used when none is configured.
const DefaultSlotStepMinutes = 30

// DefaultSlotCapacity is the capacity assumed for a free range that
// carries no explicit capacity of its own.
const DefaultSlotCapacity = 4
