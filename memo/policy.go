package memo

import "time"

// validAt reports whether an entry expiring at expiresAt is still
// servable at now. The zero time means the entry never expires.
//
// Expiry is measured from insertion time and is not refreshed on
// access. Expiration is checked lazily on every read path rather than
// by a timer per entry; an expired entry is logically absent even
// while still resident awaiting removal.
func validAt(expiresAt, now time.Time) bool {
	return expiresAt.IsZero() || now.Before(expiresAt)
}
