package property

import (
	"errors"
	"time"

	"github.com/ImmoNova/api-portal/internal/auth"
)

// ErrNoExclusivity is returned when revoking a window that was never granted.
var ErrNoExclusivity = errors.New("property has no active exclusivity grant")

// IsExclusivityActive reports whether the VIP window gates the property at
// the given instant. The boundary is exclusive: at exactly VIPExclusivityEnd
// the window is over.
func IsExclusivityActive(p Property, now time.Time) bool {
	return p.VIPOnly && p.VIPExclusivityEnd != nil && now.Before(*p.VIPExclusivityEnd)
}

// CanView decides whether a viewer of the given tier may see the property.
// Staff always passes; the gate only applies to acquirer-facing views.
func CanView(p Property, tier auth.Tier, now time.Time) bool {
	if !IsExclusivityActive(p, now) {
		return true
	}
	return tier.AtLeast(auth.TierVIP)
}

// GrantExclusivity arms a VIP window of durationDays starting at now,
// overwriting any existing window.
func GrantExclusivity(p Property, durationDays int, now time.Time) Property {
	end := now.AddDate(0, 0, durationDays)
	p.VIPOnly = true
	p.VIPExclusivityEnd = &end
	return p
}

// RevokeExclusivity drops the VIP flag. The expiry timestamp is left as-is;
// it is immaterial once VIPOnly is false.
func RevokeExclusivity(p Property) (Property, error) {
	if !p.VIPOnly {
		return p, ErrNoExclusivity
	}
	p.VIPOnly = false
	return p, nil
}
