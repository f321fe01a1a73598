package auth

// Tier is the viewer tier carried by every authenticated request.
// Unauthenticated requests are treated as TierGuest.
type Tier string

const (
	TierGuest    Tier = "guest"
	TierStandard Tier = "standard"
	TierVIP      Tier = "vip"
	TierStaff    Tier = "staff"
)

var tierRank = map[Tier]int{
	TierGuest:    0,
	TierStandard: 1,
	TierVIP:      2,
	TierStaff:    3,
}

// ParseTier normalizes a stored tier string; anything unknown degrades to guest.
func ParseTier(s string) Tier {
	t := Tier(s)
	if _, ok := tierRank[t]; !ok {
		return TierGuest
	}
	return t
}

// Rank orders tiers from guest (lowest) to staff (highest).
func (t Tier) Rank() int {
	return tierRank[t]
}

func (t Tier) AtLeast(min Tier) bool {
	return t.Rank() >= min.Rank()
}
