package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken(42, TierVIP, false)
	require.NoError(t, err)

	claims, err := ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "vip", claims.Tier)
	assert.False(t, claims.IsStaff)
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	_, err := ParseAndValidate("not-a-token")
	assert.Error(t, err)
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"guest", TierGuest},
		{"standard", TierStandard},
		{"vip", TierVIP},
		{"staff", TierStaff},
		{"", TierGuest},
		{"platinum", TierGuest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTier(tt.in))
	}
}

func TestTierRanking(t *testing.T) {
	assert.Less(t, TierGuest.Rank(), TierStandard.Rank())
	assert.Less(t, TierStandard.Rank(), TierVIP.Rank())
	assert.Less(t, TierVIP.Rank(), TierStaff.Rank())

	assert.True(t, TierStaff.AtLeast(TierVIP))
	assert.True(t, TierVIP.AtLeast(TierVIP))
	assert.False(t, TierStandard.AtLeast(TierVIP))
}
