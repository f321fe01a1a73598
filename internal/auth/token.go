package auth

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by the access token (simple RBAC: tier + staff flag).
type Claims struct {
	AccountID uint   `json:"accountId"`
	Tier      string `json:"tier"`
	IsStaff   bool   `json:"isStaff"`
	jwt.RegisteredClaims
}

// AccessTTL is the access token lifetime.
const AccessTTL = 24 * time.Hour

var (
	secretOnce sync.Once
	jwtSecret  []byte
)

func secret() []byte {
	secretOnce.Do(func() {
		s := os.Getenv("AUTH_JWT_SECRET")
		if s == "" {
			log.Fatal("AUTH_JWT_SECRET is not set")
		}
		jwtSecret = []byte(s)
	})
	return jwtSecret
}

// GenerateAccessToken issues an HS256 JWT for the given account.
func GenerateAccessToken(accountID uint, tier Tier, isStaff bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: accountID,
		Tier:      string(tier),
		IsStaff:   isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(accountID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        fmt.Sprintf("%d-%d", accountID, now.UnixNano()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret())
}

// ParseAndValidate checks signature and expiry and returns the claims.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return nil, errors.New("token expired")
	}
	return c, nil
}
