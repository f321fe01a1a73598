package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxAccountID ctxKey = "accountID"
	CtxTier      ctxKey = "tier"
	CtxIsStaff   ctxKey = "isStaff"
)

// Middleware rejects requests without a valid bearer token and injects
// the account id, tier and staff flag into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		claims, err := ParseAndValidate(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxAccountID, claims.AccountID)
		ctx = context.WithValue(ctx, CtxTier, ParseTier(claims.Tier))
		ctx = context.WithValue(ctx, CtxIsStaff, claims.IsStaff)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff guards administrative routes. Must run after Middleware.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Context().Value(CtxIsStaff)
		if ok, _ := v.(bool); !ok {
			http.Error(w, "forbidden (staff only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TierFromRequest resolves the viewer tier for routes that are open to
// anonymous visitors: a valid bearer token yields the account's tier,
// anything else is a guest.
func TierFromRequest(r *http.Request) Tier {
	if t, ok := r.Context().Value(CtxTier).(Tier); ok {
		return t
	}
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return TierGuest
	}
	claims, err := ParseAndValidate(strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		return TierGuest
	}
	return ParseTier(claims.Tier)
}

// AccountIDFromContext returns the authenticated account id, 0 if absent.
func AccountIDFromContext(ctx context.Context) uint {
	id, _ := ctx.Value(CtxAccountID).(uint)
	return id
}
