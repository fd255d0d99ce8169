package domain

import (
	"context"
	"time"
)

// AdminRole is the role claim that grants access to slot administration.
const AdminRole = "admin"

// Principal is the authenticated caller as asserted by the auth collaborator's token.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

// HasRole reports whether the principal carries the given role claim.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenIssuer issues tokens (e.g. JWT) for a user. Used for development tokens only;
// production tokens come from the auth collaborator.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the principal it asserts.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// ProfileRepository reads user profile flags kept by the backend.
type ProfileRepository interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
