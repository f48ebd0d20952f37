package auth

import (
	"time"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
)

// AccessClaims represents the claims stored in a PASETO access token.
// These are encrypted in v4.local tokens, so they're not readable
// without the key.
type AccessClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// DomainRoles converts the string role claims back into domain roles.
// Unknown role strings are dropped rather than granted.
func (c *AccessClaims) DomainRoles() []domain.Role {
	roles := make([]domain.Role, 0, len(c.Roles))
	for _, r := range c.Roles {
		role := domain.Role(r)
		if role.IsValid() {
			roles = append(roles, role)
		}
	}
	return roles
}
