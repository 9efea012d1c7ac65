// ABOUTME: Session cookie claims and the HS256 codec for the dj-site session.
// ABOUTME: Always enforces HS256 and expiration; never call jwt.Parse directly.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie the identity collaborator stores the session in.
const CookieName = "dj_session"

// Claims holds the claims embedded in a session token. The shape mirrors what
// the identity provider issues: loosely-typed strings that the projector
// normalizes; only the subject and expiry are structurally enforced.
type Claims struct {
	jwt.RegisteredClaims
	// UserID shadows RegisteredClaims.Subject (same json:"sub" tag) so that
	// "sub" serializes as a UUID string. Go's encoding/json picks the
	// outermost field when embedded struct tags collide.
	UserID uuid.UUID `json:"sub"`
	Email  string    `json:"email"`
	// Username and Name are both optional; legacy sessions populated only
	// one of them. Precedence is resolved in ProjectIdentity.
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	// Role is the free-form session-embedded role string. May be absent,
	// differently cased, or a legacy synonym; the normalizer owns decoding it.
	Role string `json:"role,omitempty"`
	// Capabilities are independent grant strings (editor, webmaster).
	Capabilities []string `json:"caps,omitempty"`
}

// IssueToken creates a signed HS256 session token from claims, stamping
// issued-at and expiry.
func IssueToken(secret []byte, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseToken validates and parses an HS256 session token. Returns an error if
// the token is expired, uses a wrong algorithm, or is invalid.
func ParseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	return claims, nil
}

// FromRequest implements the getSession collaborator contract over an HTTP
// request: it returns the RawSession carried by the session cookie, or nil
// when there is no session (cookie absent, expired, or invalid). It never
// returns an error; an unusable session and no session are the same thing
// to the authorization core.
func FromRequest(r *http.Request, secret []byte) *RawSession {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	claims, err := ParseToken(cookie.Value, secret)
	if err != nil {
		return nil
	}
	return &RawSession{
		UserID:       claims.UserID,
		Email:        claims.Email,
		Username:     claims.Username,
		Name:         claims.Name,
		Role:         claims.Role,
		Capabilities: claims.Capabilities,
	}
}
