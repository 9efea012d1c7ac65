// ABOUTME: Tests for the session token codec: round trip, expiry, algorithm pinning.
// ABOUTME: Also covers FromRequest's nil-on-anything-unusable contract.
package session_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WXYC/dj-site-sub004/internal/session"
)

var testSecret = []byte("test-secret-32-bytes-minimum-aaaa")

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	tokenStr, err := session.IssueToken(testSecret, session.Claims{
		UserID:       userID,
		Email:        "carol@wxyc.org",
		Username:     "djcool",
		Role:         "station_manager",
		Capabilities: []string{"editor"},
	}, 15*time.Minute)
	require.NoError(t, err)

	claims, err := session.ParseToken(tokenStr, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	// The raw role string must survive untouched; normalization is not the
	// codec's job.
	assert.Equal(t, "station_manager", claims.Role)
	assert.Equal(t, []string{"editor"}, claims.Capabilities)
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	t.Parallel()
	tokenStr, err := session.IssueToken(testSecret, session.Claims{UserID: uuid.New()}, -1*time.Second)
	require.NoError(t, err)

	_, err = session.ParseToken(tokenStr, testSecret)
	assert.Error(t, err, "expired token must not parse")
}

func TestSessionTokenRejectsWrongAlgorithm(t *testing.T) {
	t.Parallel()
	tokenStr, err := session.IssueToken(testSecret, session.Claims{UserID: uuid.New()}, 15*time.Minute)
	require.NoError(t, err)

	// Replace the header to claim RS256; WithValidMethods(["HS256"]) must
	// reject this.
	parts := strings.SplitN(tokenStr, ".", 3)
	fakeHeader := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	tampered := fakeHeader + "." + parts[1] + "." + parts[2]

	_, err = session.ParseToken(tampered, testSecret)
	assert.Error(t, err, "token claiming RS256 must not parse")
}

func TestFromRequest(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	tokenStr, err := session.IssueToken(testSecret, session.Claims{
		UserID: userID,
		Email:  "carol@wxyc.org",
		Role:   "dj",
	}, 15*time.Minute)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: tokenStr})
	raw := session.FromRequest(r, testSecret)
	require.NotNil(t, raw, "valid session cookie must project")
	assert.Equal(t, userID, raw.UserID)
	assert.Equal(t, "dj", raw.Role)

	// No cookie: nil.
	assert.Nil(t, session.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil), testSecret))

	// Garbage cookie: nil, no error surfaced.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "not-a-token"})
	assert.Nil(t, session.FromRequest(r, testSecret))
}
