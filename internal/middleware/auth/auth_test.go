package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/coursebook/course-booking-api/internal/models"
	"github.com/coursebook/course-booking-api/internal/token"
)

func newContext(t *testing.T, authorization string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/details", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireLogin_MissingAndMalformedBearerRejectedIdentically(t *testing.T) {
	t.Parallel()

	gate := NewIdentityGate(token.NewCodec([]byte("test-jwt-secret"), time.Hour))
	mw := gate.RequireLogin(okHandler)

	for _, authorization := range []string{"", "Basic abc123", "token-without-scheme"} {
		err := mw(newContext(t, authorization))
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError for %q", authorization)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "no token provided", he.Message)
	}
}

func TestRequireLogin_DecodeFailuresCollapseToOneMessage(t *testing.T) {
	t.Parallel()

	codec := token.NewCodec([]byte("test-jwt-secret"), time.Hour)
	gate := NewIdentityGate(codec)
	mw := gate.RequireLogin(okHandler)

	expired := token.NewCodec([]byte("test-jwt-secret"), -time.Minute)
	expiredToken, err := expired.Sign(&models.User{ID: bson.NewObjectID(), Email: "a@b.com"})
	require.NoError(t, err)

	otherSecret := token.NewCodec([]byte("another-secret"), time.Hour)
	foreignToken, err := otherSecret.Sign(&models.User{ID: bson.NewObjectID(), Email: "a@b.com"})
	require.NoError(t, err)

	for _, raw := range []string{"garbage", expiredToken, foreignToken} {
		err := mw(newContext(t, "Bearer "+raw))
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "invalid or expired token", he.Message)
	}
}

func TestRequireLogin_AttachesClaims(t *testing.T) {
	t.Parallel()

	codec := token.NewCodec([]byte("test-jwt-secret"), time.Hour)
	gate := NewIdentityGate(codec)

	user := &models.User{ID: bson.NewObjectID(), Email: "a@b.com", IsAdmin: true}
	raw, err := codec.Sign(user)
	require.NoError(t, err)

	var seen *token.Claims
	mw := gate.RequireLogin(func(c echo.Context) error {
		seen = ClaimsFrom(c)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, mw(newContext(t, "Bearer "+raw)))
	require.NotNil(t, seen)
	assert.Equal(t, user.ID.Hex(), seen.UserID)
	assert.Equal(t, "a@b.com", seen.Email)
	assert.True(t, seen.IsAdmin)
}

func TestAdminOnly(t *testing.T) {
	t.Parallel()

	mw := AdminOnly(okHandler)

	c := newContext(t, "")
	c.Set(ClaimsKey, &token.Claims{UserID: bson.NewObjectID().Hex(), IsAdmin: true})
	require.NoError(t, mw(c))

	c = newContext(t, "")
	c.Set(ClaimsKey, &token.Claims{UserID: bson.NewObjectID().Hex(), IsAdmin: false})
	err := mw(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, "insufficient permissions", he.Message)

	// claims missing entirely: gate contract violated, still a 403
	err = mw(newContext(t, ""))
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

// A claim set is a snapshot at issuance: promoting the account afterwards
// must not change the verdict for the already-issued token.
func TestAdminOnly_StaleClaimsStayRejected(t *testing.T) {
	t.Parallel()

	codec := token.NewCodec([]byte("test-jwt-secret"), time.Hour)
	user := &models.User{ID: bson.NewObjectID(), Email: "a@b.com", IsAdmin: false}
	raw, err := codec.Sign(user)
	require.NoError(t, err)

	// the account is promoted after the token was issued
	user.IsAdmin = true

	gate := NewIdentityGate(codec)
	mw := gate.RequireLogin(AdminOnly(okHandler))
	err = mw(newContext(t, "Bearer "+raw))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}
