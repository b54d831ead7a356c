package session_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-console-core/session"
	"github.com/jrsteele09/go-console-core/session/storefake"
)

type testFixture struct {
	store *storefake.FakeStore
	sess  *session.Context
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	store := storefake.NewFakeStore()
	return &testFixture{
		store: store,
		sess:  session.New(store),
	}
}

func TestCurrentUser(t *testing.T) {
	freezeClock(t, fixedNow)

	t.Run("round-trips a stored token", func(t *testing.T) {
		f := setupTestFixture(t)
		f.sess.StoreToken(mintToken(t, fullClaims(fixedNow)))

		user := f.sess.CurrentUser()
		require.True(t, user.IsAuthenticated)
		require.Equal(t, "u1", user.UserID)
		require.Equal(t, "+910000000000", user.Phone)
		require.Equal(t, "Asha", user.Name)
		require.Equal(t, []string{"ADMIN"}, user.Roles)
		require.Equal(t, []string{"users:write"}, user.Permissions)
		require.Equal(t, "hi", user.Locale)
		require.Equal(t, "VERIFIED", user.KYCStatus)
		require.NotNil(t, user.GaushalaID)
		require.Equal(t, int64(42), *user.GaushalaID)
	})

	t.Run("no token yields the unauthenticated default", func(t *testing.T) {
		f := setupTestFixture(t)
		require.Equal(t, session.Unauthenticated(), f.sess.CurrentUser())
	})

	t.Run("garbage token yields the unauthenticated default", func(t *testing.T) {
		f := setupTestFixture(t)
		f.sess.StoreToken("not.a.token.at.all")
		require.Equal(t, session.Unauthenticated(), f.sess.CurrentUser())
	})

	t.Run("expired token yields the unauthenticated default", func(t *testing.T) {
		f := setupTestFixture(t)
		claims := fullClaims(fixedNow)
		claims["exp"] = fixedNow.Unix() - 1
		f.sess.StoreToken(mintToken(t, claims))

		user := f.sess.CurrentUser()
		require.False(t, user.IsAuthenticated)
		require.Equal(t, "en", user.Locale)
		require.Equal(t, "PENDING", user.KYCStatus)
	})

	t.Run("unavailable storage yields the unauthenticated default", func(t *testing.T) {
		f := setupTestFixture(t)
		f.sess.StoreToken(mintToken(t, fullClaims(fixedNow)))
		f.store.SetError(errors.New("storage offline"))

		require.Equal(t, "", f.sess.StoredToken())
		require.Equal(t, session.Unauthenticated(), f.sess.CurrentUser())
	})

	t.Run("missing locale and kyc status take defaults", func(t *testing.T) {
		f := setupTestFixture(t)
		claims := fullClaims(fixedNow)
		delete(claims, "locale")
		delete(claims, "kyc_status")
		f.sess.StoreToken(mintToken(t, claims))

		user := f.sess.CurrentUser()
		require.True(t, user.IsAuthenticated)
		require.Equal(t, "en", user.Locale)
		require.Equal(t, "PENDING", user.KYCStatus)
	})

	t.Run("derived fresh on every call", func(t *testing.T) {
		f := setupTestFixture(t)
		f.sess.StoreToken(mintToken(t, fullClaims(fixedNow)))
		require.True(t, f.sess.CurrentUser().IsAuthenticated)

		f.sess.ClearToken()
		require.False(t, f.sess.CurrentUser().IsAuthenticated)
	})
}

func TestClearToken(t *testing.T) {
	f := setupTestFixture(t)
	f.sess.StoreToken("some-token")

	f.sess.ClearToken()
	require.Equal(t, "", f.sess.StoredToken())

	// Clearing an already empty slot is a no-op.
	f.sess.ClearToken()
	require.Equal(t, "", f.sess.StoredToken())
}

func TestPredicates(t *testing.T) {
	freezeClock(t, fixedNow)

	f := setupTestFixture(t)
	f.sess.StoreToken(mintToken(t, fullClaims(fixedNow)))

	t.Run("exact role and permission membership", func(t *testing.T) {
		require.True(t, f.sess.HasRole("ADMIN"))
		require.True(t, f.sess.HasPermission("users:write"))
		require.False(t, f.sess.HasPermission("users:delete"))
	})

	t.Run("roles and permissions are independent sets", func(t *testing.T) {
		require.False(t, f.sess.HasPermission("ADMIN"))
		require.False(t, f.sess.HasRole("users:write"))
	})

	t.Run("case-sensitive match", func(t *testing.T) {
		require.False(t, f.sess.HasRole("admin"))
	})

	t.Run("unauthenticated session has nothing", func(t *testing.T) {
		empty := setupTestFixture(t)
		require.False(t, empty.sess.HasRole("ADMIN"))
		require.False(t, empty.sess.HasPermission("users:write"))
	})
}

func TestIsTokenExpired(t *testing.T) {
	freezeClock(t, fixedNow)

	t.Run("no token", func(t *testing.T) {
		f := setupTestFixture(t)
		require.True(t, f.sess.IsTokenExpired())
	})

	t.Run("valid token", func(t *testing.T) {
		f := setupTestFixture(t)
		f.sess.StoreToken(mintToken(t, fullClaims(fixedNow)))
		require.False(t, f.sess.IsTokenExpired())
	})

	t.Run("expired token", func(t *testing.T) {
		f := setupTestFixture(t)
		claims := fullClaims(fixedNow)
		claims["exp"] = fixedNow.Add(-time.Minute).Unix()
		f.sess.StoreToken(mintToken(t, claims))
		require.True(t, f.sess.IsTokenExpired())
	})

	t.Run("malformed token", func(t *testing.T) {
		f := setupTestFixture(t)
		f.sess.StoreToken("garbage")
		require.True(t, f.sess.IsTokenExpired())
	})
}

func TestTenantID(t *testing.T) {
	freezeClock(t, fixedNow)

	t.Run("present in token", func(t *testing.T) {
		f := setupTestFixture(t)
		f.sess.StoreToken(mintToken(t, fullClaims(fixedNow)))

		id, ok := f.sess.TenantID()
		require.True(t, ok)
		require.Equal(t, int64(42), id)
	})

	t.Run("absent is not defaulted", func(t *testing.T) {
		f := setupTestFixture(t)
		claims := fullClaims(fixedNow)
		delete(claims, "gaushalaId")
		f.sess.StoreToken(mintToken(t, claims))

		_, ok := f.sess.TenantID()
		require.False(t, ok)
	})

	t.Run("unauthenticated session has no tenant", func(t *testing.T) {
		f := setupTestFixture(t)
		_, ok := f.sess.TenantID()
		require.False(t, ok)
	})
}

func TestEndToEndClaimsScenario(t *testing.T) {
	freezeClock(t, fixedNow)

	f := setupTestFixture(t)
	f.sess.StoreToken(mintToken(t, jwtlib.MapClaims{
		"user_id":     "u1",
		"phone":       "+910000000000",
		"name":        "Asha",
		"roles":       []string{"ADMIN"},
		"permissions": []string{"users:write"},
		"locale":      "hi",
		"kyc_status":  "VERIFIED",
		"gaushalaId":  42,
		"iat":         fixedNow.Unix(),
		"exp":         fixedNow.Add(time.Hour).Unix(),
	}))

	require.True(t, f.sess.HasRole("ADMIN"))
	require.True(t, f.sess.HasPermission("users:write"))
	require.False(t, f.sess.HasPermission("users:delete"))

	id, ok := f.sess.TenantID()
	require.True(t, ok)
	require.Equal(t, int64(42), id)
}
