package repository

import (
	"testing"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserNormalizesEmail(t *testing.T) {
	repo := NewDefaultUserRepository(newTestDB(t))
	user := &domain.User{Email: "  Pat@Example.COM ", PasswordHash: "hash"}

	require.NoError(t, repo.CreateUser(user))

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "pat@example.com", user.Email)

	fetched, err := repo.GetUserByEmail("PAT@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := NewDefaultUserRepository(newTestDB(t))
	require.NoError(t, repo.CreateUser(&domain.User{Email: "pat@example.com", PasswordHash: "hash"}))

	err := repo.CreateUser(&domain.User{Email: "Pat@Example.com", PasswordHash: "other"})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	repo := NewDefaultUserRepository(newTestDB(t))

	_, err := repo.GetUserByEmail("nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestVerificationTokenLookup(t *testing.T) {
	repo := NewDefaultUserRepository(newTestDB(t))
	user := &domain.User{
		Email:               "pat@example.com",
		PasswordHash:        "hash",
		VerificationToken:   "tok-1",
		VerificationExpires: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.CreateUser(user))

	fetched, err := repo.GetByVerificationToken("tok-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)

	_, err = repo.GetByVerificationToken("tok-unknown")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestPendingEmailTokenLookup(t *testing.T) {
	repo := NewDefaultUserRepository(newTestDB(t))
	user := &domain.User{Email: "pat@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(user))
	require.NoError(t, repo.UpdateUserFields(user.ID, map[string]interface{}{
		"pending_email":       "new@example.com",
		"pending_email_token": "switch-1",
	}))

	fetched, err := repo.GetByPendingEmailToken("switch-1")

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", fetched.PendingEmail)
}

func TestPurgeExpiredVerificationTokens(t *testing.T) {
	repo := NewDefaultUserRepository(newTestDB(t))
	expired := &domain.User{
		Email:               "old@example.com",
		PasswordHash:        "hash",
		VerificationToken:   "tok-old",
		VerificationExpires: time.Now().Add(-time.Hour),
	}
	fresh := &domain.User{
		Email:               "new@example.com",
		PasswordHash:        "hash",
		VerificationToken:   "tok-new",
		VerificationExpires: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.CreateUser(expired))
	require.NoError(t, repo.CreateUser(fresh))

	purged, err := repo.PurgeExpiredVerificationTokens(time.Now())

	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	// The account survives, only its token state is cleared.
	fetched, err := repo.GetUserByEmail("old@example.com")
	require.NoError(t, err)
	assert.Empty(t, fetched.VerificationToken)

	_, err = repo.GetByVerificationToken("tok-new")
	assert.NoError(t, err)
}

func TestFavoriteIDsRoundTrip(t *testing.T) {
	repo := NewDefaultUserRepository(newTestDB(t))
	user := &domain.User{Email: "pat@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(user))

	user.FavoriteBusinessIDs = []string{"b1", "b2"}
	require.NoError(t, repo.UpdateUser(user))

	fetched, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, fetched.FavoriteBusinessIDs)
}
