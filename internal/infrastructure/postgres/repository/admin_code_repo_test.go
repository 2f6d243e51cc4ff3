package repository

import (
	"testing"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode(t *testing.T) {
	repo := NewDefaultAdminCodeRepository(newTestDB(t))
	now := time.Now()
	require.NoError(t, repo.CreateAdminCode(&domain.AdminCode{
		Code: "GOOD", ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, repo.CreateAdminCode(&domain.AdminCode{
		Code: "STALE", ExpiresAt: now.Add(-time.Hour),
	}))

	valid, err := repo.ValidateCode("GOOD", now)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = repo.ValidateCode("STALE", now)
	require.NoError(t, err)
	assert.False(t, valid)

	// Unknown codes are a clean negative, not an error.
	valid, err = repo.ValidateCode("NOPE", now)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestDeleteExpiredCodes(t *testing.T) {
	repo := NewDefaultAdminCodeRepository(newTestDB(t))
	now := time.Now()
	require.NoError(t, repo.CreateAdminCode(&domain.AdminCode{
		Code: "KEEP", ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, repo.CreateAdminCode(&domain.AdminCode{
		Code: "DROP", ExpiresAt: now.Add(-time.Hour),
	}))

	deleted, err := repo.DeleteExpired(now)

	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	valid, err := repo.ValidateCode("KEEP", now)
	require.NoError(t, err)
	assert.True(t, valid)
}
