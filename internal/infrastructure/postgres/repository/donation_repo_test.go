package repository

import (
	"testing"
	"time"

	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDonation(t *testing.T, repo *DefaultDonationRepository, donation *domain.Donation) *domain.Donation {
	t.Helper()
	require.NoError(t, repo.CreateDonation(donation))
	return donation
}

func TestCreateDonationDefaultsToPending(t *testing.T) {
	repo := NewDefaultDonationRepository(newTestDB(t))

	donation := seedDonation(t, repo, &domain.Donation{Amount: 25, Email: "pat@example.com"})

	assert.NotEmpty(t, donation.ID)
	assert.Equal(t, domain.DonationPending, donation.Status)
}

func TestGetByOrderID(t *testing.T) {
	repo := NewDefaultDonationRepository(newTestDB(t))
	seeded := seedDonation(t, repo, &domain.Donation{Amount: 25, OrderID: "order-1"})

	fetched, err := repo.GetByOrderID("order-1")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, fetched.ID)

	_, err = repo.GetByOrderID("order-unknown")
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

func TestUpdateDonationFieldsCompletes(t *testing.T) {
	repo := NewDefaultDonationRepository(newTestDB(t))
	donation := seedDonation(t, repo, &domain.Donation{Amount: 25})
	completed := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpdateDonationFields(donation.ID, map[string]interface{}{
		"status":         domain.DonationCompleted,
		"transaction_id": "txn-1",
		"completed_at":   completed,
	}))

	fetched, err := repo.GetDonationByID(donation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, fetched.Status)
	assert.Equal(t, "txn-1", fetched.TransactionID)
	assert.True(t, fetched.CompletedAt.Equal(completed))
}

func TestGetStatsAggregates(t *testing.T) {
	repo := NewDefaultDonationRepository(newTestDB(t))
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	seedDonation(t, repo, &domain.Donation{
		Amount: 50, Status: domain.DonationCompleted, Recurring: true,
		CompletedAt: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	})
	seedDonation(t, repo, &domain.Donation{
		Amount: 25, Status: domain.DonationCompleted,
		CompletedAt: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
	})
	// Pending money never counts.
	seedDonation(t, repo, &domain.Donation{Amount: 500, Status: domain.DonationPending})

	stats, err := repo.GetStats(now)

	require.NoError(t, err)
	assert.Equal(t, 75.0, stats.TotalAmount)
	assert.EqualValues(t, 2, stats.TotalCount)
	assert.Equal(t, 37.5, stats.AverageAmount)
	assert.EqualValues(t, 1, stats.RecurringCount)
	assert.Equal(t, 50.0, stats.ThisMonthAmount)
}

func TestGetStatsEmpty(t *testing.T) {
	repo := NewDefaultDonationRepository(newTestDB(t))

	stats, err := repo.GetStats(time.Now())

	require.NoError(t, err)
	assert.Zero(t, stats.TotalAmount)
	assert.Zero(t, stats.AverageAmount)
}

func TestCancelStalePending(t *testing.T) {
	repo := NewDefaultDonationRepository(newTestDB(t))
	stale := seedDonation(t, repo, &domain.Donation{
		Amount: 10, Status: domain.DonationPending,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	})
	fresh := seedDonation(t, repo, &domain.Donation{
		Amount: 10, Status: domain.DonationPending,
		CreatedAt: time.Now().Add(-time.Hour),
	})
	settled := seedDonation(t, repo, &domain.Donation{
		Amount: 10, Status: domain.DonationCompleted,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	})

	cancelled, err := repo.CancelStalePending(time.Now().Add(-24 * time.Hour))

	require.NoError(t, err)
	assert.EqualValues(t, 1, cancelled)

	fetched, err := repo.GetDonationByID(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationCancelled, fetched.Status)

	fetched, err = repo.GetDonationByID(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationPending, fetched.Status)

	fetched, err = repo.GetDonationByID(settled.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, fetched.Status)
}

func TestListByUserNewestFirst(t *testing.T) {
	repo := NewDefaultDonationRepository(newTestDB(t))
	seedDonation(t, repo, &domain.Donation{
		UserID: "u1", Amount: 10,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	seedDonation(t, repo, &domain.Donation{
		UserID: "u1", Amount: 20,
		CreatedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	seedDonation(t, repo, &domain.Donation{UserID: "u2", Amount: 30})

	donations, err := repo.ListByUser("u1")

	require.NoError(t, err)
	require.Len(t, donations, 2)
	assert.Equal(t, 20.0, donations[0].Amount)
	assert.Equal(t, 10.0, donations[1].Amount)
}

func TestListCompletedOnly(t *testing.T) {
	repo := NewDefaultDonationRepository(newTestDB(t))
	seedDonation(t, repo, &domain.Donation{Amount: 10, Status: domain.DonationCompleted})
	seedDonation(t, repo, &domain.Donation{Amount: 20, Status: domain.DonationPending})

	donations, err := repo.ListCompleted()

	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, 10.0, donations[0].Amount)
}
