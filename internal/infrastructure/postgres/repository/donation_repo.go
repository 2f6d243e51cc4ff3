package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patriot-thanks/patriot-thanks-service/internal/domain"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/mappers"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDonationRepository struct {
	DB *gorm.DB
}

func NewDefaultDonationRepository(db *gorm.DB) *DefaultDonationRepository {
	return &DefaultDonationRepository{DB: db}
}

func (r *DefaultDonationRepository) CreateDonation(donation *domain.Donation) error {
	model := mappers.ToGORMDonation(donation)
	if model.ID == "" {
		model.ID = uuid.New().String()
	}
	if model.Status == "" {
		model.Status = domain.DonationPending
	}

	if err := r.DB.Create(model).Error; err != nil {
		return err
	}

	donation.ID = model.ID
	donation.Status = model.Status
	return nil
}

func (r *DefaultDonationRepository) GetDonationByID(donationID string) (*domain.Donation, error) {
	var model models.DonationModel
	if err := r.DB.Where("id = ?", donationID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDonation(&model), nil
}

func (r *DefaultDonationRepository) GetByOrderID(orderID string) (*domain.Donation, error) {
	var model models.DonationModel
	if err := r.DB.Where("order_id = ?", orderID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDonation(&model), nil
}

func (r *DefaultDonationRepository) UpdateDonationFields(donationID string, fields map[string]interface{}) error {
	return r.DB.Model(&models.DonationModel{}).
		Where("id = ?", donationID).
		Updates(fields).Error
}

func (r *DefaultDonationRepository) ListDonations(page, limit int32) ([]*domain.Donation, int64, error) {
	var donationModels []models.DonationModel
	var total int64

	r.DB.Model(&models.DonationModel{}).Count(&total)

	offset := (page - 1) * limit
	if err := r.DB.Offset(int(offset)).Limit(int(limit)).
		Order("created_at DESC").
		Find(&donationModels).Error; err != nil {
		return nil, 0, err
	}

	donations := make([]*domain.Donation, len(donationModels))
	for i := range donationModels {
		donations[i] = mappers.ToDomainDonation(&donationModels[i])
	}
	return donations, total, nil
}

func (r *DefaultDonationRepository) ListByUser(userID string) ([]*domain.Donation, error) {
	var donationModels []models.DonationModel
	if err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&donationModels).Error; err != nil {
		return nil, err
	}

	donations := make([]*domain.Donation, len(donationModels))
	for i := range donationModels {
		donations[i] = mappers.ToDomainDonation(&donationModels[i])
	}
	return donations, nil
}

func (r *DefaultDonationRepository) ListCompleted() ([]*domain.Donation, error) {
	var donationModels []models.DonationModel
	if err := r.DB.Where("status = ?", domain.DonationCompleted).
		Order("completed_at DESC").
		Find(&donationModels).Error; err != nil {
		return nil, err
	}

	donations := make([]*domain.Donation, len(donationModels))
	for i := range donationModels {
		donations[i] = mappers.ToDomainDonation(&donationModels[i])
	}
	return donations, nil
}

func (r *DefaultDonationRepository) GetStats(now time.Time) (*domain.DonationStats, error) {
	stats := &domain.DonationStats{}

	type aggregate struct {
		Total float64
		Count int64
	}
	var agg aggregate
	if err := r.DB.Model(&models.DonationModel{}).
		Select("COALESCE(SUM(amount),0) as total, COUNT(*) as count").
		Where("status = ?", domain.DonationCompleted).
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	stats.TotalAmount = agg.Total
	stats.TotalCount = agg.Count
	if agg.Count > 0 {
		stats.AverageAmount = agg.Total / float64(agg.Count)
	}

	if err := r.DB.Model(&models.DonationModel{}).
		Where("status = ? AND recurring = ?", domain.DonationCompleted, true).
		Count(&stats.RecurringCount).Error; err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthAgg aggregate
	if err := r.DB.Model(&models.DonationModel{}).
		Select("COALESCE(SUM(amount),0) as total, COUNT(*) as count").
		Where("status = ? AND completed_at >= ?", domain.DonationCompleted, monthStart).
		Scan(&monthAgg).Error; err != nil {
		return nil, err
	}
	stats.ThisMonthAmount = monthAgg.Total

	return stats, nil
}

// CancelStalePending flips abandoned pending donations to cancelled.
func (r *DefaultDonationRepository) CancelStalePending(olderThan time.Time) (int64, error) {
	result := r.DB.Model(&models.DonationModel{}).
		Where("status = ? AND created_at < ?", domain.DonationPending, olderThan).
		Update("status", domain.DonationCancelled)
	return result.RowsAffected, result.Error
}
