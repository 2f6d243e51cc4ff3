package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.BusinessModel{},
		&models.IncentiveModel{},
		&models.ChainModel{},
		&models.UserModel{},
		&models.AdminCodeModel{},
		&models.DonationModel{},
	))
	return db
}
