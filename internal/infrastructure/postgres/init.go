package postgres

import (
	"log"

	"github.com/patriot-thanks/patriot-thanks-service/internal/config"
	"github.com/patriot-thanks/patriot-thanks-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PatriotConfig) *gorm.DB {
	dsn := cfg.PatriotDB.Dsn
	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the user repository maps to ErrEmailTaken.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.UserModel{},
		&models.AdminCodeModel{},
		&models.BusinessModel{},
		&models.IncentiveModel{},
		&models.ChainModel{},
		&models.DonationModel{},
	)

	return db
}
