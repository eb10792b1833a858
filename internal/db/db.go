package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glowslot/salon-scheduler/internal/config"
	"github.com/glowslot/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Stylist{},
		&models.Service{},
		&models.Customer{},
		&models.Booking{},
		&models.BookingService{},
		&models.Payment{},
		&models.SalonHoliday{},
		&models.StylistHoliday{},
		&models.StylistBlockedSlot{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	db.Exec(`
        UPDATE salons
        SET timezone = 'Asia/Kolkata'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
