package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-lens/internal/models"
)

// InitDatabase opens the Postgres connection, routes gorm's own logging
// through zap and migrates the recruitment tables.
func InitDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	gormLog := logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("✅ Database connected successfully",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName),
	)

	if err := db.AutoMigrate(
		&models.JobOpening{},
		&models.JobApplicant{},
		&models.Shortlist{},
		&models.ShortlistedCandidate{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("✅ Database migration completed")

	return db, nil
}
