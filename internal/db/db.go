package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cheatsheet-editor/internal/config"
	"cheatsheet-editor/internal/content"
	"cheatsheet-editor/pkg/logger"
)

// Connect opens the postgres connection and migrates the content schema.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)

	level := gormlogger.Info
	if cfg.Environment == "production" {
		level = gormlogger.Error
	}
	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      level,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	if err := db.AutoMigrate(&content.Content{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	logger.Sugar.Info("Success connecting to db")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Sugar.Warnf("failed to close db: %v", err)
	}
}
