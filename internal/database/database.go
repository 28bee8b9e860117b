package database

import (
	"log"
	"os"
	"time"

	"gamescout/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	Migrate(DB)

	log.Println("Database migrated successfully.")
}

// Migrate runs schema migrations on the given connection. Split out so tests
// can run it against their own database.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(&models.User{}, &models.Game{}, &models.SavedList{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

// Healthy reports whether the underlying connection answers a ping.
func Healthy() bool {
	if DB == nil {
		return false
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
