package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/conectapro/backend/internal/models"
)

// DB is the global database connection
var DB *gorm.DB

// Initialize sets up the database connection. The *sql.DB is opened through
// lib/pq and handed to GORM so that driver errors surface as *pq.Error,
// which the engagement toggles inspect for unique violations.
func Initialize() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "postgres")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "conectapro")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	return nil
}

// Migrate runs database migrations for all models
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Market{},
		&models.Profession{},
		&models.UserMarket{},
		&models.UserProfession{},
		&models.Post{},
		&models.PostLike{},
		&models.PostComment{},
		&models.SavedPost{},
		&models.Connection{},
		&models.Notification{},
		&models.Job{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return createIndexes()
}

// createIndexes adds indexes AutoMigrate does not express well. The feed
// query orders by created_at within a market-id set, and the unread badge
// counts unread rows per user, so both get composite indexes.
func createIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_posts_market_created ON posts(market_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id, read, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_connections_following_status ON connections(following_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_connections_follower_status ON connections(follower_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_jobs_market_created ON jobs(market_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_saved_posts_user ON saved_posts(user_id, created_at DESC)",
	}

	for _, idx := range indexes {
		if err := DB.Exec(idx).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Health checks if the database connection is alive
func Health() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Ping()
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
