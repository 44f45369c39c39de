package config

import (
	"os"
	"strconv"
	"time"

	"github.com/bookify/reservations-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret signs session tokens; SigningKey signs stateless
// email-verification tokens. Separate keys so rotating one does not
// invalidate the other.
var (
	JWTSecret  []byte
	SigningKey []byte

	BaseURL     string
	MailFrom    string
	SendGridKey string

	InviteTTL    time.Duration
	VerifyMaxAge time.Duration
)

// Load reads .env (if present) and fills the package globals.
func Load() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using process environment")
	}

	JWTSecret = []byte(getEnv("JWT_SECRET", "bookify_session_secret"))
	SigningKey = []byte(getEnv("SIGNING_KEY", "bookify_signing_secret"))
	BaseURL = getEnv("BASE_URL", "http://localhost:8080")
	MailFrom = getEnv("MAIL_FROM", "no-reply@bookify.example")
	SendGridKey = os.Getenv("SENDGRID_API_KEY")
	InviteTTL = time.Duration(getEnvInt("INVITE_TTL_DAYS", 3)) * 24 * time.Hour
	VerifyMaxAge = time.Duration(getEnvInt("VERIFY_MAX_AGE_HOURS", 72)) * time.Hour
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// InitDB opens the sqlite database and migrates all models.
func InitDB(dsn string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.StaffInvitation{},
		&models.Restaurant{},
		&models.Reservation{},
		&models.ReservationStatusHistory{},
	)
	if err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	logrus.WithField("dsn", dsn).Info("database connected and migrated")
}
