package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	Environment     string

	StorageBucket string

	// ListingTTL is the lifetime granted to a listing when it is posted.
	ListingTTL time.Duration

	// EnableExpiredListingCleanup gates the periodic cleanup and warning
	// tasks. Off by default so a misconfigured deployment never deletes data.
	EnableExpiredListingCleanup bool

	CleanupInterval time.Duration
	WarningInterval time.Duration

	// Warning window: listings whose expiry falls in
	// [now+WarningWindowStart, now+WarningWindowEnd) are warned.
	WarningWindowStart time.Duration
	WarningWindowEnd   time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:                  getEnv("SERVER_PORT", "8080"),
		FirebaseProject:             getEnv("FIREBASE_PROJECT_ID", ""),
		Environment:                 getEnv("ENVIRONMENT", "development"),
		StorageBucket:               getEnv("STORAGE_BUCKET", ""),
		ListingTTL:                  time.Duration(getEnvAsInt64("LISTING_TTL_HOURS", 24)) * time.Hour,
		EnableExpiredListingCleanup: getEnvAsBool("ENABLE_EXPIRED_LISTING_CLEANUP", false),
		CleanupInterval:             time.Duration(getEnvAsInt64("CLEANUP_INTERVAL_SECONDS", 30)) * time.Second,
		WarningInterval:             time.Duration(getEnvAsInt64("WARNING_INTERVAL_MINUTES", 60)) * time.Minute,
		WarningWindowStart:          24 * time.Hour,
		WarningWindowEnd:            25 * time.Hour,
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		return value == "true"
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
