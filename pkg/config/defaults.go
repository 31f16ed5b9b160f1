// Package config provides centralized default values for the member gate
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Storage Configuration
	SQLitePath    string
	LibSQLURL     string
	LibSQLToken   string
	MemoryStorage bool

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int

	// Member Verification
	MemberCodesPath string

	// Staff Authentication
	StaffPassword string
	JWTSecret     string

	// Contact Message Notifications
	ResendAPIKey     string
	MessageEmailTo   string
	MessageEmailFrom string
	MessageEmailName string
	NotifyOnMessages bool
)

// Load resolves all configuration values from the environment. Call once at
// startup, after any .env bootstrap.
func Load() {
	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Storage
	SQLitePath = getEnvString("SQLITE_PATH", "data/membergate.db")
	LibSQLURL = getEnvString("LIBSQL_URL", "")
	LibSQLToken = getEnvString("LIBSQL_TOKEN", "")
	MemoryStorage = getEnvBool("MEMORY_STORAGE", false)

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)

	// Member Verification
	MemberCodesPath = getEnvString("MEMBER_CODES_PATH", "data/member_codes.json")

	// Staff Authentication
	StaffPassword = getEnvString("STAFF_PASSWORD", "")
	JWTSecret = getEnvString("JWT_SECRET", "")

	// Contact Message Notifications
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")
	MessageEmailTo = getEnvString("MESSAGE_EMAIL_TO", "")
	MessageEmailFrom = getEnvString("MESSAGE_EMAIL_FROM", "noreply@ghoshcoop.com")
	MessageEmailName = getEnvString("MESSAGE_EMAIL_FROM_NAME", "Ghosh Cooperative Bankings")
	NotifyOnMessages = getEnvBool("NOTIFY_ON_MESSAGES", true)
}
