package config

import (
	"os"
	"time"
)

// AuthMode selects the identity verifier implementation
const (
	AuthModeFirebase = "firebase"
	AuthModeJWT      = "jwt"
)

type Config struct {
	Port                    string
	Env                     string
	AuthMode                string
	JWTSecret               string
	FirebaseCredentialsPath string
	ReconcileInterval       time.Duration
	ReconcileGracePeriod    time.Duration
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		AuthMode:                getEnv("AUTH_MODE", AuthModeFirebase),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		ReconcileInterval:       getEnvDuration("RECONCILE_INTERVAL", 15*time.Minute),
		ReconcileGracePeriod:    getEnvDuration("RECONCILE_GRACE_PERIOD", time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
