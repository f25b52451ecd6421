package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken           string
	ApplicationID      string
	GuildID            string
	GatewayURL         string
	FirestoreProject   string
	ServiceAccountJSON string
	ServiceAccountPath string
	StaffRoleID        string
	OpsPort            string
	Environment        string
	SessionTTLMinutes  int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		BotToken:           getEnv("BOT_TOKEN", ""),
		ApplicationID:      getEnv("APPLICATION_ID", ""),
		GuildID:            getEnv("GUILD_ID", ""),
		GatewayURL:         getEnv("GATEWAY_URL", "wss://gateway.discord.gg/?v=10&encoding=json"),
		FirestoreProject:   getEnv("FIRESTORE_PROJECT_ID", ""),
		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StaffRoleID:        getEnv("STAFF_ROLE_ID", ""),
		OpsPort:            getEnv("OPS_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		SessionTTLMinutes:  getEnvAsInt64("REVIEW_SESSION_TTL_MINUTES", 15),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
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
