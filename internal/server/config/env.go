package config

import (
	"os"
	"strings"
	"time"
)

// parseEnv overlays configuration from environment variables. Only
// variables that are set override earlier layers.
//
// Recognized variables:
//
//	ADDRESS                 HTTP bind address
//	DATABASE_URL            PostgreSQL DSN
//	SECRET_KEY              token signing secret
//	ACCESS_TOKEN_VALIDITY   token lifetime, Go duration string ("30m")
//	ALLOWED_ORIGINS         comma-separated CORS origins
//	S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
//	GOOGLE_API_KEY          LLM scoring API key (empty enables mock mode)
//	AI_MODEL, AI_BASE_ENDPOINT
func parseEnv(config *Config) {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	setString(&config.EndpointAddr, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_URL")
	setString(&config.SecretKey, "SECRET_KEY")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&config.AIAPIKey, "GOOGLE_API_KEY")
	setString(&config.AIModel, "AI_MODEL")
	setString(&config.AIBaseEndpoint, "AI_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("ACCESS_TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			config.AccessTokenValidityDuration = d
		}
	}

	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.AllowedOrigins = origins
	}
}
