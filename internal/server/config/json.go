package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/heloise-dot/Kaziflow/internal/flagx"
	"github.com/heloise-dot/Kaziflow/internal/timex"
)

// JsonConfig is an intermediate DTO for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both string
// values such as "30m" and integer nanoseconds. After unmarshalling,
// set fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                string          `json:"endpoint_addr"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	AllowedOrigins              []string        `json:"allowed_origins"`
	S3RootUser                  string          `json:"s3_root_user"`
	S3RootPassword              string          `json:"s3_root_password"`
	S3Bucket                    string          `json:"s3_bucket"`
	S3Region                    string          `json:"s3_region"`
	S3BaseEndpoint              string          `json:"s3_base_endpoint"`
	AIAPIKey                    string          `json:"ai_api_key"`
	AIModel                     string          `json:"ai_model"`
	AIBaseEndpoint              string          `json:"ai_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags. When no flag is given, no file is
// loaded. Unset fields leave the earlier layers untouched. Unreadable or
// invalid files panic: a requested config file that cannot be applied is
// a startup failure.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.AIAPIKey != "" {
		config.AIAPIKey = c.AIAPIKey
	}
	if c.AIModel != "" {
		config.AIModel = c.AIModel
	}
	if c.AIBaseEndpoint != "" {
		config.AIBaseEndpoint = c.AIBaseEndpoint
	}
}
