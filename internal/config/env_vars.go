package config

import (
	"os"
	"time"
)

const (
	appNameVar     = "APP_NAME"
	folderEnvVar   = "CONSOLE_DATA_FOLDER"
	apiBaseURLVar  = "CONSOLE_API_URL"
	httpTimeoutVar = "CONSOLE_HTTP_TIMEOUT"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ APIConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Gaushala Console")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetAPIBaseURL returns the base URL of the console backend (e.g.
// "https://api.example.com"). All collection and mutation paths are
// resolved relative to it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080")
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	timeout, err := time.ParseDuration(GetEnv(httpTimeoutVar, "30s"))
	if err != nil {
		return 30 * time.Second
	}
	return timeout
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
