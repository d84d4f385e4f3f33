package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	buildNumberVar = "BUILD_NUMBER"
	metadataVar    = "METADATA_PATH"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Session Service")
}

// GetBuildNumber returns the CI build number appended to the version
// reported by the status endpoint.
func (EnvVars) GetBuildNumber() string {
	return GetEnv(buildNumberVar, "0")
}

// GetMetadataPath returns the location of the application metadata document.
func (EnvVars) GetMetadataPath() string {
	return GetEnv(metadataVar, "./metadata.json")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
