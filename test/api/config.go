/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	// ErrInvalidConfiguration is raised when an environment variable cannot
	// be coerced to the required type.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

const (
	defaultBaseURL        = "https://api.example.com"
	defaultTimeoutSeconds = 10
	defaultEnvironment    = "dev"
	defaultReportDir      = "reports"
	defaultLogLevel       = "INFO"

	defaultUsername = "test_user"
	defaultPassword = "Test@123"
	defaultEmail    = "test@example.com"
)

// TestConfig is loaded once per test run and never mutated afterwards.
type TestConfig struct {
	BaseURL     string
	Timeout     time.Duration
	APIKey      string
	APISecret   string
	BearerToken string
	Environment string
	ReportDir   string
	LogLevel    string

	// RetryMax is handed to the HTTP library, the harness never retries
	// on its own.  Zero disables retries.
	RetryMax int

	SkipIntegration   bool
	LogRequests       bool
	LogResponses      bool
	ValidateResponses bool
}

// Credentials are used to build login and user payloads.
type Credentials struct {
	Username string
	Password string
	Email    string
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if a numeric value cannot be parsed.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	timeout, err := getIntWithDefault("TIMEOUT", defaultTimeoutSeconds)
	if err != nil {
		return nil, err
	}

	retryMax, err := getIntWithDefault("HTTP_RETRY_MAX", 0)
	if err != nil {
		return nil, err
	}

	config := &TestConfig{
		BaseURL:           getStringWithDefault("BASE_URL", defaultBaseURL),
		Timeout:           time.Duration(timeout) * time.Second,
		APIKey:            os.Getenv("API_KEY"),
		APISecret:         os.Getenv("API_SECRET"),
		BearerToken:       os.Getenv("BEARER_TOKEN"),
		Environment:       getStringWithDefault("ENVIRONMENT", defaultEnvironment),
		ReportDir:         getStringWithDefault("REPORT_DIR", defaultReportDir),
		LogLevel:          getStringWithDefault("LOG_LEVEL", defaultLogLevel),
		RetryMax:          retryMax,
		SkipIntegration:   getBoolWithDefault("SKIP_INTEGRATION", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
		ValidateResponses: getBoolWithDefault("OPENAPI_VALIDATE", false),
	}

	return config, nil
}

// LoadCredentials loads the test user from the environment.
func LoadCredentials() Credentials {
	loadEnvFile()

	return Credentials{
		Username: getStringWithDefault("TEST_USERNAME", defaultUsername),
		Password: getStringWithDefault("TEST_PASSWORD", defaultPassword),
		Email:    getStringWithDefault("TEST_EMAIL", defaultEmail),
	}
}

func getStringWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

// getIntWithDefault gets a non-negative integer from environment variable or returns default.
func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfiguration, key, value)
	}

	if intValue < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfiguration, key, intValue)
	}

	return intValue, nil
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// envSearchPaths are relative to the package under test, test/api or
// test/api/suites, so a single test/.env serves both.
//
//nolint:gochecknoglobals
var envSearchPaths = []string{".env", "../.env", "../../.env"}

// loadEnvFile loads the first .env file found.  Variables already present
// in the environment take precedence.  A missing file is not an error, CI
// sets variables directly.
func loadEnvFile() {
	for _, path := range envSearchPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", path, err)
		}

		return
	}
}
