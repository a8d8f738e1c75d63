// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Service names accepted in SERVICES / --services
const (
	ServiceMember = "member"
	ServiceOrg    = "org"
	ServiceReBAC  = "rebac"
	ServiceImage  = "image"
)

var knownServices = []string{ServiceMember, ServiceOrg, ServiceReBAC, ServiceImage}

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Services    []string
	CORSOrigins []string

	// Identity platform management API
	DescopeProjectID     string
	DescopeManagementKey string
	DescopeBaseURL       string
	DescopeTimeout       time.Duration

	// Session token verification
	AuthEnabled     bool
	JWKSRefreshSpec string

	// Optional backing stores
	DatabaseURL string
	RedisURL    string

	// Image presigning
	S3BucketName  string
	AWSRegion     string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	PresignExpiry time.Duration
	ImageKeyTTL   time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("API_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Services:    ParseServices(getEnv("SERVICES", strings.Join(knownServices, ","))),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		DescopeProjectID:     getEnv("DESCOPE_PROJECT_ID", ""),
		DescopeManagementKey: getEnv("DESCOPE_MANAGEMENT_KEY", ""),
		DescopeBaseURL:       getEnv("DESCOPE_BASE_URL", "https://api.descope.com"),
		DescopeTimeout:       getEnvDuration("DESCOPE_TIMEOUT", 30*time.Second),

		AuthEnabled:     getEnvBool("AUTH_ENABLED", false),
		JWKSRefreshSpec: getEnv("JWKS_REFRESH_SPEC", "@every 1h"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		S3BucketName:  getEnv("S3_BUCKET_NAME", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
		PresignExpiry: getEnvDuration("PRESIGN_EXPIRY", 15*time.Minute),
		ImageKeyTTL:   getEnvDuration("IMAGE_KEY_TTL", 30*24*time.Hour),
	}
}

// Validate checks that every enabled service has the settings it needs.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Services) == 0 {
		errs = append(errs, errors.New("at least one service must be enabled"))
	}
	for _, s := range c.Services {
		if !isKnownService(s) {
			errs = append(errs, fmt.Errorf("unknown service %q (want one of %s)", s, strings.Join(knownServices, ", ")))
		}
	}

	if c.NeedsManagementClient() || c.AuthEnabled {
		if strings.TrimSpace(c.DescopeProjectID) == "" {
			errs = append(errs, errors.New("DESCOPE_PROJECT_ID is required"))
		}
	}
	if c.NeedsManagementClient() && strings.TrimSpace(c.DescopeManagementKey) == "" {
		errs = append(errs, errors.New("DESCOPE_MANAGEMENT_KEY is required"))
	}

	if c.Enabled(ServiceImage) {
		if strings.TrimSpace(c.S3BucketName) == "" {
			errs = append(errs, errors.New("S3_BUCKET_NAME is required when the image service is enabled"))
		}
		if c.PresignExpiry <= 0 {
			errs = append(errs, errors.New("PRESIGN_EXPIRY must be positive"))
		}
		if c.ImageKeyTTL <= 0 {
			errs = append(errs, errors.New("IMAGE_KEY_TTL must be positive"))
		}
	}

	return errors.Join(errs...)
}

// Enabled reports whether the named service is served by this process.
func (c *Config) Enabled(service string) bool {
	for _, s := range c.Services {
		if s == service {
			return true
		}
	}
	return false
}

// NeedsManagementClient is true when any service proxying to the identity platform is enabled.
func (c *Config) NeedsManagementClient() bool {
	return c.Enabled(ServiceMember) || c.Enabled(ServiceOrg) || c.Enabled(ServiceReBAC)
}

// ParseServices turns "member, org" into a normalized, de-duplicated list.
func ParseServices(value string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range splitList(value) {
		s = strings.ToLower(s)
		if s == "all" {
			return append([]string(nil), knownServices...)
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func isKnownService(name string) bool {
	for _, s := range knownServices {
		if s == name {
			return true
		}
	}
	return false
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
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
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
