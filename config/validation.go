package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration carries everything the
// application needs for the current environment. Development and test
// tolerate missing credentials so a local run against defaults is possible;
// CI and production do not.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_NAME":     cfg.DBName,
		"REDIS_HOST":  cfg.RedisHost,
		"REDIS_PORT":  cfg.RedisPort,
	}
	for field, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("required configuration %s is not set", field))
		}
	}

	env := GetEnvironment()
	if env == CI || env == Production {
		if cfg.DBUser == "" {
			errors = append(errors, "DB_USER is required in "+string(env))
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD is required in "+string(env))
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, "JWT_SECRET is required in "+string(env))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
