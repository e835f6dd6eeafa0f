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

// ValidationErrors collects every problem found in a configuration
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			errs = append(errs, ValidationError{"DB_HOST", "is required for the postgres driver"})
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_NAME", "is required for the postgres driver"})
		}
		if cfg.DBPassword == "" && (env == Production || env == CI) {
			errs = append(errs, ValidationError{"DB_PASSWORD", "is required for the postgres driver"})
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required for the sqlite driver"})
		}
		if env == Production {
			errs = append(errs, ValidationError{"STORE_DRIVER", "sqlite is not supported in production"})
		}
	case DriverMongo:
		if cfg.MongoURI == "" {
			errs = append(errs, ValidationError{"MONGO_URI", "is required for the mongo driver"})
		}
		if cfg.MongoDatabase == "" {
			errs = append(errs, ValidationError{"MONGO_DATABASE", "is required for the mongo driver"})
		}
	default:
		errs = append(errs, ValidationError{"STORE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.StoreDriver)})
	}

	if cfg.JWTSecret == "" {
		if env == Production || env == CI {
			errs = append(errs, ValidationError{"JWT_SECRET", "is required"})
		} else {
			cfg.JWTSecret = "development-secret"
		}
	}

	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{"TOKEN_TTL", "must be positive"})
	}

	if cfg.S3Bucket != "" && cfg.AWSRegion == "" {
		errs = append(errs, ValidationError{"AWS_REGION", "is required when S3_BUCKET_NAME is set"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
