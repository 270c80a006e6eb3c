package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ledger/internal/log"
	"ledger/internal/storage"
)

// DefaultDBPassword is a placeholder; any real deployment must override it.
const DefaultDBPassword = "changeme"

type Config struct {
	// Database
	DBDriver     string
	DBHost       string
	DBName       string
	DBUser       string
	DBPassword   string
	DBPort       string
	DBSSLMode    string
	SQLiteDBPath string

	// AMQP (optional event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		DBDriver:     getEnv("DB_DRIVER", string(storage.DriverPostgres)),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBName:       getEnv("DB_NAME", "finance_db"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", DefaultDBPassword),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ledger.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "transactions_recorded"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	driver := storage.Driver(c.DBDriver)
	if !driver.IsValid() {
		errors = append(errors, fmt.Sprintf("invalid database driver '%s': must be one of [%s %s]", c.DBDriver, storage.DriverPostgres, storage.DriverSQLite))
	}

	if driver == storage.DriverPostgres {
		if c.DBHost == "" {
			errors = append(errors, "database host cannot be empty")
		}
		if c.DBName == "" {
			errors = append(errors, "database name cannot be empty")
		}
		if c.DBUser == "" {
			errors = append(errors, "database user cannot be empty")
		}
		if port, err := strconv.Atoi(c.DBPort); err != nil {
			errors = append(errors, fmt.Sprintf("invalid database port '%s': must be a number", c.DBPort))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid database port %d: must be between 1 and 65535", port))
		}
	}

	if driver == storage.DriverSQLite {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite driver")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// UsesDefaultPassword reports whether the placeholder password is still set.
func (c *Config) UsesDefaultPassword() bool {
	return storage.Driver(c.DBDriver) == storage.DriverPostgres && c.DBPassword == DefaultDBPassword
}

// PostgresDSN builds a postgres:// URL with credentials escaped.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", c.DBSSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// StoreConfig converts the application config to a storage config.
func (c *Config) StoreConfig() storage.Config {
	driver := storage.Driver(c.DBDriver)
	dsn := c.SQLiteDBPath
	if driver == storage.DriverPostgres {
		dsn = c.PostgresDSN()
	}
	return storage.Config{Driver: driver, DSN: dsn}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
