package backend

import (
	"fmt"

	"ledger/internal/config"
	"ledger/internal/storage"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	sc := appConfig.StoreConfig()
	if !sc.Driver.IsValid() {
		return Config{}, fmt.Errorf("invalid database driver in config: %s", appConfig.DBDriver)
	}

	return Config{
		Driver: sc.Driver,
		DSN:    sc.DSN,

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Driver.IsValid() {
		return fmt.Errorf("invalid database driver: %s", c.Driver)
	}

	if c.DSN == "" {
		switch c.Driver {
		case storage.DriverSQLite:
			return fmt.Errorf("SQLite database path is required for sqlite driver")
		default:
			return fmt.Errorf("connection string is required for %s driver", c.Driver)
		}
	}

	// AMQP is optional, but a URL needs somewhere to publish to
	if c.AMQPURL != "" && (c.AMQPExchange == "" || c.AMQPQueue == "") {
		return fmt.Errorf("AMQP exchange and queue are required when AMQP URL is set")
	}

	return nil
}

// GetDrivers returns all supported database drivers
func GetDrivers() []storage.Driver {
	return []storage.Driver{storage.DriverPostgres, storage.DriverSQLite}
}

// GetDriverStrings returns all supported database driver names
func GetDriverStrings() []string {
	drivers := GetDrivers()
	strings := make([]string, len(drivers))
	for i, d := range drivers {
		strings[i] = d.String()
	}
	return strings
}
