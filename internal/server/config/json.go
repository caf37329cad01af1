package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/contactkeeper/internal/flagx"
	"github.com/dmitrijs2005/contactkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations are written
// as strings such as "10s".
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDriver   string         `json:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	RunMigrations    bool           `json:"run_migrations"`
	BcryptCost       int            `json:"bcrypt_cost"`
	ReadTimeout      timex.Duration `json:"read_timeout"`
	WriteTimeout     timex.Duration `json:"write_timeout"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays config with the file named by -c/-config. Keys missing
// from the file keep their current values. An unreadable file or invalid
// JSON panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{
		EndpointAddrHTTP: config.EndpointAddrHTTP,
		DatabaseDriver:   config.DatabaseDriver,
		DatabaseDSN:      config.DatabaseDSN,
		RunMigrations:    config.RunMigrations,
		BcryptCost:       config.BcryptCost,
		ReadTimeout:      timex.Duration{Duration: config.ReadTimeout},
		WriteTimeout:     timex.Duration{Duration: config.WriteTimeout},
		ShutdownTimeout:  timex.Duration{Duration: config.ShutdownTimeout},
		LogLevel:         config.LogLevel,
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDriver = c.DatabaseDriver
	config.DatabaseDSN = c.DatabaseDSN
	config.RunMigrations = c.RunMigrations
	config.BcryptCost = c.BcryptCost
	config.ReadTimeout = c.ReadTimeout.Duration
	config.WriteTimeout = c.WriteTimeout.Duration
	config.ShutdownTimeout = c.ShutdownTimeout.Duration
	config.LogLevel = c.LogLevel
}
