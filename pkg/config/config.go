// Package config resolves runtime configuration from a config file,
// STOCKROUTE_-prefixed environment variables, and flag overrides, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store backends for network snapshots.
const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

// Config holds the runtime settings of the stockroute CLI.
type Config struct {
	Store          string `mapstructure:"store"`
	StockFile      string `mapstructure:"stock_file"`
	ConnectionFile string `mapstructure:"connection_file"`
	OutputFile     string `mapstructure:"output_file"`
	DBPath         string `mapstructure:"db_path"`
	Verbose        bool   `mapstructure:"verbose"`
}

// Load reads configuration. cfgFile may be empty, in which case
// stockroute.yaml is looked up in the working directory and is optional.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("store", StoreCSV)
	v.SetDefault("stock_file", "warehouse_stock.csv")
	v.SetDefault("connection_file", "warehouse_connections.csv")
	v.SetDefault("output_file", "updated_warehouse_stock.csv")
	v.SetDefault("db_path", "stockroute.db")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("STOCKROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("stockroute")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreCSV, StoreSQLite:
		return nil
	default:
		return fmt.Errorf("invalid store backend %q (expected %s or %s)", c.Store, StoreCSV, StoreSQLite)
	}
}
