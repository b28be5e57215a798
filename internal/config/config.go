// Package config loads horas settings from the config file, HORAS_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration
type Config struct {
	Database Database `mapstructure:"database"`
	HTTP     HTTP     `mapstructure:"http"`
	Log      Log      `mapstructure:"log"`
	Owner    string   `mapstructure:"owner"`
	Timezone string   `mapstructure:"timezone"`
	Notify   bool     `mapstructure:"notify"`

	// File is the config file that was read or created
	File string `mapstructure:"-"`
}

type Database struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type HTTP struct {
	Addr        string `mapstructure:"addr"`
	OwnerHeader string `mapstructure:"owner_header"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Location resolves Timezone; "Local" and "" mean the system zone
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "~/.horas/horas.db")
	v.SetDefault("http.addr", "127.0.0.1:8080")
	v.SetDefault("http.owner_header", "X-Owner-ID")
	v.SetDefault("owner", "local")
	v.SetDefault("timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("notify", false)
}

// DefaultFile returns the per-user config file path,
// e.g. ~/.config/horas/horas.yml
func DefaultFile() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}
	return filepath.Join(configHome, "horas", "horas.yml"), nil
}

// Load reads the config file at path (the default file when empty),
// writing it with default values when it does not exist yet. flags, when
// not nil, override file and environment values for the flags that were set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultFile(); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("HORAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := writeDefaults(path); err != nil {
			return nil, fmt.Errorf("error creating config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.File = path
	return &cfg, nil
}

// writeDefaults writes only the defaults, never values that came from the
// environment or flags of this run
func writeDefaults(path string) error {
	d := viper.New()
	setDefaults(d)
	return d.WriteConfigAs(path)
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"db":        "database.dsn",
	"driver":    "database.driver",
	"addr":      "http.addr",
	"owner":     "owner",
	"timezone":  "timezone",
	"log-level": "log.level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("error binding flag --%s: %w", name, err)
		}
	}
	return nil
}
