package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"sigs.k8s.io/yaml"

	"mit.edu/dsg/qep/common"
)

// DatabaseURLEnv overrides database.url when set.
const DatabaseURLEnv = "QEP_DATABASE_URL"

// Duration is a time.Duration that reads "10s"-style strings from YAML.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"10s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

type DatabaseConfig struct {
	URL            string   `json:"url"`
	Host           string   `json:"host"`
	Port           int      `json:"port"`
	User           string   `json:"user"`
	Password       string   `json:"password"`
	DBName         string   `json:"dbname"`
	ExplainTimeout Duration `json:"explain_timeout"`
}

// ConnString returns URL when set, otherwise a postgres:// URL assembled from
// the individual fields.
func (c DatabaseConfig) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.DBName,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else if c.User != "" {
		u.User = url.User(c.User)
	}
	return u.String()
}

// ServerConfig configures the HTTP API. A zero ShutdownTimeout waits for
// in-flight requests without a deadline.
type ServerConfig struct {
	Addr               string   `json:"addr"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	ShutdownTimeout    Duration `json:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type Config struct {
	Database DatabaseConfig `json:"database"`
	Server   ServerConfig   `json:"server"`
	Log      LogConfig      `json:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			DBName:         "postgres",
			ExplainTimeout: Duration(10 * time.Second),
		},
		Server: ServerConfig{
			Addr:               "localhost:5000",
			CORSAllowedOrigins: []string{"*"},
			ShutdownTimeout:    Duration(5 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// not an error when optional is set. The database URL environment override is
// applied last.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.UnmarshalStrict(data, cfg); err != nil {
				return nil, common.WrapError(common.InvalidConfigError, common.StageConfig, err, "cannot parse "+path)
			}
		case errors.Is(err, os.ErrNotExist) && optional:
		default:
			return nil, common.WrapError(common.InvalidConfigError, common.StageConfig, err, "cannot read "+path)
		}
	}

	if u := os.Getenv(DatabaseURLEnv); u != "" {
		cfg.Database.URL = u
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return common.NewError(common.InvalidConfigError, common.StageConfig, format, args...)
	}
	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return invalid("database.host is required when database.url is empty")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			return invalid("database.port %d is out of range", c.Database.Port)
		}
	}
	if c.Database.ExplainTimeout <= 0 {
		return invalid("database.explain_timeout must be positive")
	}
	if c.Server.Addr == "" {
		return invalid("server.addr is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return invalid("server.shutdown_timeout must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return invalid("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
