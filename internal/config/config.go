package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when FRAMESTUDIO_CONFIG is not set and the file exists.
const DefaultPath = "config.yaml"

// Config is the complete service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Session SessionConfig `yaml:"session"`
	Photo   PhotoConfig   `yaml:"photo"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port             string    `yaml:"port"`
	GinMode          string    `yaml:"gin_mode"` // debug, release, test
	TrustedProxies   []string  `yaml:"trusted_proxies"`
	ShutdownTimeoutS int       `yaml:"shutdown_timeout_s"`
	TLS              TLSConfig `yaml:"tls"`
}

// TLSConfig enables HTTPS. With an empty cert/key pair a self-signed
// certificate is generated on start.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type CatalogConfig struct {
	Path string `yaml:"path"` // empty: built-in catalog
}

type SessionConfig struct {
	CookieName     string `yaml:"cookie_name"`
	CookieSecure   bool   `yaml:"cookie_secure"`
	MaxIdleMinutes int    `yaml:"max_idle_minutes"`
	SweepIntervalS int    `yaml:"sweep_interval_s"`
}

type PhotoConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

type SMTPConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Pass       string `yaml:"pass"`
	From       string `yaml:"from"`
	AdminEmail string `yaml:"admin_email"`
}

type LogConfig struct {
	Development bool `yaml:"development"`
}

// Load reads the file named by FRAMESTUDIO_CONFIG, or DefaultPath when
// present, then applies environment overrides and defaults.
func Load() (*Config, error) {
	path := os.Getenv("FRAMESTUDIO_CONFIG")
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	cfg := &Config{}
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFile parses a YAML configuration file without env overrides or defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values that cannot be fixed by defaults.
func Validate(cfg *Config) error {
	switch cfg.Server.GinMode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("server.gin_mode: unknown mode %q", cfg.Server.GinMode)
	}
	if cfg.Photo.MaxBytes < 0 {
		return errors.New("photo.max_bytes must not be negative")
	}
	if cfg.SMTP.Port < 0 || cfg.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port: %d out of range", cfg.SMTP.Port)
	}
	if tls := cfg.Server.TLS; (tls.CertFile == "") != (tls.KeyFile == "") {
		return errors.New("server.tls: cert_file and key_file must be set together")
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Server.Port)
	str("GIN_MODE", &c.Server.GinMode)
	str("CATALOG_PATH", &c.Catalog.Path)
	str("SMTP_HOST", &c.SMTP.Host)
	str("SMTP_USER", &c.SMTP.User)
	str("SMTP_PASS", &c.SMTP.Pass)
	str("ADMIN_EMAIL", &c.SMTP.AdminEmail)

	if v, ok := lookup("SMTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SMTP_PORT: %w", err)
		}
		c.SMTP.Port = port
	}
	return Validate(c)
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.GinMode == "" {
		c.Server.GinMode = "release"
	}
	if c.Server.ShutdownTimeoutS <= 0 {
		c.Server.ShutdownTimeoutS = 5
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "user_session"
	}
	if c.Session.MaxIdleMinutes <= 0 {
		c.Session.MaxIdleMinutes = 24 * 60
	}
	if c.Session.SweepIntervalS <= 0 {
		c.Session.SweepIntervalS = 300
	}
	if c.SMTP.Host == "" {
		c.SMTP.Host = "smtp.gmail.com"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutS) * time.Second
}

func (s SessionConfig) MaxIdle() time.Duration {
	return time.Duration(s.MaxIdleMinutes) * time.Minute
}

func (s SessionConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalS) * time.Second
}
