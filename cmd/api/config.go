package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
)

const (
	DriverRest     = "rest"
	DriverPostgres = "postgres"

	defaultCodeword = "BEDFORD"
)

type Config struct {
	HttpPort       int           `json:"http_port"`
	Codeword       string        `json:"codeword"`
	AllowedSenders []string      `json:"allowed_senders"`
	Store          StoreConfig   `json:"store"`
	RedisAddr      string        `json:"redis_addr"`
	DedupTTLStr    string        `json:"dedup_ttl"`
	DedupTTL       time.Duration `json:"-"`
	MaxConnRetry   int           `json:"max_conn_retry"`
}

type StoreConfig struct {
	Driver       string        `json:"driver"`
	BaseURL      string        `json:"base_url"`
	Credential   string        `json:"credential"`
	DbConnString string        `json:"db_conn_string"`
	TimeoutStr   string        `json:"timeout"`
	Timeout      time.Duration `json:"-"`
}

// ReadConfigJson reads json formatted configuration from the given file, applies
// environment overrides and validates the result. A missing file is treated as an
// empty configuration.
func ReadConfigJson(configFile string) (*Config, error) {
	cfg := new(Config)

	content, err := os.ReadFile(configFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err = json.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configFile, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SMS_CODEWORD"); v != "" {
		c.Codeword = v
	}
	if v := os.Getenv("SMS_ALLOWED_SENDERS"); v != "" {
		c.AllowedSenders = splitList(v)
	}
	if v := os.Getenv("DATASTORE_BASE_URL"); v != "" {
		c.Store.BaseURL = v
	}
	if v := firstEnv("DATASTORE_CREDENTIAL", "SUPABASE_SERVICE_KEY"); v != "" {
		c.Store.Credential = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Store.DbConnString = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
}

func (c *Config) applyDefaults() (err error) {
	if c.HttpPort == 0 {
		c.HttpPort = 6060
	}
	if c.Codeword == "" {
		c.Codeword = defaultCodeword
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverRest
	}
	if c.MaxConnRetry <= 0 {
		c.MaxConnRetry = 5
	}

	c.Store.Timeout = 5 * time.Second
	if c.Store.TimeoutStr != "" {
		if c.Store.Timeout, err = time.ParseDuration(c.Store.TimeoutStr); err != nil {
			return fmt.Errorf("store.timeout: %w", err)
		}
	}

	c.DedupTTL = 24 * time.Hour
	if c.DedupTTLStr != "" {
		if c.DedupTTL, err = time.ParseDuration(c.DedupTTLStr); err != nil {
			return fmt.Errorf("dedup_ttl: %w", err)
		}
	}

	return nil
}

func (c *Config) validate() error {
	var errs []string
	if len(strings.Fields(c.Codeword)) != 1 || strings.TrimSpace(c.Codeword) != c.Codeword {
		errs = append(errs, "codeword must be a single word")
	}
	switch c.Store.Driver {
	case DriverRest:
		if c.Store.BaseURL == "" {
			errs = append(errs, "store.base_url is required for the rest driver")
		}
		if c.Store.Credential == "" {
			errs = append(errs, "store.credential is required for the rest driver")
		}
	case DriverPostgres:
		if c.Store.DbConnString == "" {
			errs = append(errs, "store.db_conn_string is required for the postgres driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown store.driver %q", c.Store.Driver))
	}
	if c.Store.Timeout <= 0 {
		errs = append(errs, "store.timeout must be > 0")
	}
	if c.DedupTTL <= 0 {
		errs = append(errs, "dedup_ttl must be > 0")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
