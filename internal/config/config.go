// Package config loads the CLI and stub-server settings.
//
// Sources are applied in order, later ones winning: built-in defaults, an
// optional TOML file, HEALTHPOINTS_* environment variables, command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds the CLI settings.
type Config struct {
	APIURL       string        `env:"HEALTHPOINTS_API_URL" toml:"api_url"`
	Token        string        `env:"HEALTHPOINTS_TOKEN" toml:"token"`
	TokenFile    string        `env:"HEALTHPOINTS_TOKEN_FILE" toml:"token_file"`
	OIDCIssuer   string        `env:"HEALTHPOINTS_OIDC_ISSUER" toml:"oidc_issuer"`
	OIDCClientID string        `env:"HEALTHPOINTS_OIDC_CLIENT_ID" toml:"oidc_client_id"`
	PageSize     int           `env:"HEALTHPOINTS_PAGE_SIZE" toml:"page_size"`
	Timeout      time.Duration `env:"HEALTHPOINTS_TIMEOUT" toml:"timeout"`
	LogLevel     string        `env:"HEALTHPOINTS_LOG_LEVEL" toml:"log_level"`
	LogJSON      bool          `env:"HEALTHPOINTS_LOG_JSON" toml:"log_json"`
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:8080"
	c.OIDCClientID = "healthpoints-cli"
	c.PageSize = 20
	c.Timeout = 30 * time.Second
	c.LogLevel = "warn"
	if dir, err := os.UserConfigDir(); err == nil {
		c.TokenFile = filepath.Join(dir, "healthpoints", "token.json")
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.APIURL == "" {
		errs = append(errs, errors.New("api url is required"))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page size must be > 0, got %d", c.PageSize))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be > 0, got %s", c.Timeout))
	}
	if c.OIDCIssuer != "" && c.OIDCClientID == "" {
		errs = append(errs, errors.New("oidc client id is required with an issuer"))
	}
	return errors.Join(errs...)
}

// Load builds the CLI configuration from args (without the program name).
// environ replaces the process environment when non-nil.
func Load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("healthpoints", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", lookup(environ, "HEALTHPOINTS_CONFIG"), "path to a TOML config file")
	apiURL := fs.String("api", "", "base URL of the API")
	tokenFile := fs.String("token-file", "", "where the login token is kept")
	issuer := fs.String("issuer", "", "OpenID Connect issuer URL")
	clientID := fs.String("client-id", "", "OpenID Connect client id")
	pageSize := fs.Int("page-size", 0, "entities per page")
	timeout := fs.Duration("timeout", 0, "request timeout")
	logLevel := fs.String("log-level", "", "trace, debug, info, warn, error")
	logJSON := fs.Bool("log-json", false, "log as JSON")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if *configPath != "" {
		if err := LoadFile(*configPath, cfg); err != nil {
			return nil, err
		}
	}
	if err := ParseEnv(cfg, environ); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "api":
			cfg.APIURL = *apiURL
		case "token-file":
			cfg.TokenFile = *tokenFile
		case "issuer":
			cfg.OIDCIssuer = *issuer
		case "client-id":
			cfg.OIDCClientID = *clientID
		case "page-size":
			cfg.PageSize = *pageSize
		case "timeout":
			cfg.Timeout = *timeout
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-json":
			cfg.LogJSON = *logJSON
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile overlays the TOML file at path onto target.
func LoadFile(path string, target any) error {
	md, err := toml.DecodeFile(path, target)
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s: unknown keys %v", path, undecoded)
	}
	return nil
}

// ParseEnv overlays environment variables onto target. Unset variables leave
// the field untouched.
func ParseEnv(target any, environ map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func lookup(environ map[string]string, key string) string {
	if environ != nil {
		return environ[key]
	}
	return os.Getenv(key)
}
