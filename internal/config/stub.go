package config

import "fmt"

// StubConfig holds the development stub server settings.
type StubConfig struct {
	Addr     string `env:"ADDR"`
	Token    string `env:"STUB_TOKEN"`
	NoSearch bool   `env:"STUB_NO_SEARCH"`
	Seed     bool   `env:"STUB_SEED"`
	LogLevel string `env:"STUB_LOG_LEVEL"`
}

// LoadStub reads the stub server settings from the environment.
func LoadStub(environ map[string]string) (*StubConfig, error) {
	cfg := &StubConfig{Addr: ":8080", Seed: true, LogLevel: "info"}
	if err := ParseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("invalid config: addr is required")
	}
	return cfg, nil
}
