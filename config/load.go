package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override settings,
// for example CARDSTACK_WINDOW_WIDTH or CARDSTACK_LOG_LEVEL.
const EnvPrefix = "CARDSTACK"

// ErrUnknownStyle is returned when a card names a style that is not defined.
var ErrUnknownStyle = errors.New("config: unknown style")

//go:embed default.yaml
var defaultYAML []byte

// Load reads the embedded defaults, merges the YAML file at path over them
// when path is not empty, applies CARDSTACK_ environment overrides, and
// validates the result. A card list in the file replaces the default deck.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultYAML)); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read configuration file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded configuration without file or environment
// overrides.
func Default() (*Config, error) {
	return decodeYAML(defaultYAML)
}

// decodeYAML reads and validates a configuration document.
func decodeYAML(data []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and that every card's style is defined.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	for i, c := range cfg.Deck.Cards {
		if c.Style == "" {
			continue
		}
		if _, ok := cfg.Deck.Styles[c.Style]; !ok {
			return fmt.Errorf("configuration validation failed: card %d: %w: %q", i, ErrUnknownStyle, c.Style)
		}
	}
	return nil
}
