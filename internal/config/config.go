package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	appName        = "noteist"
	configFileName = "config.toml"

	// PathEnv overrides the config file location.
	PathEnv = "NOTEIST_CONFIG"
	// TokenEnv supplies the API token when no flag is given.
	TokenEnv = "TODOIST_API_TOKEN"
)

// ErrMissing is matched by MissingError via errors.Is.
var ErrMissing = errors.New("required setting missing")

// MissingError reports a required value absent from both flags and config.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("the --%s option is required, if you haven't set a default", e.Key)
}

func (e *MissingError) Is(target error) bool {
	return target == ErrMissing
}

// Config holds the saved defaults
type Config struct {
	Token   string `toml:"token,omitempty"`
	Project string `toml:"project,omitempty"`
	Color   string `toml:"color,omitempty"`
}

// Keys lists the settable config keys.
func Keys() []string {
	return []string{"color", "project", "token"}
}

// DefaultPath returns the config file path, honouring NOTEIST_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// Load reads the config at path. A missing file yields an empty Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Credentials are the resolved values a report needs.
type Credentials struct {
	Token   string
	Project string
}

// Resolve picks each value from the flag, then the environment (token
// only), then the config file.
func Resolve(flagToken, flagProject string, cfg *Config) (Credentials, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	creds := Credentials{Project: flagProject}
	if creds.Project == "" {
		creds.Project = cfg.Project
	}
	if creds.Project == "" {
		return creds, &MissingError{Key: "project"}
	}

	token, err := ResolveToken(flagToken, cfg)
	creds.Token = token
	return creds, err
}

// ResolveToken is Resolve for commands that need no project.
func ResolveToken(flagToken string, cfg *Config) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}
	if token := os.Getenv(TokenEnv); token != "" {
		return token, nil
	}
	if cfg != nil && cfg.Token != "" {
		return cfg.Token, nil
	}
	return "", &MissingError{Key: "token"}
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "token":
		return c.Token, nil
	case "project":
		return c.Project, nil
	case "color":
		return c.Color, nil
	}
	return "", unknownKey(key)
}

// Set stores value under key.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "token":
		c.Token = value
	case "project":
		c.Project = value
	case "color":
		switch value {
		case "auto", "always", "never":
			c.Color = value
		default:
			return fmt.Errorf("invalid color %q (want auto, always or never)", value)
		}
	default:
		return unknownKey(key)
	}
	return nil
}

// Unset clears key.
func (c *Config) Unset(key string) error {
	if _, err := c.Get(key); err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "token":
		c.Token = ""
	case "project":
		c.Project = ""
	case "color":
		c.Color = ""
	}
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
}
