// Package config loads site settings from YAML.
//
// Config file locations (priority order):
//  1. $HEARTH_CONFIG
//  2. ./hearth.yaml
//  3. $XDG_CONFIG_HOME/hearth/config.yaml
//  4. ~/.config/hearth/config.yaml
//
// A missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/hearth/mailer"
)

// Config is the root document
type Config struct {
	Email      EmailConfig      `yaml:"email"`
	Form       FormConfig       `yaml:"form"`
	Background BackgroundConfig `yaml:"background"`
	Audio      AudioConfig      `yaml:"audio"`
	Debug      bool             `yaml:"debug"`
}

// EmailConfig identifies the EmailJS account, service and template
type EmailConfig struct {
	PublicKey  string `yaml:"public_key"`
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
	Endpoint   string `yaml:"endpoint"`
}

// FormConfig carries the contact form labels
// SendingText and SuccessMessage are optional localisation hooks; empty falls back to defaults
type FormConfig struct {
	SubmitLabel    string `yaml:"submit_label"`
	SendingText    string `yaml:"sending_text"`
	SuccessMessage string `yaml:"success_message"`
}

// BackgroundConfig tunes the animated background
type BackgroundConfig struct {
	LogoPath       string `yaml:"logo_path"`
	ReseedOnResize bool   `yaml:"reseed_on_resize"`
	Seed           int64  `yaml:"seed"`
}

// AudioConfig controls notification tones
type AudioConfig struct {
	Muted bool `yaml:"muted"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns defaults for a site without a config file
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Email.Endpoint == "" {
		c.Email.Endpoint = mailer.DefaultEndpoint
	}
	if c.Form.SubmitLabel == "" {
		c.Form.SubmitLabel = "Send Message"
	}
	if c.Background.LogoPath == "" {
		c.Background.LogoPath = "images/logo.png"
	}
}

// applyEnv lets the environment override secrets
func (c *Config) applyEnv() {
	if key := os.Getenv(EnvPublicKey); key != "" {
		c.Email.PublicKey = key
	}
}

// MailReady reports whether enough is configured to send mail
func (c *Config) MailReady() bool {
	return c.Email.PublicKey != "" && c.Email.ServiceID != "" && c.Email.TemplateID != ""
}
