// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     config
// Description: Application configuration with TOML/YAML loading and discovery
// Author:      Mike Stoffels
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	Auth    AuthConfig    `toml:"auth" yaml:"auth"`
	Deploy  DeployConfig  `toml:"deploy" yaml:"deploy"`
	Audit   AuditConfig   `toml:"audit" yaml:"audit"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// ServerConfig holds PaperCut application server settings
type ServerConfig struct {
	Host    string   `toml:"host" yaml:"host"`
	Port    int      `toml:"port" yaml:"port"`
	UseTLS  bool     `toml:"use_tls" yaml:"use_tls"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// AuthConfig holds the web services auth token
type AuthConfig struct {
	Token string `toml:"token" yaml:"token"`
}

// DeployConfig holds Mobility Print client deployment settings
type DeployConfig struct {
	PackageURL     string   `toml:"package_url" yaml:"package_url"`
	InstallPath    string   `toml:"install_path" yaml:"install_path"`
	ServiceName    string   `toml:"service_name" yaml:"service_name"`
	QueueMatch     string   `toml:"queue_match" yaml:"queue_match"`
	PollInterval   Duration `toml:"poll_interval" yaml:"poll_interval"`
	InstallTimeout Duration `toml:"install_timeout" yaml:"install_timeout"`
	ServiceTimeout Duration `toml:"service_timeout" yaml:"service_timeout"`
	QueueTimeout   Duration `toml:"queue_timeout" yaml:"queue_timeout"`
	KeepPackage    bool     `toml:"keep_package" yaml:"keep_package"`
}

// AuditConfig holds the deployment audit trail settings.
// An empty Path disables the audit trail.
type AuditConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// Duration wraps time.Duration for human-readable config values ("60s", "5m")
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler (used by TOML)
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler (yaml.v3 does not use TextUnmarshaler)
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration defaults
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file; the format is chosen by extension
// (.toml, .yaml, .yml). Defaults are applied for missing values and
// environment variables in sensitive fields are expanded.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Discover looks for a config file in the standard locations. The MPC_CONFIG
// environment variable wins; otherwise the first existing candidate is
// loaded. When nothing is found the built-in defaults are returned.
func Discover() (*Config, error) {
	if path := os.Getenv("MPC_CONFIG"); path != "" {
		return Load(path)
	}

	candidates := []string{
		"./configs/mpc.toml",
		"./mpc.toml",
		"./configs/mpc.yaml",
		"./mpc.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/mpc/mpc.toml"),
		filepath.Join(os.Getenv("HOME"), ".config/mpc/mpc.yaml"),
	}

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return Load(p)
		}
	}

	return Default(), nil
}

// applyDefaults fills in defaults for all unset values
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Port == 0 {
		if c.Server.UseTLS {
			c.Server.Port = 9192
		} else {
			c.Server.Port = 9191
		}
	}
	if c.Server.Timeout.Duration == 0 {
		c.Server.Timeout.Duration = 60 * time.Second
	}

	if c.Deploy.PackageURL == "" {
		c.Deploy.PackageURL = "https://cdn.papercut.com/files/mobility-print/latest/pc-mobility-print-printer-setup.exe"
	}
	if c.Deploy.InstallPath == "" {
		c.Deploy.InstallPath = `C:\Program Files (x86)\PaperCut Mobility Print Client\pc-mobility-print-client.exe`
	}
	if c.Deploy.ServiceName == "" {
		c.Deploy.ServiceName = "PaperCutMobilityPrintClient"
	}
	if c.Deploy.QueueMatch == "" {
		c.Deploy.QueueMatch = "Mobility"
	}
	if c.Deploy.PollInterval.Duration == 0 {
		c.Deploy.PollInterval.Duration = 5 * time.Second
	}
	if c.Deploy.InstallTimeout.Duration == 0 {
		c.Deploy.InstallTimeout.Duration = 10 * time.Minute
	}
	if c.Deploy.ServiceTimeout.Duration == 0 {
		c.Deploy.ServiceTimeout.Duration = 5 * time.Minute
	}
	if c.Deploy.QueueTimeout.Duration == 0 {
		c.Deploy.QueueTimeout.Duration = 10 * time.Minute
	}
}

// expandEnvVars expands ${VAR} references in sensitive fields so tokens
// can be kept out of config files
func (c *Config) expandEnvVars() {
	c.Auth.Token = os.ExpandEnv(c.Auth.Token)
	c.Audit.Path = os.ExpandEnv(c.Audit.Path)
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server.host must not be empty")
	}
	if c.Deploy.PollInterval.Duration <= 0 {
		return fmt.Errorf("deploy.poll_interval must be positive")
	}
	switch c.General.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("general.log_format %q not supported", c.General.LogFormat)
	}
	return nil
}
