// Package config loads cardtrick settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/cardtrick/internal/progress"
	"github.com/lox/cardtrick/trick"
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "cardtrick.hcl"

// Config is the complete file layout. Every block is optional.
type Config struct {
	LogLevel  string             `hcl:"log_level,optional"`
	Verify    *VerifySettings    `hcl:"verify,block"`
	Magician  *MagicianSettings  `hcl:"magician,block"`
	Assistant *AssistantSettings `hcl:"assistant,block"`
}

// VerifySettings configures the verify command
type VerifySettings struct {
	Strategy string `hcl:"strategy,optional"`
	Workers  int    `hcl:"workers,optional"`
	Progress string `hcl:"progress,optional"`
	Interval string `hcl:"interval,optional"`
}

// MagicianSettings configures the serve command
type MagicianSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// AssistantSettings configures the perform command
type AssistantSettings struct {
	URL      string `hcl:"url,optional"`
	Strategy string `hcl:"strategy,optional"`
	Timeout  string `hcl:"timeout,optional"`
	Hands    int    `hcl:"hands,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Verify: &VerifySettings{
			Strategy: trick.Default.Name(),
			Progress: progress.ModeBar,
			Interval: "1s",
		},
		Magician: &MagicianSettings{
			Address:  "localhost",
			Port:     8080,
			Strategy: trick.Default.Name(),
		},
		Assistant: &AssistantSettings{
			URL:      "ws://localhost:8080/ws",
			Strategy: trick.Default.Name(),
			Timeout:  "5s",
			Hands:    10,
		},
	}
}

// Load reads filename. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}

	if c.Verify == nil {
		c.Verify = def.Verify
	}
	if c.Verify.Strategy == "" {
		c.Verify.Strategy = def.Verify.Strategy
	}
	if c.Verify.Progress == "" {
		c.Verify.Progress = def.Verify.Progress
	}
	if c.Verify.Interval == "" {
		c.Verify.Interval = def.Verify.Interval
	}

	if c.Magician == nil {
		c.Magician = def.Magician
	}
	if c.Magician.Address == "" {
		c.Magician.Address = def.Magician.Address
	}
	if c.Magician.Port == 0 {
		c.Magician.Port = def.Magician.Port
	}
	if c.Magician.Strategy == "" {
		c.Magician.Strategy = def.Magician.Strategy
	}

	if c.Assistant == nil {
		c.Assistant = def.Assistant
	}
	if c.Assistant.URL == "" {
		c.Assistant.URL = def.Assistant.URL
	}
	if c.Assistant.Strategy == "" {
		c.Assistant.Strategy = def.Assistant.Strategy
	}
	if c.Assistant.Timeout == "" {
		c.Assistant.Timeout = def.Assistant.Timeout
	}
	if c.Assistant.Hands == 0 {
		c.Assistant.Hands = def.Assistant.Hands
	}
}

// Validate checks every value that the commands would otherwise reject
// later.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	if _, err := trick.Lookup(c.Verify.Strategy); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if c.Verify.Workers < 0 {
		return fmt.Errorf("verify: workers must not be negative: %d", c.Verify.Workers)
	}
	if !slices.Contains(progress.Modes(), c.Verify.Progress) {
		return fmt.Errorf("verify: unknown progress mode %q", c.Verify.Progress)
	}
	if _, err := c.Verify.IntervalDuration(); err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	if c.Magician.Port < 1 || c.Magician.Port > 65535 {
		return fmt.Errorf("magician: invalid port: %d", c.Magician.Port)
	}
	if _, err := trick.Lookup(c.Magician.Strategy); err != nil {
		return fmt.Errorf("magician: %w", err)
	}

	u, err := url.Parse(c.Assistant.URL)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return fmt.Errorf("assistant: url must be a ws:// or wss:// address: %q", c.Assistant.URL)
	}
	if _, err := trick.Lookup(c.Assistant.Strategy); err != nil {
		return fmt.Errorf("assistant: %w", err)
	}
	if _, err := c.Assistant.TimeoutDuration(); err != nil {
		return fmt.Errorf("assistant: %w", err)
	}
	if c.Assistant.Hands < 1 {
		return fmt.Errorf("assistant: hands must be positive: %d", c.Assistant.Hands)
	}
	return nil
}

// IntervalDuration parses Interval.
func (v *VerifySettings) IntervalDuration() (time.Duration, error) {
	return positiveDuration("interval", v.Interval)
}

// TimeoutDuration parses Timeout.
func (a *AssistantSettings) TimeoutDuration() (time.Duration, error) {
	return positiveDuration("timeout", a.Timeout)
}

func positiveDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive: %s", name, s)
	}
	return d, nil
}

// ListenAddress returns host:port for the magician server.
func (m *MagicianSettings) ListenAddress() string {
	return fmt.Sprintf("%s:%d", m.Address, m.Port)
}
