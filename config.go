package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"gofeeder/button"
	"gofeeder/indicator"
	"gofeeder/mqtt"
	"gofeeder/pulse"
	"gofeeder/server"
	"gofeeder/servo"
	"gofeeder/source"
)

// Config is the main configuration structure for gofeeder.
type Config struct {
	// Command listener settings
	Server server.Config `yaml:"server"`

	// Pulse generator backend
	Pulse pulse.Config `yaml:"pulse"`

	// Servo calibration
	Servo servo.Config `yaml:"servo"`

	// MQTT broker settings (empty host = standalone)
	MQTT mqtt.Config `yaml:"mqtt"`

	// Status LED configuration
	Indicator indicator.Config `yaml:"indicator"`

	// Physical feed button configuration
	Button button.Config `yaml:"button"`

	// Auxiliary command source (serial console, keypad)
	Source source.Config `yaml:"source"`

	// General settings
	ClientID       string `yaml:"client_id"`
	ResetDelayMs   int    `yaml:"reset_delay_ms"`   // hold time before auto home
	LinkWaitSecs   int    `yaml:"link_wait_secs"`   // bounded wait for an address
	DefaultCommand string `yaml:"default_command"`  // digit issued by the feed button
}

// LoadConfig reads the yaml config file and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ClientID == "" {
		c.ClientID = "gofeeder"
	}
	if c.ResetDelayMs == 0 {
		c.ResetDelayMs = 1000
	}
	if c.LinkWaitSecs == 0 {
		c.LinkWaitSecs = 30
	}
	if c.DefaultCommand == "" {
		c.DefaultCommand = "5"
	}
}

func (c *Config) validate() error {
	if len(c.DefaultCommand) != 1 || !source.IsCommand(c.DefaultCommand[0]) {
		return fmt.Errorf("default_command %q is not a digit '0'-'9'", c.DefaultCommand)
	}
	return nil
}

// ResetDelay returns the auto-home hold time.
func (c *Config) ResetDelay() time.Duration {
	return time.Duration(c.ResetDelayMs) * time.Millisecond
}

// LinkWait returns the bounded link bring-up wait.
func (c *Config) LinkWait() time.Duration {
	return time.Duration(c.LinkWaitSecs) * time.Second
}

// DefaultCommandByte returns the feed button's command digit.
func (c *Config) DefaultCommandByte() byte {
	return c.DefaultCommand[0]
}
