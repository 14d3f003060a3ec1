package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
	DeckFile    string `hcl:"deck_file,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:     "localhost",
			Port:        8080,
			LogLevel:    "info",
			IdleTimeout: "5m",
		},
	}
}

// LoadServerConfig loads server configuration from HCL file
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultServerConfig().Server
	if config.Server.Address == "" {
		config.Server.Address = defaults.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.LogLevel
	}
	if config.Server.IdleTimeout == "" {
		config.Server.IdleTimeout = defaults.IdleTimeout
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Server.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if _, err := c.IdleDuration(); err != nil {
		return err
	}
	return nil
}

// IdleDuration parses the idle timeout
func (c *ServerConfig) IdleDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid idle timeout %q: %w", c.Server.IdleTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("idle timeout must be positive: %s", c.Server.IdleTimeout)
	}
	return d, nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
