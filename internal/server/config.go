package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server Settings     `hcl:"server,block"`
	Games  []GameConfig `hcl:"game,block"`
}

// Settings holds server-level configuration.
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameConfig defines one hosted game.
type GameConfig struct {
	Name    string `hcl:"name,label"`
	Players int    `hcl:"players,optional"`
	Seed    int64  `hcl:"seed,optional"`
}

// DefaultConfig returns the configuration used when no file is present: one
// two-player game on localhost.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Games: []GameConfig{
			{Name: "main", Players: 2},
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if len(config.Games) == 0 {
		config.Games = DefaultConfig().Games
	}
	for i := range config.Games {
		if config.Games[i].Players == 0 {
			config.Games[i].Players = 2
		}
	}
	return &config, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if len(c.Games) == 0 {
		return fmt.Errorf("at least one game must be configured")
	}
	for _, g := range c.Games {
		if g.Players < 2 || g.Players > 6 {
			return fmt.Errorf("game %s: players must be between 2 and 6", g.Name)
		}
	}
	return nil
}

// ListenAddress returns the host:port the server binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
