package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/lox/acquire/cmd/acquire/shared"
	"github.com/lox/acquire/internal/server"
)

// ServerCmd hosts one game over WebSockets.
type ServerCmd struct {
	Config   string `kong:"default='acquire.hcl',help='Path to HCL config file'"`
	Addr     string `kong:"help='Listen address, overrides the config file'"`
	Players  int    `kong:"help='Seats to fill before starting, overrides the config file'"`
	Seed     int64  `kong:"help='Deterministic shuffle seed (optional)'"`
	LogLevel string `kong:"default='',help='Log level, overrides the config file'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		host, port, err := splitAddr(c.Addr)
		if err != nil {
			return err
		}
		cfg.Server.Address = host
		cfg.Server.Port = port
	}
	if c.Players != 0 {
		cfg.Games[0].Players = c.Players
	}
	if c.Seed != 0 {
		cfg.Games[0].Seed = c.Seed
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel)
	ctx := shared.SetupSignalHandler(logger)

	s := server.NewServer(cfg, logger)
	return s.Run(ctx)
}

func splitAddr(addr string) (host string, port int, err error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	port, err = strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	return host, port, nil
}
