// Package command implements the huectl command tree. Each resource type gets
// one file owning its get/set/create/delete/search handlers. Handlers are
// plain functions over narrow client interfaces so tests can drive them with
// fakes.
package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"huectl/internal/config"
	"huectl/internal/hue"
)

// deviceType is the client identifier sent to the bridge during registration.
const deviceType = "huectl"

// Commands returns the full top-level command list.
func Commands() []*cli.Command {
	return []*cli.Command{
		discoverCommand(),
		registerCommand(),
		configCommand(),
		lightCommand(),
		groupCommand(),
		resourcelinkCommand(),
		ruleCommand(),
		sceneCommand(),
		scheduleCommand(),
		sensorCommand(),
	}
}

// configPath returns the config file location for this invocation.
func configPath(c *cli.Context) (string, error) {
	if path := c.String("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// loadConfig resolves the bridge settings: flags beat environment beats file.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path, err := configPath(c)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v := c.String("bridge"); v != "" {
		cfg.BridgeIP = v
	}
	if v := c.String("username"); v != "" {
		cfg.Username = v
	}
	return cfg, nil
}

// resolveClient builds the bridge client for this invocation.
func resolveClient(c *cli.Context) (*hue.Client, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.WithField("bridge", cfg.BridgeIP).Debug("Using bridge")
	return hue.NewClient(cfg.BridgeIP, cfg.Username, operationTimeout(c)), nil
}

func operationTimeout(c *cli.Context) time.Duration {
	return time.Duration(c.Int("timeout")) * time.Second
}

// operationContext derives the deadline-bound context every network call runs
// under.
func operationContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context, operationTimeout(c))
}

// parseID converts the opaque id argument into the numeric identifier the
// bridge uses for most resource types.
func parseID(kind, raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q: must be a number", kind, raw)
	}
	return id, nil
}
