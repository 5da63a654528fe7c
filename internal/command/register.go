package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"huectl/internal/config"
	"huectl/internal/hue"
)

// Registrar creates a whitelist user on the bridge at ip and returns the
// generated username.
type Registrar func(ctx context.Context, ip, deviceType string) (string, error)

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:      "register",
		Usage:     "Register a new user on a bridge (press the link button first)",
		ArgsUsage: "[ip]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "set-env", Aliases: []string{"e"}, Usage: "Set environment variables in the current process instead of printing them"},
			&cli.BoolFlag{Name: "save", Usage: "Write the bridge IP and username to the config file"},
		},
		Action: func(c *cli.Context) error {
			path, err := configPath(c)
			if err != nil {
				return err
			}
			req := registerRequest{
				IP:         c.Args().First(),
				SetEnv:     c.Bool("set-env"),
				Save:       c.Bool("save"),
				ConfigPath: path,
			}
			ctx, cancel := operationContext(c)
			defer cancel()
			return registerUser(ctx, c.App.Writer, hue.DiscoverBridges, hue.RegisterUser, req)
		},
	}
}

type registerRequest struct {
	IP         string
	SetEnv     bool
	Save       bool
	ConfigPath string
}

// registerUser registers on the given bridge, or on the first discovered one
// when no IP was passed.
func registerUser(ctx context.Context, w io.Writer, discover Discoverer, register Registrar, req registerRequest) error {
	ip := req.IP
	if ip == "" {
		bridges, err := discover(ctx)
		if err != nil {
			return fmt.Errorf("failed to discover bridges: %w", err)
		}
		if len(bridges) == 0 {
			return errors.New("no bridges were found")
		}
		ip = bridges[0].Host
	}

	username, err := register(ctx, ip, deviceType)
	if err != nil {
		return fmt.Errorf("failed to register user on bridge %q: %w", ip, err)
	}

	if req.Save {
		cfg := &config.Config{BridgeIP: ip, Username: username}
		if err := cfg.Save(req.ConfigPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logrus.WithField("path", req.ConfigPath).Debug("Saved bridge credentials")
	}

	if req.SetEnv {
		// Only visible to this process and its children; kept for parity
		// with the environment-variable configuration channel.
		os.Setenv(config.EnvBridgeIP, ip)
		os.Setenv(config.EnvBridgeUsername, username)
		return nil
	}

	fmt.Fprintf(w, "%s=%s\n", config.EnvBridgeIP, ip)
	fmt.Fprintf(w, "%s=%s\n", config.EnvBridgeUsername, username)
	return nil
}
