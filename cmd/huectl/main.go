package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"huectl/internal/command"
	"huectl/internal/config"
)

var logLevel string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Name:  "huectl",
		Usage: "Control a Hue bridge from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bridge",
				Usage:   "IP address of the bridge",
				EnvVars: []string{config.EnvBridgeIP},
			},
			&cli.StringFlag{
				Name:    "username",
				Usage:   "Username registered on the bridge",
				EnvVars: []string{config.EnvBridgeUsername},
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the config file",
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Level of logging",
				Value:       "info",
				Destination: &logLevel,
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "Timeout in seconds for operations",
				Value: 10,
			},
		},

		Before: func(c *cli.Context) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},

		Commands: command.Commands(),
	}

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		if err == context.Canceled {
			logrus.Info("Interrupted")
			return
		}
		logrus.Fatal(err)
	}
}
