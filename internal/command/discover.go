package command

import (
	"context"
	"fmt"
	"io"

	"github.com/amimof/huego"
	"github.com/urfave/cli/v2"

	"huectl/internal/hue"
)

// Discoverer finds bridges on the local network.
type Discoverer func(ctx context.Context) ([]huego.Bridge, error)

func discoverCommand() *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "Discover bridges in the local network",
		Action: func(c *cli.Context) error {
			ctx, cancel := operationContext(c)
			defer cancel()
			return discoverBridges(ctx, c.App.Writer, hue.DiscoverBridges)
		},
	}
}

// discoverBridges prints one IP address per discovered bridge. Zero results
// print nothing and succeed.
func discoverBridges(ctx context.Context, w io.Writer, discover Discoverer) error {
	bridges, err := discover(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover bridges: %w", err)
	}
	for _, b := range bridges {
		fmt.Fprintln(w, b.Host)
	}
	return nil
}
