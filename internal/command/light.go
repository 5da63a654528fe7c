package command

import (
	"context"
	"fmt"
	"io"

	"github.com/amimof/huego"
	"github.com/urfave/cli/v2"

	"huectl/internal/hue"
	"huectl/internal/output"
)

type lightClient interface {
	Lights(ctx context.Context) ([]huego.Light, error)
	Light(ctx context.Context, id int) (*huego.Light, error)
	SetLightState(ctx context.Context, id int, m *hue.LightState) ([]string, error)
	SetLightAttributes(ctx context.Context, id int, m *hue.LightAttributes) ([]string, error)
	DeleteLight(ctx context.Context, id int) error
	SearchLights(ctx context.Context) error
	NewLights(ctx context.Context) (*huego.NewLight, error)
}

func lightCommand() *cli.Command {
	return &cli.Command{
		Name:  "light",
		Usage: "Modify, print, search or delete lights",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the state and attributes of a light, or of all lights",
				ArgsUsage: "[id]",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return getLight(ctx, c.App.Writer, client, c.Args().First())
				},
			},
			{
				Name:      "set",
				Usage:     "Modify the state and attributes of a light",
				ArgsUsage: "<id>",
				Flags: append(stateFlags(),
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Rename the light"},
				),
				Action: func(c *cli.Context) error {
					req := lightSetRequest{
						stateRequest: stateRequestFromContext(c),
						Name:         c.String("name"),
					}
					id, err := parseID("light", c.Args().First())
					if err != nil {
						return err
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return setLight(ctx, c.App.Writer, client, id, req)
				},
			},
			{
				Name:  "search",
				Usage: "Search for new lights",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "get", Aliases: []string{"g"}, Usage: "Print the lights discovered by the last search"},
				},
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return searchLights(ctx, c.App.Writer, client, c.Bool("get"))
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a light",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return deleteLight(ctx, c.App.Writer, client, c.Args().First())
				},
			},
		},
	}
}

type lightSetRequest struct {
	stateRequest
	Name string
}

func (r lightSetRequest) attributeModifier() *hue.LightAttributes {
	var m hue.LightAttributes
	if r.Name != "" {
		m.Name(r.Name)
	}
	return &m
}

func getLight(ctx context.Context, w io.Writer, client lightClient, id string) error {
	if id == "" {
		lights, err := client.Lights(ctx)
		if err != nil {
			return fmt.Errorf("failed to get lights: %w", err)
		}
		return printJSON(w, lights)
	}

	num, err := parseID("light", id)
	if err != nil {
		return err
	}
	light, err := client.Light(ctx, num)
	if err != nil {
		return fmt.Errorf("failed to get light: %w", err)
	}
	return printJSON(w, light)
}

// setLight sends the state and attribute modifiers as separate calls, each
// skipped when empty. The bridge answers one line per changed field.
func setLight(ctx context.Context, w io.Writer, client lightClient, id int, req lightSetRequest) error {
	var state hue.LightState
	if err := req.apply(&state); err != nil {
		return err
	}

	if !state.Empty() {
		lines, err := client.SetLightState(ctx, id, &state)
		if err != nil {
			return fmt.Errorf("failed to set light state: %w", err)
		}
		printLines(w, lines)
	}

	if attrs := req.attributeModifier(); !attrs.Empty() {
		lines, err := client.SetLightAttributes(ctx, id, attrs)
		if err != nil {
			return fmt.Errorf("failed to set light attributes: %w", err)
		}
		printLines(w, lines)
	}
	return nil
}

func searchLights(ctx context.Context, w io.Writer, client lightClient, get bool) error {
	if get {
		lights, err := client.NewLights(ctx)
		if err != nil {
			return fmt.Errorf("failed to get new lights: %w", err)
		}
		return printJSON(w, lights)
	}

	if err := client.SearchLights(ctx); err != nil {
		return fmt.Errorf("failed to search for new lights: %w", err)
	}
	fmt.Fprintln(w, "Searching for new lights...")
	return nil
}

func deleteLight(ctx context.Context, w io.Writer, client lightClient, id string) error {
	num, err := parseID("light", id)
	if err != nil {
		return err
	}
	if err := client.DeleteLight(ctx, num); err != nil {
		return fmt.Errorf("failed to delete light: %w", err)
	}
	fmt.Fprintf(w, "Deleted light %s\n", id)
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	s, err := output.JSON(v)
	if err != nil {
		return fmt.Errorf("failed to serialize response: %w", err)
	}
	fmt.Fprintln(w, s)
	return nil
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
