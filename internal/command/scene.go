package command

import (
	"context"
	"fmt"
	"io"

	"github.com/amimof/huego"
	"github.com/urfave/cli/v2"

	"huectl/internal/hue"
)

type sceneClient interface {
	Scenes(ctx context.Context) ([]huego.Scene, error)
	Scene(ctx context.Context, id string) (*huego.Scene, error)
	SetScene(ctx context.Context, id string, m *hue.SceneModifier) ([]string, error)
	CreateScene(ctx context.Context, s *huego.Scene) (string, error)
	DeleteScene(ctx context.Context, id string) error
}

func sceneCommand() *cli.Command {
	return &cli.Command{
		Name:  "scene",
		Usage: "Modify, print, create or delete scenes",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the attributes of a scene, or of all scenes",
				ArgsUsage: "[id]",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return getScene(ctx, c.App.Writer, client, c.Args().First())
				},
			},
			{
				Name:      "set",
				Usage:     "Modify the attributes of a scene",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Rename the scene"},
					&cli.StringSliceFlag{Name: "light", Aliases: []string{"l"}, Usage: "Light id to include (repeatable)"},
					&cli.BoolFlag{Name: "store-light-state", Usage: "Store the current light state in the scene"},
				},
				Action: func(c *cli.Context) error {
					req := sceneSetRequest{
						Name:               c.String("name"),
						Lights:             c.StringSlice("light"),
						StoreLightState:    c.Bool("store-light-state"),
						HasStoreLightState: c.IsSet("store-light-state"),
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return setScene(ctx, c.App.Writer, client, c.Args().First(), req)
				},
			},
			{
				Name:  "create",
				Usage: "Create a scene",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Name of the scene", Required: true},
					&cli.StringSliceFlag{Name: "light", Aliases: []string{"l"}, Usage: "Light id to include (repeatable)"},
					&cli.StringFlag{Name: "group", Usage: "Group id for a GroupScene"},
					&cli.StringFlag{Name: "type", Usage: "Type of the scene (LightScene or GroupScene)"},
					&cli.BoolFlag{Name: "recycle", Usage: "Let the bridge delete the scene when space runs out"},
				},
				Action: func(c *cli.Context) error {
					scene := huego.Scene{
						Name:    c.String("name"),
						Lights:  c.StringSlice("light"),
						Group:   c.String("group"),
						Type:    c.String("type"),
						Recycle: c.Bool("recycle"),
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return createScene(ctx, c.App.Writer, client, &scene)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a scene",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return deleteScene(ctx, c.App.Writer, client, c.Args().First())
				},
			},
		},
	}
}

type sceneSetRequest struct {
	Name               string
	Lights             []string
	StoreLightState    bool
	HasStoreLightState bool
}

func (r sceneSetRequest) modifier() *hue.SceneModifier {
	var m hue.SceneModifier
	if r.Name != "" {
		m.Name(r.Name)
	}
	if len(r.Lights) > 0 {
		m.Lights(r.Lights)
	}
	if r.HasStoreLightState {
		m.StoreLightState(r.StoreLightState)
	}
	return &m
}

func getScene(ctx context.Context, w io.Writer, client sceneClient, id string) error {
	if id == "" {
		scenes, err := client.Scenes(ctx)
		if err != nil {
			return fmt.Errorf("failed to get scenes: %w", err)
		}
		return printJSON(w, scenes)
	}

	scene, err := client.Scene(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get scene: %w", err)
	}
	return printJSON(w, scene)
}

func setScene(ctx context.Context, w io.Writer, client sceneClient, id string, req sceneSetRequest) error {
	m := req.modifier()
	if m.Empty() {
		return nil
	}

	lines, err := client.SetScene(ctx, id, m)
	if err != nil {
		return fmt.Errorf("failed to set scene: %w", err)
	}
	printLines(w, lines)
	return nil
}

func createScene(ctx context.Context, w io.Writer, client sceneClient, scene *huego.Scene) error {
	id, err := client.CreateScene(ctx, scene)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	fmt.Fprintf(w, "Created scene %s\n", id)
	return nil
}

func deleteScene(ctx context.Context, w io.Writer, client sceneClient, id string) error {
	if err := client.DeleteScene(ctx, id); err != nil {
		return fmt.Errorf("failed to delete scene: %w", err)
	}
	fmt.Fprintf(w, "Deleted scene %s\n", id)
	return nil
}
