package command

import (
	"context"
	"fmt"
	"io"

	"github.com/amimof/huego"
	"github.com/urfave/cli/v2"

	"huectl/internal/hue"
)

type groupClient interface {
	Groups(ctx context.Context) ([]huego.Group, error)
	Group(ctx context.Context, id int) (*huego.Group, error)
	SetGroupState(ctx context.Context, id int, m *hue.GroupState) ([]string, error)
	SetGroupAttributes(ctx context.Context, id int, m *hue.GroupAttributes) ([]string, error)
	CreateGroup(ctx context.Context, g huego.Group) (string, error)
	DeleteGroup(ctx context.Context, id int) error
}

func groupCommand() *cli.Command {
	return &cli.Command{
		Name:  "group",
		Usage: "Modify, print, create or delete groups",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the state and attributes of a group, or of all groups",
				ArgsUsage: "[id]",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return getGroup(ctx, c.App.Writer, client, c.Args().First())
				},
			},
			{
				Name:      "set",
				Usage:     "Modify the state and attributes of a group",
				ArgsUsage: "<id>",
				Flags: append(stateFlags(),
					&cli.StringFlag{Name: "scene", Usage: "Recall a scene on the group"},
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Rename the group"},
					&cli.StringSliceFlag{Name: "light", Aliases: []string{"l"}, Usage: "Light id to include (repeatable)"},
					&cli.StringFlag{Name: "class", Usage: "Room class of the group"},
				),
				Action: func(c *cli.Context) error {
					req := groupSetRequest{
						stateRequest: stateRequestFromContext(c),
						Scene:        c.String("scene"),
						Name:         c.String("name"),
						Lights:       c.StringSlice("light"),
						Class:        c.String("class"),
					}
					id, err := parseID("group", c.Args().First())
					if err != nil {
						return err
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return setGroup(ctx, c.App.Writer, client, id, req)
				},
			},
			{
				Name:  "create",
				Usage: "Create a group",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Name of the group", Required: true},
					&cli.StringSliceFlag{Name: "light", Aliases: []string{"l"}, Usage: "Light id to include (repeatable)"},
					&cli.StringFlag{Name: "type", Usage: "Type of the group (LightGroup, Room, ...)"},
					&cli.StringFlag{Name: "class", Usage: "Room class of the group"},
				},
				Action: func(c *cli.Context) error {
					group := huego.Group{
						Name:   c.String("name"),
						Lights: c.StringSlice("light"),
						Type:   c.String("type"),
						Class:  c.String("class"),
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return createGroup(ctx, c.App.Writer, client, group)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a group",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return deleteGroup(ctx, c.App.Writer, client, c.Args().First())
				},
			},
		},
	}
}

type groupSetRequest struct {
	stateRequest
	Scene  string
	Name   string
	Lights []string
	Class  string
}

func (r groupSetRequest) stateModifier() (*hue.GroupState, error) {
	var m hue.GroupState
	if err := r.apply(&m.LightState); err != nil {
		return nil, err
	}
	if r.Scene != "" {
		m.Scene(r.Scene)
	}
	return &m, nil
}

func (r groupSetRequest) attributeModifier() *hue.GroupAttributes {
	var m hue.GroupAttributes
	if r.Name != "" {
		m.Name(r.Name)
	}
	if len(r.Lights) > 0 {
		m.Lights(r.Lights)
	}
	if r.Class != "" {
		m.Class(r.Class)
	}
	return &m
}

func getGroup(ctx context.Context, w io.Writer, client groupClient, id string) error {
	if id == "" {
		groups, err := client.Groups(ctx)
		if err != nil {
			return fmt.Errorf("failed to get groups: %w", err)
		}
		return printJSON(w, groups)
	}

	num, err := parseID("group", id)
	if err != nil {
		return err
	}
	group, err := client.Group(ctx, num)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}
	return printJSON(w, group)
}

func setGroup(ctx context.Context, w io.Writer, client groupClient, id int, req groupSetRequest) error {
	state, err := req.stateModifier()
	if err != nil {
		return err
	}

	if !state.Empty() {
		lines, err := client.SetGroupState(ctx, id, state)
		if err != nil {
			return fmt.Errorf("failed to set group state: %w", err)
		}
		printLines(w, lines)
	}

	if attrs := req.attributeModifier(); !attrs.Empty() {
		lines, err := client.SetGroupAttributes(ctx, id, attrs)
		if err != nil {
			return fmt.Errorf("failed to set group attributes: %w", err)
		}
		printLines(w, lines)
	}
	return nil
}

func createGroup(ctx context.Context, w io.Writer, client groupClient, group huego.Group) error {
	id, err := client.CreateGroup(ctx, group)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	fmt.Fprintf(w, "Created group %s\n", id)
	return nil
}

func deleteGroup(ctx context.Context, w io.Writer, client groupClient, id string) error {
	num, err := parseID("group", id)
	if err != nil {
		return err
	}
	if err := client.DeleteGroup(ctx, num); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	fmt.Fprintf(w, "Deleted group %s\n", id)
	return nil
}
