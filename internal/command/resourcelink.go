package command

import (
	"context"
	"fmt"
	"io"

	"github.com/amimof/huego"
	"github.com/urfave/cli/v2"

	"huectl/internal/hue"
)

type resourcelinkClient interface {
	Resourcelinks(ctx context.Context) ([]huego.Resourcelink, error)
	Resourcelink(ctx context.Context, id int) (*huego.Resourcelink, error)
	SetResourcelink(ctx context.Context, id int, m *hue.ResourcelinkModifier) ([]string, error)
	CreateResourcelink(ctx context.Context, r *huego.Resourcelink) (string, error)
	DeleteResourcelink(ctx context.Context, id int) error
}

func resourcelinkCommand() *cli.Command {
	return &cli.Command{
		Name:  "resourcelink",
		Usage: "Modify, print, create or delete resourcelinks",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the attributes of a resourcelink, or of all resourcelinks",
				ArgsUsage: "[id]",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return getResourcelink(ctx, c.App.Writer, client, c.Args().First())
				},
			},
			{
				Name:      "set",
				Usage:     "Modify the attributes of a resourcelink",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Rename the resourcelink"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Description of the resourcelink"},
					&cli.StringFlag{Name: "type", Usage: "Type of the resourcelink"},
					&cli.IntFlag{Name: "class-id", Usage: "Class identifier of the resourcelink"},
					&cli.StringFlag{Name: "owner", Usage: "Owner of the resourcelink"},
					&cli.StringSliceFlag{Name: "link", Aliases: []string{"l"}, Usage: "Bridge-relative resource path to link (repeatable)"},
				},
				Action: func(c *cli.Context) error {
					req := resourcelinkSetRequest{
						Name:        c.String("name"),
						Description: c.String("description"),
						Type:        c.String("type"),
						ClassID:     c.Int("class-id"),
						HasClassID:  c.IsSet("class-id"),
						Owner:       c.String("owner"),
						Links:       c.StringSlice("link"),
					}
					id, err := parseID("resourcelink", c.Args().First())
					if err != nil {
						return err
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return setResourcelink(ctx, c.App.Writer, client, id, req)
				},
			},
			{
				Name:  "create",
				Usage: "Create a resourcelink",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Name of the resourcelink", Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Description of the resourcelink"},
					&cli.StringFlag{Name: "type", Usage: "Type of the resourcelink", Value: "Link"},
					&cli.IntFlag{Name: "class-id", Usage: "Class identifier of the resourcelink", Required: true},
					&cli.StringFlag{Name: "owner", Usage: "Owner of the resourcelink"},
					&cli.StringSliceFlag{Name: "link", Aliases: []string{"l"}, Usage: "Bridge-relative resource path to link (repeatable)"},
				},
				Action: func(c *cli.Context) error {
					link := huego.Resourcelink{
						Name:        c.String("name"),
						Description: c.String("description"),
						Type:        c.String("type"),
						ClassID:     uint16(c.Int("class-id")),
						Owner:       c.String("owner"),
						Links:       c.StringSlice("link"),
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return createResourcelink(ctx, c.App.Writer, client, &link)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a resourcelink",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return deleteResourcelink(ctx, c.App.Writer, client, c.Args().First())
				},
			},
		},
	}
}

type resourcelinkSetRequest struct {
	Name        string
	Description string
	Type        string
	ClassID     int
	HasClassID  bool
	Owner       string
	Links       []string
}

func (r resourcelinkSetRequest) modifier() *hue.ResourcelinkModifier {
	var m hue.ResourcelinkModifier
	if r.Name != "" {
		m.Name(r.Name)
	}
	if r.Description != "" {
		m.Description(r.Description)
	}
	if r.Type != "" {
		m.Type(r.Type)
	}
	if r.HasClassID {
		m.ClassID(uint16(r.ClassID))
	}
	if r.Owner != "" {
		m.Owner(r.Owner)
	}
	if len(r.Links) > 0 {
		m.Links(r.Links)
	}
	return &m
}

func getResourcelink(ctx context.Context, w io.Writer, client resourcelinkClient, id string) error {
	if id == "" {
		links, err := client.Resourcelinks(ctx)
		if err != nil {
			return fmt.Errorf("failed to get resourcelinks: %w", err)
		}
		return printJSON(w, links)
	}

	num, err := parseID("resourcelink", id)
	if err != nil {
		return err
	}
	link, err := client.Resourcelink(ctx, num)
	if err != nil {
		return fmt.Errorf("failed to get resourcelink: %w", err)
	}
	return printJSON(w, link)
}

func setResourcelink(ctx context.Context, w io.Writer, client resourcelinkClient, id int, req resourcelinkSetRequest) error {
	m := req.modifier()
	if m.Empty() {
		return nil
	}

	lines, err := client.SetResourcelink(ctx, id, m)
	if err != nil {
		return fmt.Errorf("failed to set resourcelink: %w", err)
	}
	printLines(w, lines)
	return nil
}

func createResourcelink(ctx context.Context, w io.Writer, client resourcelinkClient, link *huego.Resourcelink) error {
	id, err := client.CreateResourcelink(ctx, link)
	if err != nil {
		return fmt.Errorf("failed to create resourcelink: %w", err)
	}
	fmt.Fprintf(w, "Created resourcelink %s\n", id)
	return nil
}

func deleteResourcelink(ctx context.Context, w io.Writer, client resourcelinkClient, id string) error {
	num, err := parseID("resourcelink", id)
	if err != nil {
		return err
	}
	if err := client.DeleteResourcelink(ctx, num); err != nil {
		return fmt.Errorf("failed to delete resourcelink: %w", err)
	}
	fmt.Fprintf(w, "Deleted resourcelink %s\n", id)
	return nil
}
