package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/amimof/huego"
	"github.com/urfave/cli/v2"

	"huectl/internal/hue"
)

type scheduleClient interface {
	Schedules(ctx context.Context) ([]huego.Schedule, error)
	Schedule(ctx context.Context, id int) (*huego.Schedule, error)
	SetSchedule(ctx context.Context, id int, m *hue.ScheduleModifier) ([]string, error)
	CreateSchedule(ctx context.Context, s *huego.Schedule) (string, error)
	DeleteSchedule(ctx context.Context, id int) error
}

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Modify, print, create or delete schedules",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the attributes of a schedule, or of all schedules",
				ArgsUsage: "[id]",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return getSchedule(ctx, c.App.Writer, client, c.Args().First())
				},
			},
			{
				Name:      "set",
				Usage:     "Modify the attributes of a schedule",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Rename the schedule"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Description of the schedule"},
					&cli.StringFlag{Name: "address", Usage: "Bridge-relative address the command targets"},
					&cli.StringFlag{Name: "method", Usage: "HTTP method of the command"},
					&cli.StringFlag{Name: "body", Usage: "JSON body of the command"},
					&cli.StringFlag{Name: "local-time", Usage: "Local time pattern of the schedule"},
					&cli.StringFlag{Name: "status", Usage: "Status: enabled or disabled"},
					&cli.BoolFlag{Name: "auto-delete", Usage: "Delete the schedule after it expires"},
				},
				Action: func(c *cli.Context) error {
					req := scheduleSetRequest{
						Name:          c.String("name"),
						Description:   c.String("description"),
						Address:       c.String("address"),
						Method:        c.String("method"),
						Body:          c.String("body"),
						LocalTime:     c.String("local-time"),
						Status:        c.String("status"),
						AutoDelete:    c.Bool("auto-delete"),
						HasAutoDelete: c.IsSet("auto-delete"),
					}
					id, err := parseID("schedule", c.Args().First())
					if err != nil {
						return err
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return setSchedule(ctx, c.App.Writer, client, id, req)
				},
			},
			{
				Name:  "create",
				Usage: "Create a schedule",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Name of the schedule", Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Description of the schedule"},
					&cli.StringFlag{Name: "address", Usage: "Bridge-relative address the command targets", Required: true},
					&cli.StringFlag{Name: "method", Usage: "HTTP method of the command", Value: "PUT"},
					&cli.StringFlag{Name: "body", Usage: "JSON body of the command", Required: true},
					&cli.StringFlag{Name: "local-time", Usage: "Local time pattern of the schedule", Required: true},
					&cli.StringFlag{Name: "status", Usage: "Status: enabled or disabled"},
					&cli.BoolFlag{Name: "auto-delete", Usage: "Delete the schedule after it expires"},
				},
				Action: func(c *cli.Context) error {
					cmd, err := scheduleCommandBody(c.String("address"), c.String("method"), c.String("body"))
					if err != nil {
						return err
					}
					schedule := huego.Schedule{
						Name:        c.String("name"),
						Description: c.String("description"),
						Command:     cmd,
						LocalTime:   c.String("local-time"),
						Status:      c.String("status"),
						AutoDelete:  c.Bool("auto-delete"),
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return createSchedule(ctx, c.App.Writer, client, &schedule)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a schedule",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return deleteSchedule(ctx, c.App.Writer, client, c.Args().First())
				},
			},
		},
	}
}

type scheduleSetRequest struct {
	Name          string
	Description   string
	Address       string
	Method        string
	Body          string
	LocalTime     string
	Status        string
	AutoDelete    bool
	HasAutoDelete bool
}

func (r scheduleSetRequest) modifier() (*hue.ScheduleModifier, error) {
	var m hue.ScheduleModifier
	if r.Name != "" {
		m.Name(r.Name)
	}
	if r.Description != "" {
		m.Description(r.Description)
	}
	if r.Address != "" || r.Method != "" || r.Body != "" {
		cmd, err := scheduleCommandBody(r.Address, r.Method, r.Body)
		if err != nil {
			return nil, err
		}
		m.Command(*cmd)
	}
	if r.LocalTime != "" {
		m.LocalTime(r.LocalTime)
	}
	if r.Status != "" {
		m.Status(r.Status)
	}
	if r.HasAutoDelete {
		m.AutoDelete(r.AutoDelete)
	}
	return &m, nil
}

// scheduleCommandBody assembles the command a schedule fires. The body is
// decoded so the bridge receives a JSON object, not a quoted string.
func scheduleCommandBody(address, method, body string) (*huego.Command, error) {
	if address == "" || method == "" || body == "" {
		return nil, fmt.Errorf("a schedule command needs --address, --method and --body")
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, fmt.Errorf("invalid command body %q: %w", body, err)
	}
	return &huego.Command{Address: address, Method: method, Body: decoded}, nil
}

func getSchedule(ctx context.Context, w io.Writer, client scheduleClient, id string) error {
	if id == "" {
		schedules, err := client.Schedules(ctx)
		if err != nil {
			return fmt.Errorf("failed to get schedules: %w", err)
		}
		return printJSON(w, schedules)
	}

	num, err := parseID("schedule", id)
	if err != nil {
		return err
	}
	schedule, err := client.Schedule(ctx, num)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	return printJSON(w, schedule)
}

func setSchedule(ctx context.Context, w io.Writer, client scheduleClient, id int, req scheduleSetRequest) error {
	m, err := req.modifier()
	if err != nil {
		return err
	}
	if m.Empty() {
		return nil
	}

	lines, err := client.SetSchedule(ctx, id, m)
	if err != nil {
		return fmt.Errorf("failed to set schedule: %w", err)
	}
	printLines(w, lines)
	return nil
}

func createSchedule(ctx context.Context, w io.Writer, client scheduleClient, schedule *huego.Schedule) error {
	id, err := client.CreateSchedule(ctx, schedule)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	fmt.Fprintf(w, "Created schedule %s\n", id)
	return nil
}

func deleteSchedule(ctx context.Context, w io.Writer, client scheduleClient, id string) error {
	num, err := parseID("schedule", id)
	if err != nil {
		return err
	}
	if err := client.DeleteSchedule(ctx, num); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	fmt.Fprintf(w, "Deleted schedule %s\n", id)
	return nil
}
