package command

import (
	"context"
	"fmt"
	"io"

	"github.com/amimof/huego"
	"github.com/urfave/cli/v2"

	"huectl/internal/hue"
)

type sensorClient interface {
	Sensors(ctx context.Context) ([]huego.Sensor, error)
	Sensor(ctx context.Context, id int) (*huego.Sensor, error)
	SetSensorAttributes(ctx context.Context, id int, m *hue.SensorAttributes) ([]string, error)
	SetSensorConfig(ctx context.Context, id int, m *hue.SensorConfig) ([]string, error)
	SetSensorState(ctx context.Context, id int, m *hue.SensorState) ([]string, error)
	DeleteSensor(ctx context.Context, id int) error
	SearchSensors(ctx context.Context) error
	NewSensors(ctx context.Context) (*huego.NewSensor, error)
}

func sensorCommand() *cli.Command {
	return &cli.Command{
		Name:  "sensor",
		Usage: "Modify, print, search or delete sensors",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the state and attributes of a sensor, or of all sensors",
				ArgsUsage: "[id]",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return getSensor(ctx, c.App.Writer, client, c.Args().First())
				},
			},
			{
				Name:      "set",
				Usage:     "Modify the state, config and attributes of a sensor",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Rename the sensor"},
					&cli.BoolFlag{Name: "on", Usage: "Enable the sensor"},
					&cli.BoolFlag{Name: "off", Usage: "Disable the sensor"},
					&cli.BoolFlag{Name: "flag", Usage: "Set the flag of a CLIPGenericFlag sensor"},
					&cli.BoolFlag{Name: "no-flag", Usage: "Clear the flag of a CLIPGenericFlag sensor"},
					&cli.IntFlag{Name: "status", Usage: "Set the status of a CLIPGenericStatus sensor"},
				},
				Action: func(c *cli.Context) error {
					req := sensorSetRequest{
						Name:      c.String("name"),
						On:        c.Bool("on"),
						Off:       c.Bool("off"),
						Flag:      c.Bool("flag"),
						NoFlag:    c.Bool("no-flag"),
						Status:    c.Int("status"),
						HasStatus: c.IsSet("status"),
					}
					id, err := parseID("sensor", c.Args().First())
					if err != nil {
						return err
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return setSensor(ctx, c.App.Writer, client, id, req)
				},
			},
			{
				Name:  "search",
				Usage: "Search for new sensors",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "get", Aliases: []string{"g"}, Usage: "Print the sensors discovered by the last search"},
				},
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return searchSensors(ctx, c.App.Writer, client, c.Bool("get"))
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a sensor",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return deleteSensor(ctx, c.App.Writer, client, c.Args().First())
				},
			},
		},
	}
}

type sensorSetRequest struct {
	Name      string
	On        bool
	Off       bool
	Flag      bool
	NoFlag    bool
	Status    int
	HasStatus bool
}

func (r sensorSetRequest) attributeModifier() *hue.SensorAttributes {
	var m hue.SensorAttributes
	if r.Name != "" {
		m.Name(r.Name)
	}
	return &m
}

func (r sensorSetRequest) configModifier() *hue.SensorConfig {
	var m hue.SensorConfig
	if r.On {
		m.On(true)
	} else if r.Off {
		m.On(false)
	}
	return &m
}

func (r sensorSetRequest) stateModifier() *hue.SensorState {
	var m hue.SensorState
	if r.Flag {
		m.Flag(true)
	} else if r.NoFlag {
		m.Flag(false)
	}
	if r.HasStatus {
		m.Status(r.Status)
	}
	return &m
}

func getSensor(ctx context.Context, w io.Writer, client sensorClient, id string) error {
	if id == "" {
		sensors, err := client.Sensors(ctx)
		if err != nil {
			return fmt.Errorf("failed to get sensors: %w", err)
		}
		return printJSON(w, sensors)
	}

	num, err := parseID("sensor", id)
	if err != nil {
		return err
	}
	sensor, err := client.Sensor(ctx, num)
	if err != nil {
		return fmt.Errorf("failed to get sensor: %w", err)
	}
	return printJSON(w, sensor)
}

// setSensor routes each field group to its own endpoint: name to the sensor
// itself, on/off to its config object, flag/status to its state object.
func setSensor(ctx context.Context, w io.Writer, client sensorClient, id int, req sensorSetRequest) error {
	if attrs := req.attributeModifier(); !attrs.Empty() {
		lines, err := client.SetSensorAttributes(ctx, id, attrs)
		if err != nil {
			return fmt.Errorf("failed to set sensor attributes: %w", err)
		}
		printLines(w, lines)
	}

	if cfg := req.configModifier(); !cfg.Empty() {
		lines, err := client.SetSensorConfig(ctx, id, cfg)
		if err != nil {
			return fmt.Errorf("failed to set sensor config: %w", err)
		}
		printLines(w, lines)
	}

	if state := req.stateModifier(); !state.Empty() {
		lines, err := client.SetSensorState(ctx, id, state)
		if err != nil {
			return fmt.Errorf("failed to set sensor state: %w", err)
		}
		printLines(w, lines)
	}
	return nil
}

func searchSensors(ctx context.Context, w io.Writer, client sensorClient, get bool) error {
	if get {
		sensors, err := client.NewSensors(ctx)
		if err != nil {
			return fmt.Errorf("failed to get new sensors: %w", err)
		}
		return printJSON(w, sensors)
	}

	if err := client.SearchSensors(ctx); err != nil {
		return fmt.Errorf("failed to search for new sensors: %w", err)
	}
	fmt.Fprintln(w, "Searching for new sensors...")
	return nil
}

func deleteSensor(ctx context.Context, w io.Writer, client sensorClient, id string) error {
	num, err := parseID("sensor", id)
	if err != nil {
		return err
	}
	if err := client.DeleteSensor(ctx, num); err != nil {
		return fmt.Errorf("failed to delete sensor: %w", err)
	}
	fmt.Fprintf(w, "Deleted sensor %s\n", id)
	return nil
}
