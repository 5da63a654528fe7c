package command

import (
	"github.com/urfave/cli/v2"

	"huectl/internal/hue"
	"huectl/internal/value"
)

// stateRequest holds the raw light-state flags shared by light and group set
// commands. Parsing happens when the modifier is built so every value error
// surfaces before any network call.
type stateRequest struct {
	On                bool
	Off               bool
	Brightness        string
	Hue               string
	Saturation        string
	ColorTemperature  string
	Coordinates       []float64
	RGB               []int
	Hex               string
	Alert             string
	Effect            string
	TransitionTime    int
	HasTransitionTime bool
}

func stateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "on", Usage: "Turn the light(s) on"},
		&cli.BoolFlag{Name: "off", Usage: "Turn the light(s) off"},
		&cli.StringFlag{Name: "brightness", Aliases: []string{"b"}, Usage: "Brightness in percent, absolute or +/- relative"},
		&cli.StringFlag{Name: "hue", Usage: "Hue (0-65535), absolute or +/- relative"},
		&cli.StringFlag{Name: "saturation", Aliases: []string{"s"}, Usage: "Saturation in percent, absolute or +/- relative"},
		&cli.StringFlag{Name: "color-temperature", Aliases: []string{"t"}, Usage: "Color temperature in mired, absolute or +/- relative"},
		&cli.Float64SliceFlag{Name: "coordinates", Aliases: []string{"c"}, Usage: "Color as x and y color space coordinates"},
		&cli.IntSliceFlag{Name: "rgb", Aliases: []string{"r"}, Usage: "Color as red, green and blue components"},
		&cli.StringFlag{Name: "hex", Aliases: []string{"x"}, Usage: "Color as six hex digits"},
		&cli.StringFlag{Name: "alert", Aliases: []string{"a"}, Usage: "Alert effect: none, select or lselect"},
		&cli.StringFlag{Name: "effect", Aliases: []string{"e"}, Usage: "Dynamic effect: none or colorloop"},
		&cli.IntFlag{Name: "transition-time", Usage: "Transition time in multiples of 100ms"},
	}
}

func stateRequestFromContext(c *cli.Context) stateRequest {
	return stateRequest{
		On:                c.Bool("on"),
		Off:               c.Bool("off"),
		Brightness:        c.String("brightness"),
		Hue:               c.String("hue"),
		Saturation:        c.String("saturation"),
		ColorTemperature:  c.String("color-temperature"),
		Coordinates:       c.Float64Slice("coordinates"),
		RGB:               c.IntSlice("rgb"),
		Hex:               c.String("hex"),
		Alert:             c.String("alert"),
		Effect:            c.String("effect"),
		TransitionTime:    c.Int("transition-time"),
		HasTransitionTime: c.IsSet("transition-time"),
	}
}

// apply builds the sparse state modifier. When both --on and --off are given,
// on wins. Color flags are applied in coordinate, RGB, hex order, so the hex
// value ends up on the wire when several are combined.
func (r stateRequest) apply(m *hue.LightState) error {
	if r.On {
		m.On(true)
	} else if r.Off {
		m.On(false)
	}

	if r.Brightness != "" {
		v, err := value.ParsePercent(r.Brightness)
		if err != nil {
			return err
		}
		m.Brightness(v)
	}
	if r.Hue != "" {
		v, err := value.ParseHue(r.Hue)
		if err != nil {
			return err
		}
		m.Hue(v)
	}
	if r.Saturation != "" {
		v, err := value.ParsePercent(r.Saturation)
		if err != nil {
			return err
		}
		m.Saturation(v)
	}
	if r.ColorTemperature != "" {
		v, err := value.ParseColorTemperature(r.ColorTemperature)
		if err != nil {
			return err
		}
		m.ColorTemperature(v)
	}
	if len(r.Coordinates) > 0 {
		col, err := value.ColorFromXY(r.Coordinates)
		if err != nil {
			return err
		}
		m.Color(col)
	}
	if len(r.RGB) > 0 {
		col, err := value.ColorFromRGB(r.RGB)
		if err != nil {
			return err
		}
		m.Color(col)
	}
	if r.Hex != "" {
		col, err := value.ParseHexColor(r.Hex)
		if err != nil {
			return err
		}
		m.Color(col)
	}
	if r.Alert != "" {
		v, err := value.ParseAlert(r.Alert)
		if err != nil {
			return err
		}
		m.Alert(v)
	}
	if r.Effect != "" {
		v, err := value.ParseEffect(r.Effect)
		if err != nil {
			return err
		}
		m.Effect(v)
	}
	if r.HasTransitionTime {
		m.TransitionTime(r.TransitionTime)
	}
	return nil
}
