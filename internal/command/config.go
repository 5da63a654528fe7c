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

type configClient interface {
	BridgeConfig(ctx context.Context) (*huego.Config, error)
	SetBridgeConfig(ctx context.Context, m *hue.ConfigModifier) ([]string, error)
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Modify or print the bridge configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Print the bridge configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Aliases: []string{"j"}, Usage: "Print as JSON instead of the debug rendering"},
				},
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return getBridgeConfig(ctx, c.App.Writer, client, c.Bool("json"))
				},
			},
			{
				Name:  "set",
				Usage: "Modify the bridge configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Rename the bridge"},
					&cli.IntFlag{Name: "zigbee-channel", Usage: "Zigbee channel the bridge uses"},
					&cli.BoolFlag{Name: "dhcp", Usage: "Enable DHCP"},
					&cli.BoolFlag{Name: "no-dhcp", Usage: "Disable DHCP"},
					&cli.StringFlag{Name: "ip-address", Usage: "Static IP address of the bridge"},
					&cli.StringFlag{Name: "netmask", Usage: "Network mask of the bridge"},
					&cli.StringFlag{Name: "gateway", Usage: "Gateway IP address of the bridge"},
					&cli.StringFlag{Name: "proxy-address", Usage: "Proxy address of the bridge"},
					&cli.IntFlag{Name: "proxy-port", Usage: "Proxy port of the bridge"},
					&cli.BoolFlag{Name: "link-button", Usage: "Press the link button for 30 seconds"},
					&cli.BoolFlag{Name: "touchlink", Usage: "Start a touchlink procedure"},
					&cli.StringFlag{Name: "timezone", Usage: "Timezone of the bridge"},
				},
				Action: func(c *cli.Context) error {
					req := configSetRequest{
						Name:          c.String("name"),
						ZigbeeChannel: c.Int("zigbee-channel"),
						HasChannel:    c.IsSet("zigbee-channel"),
						DHCP:          c.Bool("dhcp"),
						NoDHCP:        c.Bool("no-dhcp"),
						IPAddress:     c.String("ip-address"),
						Netmask:       c.String("netmask"),
						Gateway:       c.String("gateway"),
						ProxyAddress:  c.String("proxy-address"),
						ProxyPort:     c.Int("proxy-port"),
						HasProxyPort:  c.IsSet("proxy-port"),
						LinkButton:    c.Bool("link-button"),
						Touchlink:     c.Bool("touchlink"),
						Timezone:      c.String("timezone"),
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return setBridgeConfig(ctx, c.App.Writer, client, req)
				},
			},
		},
	}
}

type configSetRequest struct {
	Name          string
	ZigbeeChannel int
	HasChannel    bool
	DHCP          bool
	NoDHCP        bool
	IPAddress     string
	Netmask       string
	Gateway       string
	ProxyAddress  string
	ProxyPort     int
	HasProxyPort  bool
	LinkButton    bool
	Touchlink     bool
	Timezone      string
}

func (r configSetRequest) modifier() *hue.ConfigModifier {
	var m hue.ConfigModifier
	if r.Name != "" {
		m.Name(r.Name)
	}
	if r.HasChannel {
		m.ZigbeeChannel(r.ZigbeeChannel)
	}
	if r.DHCP {
		m.DHCP(true)
	} else if r.NoDHCP {
		m.DHCP(false)
	}
	if r.IPAddress != "" {
		m.IPAddress(r.IPAddress)
	}
	if r.Netmask != "" {
		m.Netmask(r.Netmask)
	}
	if r.Gateway != "" {
		m.Gateway(r.Gateway)
	}
	if r.ProxyAddress != "" {
		m.ProxyAddress(r.ProxyAddress)
	}
	if r.HasProxyPort {
		m.ProxyPort(r.ProxyPort)
	}
	if r.LinkButton {
		m.LinkButton(true)
	}
	if r.Touchlink {
		m.Touchlink(true)
	}
	if r.Timezone != "" {
		m.Timezone(r.Timezone)
	}
	return &m
}

func getBridgeConfig(ctx context.Context, w io.Writer, client configClient, asJSON bool) error {
	cfg, err := client.BridgeConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	if asJSON {
		return printJSON(w, cfg)
	}
	fmt.Fprint(w, output.Debug(cfg))
	return nil
}

func setBridgeConfig(ctx context.Context, w io.Writer, client configClient, req configSetRequest) error {
	m := req.modifier()
	if m.Empty() {
		return nil
	}

	lines, err := client.SetBridgeConfig(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to set config: %w", err)
	}
	printLines(w, lines)
	return nil
}
