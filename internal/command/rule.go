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

type ruleClient interface {
	Rules(ctx context.Context) ([]huego.Rule, error)
	Rule(ctx context.Context, id int) (*huego.Rule, error)
	SetRule(ctx context.Context, id int, m *hue.RuleModifier) ([]string, error)
	CreateRule(ctx context.Context, r *huego.Rule) (string, error)
	DeleteRule(ctx context.Context, id int) error
}

func ruleCommand() *cli.Command {
	conditionFlag := func() cli.Flag {
		return &cli.StringSliceFlag{
			Name:  "condition",
			Usage: `Condition as JSON, e.g. '{"address":"/sensors/2/state/flag","operator":"eq","value":"true"}' (repeatable)`,
		}
	}
	actionFlag := func() cli.Flag {
		return &cli.StringSliceFlag{
			Name:  "action",
			Usage: `Action as JSON, e.g. '{"address":"/groups/1/action","method":"PUT","body":{"on":true}}' (repeatable)`,
		}
	}

	return &cli.Command{
		Name:  "rule",
		Usage: "Modify, print, create or delete rules",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the attributes of a rule, or of all rules",
				ArgsUsage: "[id]",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return getRule(ctx, c.App.Writer, client, c.Args().First())
				},
			},
			{
				Name:      "set",
				Usage:     "Modify the attributes of a rule",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Rename the rule"},
					&cli.StringFlag{Name: "status", Usage: "Status: enabled or disabled"},
					conditionFlag(),
					actionFlag(),
				},
				Action: func(c *cli.Context) error {
					req := ruleSetRequest{
						Name:       c.String("name"),
						Status:     c.String("status"),
						Conditions: c.StringSlice("condition"),
						Actions:    c.StringSlice("action"),
					}
					id, err := parseID("rule", c.Args().First())
					if err != nil {
						return err
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return setRule(ctx, c.App.Writer, client, id, req)
				},
			},
			{
				Name:  "create",
				Usage: "Create a rule",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Name of the rule", Required: true},
					conditionFlag(),
					actionFlag(),
				},
				Action: func(c *cli.Context) error {
					conditions, err := parseConditions(c.StringSlice("condition"))
					if err != nil {
						return err
					}
					actions, err := parseActions(c.StringSlice("action"))
					if err != nil {
						return err
					}
					rule := huego.Rule{
						Name:       c.String("name"),
						Conditions: conditions,
						Actions:    actions,
					}
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return createRule(ctx, c.App.Writer, client, &rule)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a rule",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					client, err := resolveClient(c)
					if err != nil {
						return err
					}
					ctx, cancel := operationContext(c)
					defer cancel()
					return deleteRule(ctx, c.App.Writer, client, c.Args().First())
				},
			},
		},
	}
}

type ruleSetRequest struct {
	Name       string
	Status     string
	Conditions []string
	Actions    []string
}

func (r ruleSetRequest) modifier() (*hue.RuleModifier, error) {
	var m hue.RuleModifier
	if r.Name != "" {
		m.Name(r.Name)
	}
	if r.Status != "" {
		m.Status(r.Status)
	}
	if len(r.Conditions) > 0 {
		conditions, err := parseConditions(r.Conditions)
		if err != nil {
			return nil, err
		}
		m.Conditions(conditions)
	}
	if len(r.Actions) > 0 {
		actions, err := parseActions(r.Actions)
		if err != nil {
			return nil, err
		}
		m.Actions(actions)
	}
	return &m, nil
}

func parseConditions(raws []string) ([]*huego.Condition, error) {
	var conditions []*huego.Condition
	for _, raw := range raws {
		var c huego.Condition
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("invalid condition %q: %w", raw, err)
		}
		conditions = append(conditions, &c)
	}
	return conditions, nil
}

func parseActions(raws []string) ([]*huego.RuleAction, error) {
	var actions []*huego.RuleAction
	for _, raw := range raws {
		var a huego.RuleAction
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, fmt.Errorf("invalid action %q: %w", raw, err)
		}
		actions = append(actions, &a)
	}
	return actions, nil
}

func getRule(ctx context.Context, w io.Writer, client ruleClient, id string) error {
	if id == "" {
		rules, err := client.Rules(ctx)
		if err != nil {
			return fmt.Errorf("failed to get rules: %w", err)
		}
		return printJSON(w, rules)
	}

	num, err := parseID("rule", id)
	if err != nil {
		return err
	}
	rule, err := client.Rule(ctx, num)
	if err != nil {
		return fmt.Errorf("failed to get rule: %w", err)
	}
	return printJSON(w, rule)
}

func setRule(ctx context.Context, w io.Writer, client ruleClient, id int, req ruleSetRequest) error {
	m, err := req.modifier()
	if err != nil {
		return err
	}
	if m.Empty() {
		return nil
	}

	lines, err := client.SetRule(ctx, id, m)
	if err != nil {
		return fmt.Errorf("failed to set rule: %w", err)
	}
	printLines(w, lines)
	return nil
}

func createRule(ctx context.Context, w io.Writer, client ruleClient, rule *huego.Rule) error {
	id, err := client.CreateRule(ctx, rule)
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}
	fmt.Fprintf(w, "Created rule %s\n", id)
	return nil
}

func deleteRule(ctx context.Context, w io.Writer, client ruleClient, id string) error {
	num, err := parseID("rule", id)
	if err != nil {
		return err
	}
	if err := client.DeleteRule(ctx, num); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	fmt.Fprintf(w, "Deleted rule %s\n", id)
	return nil
}
