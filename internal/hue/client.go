// Package hue wraps the huego bridge client with the partial-update semantics
// the CLI needs.
package hue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/amimof/huego"
	"github.com/sirupsen/logrus"
)

// Client talks to a single bridge. Reads, creates, deletes and scans delegate
// to huego. Updates are sent as raw PUTs of the sparse modifiers: huego's
// State and Group structs marshal a fixed field set ("on" is always emitted,
// zero values are dropped), which breaks partial-update semantics.
type Client struct {
	bridge *huego.Bridge
	http   *http.Client
}

// NewClient builds a client for the bridge at host authenticated as username.
func NewClient(host, username string, timeout time.Duration) *Client {
	return &Client{
		bridge: huego.New(host, username),
		http:   &http.Client{Timeout: timeout},
	}
}

// DiscoverBridges queries the public discovery endpoint for bridges on the
// local network.
func DiscoverBridges(ctx context.Context) ([]huego.Bridge, error) {
	return huego.DiscoverAllContext(ctx)
}

// RegisterUser creates a whitelist user on the bridge at ip. The link button
// must have been pressed. Returns the generated username.
func RegisterUser(ctx context.Context, ip, deviceType string) (string, error) {
	logrus.WithField("bridge", ip).Debug("Registering user")
	return huego.New(ip, "").CreateUserContext(ctx, deviceType)
}

type apiError struct {
	Type        int    `json:"type"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s (type %d, address %s)", e.Description, e.Type, e.Address)
}

type apiResult struct {
	Success map[string]interface{} `json:"success,omitempty"`
	Error   *apiError              `json:"error,omitempty"`
}

// put sends a sparse modifier to the given bridge-relative path and returns
// one "path: value" line per field the bridge acknowledged.
func (c *Client) put(ctx context.Context, path string, modifier json.Marshaler) ([]string, error) {
	body, err := json.Marshal(modifier)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("http://%s/api/%s/%s", c.bridge.Host, c.bridge.User, path)
	logrus.WithFields(logrus.Fields{"url": url, "body": string(body)}).Debug("Sending update")

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	var results []apiResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("unexpected bridge response: %s", data)
	}

	var lines []string
	for _, r := range results {
		if r.Error != nil {
			return nil, r.Error
		}
		for k, v := range r.Success {
			lines = append(lines, fmt.Sprintf("%s: %v", k, v))
		}
	}
	sort.Strings(lines)
	return lines, nil
}

// createdID extracts the identifier of a freshly created resource.
func createdID(res *huego.Response, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return fmt.Sprint(res.Success["id"]), nil
}

// Lights

func (c *Client) Lights(ctx context.Context) ([]huego.Light, error) {
	return c.bridge.GetLightsContext(ctx)
}

func (c *Client) Light(ctx context.Context, id int) (*huego.Light, error) {
	return c.bridge.GetLightContext(ctx, id)
}

func (c *Client) SetLightState(ctx context.Context, id int, m *LightState) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("lights/%d/state", id), m)
}

func (c *Client) SetLightAttributes(ctx context.Context, id int, m *LightAttributes) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("lights/%d", id), m)
}

func (c *Client) DeleteLight(ctx context.Context, id int) error {
	return c.bridge.DeleteLightContext(ctx, id)
}

func (c *Client) SearchLights(ctx context.Context) error {
	_, err := c.bridge.FindLightsContext(ctx)
	return err
}

func (c *Client) NewLights(ctx context.Context) (*huego.NewLight, error) {
	return c.bridge.GetNewLightsContext(ctx)
}

// Groups

func (c *Client) Groups(ctx context.Context) ([]huego.Group, error) {
	return c.bridge.GetGroupsContext(ctx)
}

func (c *Client) Group(ctx context.Context, id int) (*huego.Group, error) {
	return c.bridge.GetGroupContext(ctx, id)
}

func (c *Client) SetGroupState(ctx context.Context, id int, m *GroupState) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("groups/%d/action", id), m)
}

func (c *Client) SetGroupAttributes(ctx context.Context, id int, m *GroupAttributes) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("groups/%d", id), m)
}

func (c *Client) CreateGroup(ctx context.Context, g huego.Group) (string, error) {
	return createdID(c.bridge.CreateGroupContext(ctx, g))
}

func (c *Client) DeleteGroup(ctx context.Context, id int) error {
	return c.bridge.DeleteGroupContext(ctx, id)
}

// Scenes

func (c *Client) Scenes(ctx context.Context) ([]huego.Scene, error) {
	return c.bridge.GetScenesContext(ctx)
}

func (c *Client) Scene(ctx context.Context, id string) (*huego.Scene, error) {
	return c.bridge.GetSceneContext(ctx, id)
}

func (c *Client) SetScene(ctx context.Context, id string, m *SceneModifier) ([]string, error) {
	return c.put(ctx, "scenes/"+id, m)
}

func (c *Client) CreateScene(ctx context.Context, s *huego.Scene) (string, error) {
	return createdID(c.bridge.CreateSceneContext(ctx, s))
}

func (c *Client) DeleteScene(ctx context.Context, id string) error {
	return c.bridge.DeleteSceneContext(ctx, id)
}

// Schedules

func (c *Client) Schedules(ctx context.Context) ([]huego.Schedule, error) {
	ptrs, err := c.bridge.GetSchedulesContext(ctx)
	if err != nil {
		return nil, err
	}
	schedules := make([]huego.Schedule, len(ptrs))
	for i, p := range ptrs {
		schedules[i] = *p
	}
	return schedules, nil
}

func (c *Client) Schedule(ctx context.Context, id int) (*huego.Schedule, error) {
	return c.bridge.GetScheduleContext(ctx, id)
}

func (c *Client) SetSchedule(ctx context.Context, id int, m *ScheduleModifier) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("schedules/%d", id), m)
}

func (c *Client) CreateSchedule(ctx context.Context, s *huego.Schedule) (string, error) {
	return createdID(c.bridge.CreateScheduleContext(ctx, s))
}

func (c *Client) DeleteSchedule(ctx context.Context, id int) error {
	return c.bridge.DeleteScheduleContext(ctx, id)
}

// Sensors

func (c *Client) Sensors(ctx context.Context) ([]huego.Sensor, error) {
	return c.bridge.GetSensorsContext(ctx)
}

func (c *Client) Sensor(ctx context.Context, id int) (*huego.Sensor, error) {
	return c.bridge.GetSensorContext(ctx, id)
}

func (c *Client) SetSensorAttributes(ctx context.Context, id int, m *SensorAttributes) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("sensors/%d", id), m)
}

func (c *Client) SetSensorConfig(ctx context.Context, id int, m *SensorConfig) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("sensors/%d/config", id), m)
}

func (c *Client) SetSensorState(ctx context.Context, id int, m *SensorState) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("sensors/%d/state", id), m)
}

func (c *Client) DeleteSensor(ctx context.Context, id int) error {
	return c.bridge.DeleteSensorContext(ctx, id)
}

func (c *Client) SearchSensors(ctx context.Context) error {
	_, err := c.bridge.FindSensorsContext(ctx)
	return err
}

func (c *Client) NewSensors(ctx context.Context) (*huego.NewSensor, error) {
	return c.bridge.GetNewSensorsContext(ctx)
}

// Rules

func (c *Client) Rules(ctx context.Context) ([]huego.Rule, error) {
	ptrs, err := c.bridge.GetRulesContext(ctx)
	if err != nil {
		return nil, err
	}
	rules := make([]huego.Rule, len(ptrs))
	for i, p := range ptrs {
		rules[i] = *p
	}
	return rules, nil
}

func (c *Client) Rule(ctx context.Context, id int) (*huego.Rule, error) {
	return c.bridge.GetRuleContext(ctx, id)
}

func (c *Client) SetRule(ctx context.Context, id int, m *RuleModifier) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("rules/%d", id), m)
}

func (c *Client) CreateRule(ctx context.Context, r *huego.Rule) (string, error) {
	return createdID(c.bridge.CreateRuleContext(ctx, r))
}

func (c *Client) DeleteRule(ctx context.Context, id int) error {
	return c.bridge.DeleteRuleContext(ctx, id)
}

// Resourcelinks

func (c *Client) Resourcelinks(ctx context.Context) ([]huego.Resourcelink, error) {
	ptrs, err := c.bridge.GetResourcelinksContext(ctx)
	if err != nil {
		return nil, err
	}
	links := make([]huego.Resourcelink, len(ptrs))
	for i, p := range ptrs {
		links[i] = *p
	}
	return links, nil
}

func (c *Client) Resourcelink(ctx context.Context, id int) (*huego.Resourcelink, error) {
	return c.bridge.GetResourcelinkContext(ctx, id)
}

func (c *Client) SetResourcelink(ctx context.Context, id int, m *ResourcelinkModifier) ([]string, error) {
	return c.put(ctx, fmt.Sprintf("resourcelinks/%d", id), m)
}

func (c *Client) CreateResourcelink(ctx context.Context, r *huego.Resourcelink) (string, error) {
	return createdID(c.bridge.CreateResourcelinkContext(ctx, r))
}

func (c *Client) DeleteResourcelink(ctx context.Context, id int) error {
	return c.bridge.DeleteResourcelinkContext(ctx, id)
}

// Config

func (c *Client) BridgeConfig(ctx context.Context) (*huego.Config, error) {
	return c.bridge.GetConfigContext(ctx)
}

func (c *Client) SetBridgeConfig(ctx context.Context, m *ConfigModifier) ([]string, error) {
	return c.put(ctx, "config", m)
}
