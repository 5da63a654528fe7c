package command

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/amimof/huego"
	"github.com/stretchr/testify/require"

	"huectl/internal/hue"
)

// fakeBridge records every call so tests can assert which endpoints a command
// touched and with what payload.
type fakeBridge struct {
	Calls []string

	LightList   []huego.Light
	SingleLight *huego.Light
	SensorList  []huego.Sensor
	Config      *huego.Config
	NewLight    *huego.NewLight
	NewSensor   *huego.NewSensor

	StateModifiers []json.Marshaler
	CreatedGroup   *huego.Group
	Err            error
}

func (f *fakeBridge) record(name string, m json.Marshaler) ([]string, error) {
	f.Calls = append(f.Calls, name)
	if m != nil {
		f.StateModifiers = append(f.StateModifiers, m)
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return []string{name + ": ok"}, nil
}

func (f *fakeBridge) Lights(ctx context.Context) ([]huego.Light, error) {
	f.Calls = append(f.Calls, "Lights")
	return f.LightList, f.Err
}

func (f *fakeBridge) Light(ctx context.Context, id int) (*huego.Light, error) {
	f.Calls = append(f.Calls, "Light")
	return f.SingleLight, f.Err
}

func (f *fakeBridge) SetLightState(ctx context.Context, id int, m *hue.LightState) ([]string, error) {
	return f.record("SetLightState", m)
}

func (f *fakeBridge) SetLightAttributes(ctx context.Context, id int, m *hue.LightAttributes) ([]string, error) {
	return f.record("SetLightAttributes", m)
}

func (f *fakeBridge) DeleteLight(ctx context.Context, id int) error {
	f.Calls = append(f.Calls, "DeleteLight")
	return f.Err
}

func (f *fakeBridge) SearchLights(ctx context.Context) error {
	f.Calls = append(f.Calls, "SearchLights")
	return f.Err
}

func (f *fakeBridge) NewLights(ctx context.Context) (*huego.NewLight, error) {
	f.Calls = append(f.Calls, "NewLights")
	return f.NewLight, f.Err
}

func (f *fakeBridge) Groups(ctx context.Context) ([]huego.Group, error) {
	f.Calls = append(f.Calls, "Groups")
	return nil, f.Err
}

func (f *fakeBridge) Group(ctx context.Context, id int) (*huego.Group, error) {
	f.Calls = append(f.Calls, "Group")
	return &huego.Group{}, f.Err
}

func (f *fakeBridge) SetGroupState(ctx context.Context, id int, m *hue.GroupState) ([]string, error) {
	return f.record("SetGroupState", m)
}

func (f *fakeBridge) SetGroupAttributes(ctx context.Context, id int, m *hue.GroupAttributes) ([]string, error) {
	return f.record("SetGroupAttributes", m)
}

func (f *fakeBridge) CreateGroup(ctx context.Context, g huego.Group) (string, error) {
	f.Calls = append(f.Calls, "CreateGroup")
	f.CreatedGroup = &g
	return "3", f.Err
}

func (f *fakeBridge) DeleteGroup(ctx context.Context, id int) error {
	f.Calls = append(f.Calls, "DeleteGroup")
	return f.Err
}

func (f *fakeBridge) Sensors(ctx context.Context) ([]huego.Sensor, error) {
	f.Calls = append(f.Calls, "Sensors")
	return f.SensorList, f.Err
}

func (f *fakeBridge) Sensor(ctx context.Context, id int) (*huego.Sensor, error) {
	f.Calls = append(f.Calls, "Sensor")
	return nil, f.Err
}

func (f *fakeBridge) SetSensorAttributes(ctx context.Context, id int, m *hue.SensorAttributes) ([]string, error) {
	return f.record("SetSensorAttributes", m)
}

func (f *fakeBridge) SetSensorConfig(ctx context.Context, id int, m *hue.SensorConfig) ([]string, error) {
	return f.record("SetSensorConfig", m)
}

func (f *fakeBridge) SetSensorState(ctx context.Context, id int, m *hue.SensorState) ([]string, error) {
	return f.record("SetSensorState", m)
}

func (f *fakeBridge) DeleteSensor(ctx context.Context, id int) error {
	f.Calls = append(f.Calls, "DeleteSensor")
	return f.Err
}

func (f *fakeBridge) SearchSensors(ctx context.Context) error {
	f.Calls = append(f.Calls, "SearchSensors")
	return f.Err
}

func (f *fakeBridge) NewSensors(ctx context.Context) (*huego.NewSensor, error) {
	f.Calls = append(f.Calls, "NewSensors")
	return f.NewSensor, f.Err
}

func (f *fakeBridge) BridgeConfig(ctx context.Context) (*huego.Config, error) {
	f.Calls = append(f.Calls, "BridgeConfig")
	return f.Config, f.Err
}

func (f *fakeBridge) SetBridgeConfig(ctx context.Context, m *hue.ConfigModifier) ([]string, error) {
	return f.record("SetBridgeConfig", m)
}

// modifierFields unpacks a recorded modifier for assertions.
func modifierFields(t *testing.T, m json.Marshaler) map[string]interface{} {
	t.Helper()

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}
