package command

import (
	"bytes"
	"context"
	"testing"

	"github.com/amimof/huego"
	"github.com/stretchr/testify/require"
)

func TestSetSensorRoutesFieldGroups(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	req := sensorSetRequest{
		Name:      "hallway",
		On:        true,
		Flag:      true,
		Status:    5,
		HasStatus: true,
	}
	err := setSensor(context.Background(), &out, fake, 4, req)
	require.NoError(t, err)
	require.Equal(t, []string{"SetSensorAttributes", "SetSensorConfig", "SetSensorState"}, fake.Calls)
	require.Equal(t, map[string]interface{}{"name": "hallway"}, modifierFields(t, fake.StateModifiers[0]))
	require.Equal(t, map[string]interface{}{"on": true}, modifierFields(t, fake.StateModifiers[1]))
	require.Equal(t, map[string]interface{}{"flag": true, "status": float64(5)}, modifierFields(t, fake.StateModifiers[2]))
}

func TestSetSensorNoFlagsMakesNoCalls(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	err := setSensor(context.Background(), &out, fake, 4, sensorSetRequest{})
	require.NoError(t, err)
	require.Empty(t, fake.Calls)
}

func TestSetSensorOnBeatsOff(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	err := setSensor(context.Background(), &out, fake, 4, sensorSetRequest{On: true, Off: true})
	require.NoError(t, err)
	require.Equal(t, []string{"SetSensorConfig"}, fake.Calls)
	require.Equal(t, map[string]interface{}{"on": true}, modifierFields(t, fake.StateModifiers[0]))
}

func TestSearchSensors(t *testing.T) {
	fake := &fakeBridge{NewSensor: &huego.NewSensor{LastScan: "2026-08-28T10:00:00"}}
	var out bytes.Buffer

	err := searchSensors(context.Background(), &out, fake, false)
	require.NoError(t, err)
	require.Equal(t, []string{"SearchSensors"}, fake.Calls)
	require.Equal(t, "Searching for new sensors...\n", out.String())

	fake.Calls = nil
	out.Reset()
	err = searchSensors(context.Background(), &out, fake, true)
	require.NoError(t, err)
	require.Equal(t, []string{"NewSensors"}, fake.Calls)
}

func TestDeleteSensor(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	err := deleteSensor(context.Background(), &out, fake, "4")
	require.NoError(t, err)
	require.Equal(t, "Deleted sensor 4\n", out.String())
}
