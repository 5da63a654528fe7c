package command

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/amimof/huego"
	"github.com/stretchr/testify/require"
)

func TestSetLightNoFlagsMakesNoCalls(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	err := setLight(context.Background(), &out, fake, 1, lightSetRequest{})
	require.NoError(t, err)
	require.Empty(t, fake.Calls)
	require.Empty(t, out.String())
}

func TestSetLightOnBeatsOff(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	req := lightSetRequest{stateRequest: stateRequest{On: true, Off: true}}
	err := setLight(context.Background(), &out, fake, 1, req)
	require.NoError(t, err)
	require.Equal(t, []string{"SetLightState"}, fake.Calls)
	require.Equal(t, map[string]interface{}{"on": true}, modifierFields(t, fake.StateModifiers[0]))
}

func TestSetLightSeparatesStateAndAttributes(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	req := lightSetRequest{
		stateRequest: stateRequest{Brightness: "+10"},
		Name:         "kitchen",
	}
	err := setLight(context.Background(), &out, fake, 1, req)
	require.NoError(t, err)
	require.Equal(t, []string{"SetLightState", "SetLightAttributes"}, fake.Calls)
	require.Equal(t, map[string]interface{}{"bri_inc": float64(25)}, modifierFields(t, fake.StateModifiers[0]))
	require.Equal(t, map[string]interface{}{"name": "kitchen"}, modifierFields(t, fake.StateModifiers[1]))
	require.Equal(t, "SetLightState: ok\nSetLightAttributes: ok\n", out.String())
}

func TestSetLightNameOnlySkipsStateCall(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	err := setLight(context.Background(), &out, fake, 1, lightSetRequest{Name: "desk"})
	require.NoError(t, err)
	require.Equal(t, []string{"SetLightAttributes"}, fake.Calls)
}

func TestSetLightParseErrorBeforeNetwork(t *testing.T) {
	for _, req := range []lightSetRequest{
		{stateRequest: stateRequest{Brightness: "101"}},
		{stateRequest: stateRequest{Brightness: "abc"}},
		{stateRequest: stateRequest{Coordinates: []float64{0.3}}},
		{stateRequest: stateRequest{Coordinates: []float64{0.3, 0.4, 0.5}}},
		{stateRequest: stateRequest{RGB: []int{255, 0}}},
		{stateRequest: stateRequest{Hex: "ff00a"}},
		{stateRequest: stateRequest{Alert: "blink"}},
	} {
		fake := &fakeBridge{}
		var out bytes.Buffer

		err := setLight(context.Background(), &out, fake, 1, req)
		require.Error(t, err)
		require.Empty(t, fake.Calls)
	}
}

func TestSetLightCoordinates(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	req := lightSetRequest{stateRequest: stateRequest{Coordinates: []float64{0.3, 0.4}}}
	err := setLight(context.Background(), &out, fake, 1, req)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"xy": []interface{}{0.3, 0.4}}, modifierFields(t, fake.StateModifiers[0]))
}

func TestGetLight(t *testing.T) {
	fake := &fakeBridge{
		SingleLight: &huego.Light{Name: "Desk"},
		LightList:   []huego.Light{{Name: "Desk"}, {Name: "Shelf"}},
	}
	var out bytes.Buffer

	err := getLight(context.Background(), &out, fake, "1")
	require.NoError(t, err)
	require.Equal(t, []string{"Light"}, fake.Calls)
	require.Contains(t, out.String(), "Desk")

	fake.Calls = nil
	out.Reset()
	err = getLight(context.Background(), &out, fake, "")
	require.NoError(t, err)
	require.Equal(t, []string{"Lights"}, fake.Calls)
	require.Contains(t, out.String(), "Shelf")

	err = getLight(context.Background(), &out, fake, "desk")
	require.Error(t, err)
}

func TestSearchLights(t *testing.T) {
	fake := &fakeBridge{NewLight: &huego.NewLight{LastScan: "2026-08-28T10:00:00"}}
	var out bytes.Buffer

	// Plain search triggers the scan and nothing else.
	err := searchLights(context.Background(), &out, fake, false)
	require.NoError(t, err)
	require.Equal(t, []string{"SearchLights"}, fake.Calls)
	require.Equal(t, "Searching for new lights...\n", out.String())

	// --get is read only.
	fake.Calls = nil
	out.Reset()
	err = searchLights(context.Background(), &out, fake, true)
	require.NoError(t, err)
	require.Equal(t, []string{"NewLights"}, fake.Calls)
	require.Contains(t, out.String(), "2026-08-28T10:00:00")
}

func TestDeleteLight(t *testing.T) {
	fake := &fakeBridge{}
	var out bytes.Buffer

	err := deleteLight(context.Background(), &out, fake, "7")
	require.NoError(t, err)
	require.Equal(t, []string{"DeleteLight"}, fake.Calls)
	require.Equal(t, "Deleted light 7\n", out.String())
}

func TestLightErrorsAreWrapped(t *testing.T) {
	fake := &fakeBridge{Err: errors.New("bridge unreachable")}
	var out bytes.Buffer

	err := setLight(context.Background(), &out, fake, 1, lightSetRequest{stateRequest: stateRequest{On: true}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set light state")
	require.Contains(t, err.Error(), "bridge unreachable")
}
