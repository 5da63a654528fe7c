package hue

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"huectl/internal/value"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "http://")
	return NewClient(host, "testuser", time.Second)
}

func TestSetLightState(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		io.WriteString(w, `[
			{"success": {"/lights/1/state/on": true}},
			{"success": {"/lights/1/state/bri": 127}}
		]`)
	})

	var m LightState
	m.On(true)
	m.Brightness(value.Adjust{Value: 50, Sign: value.Absolute})

	lines, err := client.SetLightState(context.Background(), 1, &m)
	require.NoError(t, err)
	require.Equal(t, []string{
		"/lights/1/state/bri: 127",
		"/lights/1/state/on: true",
	}, lines)

	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/api/testuser/lights/1/state", gotPath)
	require.Equal(t, map[string]interface{}{"on": true, "bri": float64(127)}, gotBody)
}

func TestPutBridgeError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"error": {"type": 201, "address": "/lights/1/state/bri", "description": "parameter, bri, is not modifiable. Device is set to off."}}]`)
	})

	var m LightState
	m.Brightness(value.Adjust{Value: 50, Sign: value.Absolute})

	_, err := client.SetLightState(context.Background(), 1, &m)
	require.Error(t, err)
	require.Contains(t, err.Error(), "is not modifiable")
	require.Contains(t, err.Error(), "type 201")
}

func TestPutMalformedResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>not json</html>`)
	})

	var m ConfigModifier
	m.Name("bridge")

	_, err := client.SetBridgeConfig(context.Background(), &m)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected bridge response")
}

func TestSetBridgeConfigPath(t *testing.T) {
	var gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, `[{"success": {"/config/name": "bridge"}}]`)
	})

	var m ConfigModifier
	m.Name("bridge")

	lines, err := client.SetBridgeConfig(context.Background(), &m)
	require.NoError(t, err)
	require.Equal(t, []string{"/config/name: bridge"}, lines)
	require.Equal(t, "/api/testuser/config", gotPath)
}

func TestSensorUpdateEndpoints(t *testing.T) {
	var paths []string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		io.WriteString(w, `[{"success": {"ok": true}}]`)
	})

	ctx := context.Background()

	var attrs SensorAttributes
	attrs.Name("hallway")
	_, err := client.SetSensorAttributes(ctx, 4, &attrs)
	require.NoError(t, err)

	var cfg SensorConfig
	cfg.On(true)
	_, err = client.SetSensorConfig(ctx, 4, &cfg)
	require.NoError(t, err)

	var state SensorState
	state.Flag(true)
	state.Status(1)
	_, err = client.SetSensorState(ctx, 4, &state)
	require.NoError(t, err)

	require.Equal(t, []string{
		"/api/testuser/sensors/4",
		"/api/testuser/sensors/4/config",
		"/api/testuser/sensors/4/state",
	}, paths)
}
