package output

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	got, err := JSON(map[string]int{"bri": 127})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"bri\": 127\n}", got)
}

func TestDebug(t *testing.T) {
	type bridgeInfo struct {
		Name       string
		APIVersion string
	}

	got := Debug(bridgeInfo{Name: "bridge", APIVersion: "1.46.0"})
	require.Contains(t, got, "Name: (string)")
	require.Contains(t, got, "bridge")
	require.Contains(t, got, "APIVersion: (string)")
}
