package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConditions(t *testing.T) {
	conditions, err := parseConditions([]string{
		`{"address":"/sensors/2/state/flag","operator":"eq","value":"true"}`,
	})
	require.NoError(t, err)
	require.Len(t, conditions, 1)
	require.Equal(t, "/sensors/2/state/flag", conditions[0].Address)
	require.Equal(t, "eq", conditions[0].Operator)
	require.Equal(t, "true", conditions[0].Value)

	_, err = parseConditions([]string{`not json`})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid condition")
}

func TestParseActions(t *testing.T) {
	actions, err := parseActions([]string{
		`{"address":"/groups/1/action","method":"PUT","body":{"on":true}}`,
	})
	require.NoError(t, err)
	require.Len(t, actions, 1)
	require.Equal(t, "/groups/1/action", actions[0].Address)
	require.Equal(t, "PUT", actions[0].Method)

	_, err = parseActions([]string{`{`})
	require.Error(t, err)
}

func TestRuleSetModifier(t *testing.T) {
	m, err := ruleSetRequest{}.modifier()
	require.NoError(t, err)
	require.True(t, m.Empty())

	m, err = ruleSetRequest{
		Name:       "night mode",
		Status:     "disabled",
		Conditions: []string{`{"address":"/config/localtime","operator":"in","value":"T23:00:00/T06:00:00"}`},
	}.modifier()
	require.NoError(t, err)
	require.False(t, m.Empty())

	_, err = ruleSetRequest{Conditions: []string{"{"}}.modifier()
	require.Error(t, err)
}

func TestScheduleCommandBody(t *testing.T) {
	cmd, err := scheduleCommandBody("/groups/1/action", "PUT", `{"on":false}`)
	require.NoError(t, err)
	require.Equal(t, "/groups/1/action", cmd.Address)
	require.Equal(t, "PUT", cmd.Method)
	require.Equal(t, map[string]interface{}{"on": false}, cmd.Body)

	_, err = scheduleCommandBody("/groups/1/action", "", `{"on":false}`)
	require.Error(t, err)

	_, err = scheduleCommandBody("/groups/1/action", "PUT", `{`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid command body")
}

func TestScheduleSetModifier(t *testing.T) {
	m, err := scheduleSetRequest{}.modifier()
	require.NoError(t, err)
	require.True(t, m.Empty())

	m, err = scheduleSetRequest{Name: "wake up", Status: "enabled"}.modifier()
	require.NoError(t, err)
	require.False(t, m.Empty())

	// A partial command is an error, not a silent omission.
	_, err = scheduleSetRequest{Address: "/groups/1/action"}.modifier()
	require.Error(t, err)
}

func TestSceneSetModifier(t *testing.T) {
	require.True(t, sceneSetRequest{}.modifier().Empty())
	require.False(t, sceneSetRequest{Name: "dusk"}.modifier().Empty())
	require.False(t, sceneSetRequest{HasStoreLightState: true}.modifier().Empty())
}

func TestResourcelinkSetModifier(t *testing.T) {
	require.True(t, resourcelinkSetRequest{}.modifier().Empty())

	m := resourcelinkSetRequest{Name: "routine", HasClassID: true, ClassID: 1}.modifier()
	require.False(t, m.Empty())
}
