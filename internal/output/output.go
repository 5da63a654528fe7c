// Package output renders bridge responses for humans and machines.
package output

import (
	"encoding/json"

	"github.com/davecgh/go-spew/spew"
)

var debugConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// JSON renders v as pretty-printed JSON.
func JSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Debug renders v as an indented field-by-field dump for reading in a
// terminal. Output is deterministic, map keys are sorted.
func Debug(v interface{}) string {
	return debugConfig.Sdump(v)
}
