package value

import (
	"fmt"
	"strings"
)

// Alert is the bridge's alert effect: a single or repeated breathe cycle, or
// turning a running cycle off.
type Alert int

const (
	AlertNone Alert = iota
	AlertSelect
	AlertLSelect
)

func (a Alert) String() string {
	switch a {
	case AlertNone:
		return "none"
	case AlertSelect:
		return "select"
	case AlertLSelect:
		return "lselect"
	}
	return ""
}

// ParseAlert matches the raw string against the closed alert set, case
// insensitively.
func ParseAlert(raw string) (Alert, error) {
	switch strings.ToLower(raw) {
	case "none":
		return AlertNone, nil
	case "select":
		return AlertSelect, nil
	case "lselect":
		return AlertLSelect, nil
	}
	return 0, fmt.Errorf("%q is not valid: alert must be one of none, select, lselect", raw)
}

// Effect is the bridge's dynamic light effect.
type Effect int

const (
	EffectNone Effect = iota
	EffectColorloop
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectColorloop:
		return "colorloop"
	}
	return ""
}

// ParseEffect matches the raw string against the closed effect set, case
// insensitively.
func ParseEffect(raw string) (Effect, error) {
	switch strings.ToLower(raw) {
	case "none":
		return EffectNone, nil
	case "colorloop":
		return EffectColorloop, nil
	}
	return 0, fmt.Errorf("%q is not valid: effect must be one of none, colorloop", raw)
}
