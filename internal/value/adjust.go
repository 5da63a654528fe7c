// Package value parses raw command-line strings into validated bridge values.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Sign says whether a parsed value replaces the current one or shifts it.
type Sign int

const (
	Absolute Sign = iota
	Increment
	Decrement
)

// Adjust is an integer value with an optional relative prefix. "50" parses to
// an absolute value, "+10"/"-10" to increments and decrements.
type Adjust struct {
	Value int
	Sign  Sign
}

func parseAdjust(raw string, max int) (Adjust, error) {
	sign := Absolute
	s := raw
	switch {
	case strings.HasPrefix(s, "+"):
		sign = Increment
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = Decrement
		s = s[1:]
	}

	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > max {
		return Adjust{}, fmt.Errorf("%q is not valid: must be an integer between 0 and %d, optionally prefixed with '+' or '-'", raw, max)
	}
	return Adjust{Value: v, Sign: sign}, nil
}

// ParsePercent parses a percentage value (brightness, saturation).
func ParsePercent(raw string) (Adjust, error) {
	return parseAdjust(raw, 100)
}

// ParseHue parses a hue value in the bridge's 16-bit color wheel range.
func ParseHue(raw string) (Adjust, error) {
	return parseAdjust(raw, 65535)
}

// ParseColorTemperature parses a mired color temperature. The bridge enforces
// its own supported window (153-500 on current hardware).
func ParseColorTemperature(raw string) (Adjust, error) {
	return parseAdjust(raw, 65535)
}

// Scale maps the value from the 0-100 percentage range onto 0-max.
func (a Adjust) Scale(max int) int {
	return a.Value * max / 100
}
