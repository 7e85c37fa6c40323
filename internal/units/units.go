package units

import (
	"fmt"
	"math"
	"strings"
)

// Temperature unit preferences.
const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
)

// ParseUnit normalizes a unit preference. Empty means Celsius.
func ParseUnit(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c", "celsius", "si", "metric":
		return Celsius, nil
	case "f", "fahrenheit", "us", "imperial":
		return Fahrenheit, nil
	default:
		return "", fmt.Errorf("unknown temperature unit %q (allowed: celsius, fahrenheit)", s)
	}
}

// Convert converts a Celsius value into unit. Unknown units are treated as Celsius.
func Convert(celsius float64, unit string) float64 {
	if unit == Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}

// Symbol returns the display symbol for unit.
func Symbol(unit string) string {
	if unit == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// Format renders a Celsius value in the preferred unit, rounded to a whole
// degree, with sep between the number and the symbol.
func Format(celsius float64, unit string, sep string) string {
	v := math.Floor(Convert(celsius, unit) + 0.5)
	if v == 0 {
		v = 0 // no "-0"
	}
	return fmt.Sprintf("%.0f%s%s", v, sep, Symbol(unit))
}
