package cvss

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rounding selects how scores are rounded to one decimal place.
type Rounding string

const (
	// RoundNearest rounds to the nearest one-decimal value, ties to even.
	// It is the default, and the empty Rounding behaves the same way.
	RoundNearest Rounding = "nearest"
	// RoundUp is the CVSS v3.1 Roundup function: the smallest one-decimal
	// value greater than or equal to the input.
	RoundUp Rounding = "roundup"
)

// ParseRounding converts a string to a Rounding.
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "roundup", "up", "ceil":
		return RoundUp, nil
	case "nearest", "round":
		return RoundNearest, nil
	default:
		return "", fmt.Errorf("unknown rounding policy: %s", s)
	}
}

func (r Rounding) roundFunc() func(float64) float64 {
	if r == RoundUp {
		return roundUp
	}
	return roundNearest
}

// roundUp works on round(x*100000) so that values like 4.000000000000001
// produced by float arithmetic are not pushed to 4.1.
func roundUp(x float64) float64 {
	n := int64(math.Round(x * 100000))
	if n%10000 == 0 {
		return float64(n) / 100000
	}
	return (math.Floor(float64(n)/10000) + 1) / 10
}

// roundNearest rounds the exact binary value of x, so a decimal such as 2.25
// that is stored exactly rounds to even, and 0.35 (stored slightly below)
// rounds down.
func roundNearest(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return math.Round(x*10) / 10
	}
	return v
}
