package refdata

import (
	"math"
	"strconv"
	"strings"
)

// Coercion helpers for loosely-typed export cells. All of these are total:
// any input shape yields a value or an absent flag, never an error.

// IntSafe coerces a raw cell to an int. Boolean-ish and NaN-ish sentinels
// ("true", "false", "nan", "none", "") read as absent. Floats are accepted
// and truncated.
func IntSafe(s string) (int, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true", "false", "nan", "none", "":
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// FloatSafe coerces a raw cell to a float64 with the same sentinel handling
// as IntSafe.
func FloatSafe(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true", "false", "nan", "none", "":
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// QtySafe coerces a quantity cell for display: whole numbers render without a
// fraction, other numerics keep their float form, and anything uncoercible is
// passed through as the raw trimmed string.
func QtySafe(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	f, ok := FloatSafe(s)
	if !ok {
		return s
	}
	if f == math.Trunc(f) {
		return strconv.Itoa(int(f))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Truthy reports whether a flag cell reads as set. The exports use a mix of
// "1", "true" and "TRUE".
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// IntPtr converts a cell to a nullable integer for the output document.
func IntPtr(s string) *int {
	if n, ok := IntSafe(s); ok {
		return &n
	}
	return nil
}
