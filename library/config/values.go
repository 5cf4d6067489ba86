package config

import (
	"math"
	"strconv"
	"strings"

	gconfig "github.com/Laisky/go-config/v2"
)

// Getter retrieves a raw configuration value by dotted key path.
type Getter func(key string) any

// SharedGetter reads from the process-wide configuration.
func SharedGetter(key string) any {
	return gconfig.Shared.Get(key)
}

// Bool retrieves a boolean configuration value with a default fallback.
func Bool(get Getter, key string, def bool) bool {
	v, ok := ParseBool(get(key))
	if !ok {
		return def
	}
	return v
}

// ParseBool accepts booleans, numbers, and the usual textual spellings.
func ParseBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		return v != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		}
	}
	return false, false
}

// Int retrieves an integer configuration value with a default fallback.
func Int(get Getter, key string, def int) int {
	v, ok := ParseInt(get(key))
	if !ok {
		return def
	}
	return v
}

// ParseInt accepts integer-valued numbers and numeric strings.
// Fractional floats are rejected.
func ParseInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Float retrieves a floating point configuration value with a default fallback.
func Float(get Getter, key string, def float64) float64 {
	v, ok := ParseFloat(get(key))
	if !ok {
		return def
	}
	return v
}

// ParseFloat accepts any number and numeric strings.
func ParseFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// String retrieves a trimmed string configuration value, def when unset or blank.
func String(get Getter, key string, def string) string {
	v, ok := get(key).(string)
	if !ok {
		return def
	}
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
