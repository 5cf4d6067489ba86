package cmd

import (
	"fmt"
	"net/url"
	"strings"

	errors "github.com/Laisky/errors/v2"

	"github.com/Laisky/searxng-mcp/library/config"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// validateStartupConfig validates startup configuration from the shared config source.
// It returns an error when any configured value is malformed or violates constraints.
func validateStartupConfig() error {
	return validateStartupConfigWithGetter(config.SharedGetter)
}

// validateStartupConfigWithGetter validates startup configuration via a key-value getter.
// Unset keys are valid, they fall back to defaults.
func validateStartupConfigWithGetter(get config.Getter) error {
	if get == nil {
		return errors.New("config getter is nil")
	}

	validationErrs := make([]string, 0)

	validateSearxngConfig(get, &validationErrs)
	validateResearchConfig(get, &validationErrs)
	validateLoggingConfig(get, &validationErrs)
	validateMCPToolsConfig(get, &validationErrs)

	if len(validationErrs) == 0 {
		return nil
	}

	return errors.Errorf("invalid configuration:\n - %s", strings.Join(validationErrs, "\n - "))
}

func validateSearxngConfig(get config.Getter, errs *[]string) {
	validateOptionalHTTPURL(get, config.KeySearxngURL, errs)
	validateOptionalFloatMin(get, config.KeySearxngTimeout, 0, false, errs)
	validateOptionalStringNonEmpty(get, config.KeySearxngLanguage, errs)
	validateOptionalFloatMin(get, config.KeySearxngRateLimit, 0, true, errs)
	validateOptionalIntMin(get, config.KeySearxngRateBurst, 1, errs)
}

func validateResearchConfig(get config.Getter, errs *[]string) {
	validateOptionalFloatMin(get, config.KeyResearchFanoutTimeout, 0, true, errs)
}

func validateLoggingConfig(get config.Getter, errs *[]string) {
	raw := get(config.KeyLoggingLevel)
	if raw != nil {
		level, ok := raw.(string)
		if !ok || !containsFold(validLogLevels, level) {
			appendValidationError(errs, "%s must be one of [%s]",
				config.KeyLoggingLevel, strings.Join(validLogLevels, ", "))
		}
	}

	if raw := get(config.KeyLoggingFile); raw != nil {
		if _, ok := raw.(string); !ok {
			appendValidationError(errs, "%s must be a string path", config.KeyLoggingFile)
		}
	}
}

// validateMCPToolsConfig validates MCP tool toggles.
func validateMCPToolsConfig(get config.Getter, errs *[]string) {
	for _, name := range []string{"search", "search_media", "research_topic"} {
		validateOptionalBool(get, "mcp.tools."+name+".enabled", errs)
	}
}

// validateOptionalBool validates an optionally configured boolean key.
func validateOptionalBool(get config.Getter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	if _, ok := config.ParseBool(raw); !ok {
		appendValidationError(errs, "%s must be a boolean", key)
	}
}

// validateOptionalIntMin validates an optionally configured integer key with a minimum constraint.
func validateOptionalIntMin(get config.Getter, key string, min int, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, ok := config.ParseInt(raw)
	if !ok {
		appendValidationError(errs, "%s must be an integer", key)
		return
	}

	if value < min {
		appendValidationError(errs, "%s must be >= %d", key, min)
	}
}

// validateOptionalFloatMin validates an optionally configured number against a lower bound.
func validateOptionalFloatMin(get config.Getter, key string, min float64, includeMin bool, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, ok := config.ParseFloat(raw)
	if !ok {
		appendValidationError(errs, "%s must be a number", key)
		return
	}

	switch {
	case includeMin && value < min:
		appendValidationError(errs, "%s must be >= %v", key, min)
	case !includeMin && value <= min:
		appendValidationError(errs, "%s must be > %v", key, min)
	}
}

// validateOptionalHTTPURL validates an optionally configured absolute http(s) URL.
func validateOptionalHTTPURL(get config.Getter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, ok := raw.(string)
	if !ok {
		appendValidationError(errs, "%s must be a string URL", key)
		return
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		appendValidationError(errs, "%s must not be empty", key)
		return
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		appendValidationError(errs, "%s must be a valid http(s) URL", key)
	}
}

// validateOptionalStringNonEmpty validates an optionally configured non-empty string key.
func validateOptionalStringNonEmpty(get config.Getter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, ok := raw.(string)
	if !ok || strings.TrimSpace(value) == "" {
		appendValidationError(errs, "%s must be a non-empty string", key)
	}
}

func containsFold(options []string, value string) bool {
	value = strings.TrimSpace(value)
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return true
		}
	}
	return false
}

// appendValidationError appends a formatted validation error message.
func appendValidationError(errs *[]string, format string, args ...any) {
	*errs = append(*errs, fmt.Sprintf(format, args...))
}
