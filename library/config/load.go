// Package config locates and loads the server configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/Laisky/searxng-mcp/library/log"
)

const (
	// EnvConfigPath names the environment variable consulted when no --config flag is given.
	EnvConfigPath = "SEARXNG_MCP_CONFIG"
	// DefaultConfigPath is used when neither the flag nor the environment variable is set.
	DefaultConfigPath = "searxng-config/config.json"
)

// ResolvePath picks the configuration file path.
// flagPath wins, then $SEARXNG_MCP_CONFIG, then DefaultConfigPath.
func ResolvePath(flagPath string) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultConfigPath
}

// LoadFromFile merges cfgPath into the shared configuration.
// A missing file is not an error, built-in defaults apply and loaded is false.
func LoadFromFile(cfgPath string) (loaded bool, err error) {
	if _, err = os.Stat(cfgPath); err != nil {
		if os.IsNotExist(err) {
			log.Logger.Info("configuration file not found, using defaults",
				zap.String("config", cfgPath))
			return false, nil
		}
		return false, errors.Wrapf(err, "stat config file `%s`", cfgPath)
	}

	gconfig.Shared.Set("cfg_dir", filepath.Dir(cfgPath))
	if err = gconfig.Shared.LoadFromFile(cfgPath); err != nil {
		return false, errors.Wrapf(err, "load config file `%s`", cfgPath)
	}

	log.Logger.Info("load configuration",
		zap.String("config", cfgPath))
	return true, nil
}
