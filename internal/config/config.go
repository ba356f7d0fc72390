// Package config loads the wtstatus configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputText and OutputJSON are the supported output modes.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// AppConfig defines the global wtstatus configuration options.
type AppConfig struct {
	GitPath       string        // Git binary override; empty means "git" from PATH
	DebugLog      string        // Path to the debug log file
	Output        string        // Output mode: "text" or "json"
	NoColor       bool          // Disable styled output even on a terminal
	WatchDebounce time.Duration // Debounce window for watch mode refreshes
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Output:        OutputText,
		WatchDebounce: 600 * time.Millisecond,
	}
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration from a YAML file. With an
// empty path the default locations under the config directory are tried;
// a missing file yields the defaults, a malformed one an error.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string

	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		configBase := filepath.Join(getConfigDir(), "wtstatus")
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	cfg := DefaultConfig()

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path comes from the user's own config flag or directory
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
		}

		applyYAML(cfg, yamlData)
		break
	}

	return cfg, nil
}

func applyYAML(cfg *AppConfig, data map[string]any) {
	if v, ok := data["git_path"].(string); ok {
		cfg.GitPath = strings.TrimSpace(v)
	}
	if v, ok := data["debug_log"].(string); ok {
		cfg.DebugLog = strings.TrimSpace(v)
	}
	if v, ok := data["output"].(string); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case OutputText:
			cfg.Output = OutputText
		case OutputJSON:
			cfg.Output = OutputJSON
		}
	}
	cfg.NoColor = coerceBool(data["no_color"], cfg.NoColor)
	if ms := coerceInt(data["watch_debounce_ms"], 0); ms > 0 {
		cfg.WatchDebounce = time.Duration(ms) * time.Millisecond
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// ExpandPath expands "~" and environment variables in a user-supplied path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}
