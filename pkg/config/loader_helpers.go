package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/odvcencio/selectsync/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeConfigParse, "parsing YAML")
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeConfigParse, "parsing YAML")
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Strings and numbers override when
// non-zero; booleans and the class prefix override whenever the key is
// present, so a file can switch a default off.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if fieldSet(raw, "widget", "class_prefix") {
		base.Widget.ClassPrefix = strings.TrimSpace(override.Widget.ClassPrefix)
	}
	if override.Widget.TriggerTemplate != "" {
		base.Widget.TriggerTemplate = override.Widget.TriggerTemplate
	}
	if fieldSet(raw, "widget", "max_width") {
		base.Widget.MaxWidth = override.Widget.MaxWidth
	}
	if fieldSet(raw, "widget", "max_height") {
		base.Widget.MaxHeight = override.Widget.MaxHeight
	}

	if fieldSet(raw, "bus", "enabled") {
		base.Bus.Enabled = override.Bus.Enabled
	}
	if override.Bus.URL != "" {
		base.Bus.URL = override.Bus.URL
	}
	if override.Bus.Name != "" {
		base.Bus.Name = override.Bus.Name
	}
	if override.Bus.SubjectPrefix != "" {
		base.Bus.SubjectPrefix = override.Bus.SubjectPrefix
	}
	if override.Bus.Timeout != 0 {
		base.Bus.Timeout = override.Bus.Timeout
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if fieldSet(raw, "metrics", "enabled") {
		base.Metrics.Enabled = override.Metrics.Enabled
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
