package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/odvcencio/selectsync/pkg/errors"
)

// Default configuration values exported for documentation and validation
const (
	DefaultClassPrefix     = "ui-select"
	DefaultTriggerTemplate = `<a href="#"></a>`
	DefaultMaxWidth        = 200
	DefaultBusName         = "selectsync"
	DefaultSubjectPrefix   = "selectsync"
	DefaultBusTimeout      = 5 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
)

// Config represents the complete selectsync configuration
type Config struct {
	Widget  WidgetConfig  `yaml:"widget"`
	Bus     BusConfig     `yaml:"bus"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// WidgetConfig holds the defaults applied to every widget.
type WidgetConfig struct {
	ClassPrefix     string `yaml:"class_prefix"`
	TriggerTemplate string `yaml:"trigger_template"`
	// MaxWidth and MaxHeight bound the text preview, in columns and rows.
	// MaxHeight 0 means unlimited.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// BusConfig configures exporting change notifications.
type BusConfig struct {
	Enabled       bool          `yaml:"enabled"`
	URL           string        `yaml:"url"`
	Name          string        `yaml:"name"`
	SubjectPrefix string        `yaml:"subject_prefix"`
	Timeout       time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Widget: WidgetConfig{
			ClassPrefix:     DefaultClassPrefix,
			TriggerTemplate: DefaultTriggerTemplate,
			MaxWidth:        DefaultMaxWidth,
		},
		Bus: BusConfig{
			URL:           defaultNATSURL(),
			Name:          DefaultBusName,
			SubjectPrefix: DefaultSubjectPrefix,
			Timeout:       DefaultBusTimeout,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

func defaultNATSURL() string {
	if v := strings.TrimSpace(os.Getenv("NATS_URL")); v != "" {
		return v
	}
	return "nats://127.0.0.1:4222"
}

// Load loads configuration from default locations with proper precedence
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Load user config (~/.selectsync/config.yaml)
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".selectsync", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, wrapLoadError(err, userConfigPath)
		}
	}

	// Load project config (./.selectsync/config.yaml)
	projectConfigPath := filepath.Join(".", ".selectsync", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, wrapLoadError(err, projectConfigPath)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	path = expandHomeDir(path)
	if err := loadAndMerge(cfg, path); err != nil {
		return nil, wrapLoadError(err, path)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func wrapLoadError(err error, path string) error {
	code := apperrors.ErrCodeConfigLoad
	if apperrors.IsCode(err, apperrors.ErrCodeConfigParse) {
		code = apperrors.ErrCodeConfigParse
	}
	return apperrors.Wrap(err, code, "loading config").WithContext("path", path)
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("SELECTSYNC_CLASS_PREFIX"); ok {
		// An explicitly empty prefix disables class names.
		cfg.Widget.ClassPrefix = strings.TrimSpace(v)
	}
	if v := os.Getenv("SELECTSYNC_TRIGGER_TEMPLATE"); v != "" {
		cfg.Widget.TriggerTemplate = v
	}
	if n, ok := envInt("SELECTSYNC_MAX_WIDTH"); ok {
		cfg.Widget.MaxWidth = n
	}
	if n, ok := envInt("SELECTSYNC_MAX_HEIGHT"); ok {
		cfg.Widget.MaxHeight = n
	}
	if v := os.Getenv("SELECTSYNC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SELECTSYNC_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SELECTSYNC_BUS_URL"); v != "" {
		cfg.Bus.URL = v
	}
	if val, ok := envBool("SELECTSYNC_BUS_ENABLED"); ok {
		cfg.Bus.Enabled = val
	}
	if val, ok := envBool("SELECTSYNC_METRICS"); ok {
		cfg.Metrics.Enabled = val
	}
}

func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Validate checks the configuration for values no component can work with.
func (c *Config) Validate() error {
	if c.Widget.MaxWidth < 0 {
		return invalid("widget.max_width must not be negative", c.Widget.MaxWidth)
	}
	if c.Widget.MaxHeight < 0 {
		return invalid("widget.max_height must not be negative", c.Widget.MaxHeight)
	}
	if strings.TrimSpace(c.Widget.TriggerTemplate) == "" {
		return invalid("widget.trigger_template is required", c.Widget.TriggerTemplate)
	}
	if strings.ContainsAny(c.Widget.ClassPrefix, " \t\n") {
		return invalid("widget.class_prefix must be a single class name", c.Widget.ClassPrefix)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("logging.level must be debug, info, warn or error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return invalid("logging.format must be json or text", c.Logging.Format)
	}

	if c.Bus.Enabled {
		if strings.TrimSpace(c.Bus.URL) == "" {
			return invalid("bus.url is required when the bus is enabled", c.Bus.URL)
		}
		if c.Bus.Timeout <= 0 {
			return invalid("bus.timeout must be positive", c.Bus.Timeout)
		}
	}
	if strings.ContainsAny(c.Bus.SubjectPrefix, " *>") {
		return invalid("bus.subject_prefix must not contain spaces or wildcards", c.Bus.SubjectPrefix)
	}

	return nil
}

func invalid(msg string, value any) error {
	return apperrors.New(apperrors.ErrCodeConfigInvalid, msg).WithContext("value", value)
}
