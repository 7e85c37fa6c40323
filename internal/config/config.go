package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/christophergentle/tempcurve/internal/tempcurve"
	"github.com/christophergentle/tempcurve/internal/units"
)

type Config struct {
	Chart    ChartConfig    `yaml:"chart"`
	AWS      AWSConfig      `yaml:"aws"`
	Settings SettingsConfig `yaml:"settings"`
}

type ChartConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	TopPadding       float64 `yaml:"top_padding"`
	BottomPadding    float64 `yaml:"bottom_padding"`
	LabelY           float64 `yaml:"label_y"`
	Unit             string  `yaml:"unit"`
	TransitionMillis int     `yaml:"transition_ms"`
	FrameRate        int     `yaml:"frame_rate"`
	Background       string  `yaml:"background"`
	FontPath         string  `yaml:"font_path"`
}

type AWSConfig struct {
	ForecastTable string `yaml:"forecast_table"`
	Bucket        string `yaml:"bucket"`
	Prefix        string `yaml:"prefix"`
}

type SettingsConfig struct {
	AppEnv   string `yaml:"app_env"`
	LogLevel string `yaml:"log_level"`
	DryRun   bool   `yaml:"dry_run"`
}

// Layout returns the chart geometry.
func (c ChartConfig) Layout() tempcurve.Layout {
	return tempcurve.Layout{
		Width:         c.Width,
		Height:        c.Height,
		TopPadding:    c.TopPadding,
		BottomPadding: c.BottomPadding,
		LabelY:        c.LabelY,
	}
}

// TransitionDuration returns the animation length.
func (c ChartConfig) TransitionDuration() time.Duration {
	return time.Duration(c.TransitionMillis) * time.Millisecond
}

// FrameInterval returns the time between two animation frames.
func (c ChartConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// LoadConfig loads configuration from a yaml file
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found. Please copy config.example.yaml to config.yaml", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes yaml configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var config Config
	config.applyDefaults()
	return &config
}

func (c *Config) applyDefaults() {
	if c.Chart.Width == 0 {
		c.Chart.Width = 375
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = tempcurve.DefaultHeight
	}
	if c.Chart.TopPadding == 0 {
		c.Chart.TopPadding = tempcurve.DefaultTopPadding
	}
	if c.Chart.BottomPadding == 0 {
		c.Chart.BottomPadding = tempcurve.DefaultBottomPadding
	}
	if c.Chart.LabelY == 0 {
		c.Chart.LabelY = tempcurve.DefaultLabelY
	}
	if c.Chart.Unit == "" {
		c.Chart.Unit = units.Celsius
	}
	if c.Chart.TransitionMillis == 0 {
		c.Chart.TransitionMillis = int(tempcurve.DefaultTransitionDuration / time.Millisecond)
	}
	if c.Chart.FrameRate == 0 {
		c.Chart.FrameRate = 60
	}
	if c.Chart.Background == "" {
		c.Chart.Background = "#2b5876"
	}
	if c.AWS.Prefix == "" {
		c.AWS.Prefix = "tempcurve"
	}
	if c.Settings.AppEnv == "" {
		c.Settings.AppEnv = "dev"
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %vx%v", c.Chart.Width, c.Chart.Height)
	}
	if c.Chart.TopPadding+c.Chart.BottomPadding >= c.Chart.Height {
		return fmt.Errorf("chart paddings (%v + %v) leave no room in height %v",
			c.Chart.TopPadding, c.Chart.BottomPadding, c.Chart.Height)
	}
	unit, err := units.ParseUnit(c.Chart.Unit)
	if err != nil {
		return err
	}
	c.Chart.Unit = unit
	if c.Chart.TransitionMillis < 0 {
		return fmt.Errorf("transition_ms must not be negative, got %d", c.Chart.TransitionMillis)
	}
	if c.Chart.FrameRate <= 0 || c.Chart.FrameRate > 240 {
		return fmt.Errorf("frame_rate must be in (0, 240], got %d", c.Chart.FrameRate)
	}
	switch c.Settings.AppEnv {
	case "dev", "prod":
	default:
		return fmt.Errorf("invalid app_env %q (allowed: dev, prod)", c.Settings.AppEnv)
	}
	return nil
}

// LoadConfigFromEnv loads configuration from environment variables (fallback)
func LoadConfigFromEnv() (*Config, error) {
	config := &Config{
		Chart: ChartConfig{
			Width:            parseFloatWithDefault(os.Getenv("TEMPCURVE_WIDTH"), 0),
			Unit:             os.Getenv("TEMPCURVE_UNIT"),
			TransitionMillis: parseIntWithDefault(os.Getenv("TEMPCURVE_TRANSITION_MS"), 0),
			FontPath:         os.Getenv("TEMPCURVE_FONT"),
		},
		AWS: AWSConfig{
			ForecastTable: os.Getenv("FORECAST_TABLE"),
			Bucket:        os.Getenv("CHART_BUCKET"),
			Prefix:        os.Getenv("CHART_PREFIX"),
		},
		Settings: SettingsConfig{
			AppEnv:   os.Getenv("APP_ENV"),
			LogLevel: os.Getenv("LOG_LEVEL"),
			DryRun:   parseBoolWithDefault(os.Getenv("DRY_RUN"), false),
		},
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}

	if exe, err := os.Executable(); err == nil {
		configPath := filepath.Join(filepath.Dir(exe), "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	return "config.yaml"
}

// parseIntWithDefault parses an integer with a default value
func parseIntWithDefault(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseFloatWithDefault(value string, defaultValue float64) float64 {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// parseBoolWithDefault parses a boolean with a default value
func parseBoolWithDefault(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
