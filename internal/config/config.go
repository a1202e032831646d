// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/linear"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// DefaultPath is used when no configuration file is given.
const DefaultPath = "./data/config.json"

// Colour modes accepted in the configuration.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = DefaultPath
)

// Default returns the configuration written when no file exists yet.
func Default() *model.Config {
	return &model.Config{
		DatabaseDir:      "./data",
		DatabaseFile:     "brainstormer.db",
		LogFolder:        "./logs",
		CommandLog:       "commands.log",
		ErrorLog:         "errors.log",
		InfoLog:          "info.log",
		LogRotationHours: 24,
		HistoryFile:      "./data/history",
		ColorMode:        ColorAuto,
		View:             linear.DefaultSettings().View(),
	}
}

// ConfigLoad loads the configuration from the JSON file at path, or from
// DefaultPath when path is empty. A missing file is created with defaults.
// Keys absent from the file keep their default values.
func ConfigLoad(path string) error {
	if path == "" {
		path = DefaultPath
	}
	configPath = path

	// Ensure the data directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := Default()
		if err := ConfigSave(cfg); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
		currentConfig = cfg
		return nil
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(file, cfg); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	if err := Normalize(cfg); err != nil {
		return fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	currentConfig = cfg
	return nil
}

// Normalize fills blank fields with defaults, clamps numeric ranges and
// validates the view settings. An unknown sort method is an error.
func Normalize(cfg *model.Config) error {
	def := Default()

	fill := func(v *string, d string) {
		if strings.TrimSpace(*v) == "" {
			*v = d
		}
	}
	fill(&cfg.DatabaseDir, def.DatabaseDir)
	fill(&cfg.DatabaseFile, def.DatabaseFile)
	fill(&cfg.LogFolder, def.LogFolder)
	fill(&cfg.CommandLog, def.CommandLog)
	fill(&cfg.ErrorLog, def.ErrorLog)
	fill(&cfg.InfoLog, def.InfoLog)
	fill(&cfg.HistoryFile, def.HistoryFile)

	if cfg.LogRotationHours <= 0 {
		cfg.LogRotationHours = def.LogRotationHours
	}

	switch strings.ToLower(cfg.ColorMode) {
	case ColorAlways, ColorNever:
		cfg.ColorMode = strings.ToLower(cfg.ColorMode)
	default:
		cfg.ColorMode = ColorAuto
	}

	v := &cfg.View
	fill(&v.SortMethod, def.View.SortMethod)
	if v.DirectionBias < -1 {
		v.DirectionBias = -1
	} else if v.DirectionBias > 1 {
		v.DirectionBias = 1
	}
	if v.DepthThreshold < 0 {
		v.DepthThreshold = 0
	}

	settings, err := linear.FromView(*v)
	if err != nil {
		return err
	}
	cfg.View = settings.View()
	return nil
}

// ConfigSave saves the provided configuration to the JSON file.
func ConfigSave(cfg *model.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}

// ConfigPath returns the file the configuration was loaded from.
func ConfigPath() string {
	return configPath
}

// DatabasePath joins the database directory and file name.
func DatabasePath(cfg *model.Config) string {
	return filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)
}
