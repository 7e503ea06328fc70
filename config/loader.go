package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// ProjectConfigFile is the name of the project-level config file,
	// found by walking up from the working directory.
	ProjectConfigFile = ".showroom-tool.yaml"
	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/showroom-tool"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Environment variables recognized by the loader.
const (
	EnvProvider    = "LLM_PROVIDER"
	EnvModel       = "LLM_MODEL"
	EnvTemperature = "LLM_TEMPERATURE"
	EnvCacheDir    = "SHOWROOM_CACHE_DIR"
	EnvWorkspace   = "SHOWROOM_WORKSPACE"
)

// Loader resolves configuration with layered precedence.
type Loader struct {
	logger *slog.Logger

	// workDir is where the project-file walk starts; empty means the
	// current working directory.
	workDir string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithWorkDir sets the directory the project-config search starts from.
func WithWorkDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.workDir = dir
	}
}

// NewLoader creates a configuration loader.
func NewLoader(logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves configuration with layered precedence, lowest first:
// 1. Built-in defaults
// 2. Project config (.showroom-tool.yaml in working or parent directories)
// 3. User config (~/.config/showroom-tool/config.yaml)
// 4. Environment variables
// Command-line flags are applied by the caller on top of the result.
func (l *Loader) Load() (*Settings, error) {
	settings := DefaultSettings()

	if projectPath := l.findProjectConfig(); projectPath != "" {
		if layer, err := LoadFromFile(projectPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectPath))
			settings.Merge(layer)
		} else {
			l.logger.Warn("Failed to load project config",
				slog.String("path", projectPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	userPath := l.userConfigPath()
	if layer, err := LoadFromFile(userPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userPath))
		settings.Merge(layer)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config",
			slog.String("path", userPath), slog.String("error", err.Error()))
	}

	if err := l.applyEnv(settings); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// applyEnv overlays recognized environment variables.
func (l *Loader) applyEnv(settings *Settings) error {
	if v := os.Getenv(EnvProvider); v != "" {
		settings.LLM.Provider = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		settings.LLM.Model = v
	}
	if v := os.Getenv(EnvTemperature); v != "" {
		temp, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvTemperature, err)
		}
		settings.LLM.Temperature = temp
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		settings.Cache.Dir = v
	}
	if v := os.Getenv(EnvWorkspace); v != "" {
		settings.Output.Workspace = v
	}
	return nil
}

// userConfigPath returns the path to the user config file.
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for the project config in the working
// directory and its parents.
func (l *Loader) findProjectConfig() string {
	dir := l.workDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}

	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
