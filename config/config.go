// Package config provides layered configuration for showroom-tool.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the resolved tool configuration. It is assembled once by
// the Loader and passed down as a plain value; nothing consults files
// or the environment mid-pipeline.
type Settings struct {
	LLM    LLMSettings    `yaml:"llm"`
	Cache  CacheSettings  `yaml:"cache"`
	Output OutputSettings `yaml:"output"`

	// Prompts carries per-analysis base prompt overrides. Empty fields
	// fall back to the built-in templates.
	Prompts PromptSettings `yaml:"prompts"`

	// Temperatures carries per-analysis sampling overrides. Unset
	// fields fall back to llm.temperature.
	Temperatures TemperatureSettings `yaml:"temperatures"`
}

// LLMSettings configures the default model backend.
type LLMSettings struct {
	// Provider is the endpoint catalog name (openai, gemini,
	// anthropic, local).
	Provider string `yaml:"provider"`
	// Model overrides the provider's default model when non-empty.
	Model string `yaml:"model"`
	// Temperature is the default sampling temperature (0.0-1.0).
	Temperature float64 `yaml:"temperature"`
}

// CacheSettings configures the source checkout cache.
type CacheSettings struct {
	// Dir is the cache root. Empty means ~/.showroom-tool/cache.
	Dir string `yaml:"dir"`
	// Disabled forces volatile fetches that are discarded after use.
	Disabled bool `yaml:"disabled"`
}

// OutputSettings configures result presentation and persistence.
type OutputSettings struct {
	// Format selects the renderer: text, json, or adoc.
	Format string `yaml:"format"`
	// Workspace is the directory where results are saved.
	Workspace string `yaml:"workspace"`
}

// PromptSettings holds per-analysis base prompt overrides.
type PromptSettings struct {
	Summary     string `yaml:"summary"`
	Review      string `yaml:"review"`
	Description string `yaml:"description"`
}

// TemperatureSettings holds per-analysis temperature overrides.
// Pointers distinguish "not set" from an explicit zero.
type TemperatureSettings struct {
	Summary     *float64 `yaml:"summary"`
	Review      *float64 `yaml:"review"`
	Description *float64 `yaml:"description"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() *Settings {
	return &Settings{
		LLM: LLMSettings{
			Provider:    "gemini",
			Temperature: 0.1,
		},
		Output: OutputSettings{
			Format:    "text",
			Workspace: "workspace",
		},
	}
}

// Validate checks that the resolved configuration is usable.
func (s *Settings) Validate() error {
	if s.LLM.Provider == "" {
		return fmt.Errorf("llm.provider is required")
	}
	if s.LLM.Temperature < 0 || s.LLM.Temperature > 1 {
		return fmt.Errorf("llm.temperature must be between 0 and 1")
	}
	switch s.Output.Format {
	case "text", "json", "adoc":
	default:
		return fmt.Errorf("output.format must be text, json, or adoc (got %q)", s.Output.Format)
	}
	for kind, temp := range map[string]*float64{
		"summary":     s.Temperatures.Summary,
		"review":      s.Temperatures.Review,
		"description": s.Temperatures.Description,
	} {
		if temp != nil && (*temp < 0 || *temp > 1) {
			return fmt.Errorf("temperatures.%s must be between 0 and 1", kind)
		}
	}
	return nil
}

// PromptFor returns the configured base prompt override for an
// analysis kind, or "" when the built-in template should be used.
func (s *Settings) PromptFor(kind string) string {
	switch kind {
	case "summary":
		return s.Prompts.Summary
	case "review":
		return s.Prompts.Review
	case "description":
		return s.Prompts.Description
	}
	return ""
}

// TemperatureFor resolves the sampling temperature for an analysis
// kind: the per-kind override when set, otherwise the global default.
func (s *Settings) TemperatureFor(kind string) float64 {
	var override *float64
	switch kind {
	case "summary":
		override = s.Temperatures.Summary
	case "review":
		override = s.Temperatures.Review
	case "description":
		override = s.Temperatures.Description
	}
	if override != nil {
		return *override
	}
	return s.LLM.Temperature
}

// LoadFromFile reads one YAML configuration layer. The result contains
// only what the file sets, so merging preserves earlier layers.
func LoadFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &settings, nil
}

// Merge merges another layer into this one; the other layer wins for
// every value it explicitly sets.
func (s *Settings) Merge(other *Settings) {
	if other == nil {
		return
	}

	if other.LLM.Provider != "" {
		s.LLM.Provider = other.LLM.Provider
	}
	if other.LLM.Model != "" {
		s.LLM.Model = other.LLM.Model
	}
	if other.LLM.Temperature != 0 {
		s.LLM.Temperature = other.LLM.Temperature
	}

	if other.Cache.Dir != "" {
		s.Cache.Dir = other.Cache.Dir
	}
	if other.Cache.Disabled {
		s.Cache.Disabled = true
	}

	if other.Output.Format != "" {
		s.Output.Format = other.Output.Format
	}
	if other.Output.Workspace != "" {
		s.Output.Workspace = other.Output.Workspace
	}

	if other.Prompts.Summary != "" {
		s.Prompts.Summary = other.Prompts.Summary
	}
	if other.Prompts.Review != "" {
		s.Prompts.Review = other.Prompts.Review
	}
	if other.Prompts.Description != "" {
		s.Prompts.Description = other.Prompts.Description
	}

	if other.Temperatures.Summary != nil {
		s.Temperatures.Summary = other.Temperatures.Summary
	}
	if other.Temperatures.Review != nil {
		s.Temperatures.Review = other.Temperatures.Review
	}
	if other.Temperatures.Description != nil {
		s.Temperatures.Description = other.Temperatures.Description
	}
}
