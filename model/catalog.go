// Package model maintains the catalog of LLM provider endpoints.
// Instead of hardcoding URLs and model names at call sites, callers
// select a provider by name and the catalog resolves it to a base URL,
// default model, and credential requirement.
package model

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Endpoint describes one provider backend.
type Endpoint struct {
	// Provider is the wire-format adapter name (openai, gemini,
	// anthropic, local).
	Provider string `json:"provider"`

	// BaseURL is the API base. Empty means the provider default.
	BaseURL string `json:"base_url,omitempty"`

	// Model is the default model identifier sent to the provider.
	Model string `json:"model"`

	// KeyEnv names the environment variable holding the API key.
	// Empty means no credential is required.
	KeyEnv string `json:"key_env,omitempty"`

	// MaxTokens caps response length when the caller does not.
	MaxTokens int `json:"max_tokens,omitempty"`

	// RequireBaseURL marks endpoints with no built-in default URL,
	// such as self-hosted OpenAI-compatible backends.
	RequireBaseURL bool `json:"require_base_url,omitempty"`
}

// Validate checks the endpoint definition is usable.
func (e *Endpoint) Validate() error {
	if e.Provider == "" {
		return fmt.Errorf("endpoint has no provider")
	}
	if e.Model == "" {
		return fmt.Errorf("endpoint %s has no model", e.Provider)
	}
	if e.RequireBaseURL && e.BaseURL == "" {
		return fmt.Errorf("endpoint %s has no base URL", e.Provider)
	}
	return nil
}

// Ready reports whether the endpoint can be invoked right now: the
// definition is valid and any required credential is present in the
// environment.
func (e *Endpoint) Ready() error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.KeyEnv != "" && os.Getenv(e.KeyEnv) == "" {
		return fmt.Errorf("%s is not set", e.KeyEnv)
	}
	return nil
}

// Catalog maps provider names to endpoint definitions.
type Catalog struct {
	mu        sync.RWMutex
	endpoints map[string]*Endpoint
}

// NewCatalog creates a catalog with the given endpoints.
func NewCatalog(endpoints map[string]*Endpoint) *Catalog {
	if endpoints == nil {
		endpoints = make(map[string]*Endpoint)
	}
	return &Catalog{endpoints: endpoints}
}

// NewDefaultCatalog returns the built-in endpoint definitions. Model
// identifiers can be overridden per provider through environment
// variables; the local endpoint is entirely environment-defined.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(map[string]*Endpoint{
		"openai": {
			Provider:  "openai",
			Model:     envOr("OPENAI_MODEL", "gpt-4o-2024-08-06"),
			KeyEnv:    "OPENAI_API_KEY",
			MaxTokens: 4096,
		},
		"gemini": {
			Provider:  "gemini",
			Model:     envOr("GEMINI_MODEL", "gemini-2.0-flash-exp"),
			KeyEnv:    "GEMINI_API_KEY",
			MaxTokens: 8192,
		},
		"anthropic": {
			Provider:  "anthropic",
			Model:     envOr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			KeyEnv:    "ANTHROPIC_API_KEY",
			MaxTokens: 8192,
		},
		"local": {
			Provider:       "local",
			BaseURL:        os.Getenv("LOCAL_OPENAI_BASE_URL"),
			Model:          os.Getenv("LOCAL_OPENAI_MODEL"),
			KeyEnv:         "LOCAL_OPENAI_API_KEY",
			MaxTokens:      4096,
			RequireBaseURL: true,
		},
	})
}

// Endpoint returns a copy of the named endpoint definition.
func (c *Catalog) Endpoint(name string) (*Endpoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ep, ok := c.endpoints[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (have: %s)",
			name, strings.Join(c.names(), ", "))
	}

	cp := *ep
	return &cp, nil
}

// SetEndpoint updates or adds an endpoint definition. The configuration
// layer uses this to apply file and flag overrides.
func (c *Catalog) SetEndpoint(name string, ep *Endpoint) error {
	if err := ep.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cp := *ep
	c.endpoints[name] = &cp
	return nil
}

// SetModel overrides the default model for a provider that is already
// in the catalog.
func (c *Catalog) SetModel(name, modelName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ep, ok := c.endpoints[name]
	if !ok {
		return fmt.Errorf("unknown provider %q", name)
	}
	ep.Model = modelName
	return nil
}

// ListEndpoints returns all configured provider names, sorted.
func (c *Catalog) ListEndpoints() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.names()
}

// names returns sorted provider names. Callers hold the lock.
func (c *Catalog) names() []string {
	names := make([]string, 0, len(c.endpoints))
	for name := range c.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// envOr returns the environment value or a default when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
