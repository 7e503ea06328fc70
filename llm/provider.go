package llm

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
)

// ResponseSchema asks a provider for schema-constrained JSON output.
// Providers without structured-output support ignore it; the behavioral
// prompt plus JSON extraction still steer the shape.
type ResponseSchema struct {
	// Name labels the schema in the provider request.
	Name string

	// Schema is the JSON Schema document describing the expected output.
	Schema json.RawMessage
}

// Provider adapts one model backend: URL construction, authentication,
// and the request/response wire format. Implementations register
// themselves in init and are selected by name through the endpoint
// catalog, never by string branching at call sites.
type Provider interface {
	// Name returns the provider identifier (e.g. "gemini", "anthropic").
	Name() string

	// BuildURL constructs the full API endpoint URL from the
	// configured base.
	BuildURL(baseURL string) string

	// SetHeaders adds provider-specific authentication headers.
	SetHeaders(req *http.Request)

	// BuildRequestBody creates the JSON request body. temperature is
	// nil to use the provider default; maxTokens 0 likewise. schema is
	// nil when no structured output is requested.
	BuildRequestBody(model string, messages []Message, temperature *float64, maxTokens int,
		schema *ResponseSchema) ([]byte, error)

	// ParseResponse extracts the completion from provider-specific
	// JSON, surfacing refusals as errors.
	ParseResponse(body []byte, model string) (*Response, error)
}

// providerRegistry holds registered providers.
var (
	providerRegistry = make(map[string]Provider)
	providerMu       sync.RWMutex
)

// RegisterProvider adds a provider to the registry.
func RegisterProvider(p Provider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	providerRegistry[p.Name()] = p
}

// GetProvider retrieves a provider by name, or nil if unregistered.
func GetProvider(name string) Provider {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return providerRegistry[name]
}

// ListProviders returns all registered provider names, sorted.
func ListProviders() []string {
	providerMu.RLock()
	defer providerMu.RUnlock()

	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
