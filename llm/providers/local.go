package providers

import (
	"net/http"
	"os"

	"github.com/rhpds/showroom-tool/llm"
)

// LocalProvider targets a self-hosted OpenAI-compatible server such as
// vLLM, Ollama, or llama.cpp. Unlike the cloud providers it ships no
// default endpoint: the base URL must come from configuration.
type LocalProvider struct {
	OpenAIProvider // shared chat completions codec
}

func init() {
	llm.RegisterProvider(&LocalProvider{})
}

// Name returns the provider identifier.
func (l *LocalProvider) Name() string {
	return "local"
}

// BuildURL constructs the endpoint from the configured base URL.
func (l *LocalProvider) BuildURL(baseURL string) string {
	if baseURL == "" {
		baseURL = os.Getenv("LOCAL_OPENAI_BASE_URL")
	}
	return l.OpenAIProvider.BuildURL(baseURL)
}

// SetHeaders adds authentication headers when the server requires them.
func (l *LocalProvider) SetHeaders(req *http.Request) {
	if apiKey := os.Getenv("LOCAL_OPENAI_API_KEY"); apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
}
