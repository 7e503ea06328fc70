// Package main implements an offline OpenAI-compatible backend for
// showroom-tool's local provider. It answers chat completion requests
// with canned analysis results, routed by the response schema name the
// tool sends (lab_summary, lab_review, lab_description), so fetch,
// watch, and batch workflows can run without real credentials or
// token spend.
//
// Usage:
//
//	mock-llm -port 11434
//	LOCAL_OPENAI_BASE_URL=http://localhost:11434/v1 \
//	LOCAL_OPENAI_MODEL=mock \
//	LOCAL_OPENAI_API_KEY=mock \
//	showroom-tool summary --llm-provider local --dir .
//
// Built-in responses satisfy each result schema. A fixtures directory
// can override them with files named by schema (lab_review.json), and
// numbered files (lab_review.1.json, lab_review.2.json) are served in
// order on successive calls before the base file repeats. That makes
// iterating on a watch loop realistic: early saves can return weak
// reviews and later ones improved scores.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string `json:"type"`
	JSONSchema *struct {
		Name string `json:"name"`
	} `json:"json_schema,omitempty"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// builtins maps schema names to responses that validate against the
// corresponding result type.
var builtins = map[string]string{
	"lab_summary": `{
  "products": ["Red Hat OpenShift"],
  "audience": ["Platform engineers", "Developers"],
  "learning_objectives": [
    "Provision the lab environment",
    "Deploy and verify a sample workload"
  ],
  "summary": "A hands-on lab that walks through provisioning an environment, deploying a sample workload, and verifying the result. Canned response from mock-llm."
}`,
	"lab_review": `{
  "completeness_score": 7,
  "completeness_feedback": "Covers setup through verification; cleanup steps are thin.",
  "clarity_score": 8,
  "clarity_feedback": "Instructions are stepwise and easy to follow.",
  "technical_depth_score": 6,
  "technical_depth_feedback": "Explains what to run but rarely why it works.",
  "usefulness_score": 7,
  "usefulness_feedback": "Directly reusable in customer-facing sessions.",
  "business_value_score": 6,
  "business_value_feedback": "Product tie-in is present but understated.",
  "overall_review": "A solid lab with room to deepen the explanations. Canned response from mock-llm."
}`,
	"lab_description": `{
  "headline": "Deploy your first workload, start to finish",
  "products": ["Red Hat OpenShift"],
  "audience": ["Platform engineers", "Developers"],
  "lab_bullets": [
    "Provision a ready-to-use environment",
    "Deploy a sample workload",
    "Verify it end to end"
  ]
}`,
}

type server struct {
	fixtures map[string][]string

	mu    sync.Mutex
	calls map[string]int
	total int
}

func newServer(fixtures map[string][]string) *server {
	return &server{
		fixtures: fixtures,
		calls:    make(map[string]int),
	}
}

func main() {
	port := flag.Int("port", 11434, "port to listen on")
	fixtureDir := flag.String("fixtures", "", "directory of schema-named response files (optional)")
	flag.Parse()

	if *fixtureDir == "" {
		*fixtureDir = os.Getenv("SHOWROOM_MOCK_FIXTURES")
	}

	var fixtures map[string][]string
	if *fixtureDir != "" {
		var err error
		fixtures, err = loadFixtures(*fixtureDir)
		if err != nil {
			slog.Error("load fixtures", slog.String("dir", *fixtureDir), slog.String("error", err.Error()))
			os.Exit(1)
		}
		for name, seq := range fixtures {
			slog.Info("fixture loaded", slog.String("schema", name), slog.Int("responses", len(seq)))
		}
	}

	s := newServer(fixtures)
	addr := fmt.Sprintf(":%d", *port)
	slog.Info("mock-llm listening",
		slog.String("addr", addr),
		slog.String("base_url", fmt.Sprintf("http://localhost:%d/v1", *port)))

	if err := http.ListenAndServe(addr, s.routes()); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	// Both paths, so the base URL works with or without a /v1 suffix.
	mux.HandleFunc("/v1/chat/completions", s.handleChatCompletions)
	mux.HandleFunc("/chat/completions", s.handleChatCompletions)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	name := schemaName(req)
	content, ok := s.respond(name)
	if !ok {
		http.Error(w, fmt.Sprintf("no response for schema %q", name), http.StatusNotFound)
		return
	}

	promptLen := 0
	for _, m := range req.Messages {
		promptLen += len(m.Content)
	}

	model := req.Model
	if model == "" {
		model = "mock"
	}

	slog.Info("completion served",
		slog.String("schema", name),
		slog.String("model", model),
		slog.Int("prompt_bytes", promptLen))

	resp := chatResponse{
		ID:      fmt.Sprintf("mock-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []chatChoice{{
			Message:      chatMessage{Role: "assistant", Content: content},
			FinishReason: "stop",
		}},
		Usage: chatUsage{
			PromptTokens:     promptLen / 4,
			CompletionTokens: len(content) / 4,
			TotalTokens:      (promptLen + len(content)) / 4,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	bySchema := make(map[string]int, len(s.calls))
	for name, n := range s.calls {
		bySchema[name] = n
	}
	total := s.total
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"total_calls":     total,
		"calls_by_schema": bySchema,
	})
}

// schemaName extracts the structured-output schema name from a
// request, falling back to the model field for clients that send none.
func schemaName(req chatRequest) string {
	if req.ResponseFormat != nil && req.ResponseFormat.JSONSchema != nil {
		return req.ResponseFormat.JSONSchema.Name
	}
	return req.Model
}

// respond picks the next response for a schema: fixture sequences
// first, then the built-in canned result. The call count advances
// either way so /stats reflects real traffic.
func (s *server) respond(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.calls[name]
	s.calls[name]++
	s.total++

	if seq, ok := s.fixtures[name]; ok {
		if index >= len(seq) {
			index = len(seq) - 1
		}
		return seq[index], true
	}

	content, ok := builtins[name]
	return content, ok
}

// numberedFile matches sequence fixtures like lab_review.2.json.
var numberedFile = regexp.MustCompile(`^(.+)\.(\d+)\.json$`)

// loadFixtures reads schema-named JSON files from dir. Numbered files
// sort into a per-schema sequence; the unnumbered file, when present,
// is appended last and repeats once the sequence is exhausted.
func loadFixtures(dir string) (map[string][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	base := make(map[string]string)
	numbered := make(map[string]map[int]string)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("invalid JSON in %s", entry.Name())
		}

		if m := numberedFile.FindStringSubmatch(entry.Name()); m != nil {
			index, _ := strconv.Atoi(m[2])
			if numbered[m[1]] == nil {
				numbered[m[1]] = make(map[int]string)
			}
			numbered[m[1]][index] = string(data)
			continue
		}
		base[strings.TrimSuffix(entry.Name(), ".json")] = string(data)
	}

	fixtures := make(map[string][]string)
	for name, byIndex := range numbered {
		indices := make([]int, 0, len(byIndex))
		for i := range byIndex {
			indices = append(indices, i)
		}
		sort.Ints(indices)
		for _, i := range indices {
			fixtures[name] = append(fixtures[name], byIndex[i])
		}
	}
	for name, content := range base {
		fixtures[name] = append(fixtures[name], content)
	}

	if len(fixtures) == 0 {
		return nil, fmt.Errorf("no fixture files in %s", dir)
	}
	return fixtures, nil
}
