package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rhpds/showroom-tool/llm"
	"github.com/rhpds/showroom-tool/prompt"
	"github.com/rhpds/showroom-tool/showroom"
)

// Options selects the backend and shapes one analysis run. The zero
// value defers everything except Provider to built-in defaults.
type Options struct {
	// Provider names the catalog endpoint to invoke. Required.
	Provider string

	// Model overrides the endpoint's default model when non-empty.
	Model string

	// Temperature is the sampling temperature in [0, 1]. nil uses the
	// provider default.
	Temperature *float64

	// BasePrompt replaces the built-in base instruction template when
	// non-empty.
	BasePrompt string

	// Hints are optional labeled context passed to the prompt assembler.
	Hints map[string]any
}

// RunMeta records what one analysis run cost and where it went.
type RunMeta struct {
	RequestID string
	Provider  string
	Model     string
	Duration  time.Duration
	Tokens    llm.TokenUsage
}

// Analyzer produces validated structured results from assembled labs.
type Analyzer struct {
	client *llm.Client
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates an analyzer sending requests through the given
// client. Retry policy belongs to the client; the analyzer itself
// never retries.
func NewAnalyzer(client *llm.Client, opts ...Option) *Analyzer {
	a := &Analyzer{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DefaultBasePrompt returns the built-in base instruction template for
// a kind.
func DefaultBasePrompt(kind Kind) string {
	switch kind {
	case KindReview:
		return prompt.DefaultReviewPrompt
	case KindDescription:
		return prompt.DefaultDescriptionPrompt
	default:
		return prompt.DefaultSummaryPrompt
	}
}

// Bundle assembles the full prompt for a kind without invoking any
// model. Commands use it for dry-run inspection; the analyzer uses it
// for the real call, so what you inspect is exactly what is sent.
func Bundle(kind Kind, lab *showroom.Lab, opts Options) (prompt.Bundle, error) {
	fields, err := Fields(kind)
	if err != nil {
		return prompt.Bundle{}, err
	}

	base := opts.BasePrompt
	if base == "" {
		base = DefaultBasePrompt(kind)
	}

	return prompt.Build(base, fields, lab, opts.Hints), nil
}

// Summary runs the summary analysis against a lab.
func (a *Analyzer) Summary(ctx context.Context, lab *showroom.Lab, opts Options) (*showroom.Summary, *RunMeta, error) {
	var out showroom.Summary
	meta, err := a.run(ctx, lab, KindSummary, opts, &out)
	if err != nil {
		return nil, nil, err
	}
	return &out, meta, nil
}

// Review runs the scored review analysis against a lab.
func (a *Analyzer) Review(ctx context.Context, lab *showroom.Lab, opts Options) (*showroom.Review, *RunMeta, error) {
	var out showroom.Review
	meta, err := a.run(ctx, lab, KindReview, opts, &out)
	if err != nil {
		return nil, nil, err
	}
	return &out, meta, nil
}

// Description runs the catalog description analysis against a lab.
func (a *Analyzer) Description(ctx context.Context, lab *showroom.Lab, opts Options) (*showroom.Description, *RunMeta, error) {
	var out showroom.Description
	meta, err := a.run(ctx, lab, KindDescription, opts, &out)
	if err != nil {
		return nil, nil, err
	}
	return &out, meta, nil
}

// validater is implemented by every analysis result type.
type validater interface {
	Validate() error
}

// run assembles the prompt, invokes the backend once, and decodes the
// answer into out. Model output is validated, never coerced: any
// schema violation surfaces as ErrMalformedResponse with the value
// untouched by clamping or defaulting.
func (a *Analyzer) run(ctx context.Context, lab *showroom.Lab, kind Kind, opts Options, out validater) (*RunMeta, error) {
	if opts.Provider == "" {
		return nil, errors.New("provider is required")
	}
	if opts.Temperature != nil && (*opts.Temperature < 0 || *opts.Temperature > 1) {
		return nil, fmt.Errorf("temperature %v outside [0, 1]", *opts.Temperature)
	}

	bundle, err := Bundle(kind, lab, opts)
	if err != nil {
		return nil, err
	}

	schema, err := JSONSchema(kind)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := a.client.Complete(ctx, llm.Request{
		Provider:    opts.Provider,
		Model:       opts.Model,
		Temperature: opts.Temperature,
		Schema:      schema,
		Messages: []llm.Message{
			{Role: "system", Content: bundle.System},
			{Role: "user", Content: bundle.User},
		},
	})
	if err != nil {
		return nil, classifyInvokeError(err)
	}

	raw := llm.ExtractJSON(resp.Content)
	if raw == "" {
		return nil, fmt.Errorf("%w: no JSON object in model output", ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	meta := &RunMeta{
		RequestID: resp.RequestID,
		Provider:  opts.Provider,
		Model:     resp.Model,
		Duration:  time.Since(start),
		Tokens:    resp.Usage,
	}

	a.logger.Debug("analysis complete",
		slog.String("kind", string(kind)),
		slog.String("request_id", meta.RequestID),
		slog.String("provider", meta.Provider),
		slog.String("model", meta.Model),
		slog.Int("total_tokens", meta.Tokens.TotalTokens),
		slog.Duration("duration", meta.Duration))

	return meta, nil
}
