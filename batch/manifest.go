// Package batch runs one analysis kind across many lab repositories
// with a bounded worker pool, saving each result into the workspace.
package batch

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rhpds/showroom-tool/analysis"
)

// DefaultWorkers bounds the pool when the manifest does not say.
const DefaultWorkers = 4

// Repo is one repository entry in a manifest.
type Repo struct {
	URL string `yaml:"url"`
	Ref string `yaml:"ref,omitempty"`
}

// Manifest describes a batch run: the repositories to analyze, the
// analysis kind to run on each, and the worker-pool size.
type Manifest struct {
	Repos   []Repo `yaml:"repos"`
	Kind    string `yaml:"kind,omitempty"`
	Workers int    `yaml:"workers,omitempty"`
}

// LoadManifest reads, parses, and validates a manifest file.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML, applies defaults (kind summary,
// DefaultWorkers), and validates the result.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}

	if m.Kind == "" {
		m.Kind = string(analysis.KindSummary)
	}
	if m.Workers == 0 {
		m.Workers = DefaultWorkers
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks that the manifest lists at least one repo with a URL,
// names a known analysis kind, and has a positive worker count.
func (m Manifest) Validate() error {
	if len(m.Repos) == 0 {
		return errors.New("manifest lists no repos")
	}
	for i, repo := range m.Repos {
		if repo.URL == "" {
			return fmt.Errorf("repo %d has no url", i+1)
		}
	}

	switch analysis.Kind(m.Kind) {
	case analysis.KindSummary, analysis.KindReview, analysis.KindDescription:
	default:
		return fmt.Errorf("unknown analysis kind %q", m.Kind)
	}

	if m.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", m.Workers)
	}
	return nil
}
