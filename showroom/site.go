package showroom

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SiteMeta is the site-level metadata read from default-site.yml.
type SiteMeta struct {
	Title     string
	StartPage string
}

// siteConfig mirrors the subset of default-site.yml this tool reads.
type siteConfig struct {
	Site struct {
		Title     string `yaml:"title"`
		StartPage string `yaml:"start_page"`
	} `yaml:"site"`
}

// ReadSiteMeta parses default-site.yml under dir. A missing file yields
// a zero SiteMeta and no error; whether that is fatal depends on the
// flow and is decided by the assembler.
func ReadSiteMeta(dir string) (SiteMeta, error) {
	data, err := os.ReadFile(filepath.Join(dir, SiteConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return SiteMeta{}, nil
		}
		return SiteMeta{}, fmt.Errorf("failed to read %s: %w", SiteConfigFile, err)
	}

	var cfg siteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteMeta{}, fmt.Errorf("failed to parse %s: %w", SiteConfigFile, err)
	}
	return SiteMeta{Title: cfg.Site.Title, StartPage: cfg.Site.StartPage}, nil
}
