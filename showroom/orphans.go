package showroom

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// OrphanPages returns page files present under the checkout's pages
// tree but unreachable from the navigation's top-level entries, sorted
// by path. Authors use the list to spot content that would silently be
// left out of an analysis.
func OrphanPages(dir string, referenced []string) ([]string, error) {
	pagesDir := filepath.Join(dir, PagesDir)
	matches, err := doublestar.FilepathGlob(filepath.Join(pagesDir, "**", "*.adoc"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan pages: %w", err)
	}

	seen := make(map[string]bool, len(referenced))
	for _, ref := range referenced {
		seen[filepath.ToSlash(ref)] = true
	}

	var orphans []string
	for _, match := range matches {
		rel, err := filepath.Rel(pagesDir, match)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if !seen[rel] {
			orphans = append(orphans, rel)
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}
