package showroom

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"
)

// xrefPattern captures the target of an AsciiDoc cross-reference macro,
// without its .adoc extension. Link text and attributes in the square
// brackets are ignored.
var xrefPattern = regexp.MustCompile(`\* xref:([^\[\]]+)\.adoc`)

// ParseNavigation reads an Antora navigation file and returns the
// ordered list of page filenames referenced by its top-level entries.
// Nested entries (** and deeper) are ignored: they point at partials or
// transcluded fragments, not standalone modules. A page referenced more
// than once keeps its first position only.
func ParseNavigation(navPath string) ([]string, error) {
	data, err := os.ReadFile(navPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", navPath, ErrNavigationNotFound)
		}
		return nil, fmt.Errorf("failed to read navigation %s: %w", navPath, err)
	}

	var refs []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "* xref:") {
			continue
		}
		m := xrefPattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		// Clean collapses equivalent path forms ("./intro" vs "intro")
		// so the seen set deduplicates on canonical filenames.
		filename := path.Clean(m[1]) + ".adoc"
		if seen[filename] {
			continue
		}
		seen[filename] = true
		refs = append(refs, filename)
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("%s: %w", navPath, ErrEmptyNavigation)
	}
	return refs, nil
}
