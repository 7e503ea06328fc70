// Package showroom models a Showroom lab repository: the site-level
// metadata, the ordered module list declared by its Antora navigation,
// and the structured analyses derived from it.
package showroom

// Well-known paths inside a Showroom repository. The content layout is
// Antora-style: one ROOT module holding the navigation file and pages.
const (
	// SiteConfigFile names the lab, relative to the repository root.
	SiteConfigFile = "default-site.yml"

	// ContentRoot is the Antora ROOT module directory.
	ContentRoot = "content/modules/ROOT"

	// NavigationPath declares reading order and page membership.
	NavigationPath = "content/modules/ROOT/nav.adoc"

	// PagesDir holds the page files referenced by the navigation.
	PagesDir = "content/modules/ROOT/pages"
)

// Module is one page's extracted title, raw text, and size metrics.
// Modules are created once during assembly and never mutated.
type Module struct {
	Title      string `json:"title"`
	Filename   string `json:"filename"`
	RawContent string `json:"raw_content"`
	WordCount  int    `json:"word_count"`
	LineCount  int    `json:"line_count"`
}

// Lab is the normalized in-memory representation of one lab repository
// at one revision. Modules preserves navigation order. The analysis
// fields are independent of each other and populated on demand; a nil
// field means that analysis has not been run.
type Lab struct {
	Name           string   `json:"name"`
	SourceLocation string   `json:"source_location"`
	Revision       string   `json:"revision"`
	Modules        []Module `json:"modules"`

	Summary     *Summary     `json:"summary,omitempty"`
	Review      *Review      `json:"review,omitempty"`
	Description *Description `json:"description,omitempty"`
}

// TotalWords sums the word counts of all modules.
func (l *Lab) TotalWords() int {
	total := 0
	for _, m := range l.Modules {
		total += m.WordCount
	}
	return total
}

// TotalLines sums the line counts of all modules.
func (l *Lab) TotalLines() int {
	total := 0
	for _, m := range l.Modules {
		total += m.LineCount
	}
	return total
}
