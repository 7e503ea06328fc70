package showroom

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Prefix heading forms. Level-1 must not swallow level-2: "= " matches
// exactly one marker.
var (
	levelOneHeading = regexp.MustCompile(`^= +(\S.*)$`)
	levelTwoHeading = regexp.MustCompile(`^== +(\S.*)$`)
)

// ModuleOptions carries assembly context consulted during title
// fallback. StartPage is the filename of the lab's designated entry
// page; when that page has no heading of its own it borrows SiteTitle.
type ModuleOptions struct {
	SiteTitle string
	StartPage string
}

// ExtractModule loads one referenced page from pagesDir and derives its
// Module record: title via heading detection, raw content verbatim, and
// deterministic size metrics.
func ExtractModule(pagesDir, filename string, opts ModuleOptions) (Module, error) {
	data, err := os.ReadFile(filepath.Join(pagesDir, filename))
	if err != nil {
		return Module{}, fmt.Errorf("failed to read page %s: %w", filename, err)
	}
	raw := string(data)

	title := ExtractTitle(raw)
	if title == "" && opts.StartPage != "" && filename == opts.StartPage {
		title = opts.SiteTitle
	}

	return Module{
		Title:      title,
		Filename:   filename,
		RawContent: raw,
		WordCount:  countWords(raw),
		LineCount:  countLines(raw),
	}, nil
}

// ExtractTitle derives a page title from raw AsciiDoc content. The
// ladder, in order: level-1 prefix heading, level-1 underline heading,
// level-2 prefix heading, level-2 underline heading. A page with no
// recognizable heading yields the empty string; missing titles are a
// display concern, not an extraction error.
func ExtractTitle(raw string) string {
	lines := strings.Split(raw, "\n")
	if t := findPrefixHeading(lines, levelOneHeading); t != "" {
		return t
	}
	if t := findUnderlineHeading(lines, '='); t != "" {
		return t
	}
	if t := findPrefixHeading(lines, levelTwoHeading); t != "" {
		return t
	}
	if t := findUnderlineHeading(lines, '-'); t != "" {
		return t
	}
	return ""
}

func findPrefixHeading(lines []string, pattern *regexp.Regexp) string {
	for _, line := range lines {
		if m := pattern.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// findUnderlineHeading detects the two-line heading form: title text
// followed by a line of repeated marker characters at least as long as
// the text. Lines that open blocks, bullets, or comments are never
// heading text, which keeps listing-block delimiters ("----") from
// reading as underlines.
func findUnderlineHeading(lines []string, marker byte) string {
	for i := 0; i+1 < len(lines); i++ {
		text := strings.TrimSpace(lines[i])
		under := strings.TrimSpace(lines[i+1])
		if text == "" || len(under) < 2 || len(under) < len(text) {
			continue
		}
		if isNonHeadingText(text) {
			continue
		}
		if strings.Trim(under, string(marker)) != "" {
			continue
		}
		return text
	}
	return ""
}

func isNonHeadingText(text string) bool {
	for _, prefix := range []string{"=", "-", "*", ".", "[", "//", "image::", "include::"} {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

func countWords(raw string) int {
	return len(strings.Fields(raw))
}

// countLines counts line terminators plus one; empty content has zero
// lines.
func countLines(raw string) int {
	if raw == "" {
		return 0
	}
	return strings.Count(raw, "\n") + 1
}
