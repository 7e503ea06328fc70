package output

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/showroom"
)

// scoreBarWidth is the character width of a rendered score bar.
const scoreBarWidth = 10

// theme is the terminal palette.
type theme struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

func defaultTheme() theme {
	return theme{
		Primary: lipgloss.Color("#EE0000"), // Red Hat red
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// styles contains the pre-configured lipgloss styles for text output.
type styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Good    lipgloss.Style
	Fair    lipgloss.Style
	Poor    lipgloss.Style
}

func defaultStyles() *styles {
	t := defaultTheme()
	return &styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),

		Section: lipgloss.NewStyle().
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Primary),

		Muted: lipgloss.NewStyle().
			Foreground(t.Muted),

		Good: lipgloss.NewStyle().
			Foreground(t.Success),

		Fair: lipgloss.NewStyle().
			Foreground(t.Warning),

		Poor: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}

// scoreStyle picks the style tier for a score.
func (s *styles) scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 7.5:
		return s.Good
	case score >= 5:
		return s.Fair
	default:
		return s.Poor
	}
}

// scoreBar renders a fixed-width bar for a score in [0, 10].
func scoreBar(score float64) string {
	filled := int(math.Round(score))
	if filled < 0 {
		filled = 0
	}
	if filled > scoreBarWidth {
		filled = scoreBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled)
}

func (r *Renderer) textFetchReport(w io.Writer, lab *showroom.Lab, report *showroom.FetchReport) error {
	var sb strings.Builder

	sb.WriteString(r.styles.Title.Render(lab.Name))
	sb.WriteString("\n\n")

	sb.WriteString(r.styles.Label.Render("source"))
	sb.WriteString("    " + report.Source + "\n")
	sb.WriteString(r.styles.Label.Render("revision"))
	sb.WriteString("  " + report.Revision)
	switch {
	case report.Memoized:
		sb.WriteString(r.styles.Muted.Render(" (memoized)"))
	case report.Cached:
		sb.WriteString(r.styles.Muted.Render(" (cached)"))
	}
	sb.WriteString("\n")
	sb.WriteString(r.styles.Label.Render("modules"))
	sb.WriteString(fmt.Sprintf("   %d (%d words, %d lines)\n\n",
		len(lab.Modules), lab.TotalWords(), lab.TotalLines()))

	for i, mod := range lab.Modules {
		sb.WriteString(fmt.Sprintf("  %2d. %-40s %-28s %6d words %5d lines\n",
			i+1, mod.Title, mod.Filename, mod.WordCount, mod.LineCount))
	}

	if len(report.Orphans) > 0 {
		sb.WriteString("\n")
		sb.WriteString(r.styles.Fair.Render("orphan pages (on disk, not in navigation):"))
		sb.WriteString("\n")
		for _, orphan := range report.Orphans {
			sb.WriteString("  - " + orphan + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(r.styles.Muted.Render(fmt.Sprintf("fetched in %s", report.Duration.Round(time.Millisecond))))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Renderer) textSummary(w io.Writer, lab *showroom.Lab, result *showroom.Summary, meta *analysis.RunMeta) error {
	var sb strings.Builder

	sb.WriteString(r.styles.Title.Render("Lab Summary: " + lab.Name))
	sb.WriteString("\n\n")

	r.writeList(&sb, "Products", result.Products)
	r.writeList(&sb, "Audience", result.Audience)
	r.writeList(&sb, "Learning Objectives", result.LearningObjectives)

	sb.WriteString(r.styles.Section.Render("Summary"))
	sb.WriteString("\n")
	sb.WriteString(result.SummaryText)
	sb.WriteString("\n")

	r.writeMeta(&sb, meta)

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Renderer) textReview(w io.Writer, lab *showroom.Lab, result *showroom.Review, meta *analysis.RunMeta) error {
	var sb strings.Builder

	sb.WriteString(r.styles.Title.Render("Lab Review: " + lab.Name))
	sb.WriteString("\n\n")

	for _, dim := range result.Dimensions() {
		style := r.styles.scoreStyle(dim.Score)
		sb.WriteString(fmt.Sprintf("  %-16s %s %4.1f\n",
			dim.Label, style.Render(scoreBar(dim.Score)), dim.Score))
		sb.WriteString(r.styles.Muted.Render("      " + dim.Feedback))
		sb.WriteString("\n")
	}

	average := result.AverageScore()
	sb.WriteString(fmt.Sprintf("\n  %-16s %s %4.1f\n",
		"Average", r.styles.scoreStyle(average).Render(scoreBar(average)), average))

	sb.WriteString("\n")
	sb.WriteString(r.styles.Section.Render("Overall"))
	sb.WriteString("\n")
	sb.WriteString(result.OverallReview)
	sb.WriteString("\n")

	r.writeMeta(&sb, meta)

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Renderer) textDescription(w io.Writer, lab *showroom.Lab, result *showroom.Description, meta *analysis.RunMeta) error {
	var sb strings.Builder

	sb.WriteString(r.styles.Title.Render("Catalog Description: " + lab.Name))
	sb.WriteString("\n\n")

	sb.WriteString(result.Headline)
	sb.WriteString("\n\n")

	r.writeList(&sb, "Products", result.Products)
	r.writeList(&sb, "Audience", result.Audience)
	r.writeList(&sb, "What You Will Do", result.LabBullets)

	r.writeMeta(&sb, meta)

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeList writes one titled bullet list; empty lists are skipped.
func (r *Renderer) writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(r.styles.Section.Render(title))
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString("  - " + item + "\n")
	}
	sb.WriteString("\n")
}

// writeMeta appends the run footer when metadata is available.
func (r *Renderer) writeMeta(sb *strings.Builder, meta *analysis.RunMeta) {
	if meta == nil {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(r.styles.Muted.Render(fmt.Sprintf("%s/%s in %s (%d tokens)",
		meta.Provider, meta.Model, meta.Duration.Round(time.Millisecond), meta.Tokens.TotalTokens)))
	sb.WriteString("\n")
}
