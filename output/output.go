// Package output renders fetch reports and analysis results as styled
// terminal text, indented JSON, or AsciiDoc documents.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/showroom"
)

// Format selects an output renderer.
type Format string

// The supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatAdoc Format = "adoc"
)

// ParseFormat resolves a format name from config or flags.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatAdoc:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (have: text, json, adoc)", s)
}

// Renderer writes fetch reports and analysis results in one format.
type Renderer struct {
	format Format
	styles *styles
}

// NewRenderer creates a renderer for the format.
func NewRenderer(format Format) *Renderer {
	return &Renderer{format: format, styles: defaultStyles()}
}

// FetchReport renders the lab overview and fetch diagnostics. AsciiDoc
// output applies to analysis results only.
func (r *Renderer) FetchReport(w io.Writer, lab *showroom.Lab, report *showroom.FetchReport) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, fetchPayload{Lab: overview(lab), Report: report})
	case FormatAdoc:
		return fmt.Errorf("adoc output does not apply to fetch reports")
	default:
		return r.textFetchReport(w, lab, report)
	}
}

// Summary renders a lab summary.
func (r *Renderer) Summary(w io.Writer, lab *showroom.Lab, result *showroom.Summary, meta *analysis.RunMeta) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatAdoc:
		return renderAdoc(w, summaryTemplate, adocContext{Lab: lab, Summary: result})
	default:
		return r.textSummary(w, lab, result, meta)
	}
}

// Review renders a scored lab review.
func (r *Renderer) Review(w io.Writer, lab *showroom.Lab, result *showroom.Review, meta *analysis.RunMeta) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatAdoc:
		return renderAdoc(w, reviewTemplate, adocContext{Lab: lab, Review: result})
	default:
		return r.textReview(w, lab, result, meta)
	}
}

// Description renders catalog description copy.
func (r *Renderer) Description(w io.Writer, lab *showroom.Lab, result *showroom.Description, meta *analysis.RunMeta) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatAdoc:
		return renderAdoc(w, descriptionTemplate, adocContext{Lab: lab, Description: result})
	default:
		return r.textDescription(w, lab, result, meta)
	}
}
