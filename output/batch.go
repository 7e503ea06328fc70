package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rhpds/showroom-tool/batch"
)

// BatchSummary renders the per-repo outcome table for a batch run.
// AsciiDoc output applies to analysis results only.
func (r *Renderer) BatchSummary(w io.Writer, results []batch.Result) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, batchPayload(results))
	case FormatAdoc:
		return fmt.Errorf("adoc output does not apply to batch summaries")
	default:
		return r.textBatchSummary(w, results)
	}
}

// batchReport is the JSON shape of a batch outcome table.
type batchReport struct {
	Total      int            `json:"total"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Results    []batchOutcome `json:"results"`
}

type batchOutcome struct {
	URL      string `json:"url"`
	Ref      string `json:"ref,omitempty"`
	LabName  string `json:"lab_name,omitempty"`
	Status   string `json:"status"`
	Path     string `json:"path,omitempty"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

func batchPayload(results []batch.Result) batchReport {
	report := batchReport{
		Total:   len(results),
		Results: make([]batchOutcome, 0, len(results)),
	}
	for _, res := range results {
		outcome := batchOutcome{
			URL:      res.Repo.URL,
			Ref:      res.Repo.Ref,
			LabName:  res.LabName,
			Duration: res.Duration.Round(time.Millisecond).String(),
		}
		if res.Err != nil {
			outcome.Status = "failed"
			outcome.Error = res.Err.Error()
			report.Failed++
		} else {
			outcome.Status = "success"
			outcome.Path = res.Path
			report.Successful++
		}
		report.Results = append(report.Results, outcome)
	}
	return report
}

func (r *Renderer) textBatchSummary(w io.Writer, results []batch.Result) error {
	var sb strings.Builder

	sb.WriteString(r.styles.Title.Render("Batch Summary"))
	sb.WriteString("\n\n")

	succeeded := 0
	for i, res := range results {
		name := res.LabName
		if name == "" {
			name = res.Repo.URL
		}

		// Pad before styling so the status column lines up.
		status := r.styles.Good.Render(fmt.Sprintf("%-6s", "ok"))
		detail := res.Path
		if res.Err != nil {
			status = r.styles.Poor.Render(fmt.Sprintf("%-6s", "failed"))
			detail = res.Err.Error()
		} else {
			succeeded++
		}

		sb.WriteString(fmt.Sprintf("  %2d. %-40s %s %8s  %s\n",
			i+1, name, status, res.Duration.Round(time.Millisecond), detail))
	}

	sb.WriteString("\n")
	sb.WriteString(r.styles.Muted.Render(fmt.Sprintf("%d of %d repos succeeded", succeeded, len(results))))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
