package output

import (
	"io"
	"text/template"
	"time"

	"github.com/rhpds/showroom-tool/showroom"
)

// adocTimeFormat stamps generated AsciiDoc documents.
const adocTimeFormat = "2006-01-02 15:04"

// adocContext is the template payload for one rendered document; only
// the field matching the template's kind is set.
type adocContext struct {
	Lab       *showroom.Lab
	Generated string

	Summary     *showroom.Summary
	Review      *showroom.Review
	Description *showroom.Description
}

func renderAdoc(w io.Writer, tmpl *template.Template, ctx adocContext) error {
	if ctx.Generated == "" {
		ctx.Generated = time.Now().Format(adocTimeFormat)
	}
	return tmpl.Execute(w, ctx)
}

var summaryTemplate = template.Must(template.New("summary").Parse(`= Lab Summary: {{ .Lab.Name }}
:generated: {{ .Generated }}

Source: {{ .Lab.SourceLocation }} ({{ .Lab.Revision }})

== Products

{{ range .Summary.Products }}* {{ . }}
{{ end }}
== Audience

{{ range .Summary.Audience }}* {{ . }}
{{ end }}
== Learning Objectives

{{ range .Summary.LearningObjectives }}* {{ . }}
{{ end }}
== Summary

{{ .Summary.SummaryText }}
`))

var reviewTemplate = template.Must(template.New("review").Parse(`= Lab Review: {{ .Lab.Name }}
:generated: {{ .Generated }}

Source: {{ .Lab.SourceLocation }} ({{ .Lab.Revision }})

== Scores

[cols="3,1,6",options="header"]
|===
|Dimension |Score |Feedback

{{ range .Review.Dimensions }}|{{ .Label }}
|{{ printf "%.1f" .Score }}
|{{ .Feedback }}

{{ end }}|===

Average score: {{ printf "%.1f" .Review.AverageScore }}

== Overall

{{ .Review.OverallReview }}
`))

var descriptionTemplate = template.Must(template.New("description").Parse(`= {{ .Lab.Name }}
:generated: {{ .Generated }}

{{ .Description.Headline }}

== Products

{{ range .Description.Products }}* {{ . }}
{{ end }}
== Audience

{{ range .Description.Audience }}* {{ . }}
{{ end }}
== What You Will Do

{{ range .Description.LabBullets }}* {{ . }}
{{ end }}`))
