package output

import (
	"testing"
	"time"

	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/llm"
	"github.com/rhpds/showroom-tool/showroom"
)

func sampleLab() *showroom.Lab {
	return &showroom.Lab{
		Name:           "OpenShift Virtualization Roadshow",
		SourceLocation: "https://github.com/rhpds/demo-lab.git",
		Revision:       "abc123",
		Modules: []showroom.Module{
			{Title: "Welcome", Filename: "index.adoc", WordCount: 120, LineCount: 18},
			{Title: "Migrating VMs", Filename: "02-migrate.adoc", WordCount: 950, LineCount: 140},
		},
	}
}

func sampleSummary() *showroom.Summary {
	return &showroom.Summary{
		Products:           []string{"OpenShift Virtualization", "Red Hat OpenShift"},
		Audience:           []string{"Platform engineers"},
		LearningObjectives: []string{"Migrate a VM from VMware"},
		SummaryText:        "A hands-on introduction to running virtual machines on OpenShift.",
	}
}

func sampleReview() *showroom.Review {
	return &showroom.Review{
		CompletenessScore: 8, CompletenessFeedback: "Covers the full migration path.",
		ClarityScore: 9, ClarityFeedback: "Steps are unambiguous.",
		TechnicalDepthScore: 7, TechnicalDepthFeedback: "Could explain storage mapping.",
		UsefulnessScore: 8, UsefulnessFeedback: "Directly applicable.",
		BusinessValueScore: 7, BusinessValueFeedback: "Strong migration story.",
		OverallReview: "A solid lab with room for deeper storage coverage.",
	}
}

func sampleDescription() *showroom.Description {
	return &showroom.Description{
		Headline:   "Bring your virtual machines to OpenShift.",
		Products:   []string{"OpenShift Virtualization"},
		Audience:   []string{"VM administrators"},
		LabBullets: []string{"Install the virtualization operator", "Migrate a running VM"},
	}
}

func sampleMeta() *analysis.RunMeta {
	return &analysis.RunMeta{
		RequestID: "req-1",
		Provider:  "gemini",
		Model:     "gemini-2.0-flash",
		Duration:  1200 * time.Millisecond,
		Tokens:    llm.TokenUsage{PromptTokens: 1000, CompletionTokens: 530, TotalTokens: 1530},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"adoc", FormatAdoc, false},
		{" JSON ", FormatJSON, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
