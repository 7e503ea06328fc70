package showroom

import (
	"errors"
	"fmt"
	"strings"
)

// Review scores live in a closed interval. Out-of-range values are
// rejected during validation, never clamped.
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// Summary is the learner-facing abstract of a lab: what it covers, who
// it is for, and what a learner walks away with.
type Summary struct {
	Products           []string `json:"products"`
	Audience           []string `json:"audience"`
	LearningObjectives []string `json:"learning_objectives"`
	SummaryText        string   `json:"summary"`
}

// Validate reports whether the summary satisfies its wire contract.
func (s *Summary) Validate() error {
	if strings.TrimSpace(s.SummaryText) == "" {
		return errors.New("summary text is empty")
	}
	return nil
}

// Review is a scored editorial assessment of a lab across five fixed
// dimensions, each score paired with mandatory free-text feedback.
type Review struct {
	CompletenessScore      float64 `json:"completeness_score"`
	CompletenessFeedback   string  `json:"completeness_feedback"`
	ClarityScore           float64 `json:"clarity_score"`
	ClarityFeedback        string  `json:"clarity_feedback"`
	TechnicalDepthScore    float64 `json:"technical_depth_score"`
	TechnicalDepthFeedback string  `json:"technical_depth_feedback"`
	UsefulnessScore        float64 `json:"usefulness_score"`
	UsefulnessFeedback     string  `json:"usefulness_feedback"`
	BusinessValueScore     float64 `json:"business_value_score"`
	BusinessValueFeedback  string  `json:"business_value_feedback"`
	OverallReview          string  `json:"overall_review"`
}

// ReviewDimension pairs one scored aspect of a review with its rationale.
type ReviewDimension struct {
	Label    string
	Score    float64
	Feedback string
}

// Dimensions returns the five review dimensions in their fixed order.
func (r *Review) Dimensions() []ReviewDimension {
	return []ReviewDimension{
		{Label: "Completeness", Score: r.CompletenessScore, Feedback: r.CompletenessFeedback},
		{Label: "Clarity", Score: r.ClarityScore, Feedback: r.ClarityFeedback},
		{Label: "Technical Depth", Score: r.TechnicalDepthScore, Feedback: r.TechnicalDepthFeedback},
		{Label: "Usefulness", Score: r.UsefulnessScore, Feedback: r.UsefulnessFeedback},
		{Label: "Business Value", Score: r.BusinessValueScore, Feedback: r.BusinessValueFeedback},
	}
}

// AverageScore is the mean of the five dimension scores.
func (r *Review) AverageScore() float64 {
	total := 0.0
	for _, d := range r.Dimensions() {
		total += d.Score
	}
	return total / 5
}

// Validate reports whether the review satisfies its wire contract:
// every score inside [MinScore, MaxScore] and every feedback non-empty.
func (r *Review) Validate() error {
	for _, d := range r.Dimensions() {
		if d.Score < MinScore || d.Score > MaxScore {
			return fmt.Errorf("%s score %v outside [%v, %v]",
				strings.ToLower(d.Label), d.Score, MinScore, MaxScore)
		}
		if strings.TrimSpace(d.Feedback) == "" {
			return fmt.Errorf("%s feedback is empty", strings.ToLower(d.Label))
		}
	}
	if strings.TrimSpace(r.OverallReview) == "" {
		return errors.New("overall review is empty")
	}
	return nil
}

// Description is marketing catalog copy for a lab: a headline plus
// short bullet lists suitable for a lab-catalog listing.
type Description struct {
	Headline   string   `json:"headline"`
	Products   []string `json:"products"`
	Audience   []string `json:"audience"`
	LabBullets []string `json:"lab_bullets"`
}

// Validate reports whether the description satisfies its wire contract.
func (d *Description) Validate() error {
	if strings.TrimSpace(d.Headline) == "" {
		return errors.New("headline is empty")
	}
	return nil
}
