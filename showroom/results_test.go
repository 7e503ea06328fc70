package showroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReview() *Review {
	return &Review{
		CompletenessScore: 8, CompletenessFeedback: "Covers the full arc.",
		ClarityScore: 7.5, ClarityFeedback: "Mostly clear.",
		TechnicalDepthScore: 9, TechnicalDepthFeedback: "Deep dives included.",
		UsefulnessScore: 8, UsefulnessFeedback: "Directly applicable.",
		BusinessValueScore: 6, BusinessValueFeedback: "Value stated late.",
		OverallReview: "Solid lab with minor gaps.",
	}
}

func TestReviewValidate(t *testing.T) {
	require.NoError(t, validReview().Validate())

	t.Run("boundary scores are valid", func(t *testing.T) {
		r := validReview()
		r.CompletenessScore = 0
		r.ClarityScore = 10
		require.NoError(t, r.Validate())
	})

	t.Run("score above range is rejected, not clamped", func(t *testing.T) {
		r := validReview()
		r.CompletenessScore = 10.5
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "completeness")
		// The value must be untouched after a failed validation.
		assert.Equal(t, 10.5, r.CompletenessScore)
	})

	t.Run("negative score is rejected", func(t *testing.T) {
		r := validReview()
		r.BusinessValueScore = -0.1
		require.Error(t, r.Validate())
	})

	t.Run("empty feedback is rejected", func(t *testing.T) {
		r := validReview()
		r.TechnicalDepthFeedback = "   "
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "technical depth")
	})

	t.Run("empty overall review is rejected", func(t *testing.T) {
		r := validReview()
		r.OverallReview = ""
		require.Error(t, r.Validate())
	})
}

func TestReviewAverageScore(t *testing.T) {
	r := validReview()
	assert.InDelta(t, 7.7, r.AverageScore(), 0.0001)
}

func TestSummaryValidate(t *testing.T) {
	s := &Summary{SummaryText: "A five sentence summary."}
	require.NoError(t, s.Validate())

	s.SummaryText = ""
	require.Error(t, s.Validate())
}

func TestDescriptionValidate(t *testing.T) {
	d := &Description{Headline: "Hands-on with OpenShift"}
	require.NoError(t, d.Validate())

	d.Headline = "  "
	require.Error(t, d.Validate())
}
