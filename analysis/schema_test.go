package analysis

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rhpds/showroom-tool/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsOrder(t *testing.T) {
	tests := []struct {
		kind Kind
		want []string
	}{
		{
			kind: KindSummary,
			want: []string{"products", "audience", "learning_objectives", "summary"},
		},
		{
			kind: KindReview,
			want: []string{
				"completeness_score", "completeness_feedback",
				"clarity_score", "clarity_feedback",
				"technical_depth_score", "technical_depth_feedback",
				"usefulness_score", "usefulness_feedback",
				"business_value_score", "business_value_feedback",
				"overall_review",
			},
		},
		{
			kind: KindDescription,
			want: []string{"headline", "products", "audience", "lab_bullets"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			fields, err := Fields(tt.kind)
			require.NoError(t, err)

			names := make([]string, len(fields))
			for i, f := range fields {
				names[i] = f.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFieldsUnknownKind(t *testing.T) {
	_, err := Fields(Kind("sentiment"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sentiment")
}

func TestRequireDescriptions(t *testing.T) {
	fields := []prompt.Field{
		{Name: "headline", Type: prompt.TypeString, Description: "write a headline"},
		{Name: "products", Type: prompt.TypeStringList},
	}

	err := requireDescriptions(KindDescription, fields)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaFieldMissingDescription))
	assert.Contains(t, err.Error(), "description.products")
}

func TestVerifyCatalogs(t *testing.T) {
	require.NoError(t, VerifyCatalogs())
}

func TestJSONSchema(t *testing.T) {
	schema, err := JSONSchema(KindReview)
	require.NoError(t, err)
	assert.Equal(t, "lab_review", schema.Name)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(schema.Schema, &doc))

	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, false, doc["additionalProperties"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, 11)
	assert.Len(t, doc["required"], 11)

	score, ok := props["completeness_score"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", score["type"])
	assert.EqualValues(t, 0, score["minimum"])
	assert.EqualValues(t, 10, score["maximum"])

	feedback, ok := props["completeness_feedback"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", feedback["type"])
}

func TestJSONSchemaListFields(t *testing.T) {
	schema, err := JSONSchema(KindSummary)
	require.NoError(t, err)
	assert.Equal(t, "lab_summary", schema.Name)

	var doc struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(schema.Schema, &doc))

	var products struct {
		Type  string `json:"type"`
		Items struct {
			Type string `json:"type"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(doc.Properties["products"], &products))
	assert.Equal(t, "array", products.Type)
	assert.Equal(t, "string", products.Items.Type)
}
